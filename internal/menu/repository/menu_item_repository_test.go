package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
	"littlelemon/internal/testutil"
)

// Unit Tests

func TestNewMySQLMenuItemRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLMenuItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMenuItemRepository_FindByID_Scan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, price, description FROM menu_items WHERE id = ?").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description"}).
			AddRow(3, "Bruschetta", "7.99", "Grilled bread"))

	item, err := NewMySQLMenuItemRepository(db).FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Bruschetta", item.Name)
	assert.Equal(t, "7.99", item.Price.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuItemRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM menu_items WHERE id = ?").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewMySQLMenuItemRepository(db).Delete(context.Background(), 99)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Integration Tests

func TestMenuItemRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuItemRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, domain.MenuItem{Name: "Lemon Dessert", Price: decimal.RequireFromString("6.50"), Description: "Tart"})
	require.NoError(t, err)

	item, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lemon Dessert", item.Name)
	assert.True(t, decimal.RequireFromString("6.50").Equal(item.Price))

	item.Price = decimal.RequireFromString("7.00")
	require.NoError(t, repo.Update(ctx, *item))

	// unchanged rows still count as matched
	require.NoError(t, repo.Update(ctx, *item))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "7.00", items[0].Price.StringFixed(2))

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.FindByID(ctx, id)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
