package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

type mockRepository struct {
	FindAllFunc  func(ctx context.Context) ([]domain.MenuItem, error)
	FindByIDFunc func(ctx context.Context, id uint) (*domain.MenuItem, error)
	InsertFunc   func(ctx context.Context, item domain.MenuItem) (uint, error)
	UpdateFunc   func(ctx context.Context, item domain.MenuItem) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *mockRepository) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*domain.MenuItem, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) Insert(ctx context.Context, item domain.MenuItem) (uint, error) {
	return m.InsertFunc(ctx, item)
}

func (m *mockRepository) Update(ctx context.Context, item domain.MenuItem) error {
	return m.UpdateFunc(ctx, item)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

var (
	staff    = &domain.User{ID: 1, Username: "admin", Staff: true}
	customer = &domain.User{ID: 2, Username: "customer"}
)

func TestCreateItem_Success(t *testing.T) {
	var inserted domain.MenuItem
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, item domain.MenuItem) (uint, error) {
			inserted = item
			return 12, nil
		},
	}

	svc := NewMenuService(repo, zap.NewNop())
	item, err := svc.CreateItem(context.Background(), staff, domain.MenuItem{
		Name:        "  Greek Salad ",
		Price:       decimal.RequireFromString("12.499"),
		Description: "Feta and olives",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(12), item.ID)
	assert.Equal(t, "Greek Salad", inserted.Name)
	assert.Equal(t, "12.5", inserted.Price.String())
}

func TestCreateItem_NotStaff(t *testing.T) {
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, item domain.MenuItem) (uint, error) {
			t.Fatal("insert must not be called")
			return 0, nil
		},
	}

	svc := NewMenuService(repo, zap.NewNop())
	_, err := svc.CreateItem(context.Background(), customer, domain.MenuItem{Name: "x", Price: decimal.NewFromInt(1), Description: "y"})

	_, ok := errors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestCreateItem_Validation(t *testing.T) {
	svc := NewMenuService(&mockRepository{}, zap.NewNop())

	_, err := svc.CreateItem(context.Background(), staff, domain.MenuItem{
		Name:  "",
		Price: decimal.NewFromInt(-1),
	})

	ve, ok := errors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 3)
	assert.Equal(t, "name", ve.Details[0].Field)
	assert.Equal(t, "price", ve.Details[1].Field)
	assert.Equal(t, "description", ve.Details[2].Field)
}

func TestCreateItem_PriceTooLarge(t *testing.T) {
	svc := NewMenuService(&mockRepository{}, zap.NewNop())

	_, err := svc.CreateItem(context.Background(), staff, domain.MenuItem{
		Name:        "Caviar",
		Price:       decimal.NewFromInt(10000),
		Description: "Expensive",
	})

	_, ok := errors.IsValidationError(err)
	assert.True(t, ok)
}

func TestCreateItem_AcceptsFourIntegerDigits(t *testing.T) {
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, item domain.MenuItem) (uint, error) {
			return 13, nil
		},
	}

	svc := NewMenuService(repo, zap.NewNop())
	item, err := svc.CreateItem(context.Background(), staff, domain.MenuItem{
		Name:        "Catering Platter",
		Price:       decimal.RequireFromString("9999.99"),
		Description: "Serves forty",
	})

	require.NoError(t, err)
	assert.Equal(t, "9999.99", item.Price.StringFixed(2))
}

func TestUpdateItem_PartialChanges(t *testing.T) {
	var updated domain.MenuItem
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.MenuItem, error) {
			return &domain.MenuItem{ID: id, Name: "Burger", Price: decimal.RequireFromString("8.00"), Description: "Beef"}, nil
		},
		UpdateFunc: func(ctx context.Context, item domain.MenuItem) error {
			updated = item
			return nil
		},
	}

	price := decimal.RequireFromString("9.25")
	svc := NewMenuService(repo, zap.NewNop())
	item, err := svc.UpdateItem(context.Background(), staff, 3, ItemChanges{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, "Burger", item.Name)
	assert.Equal(t, "Beef", updated.Description)
	assert.True(t, price.Equal(updated.Price))
}

func TestUpdateItem_NotFound(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.MenuItem, error) {
			return nil, errors.NewNotFoundError("menu item not found")
		},
	}

	svc := NewMenuService(repo, zap.NewNop())
	_, err := svc.UpdateItem(context.Background(), staff, 3, ItemChanges{})

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestDeleteItem(t *testing.T) {
	deleted := uint(0)
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	svc := NewMenuService(repo, zap.NewNop())

	err := svc.DeleteItem(context.Background(), customer, 5)
	_, ok := errors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Zero(t, deleted)

	require.NoError(t, svc.DeleteItem(context.Background(), staff, 5))
	assert.Equal(t, uint(5), deleted)
}
