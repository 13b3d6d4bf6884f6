package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

const (
	mysqlErrNoReferencedRow = 1452

	selectCartLines = `
		SELECT c.id, c.user_id, c.menu_item_id, m.name, m.price, c.quantity
		FROM cart_items c
		JOIN menu_items m ON m.id = c.menu_item_id
		WHERE c.user_id = ?
		ORDER BY c.id`
)

type MySQLCartRepository struct {
	db *sql.DB
}

func NewMySQLCartRepository(db *sql.DB) *MySQLCartRepository {
	return &MySQLCartRepository{db: db}
}

// Upsert creates the (user, item) line or adds quantity to it in one statement.
// The accumulated quantity saturates at domain.MaxCartQuantity.
func (r *MySQLCartRepository) Upsert(ctx context.Context, userID uint, menuItemID uint, quantity int) error {
	query := `
		INSERT INTO cart_items (user_id, menu_item_id, quantity)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = LEAST(quantity + VALUES(quantity), ?)`

	_, err := r.db.ExecContext(ctx, query, userID, menuItemID, quantity, domain.MaxCartQuantity)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if stderrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoReferencedRow {
			return errors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", menuItemID))
		}
		return fmt.Errorf("upserting cart item: %w", err)
	}

	return nil
}

func (r *MySQLCartRepository) FindByUser(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	rows, err := r.db.QueryContext(ctx, selectCartLines, userID)
	if err != nil {
		return nil, fmt.Errorf("querying cart items: %w", err)
	}
	return scanCartLines(rows)
}

// FindByUserForUpdate reads the user's cart lines and locks them, and the gap
// after them, until tx ends. Menu item rows are read but not locked.
func (r *MySQLCartRepository) FindByUserForUpdate(ctx context.Context, tx *sql.Tx, userID uint) ([]domain.CartLine, error) {
	rows, err := tx.QueryContext(ctx, selectCartLines+" FOR UPDATE OF c", userID)
	if err != nil {
		return nil, fmt.Errorf("querying cart items for update: %w", err)
	}
	return scanCartLines(rows)
}

func (r *MySQLCartRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting cart items: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

// DeleteByIDs removes exactly the given lines of userID inside tx.
func (r *MySQLCartRepository) DeleteByIDs(ctx context.Context, tx *sql.Tx, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, userID)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`DELETE FROM cart_items WHERE user_id = ? AND id IN (%s)`, strings.Join(placeholders, ", "))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting checked out cart items: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

func scanCartLines(rows *sql.Rows) ([]domain.CartLine, error) {
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.MenuItemID, &l.MenuItemName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scanning cart item row: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart item rows: %w", err)
	}

	return lines, nil
}
