package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

const selectOrders = `
	SELECT id, user_id, delivery_crew_id, status, total, created_at
	FROM orders`

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `INSERT INTO orders (user_id, delivery_crew_id, status, total, created_at) VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, order.UserID, order.DeliveryCrewID, string(order.Status), order.Total, order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// FindByIDAndUser reports NotFound both for a missing order and for one owned by another user.
func (r *MySQLOrderRepository) FindByIDAndUser(ctx context.Context, id uint, userID uint) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+` WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id and user: %w", err)
	}

	return order, nil
}

// FindByUser returns the user's orders oldest first.
func (r *MySQLOrderRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrders+` WHERE user_id = ? ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying orders by user: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

// Update applies the non-nil fields of update in one statement.
func (r *MySQLOrderRepository) Update(ctx context.Context, id uint, update domain.OrderUpdate) error {
	var sets []string
	var args []interface{}

	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*update.Status))
	}
	if update.ClearDeliveryCrew {
		sets = append(sets, "delivery_crew_id = NULL")
	} else if update.DeliveryCrewID != nil {
		sets = append(sets, "delivery_crew_id = ?")
		args = append(args, *update.DeliveryCrewID)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = ?`, strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var crewID sql.NullInt64
	var status string

	err := row.Scan(&order.ID, &order.UserID, &crewID, &status, &order.Total, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	if crewID.Valid {
		id := uint(crewID.Int64)
		order.DeliveryCrewID = &id
	}

	return &order, nil
}
