package repository

import (
	"context"
	"database/sql"
	"fmt"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

type MySQLMenuItemRepository struct {
	db *sql.DB
}

func NewMySQLMenuItemRepository(db *sql.DB) *MySQLMenuItemRepository {
	return &MySQLMenuItemRepository{db: db}
}

func (r *MySQLMenuItemRepository) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	query := `SELECT id, name, price, description FROM menu_items ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Description); err != nil {
			return nil, fmt.Errorf("scanning menu item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLMenuItemRepository) FindByID(ctx context.Context, id uint) (*domain.MenuItem, error) {
	query := `SELECT id, name, price, description FROM menu_items WHERE id = ?`

	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Name, &item.Price, &item.Description)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item by id: %w", err)
	}

	return &item, nil
}

func (r *MySQLMenuItemRepository) Insert(ctx context.Context, item domain.MenuItem) (uint, error) {
	query := `INSERT INTO menu_items (name, price, description) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, item.Name, item.Price, item.Description)
	if err != nil {
		return 0, fmt.Errorf("inserting menu item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLMenuItemRepository) Update(ctx context.Context, item domain.MenuItem) error {
	query := `UPDATE menu_items SET name = ?, price = ?, description = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, item.Name, item.Price, item.Description, item.ID)
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", item.ID))
	}

	return nil
}

func (r *MySQLMenuItemRepository) Delete(ctx context.Context, id uint) error {
	query := `DELETE FROM menu_items WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}

	return nil
}
