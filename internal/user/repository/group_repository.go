package repository

import (
	"context"
	"database/sql"
	"fmt"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

type MySQLGroupRepository struct {
	db *sql.DB
}

func NewMySQLGroupRepository(db *sql.DB) *MySQLGroupRepository {
	return &MySQLGroupRepository{db: db}
}

func (r *MySQLGroupRepository) FindIDByName(ctx context.Context, name string) (uint, error) {
	var id uint
	err := r.db.QueryRowContext(ctx, `SELECT id FROM user_groups WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, errors.NewNotFoundError(fmt.Sprintf("group %q not found", name))
	}
	if err != nil {
		return 0, fmt.Errorf("querying group by name: %w", err)
	}
	return id, nil
}

func (r *MySQLGroupRepository) ListMembers(ctx context.Context, groupID uint) ([]domain.User, error) {
	query := `
		SELECT u.id, u.username, u.email
		FROM user_group_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = ?
		ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("querying group members: %w", err)
	}
	defer rows.Close()

	members := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, fmt.Errorf("scanning group member row: %w", err)
		}
		members = append(members, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating group member rows: %w", err)
	}

	return members, nil
}

// AddMember is idempotent: adding an existing member changes nothing.
func (r *MySQLGroupRepository) AddMember(ctx context.Context, groupID uint, userID uint) error {
	_, err := r.db.ExecContext(ctx, `INSERT IGNORE INTO user_group_members (user_id, group_id) VALUES (?, ?)`, userID, groupID)
	if err != nil {
		return fmt.Errorf("adding group member: %w", err)
	}
	return nil
}

// RemoveMember reports whether a membership row was deleted.
func (r *MySQLGroupRepository) RemoveMember(ctx context.Context, groupID uint, userID uint) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_group_members WHERE user_id = ? AND group_id = ?`, userID, groupID)
	if err != nil {
		return false, fmt.Errorf("removing group member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
