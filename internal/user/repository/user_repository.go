package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"littlelemon/internal/domain"
	"littlelemon/internal/errors"
)

const (
	mysqlErrDuplicateEntry = 1062

	selectUsers = `
		SELECT id, username, email, password_hash, is_staff, created_at
		FROM users`
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// FindByID loads the user together with its group names.
func (r *MySQLUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, selectUsers+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	if err := r.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *MySQLUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, selectUsers+` WHERE username = ?`, username))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %q not found", username))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	if err := r.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *MySQLUserRepository) Insert(ctx context.Context, user domain.User) (uint, error) {
	query := `INSERT INTO users (username, email, password_hash, is_staff, created_at) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Staff, user.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if stderrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return 0, errors.NewConflictError(fmt.Sprintf("username %q is already taken", user.Username))
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// UpdateCredentials sets the password hash and staff flag of an existing user.
func (r *MySQLUserRepository) UpdateCredentials(ctx context.Context, id uint, passwordHash string, staff bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ?, is_staff = ? WHERE id = ?`, passwordHash, staff, id)
	if err != nil {
		return fmt.Errorf("updating user credentials: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}

	return nil
}

func (r *MySQLUserRepository) loadGroups(ctx context.Context, user *domain.User) error {
	query := `
		SELECT g.name
		FROM user_group_members m
		JOIN user_groups g ON g.id = m.group_id
		WHERE m.user_id = ?
		ORDER BY g.name`

	rows, err := r.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return fmt.Errorf("querying user groups: %w", err)
	}
	defer rows.Close()

	user.Groups = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning user group row: %w", err)
		}
		user.Groups = append(user.Groups, name)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating user group rows: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Staff, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
