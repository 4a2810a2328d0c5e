package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

// Create implements user.Repository.
func (u *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		INSERT INTO users (name, email, password_hash, role, department, google_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.Department,
		newUser.GoogleID,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)

	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// GetByID implements user.Repository.
func (u *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	return u.getByField(ctx, "id", id)
}

// GetByEmail implements user.Repository.
func (u *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return u.getByField(ctx, "email", email)
}

func (u *userRepository) getByField(ctx context.Context, field string, value string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, name, email, password_hash, role, department, google_id, created_at, updated_at
		FROM users
		WHERE ` + field + ` = $1
	`

	var usr user.User
	err := q.QueryRow(ctx, query, value).Scan(
		&usr.ID, &usr.Name, &usr.Email, &usr.PasswordHash,
		&usr.Role, &usr.Department, &usr.GoogleID,
		&usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by %s: %w", field, err)
	}

	return usr, nil
}

// List implements user.Repository.
func (u *userRepository) List(ctx context.Context, includeSuperAdmin bool) ([]user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, name, email, password_hash, role, department, google_id, created_at, updated_at
		FROM users
	`
	var args []interface{}
	if !includeSuperAdmin {
		query += ` WHERE role <> $1`
		args = append(args, user.RoleSuperAdmin)
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var usr user.User
		if err := rows.Scan(
			&usr.ID, &usr.Name, &usr.Email, &usr.PasswordHash,
			&usr.Role, &usr.Department, &usr.GoogleID,
			&usr.CreatedAt, &usr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, usr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}
