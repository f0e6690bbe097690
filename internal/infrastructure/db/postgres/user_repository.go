package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	db *DB
}

const userColumns = `id, username, password_hash, bio, image_url, created_at`

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.db.conn(ctx).QueryRowContext(ctx, query, username))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.conn(ctx).QueryRowContext(ctx, query, id))
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	query :=
		`INSERT INTO users (username, password_hash, bio, image_url, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	created := *user
	err := r.db.conn(ctx).QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Bio, user.ImageURL, user.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		if isConstraintViolation(err, codeUniqueViolation, constraintUsername) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Bio, &u.ImageURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
