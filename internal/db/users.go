package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles user database operations.
type UserRepository struct {
	pool *pgxpool.Pool
}

// Upsert creates a user on first login. Existing rows are left untouched;
// users are never updated or deleted.
func (r *UserRepository) Upsert(ctx context.Context, email string) error {
	query := `
		INSERT INTO users (email)
		VALUES ($1)
		ON CONFLICT (email) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

// Count returns the total number of users across all accounts.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
