package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository handles analytics event database operations.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// Record inserts one analytics event for a processed song line.
func (r *AnalyticsRepository) Record(ctx context.Context, event AnalyticsEvent) error {
	query := `
		INSERT INTO analytics (email, category)
		VALUES ($1, $2)
	`
	if _, err := r.pool.Exec(ctx, query, event.Email, event.Category); err != nil {
		return fmt.Errorf("inserting analytics event: %w", err)
	}
	return nil
}

// CountByCategory returns the per-category event counts for an owner.
func (r *AnalyticsRepository) CountByCategory(ctx context.Context, email string) (map[string]int, error) {
	query := `
		SELECT category, COUNT(*)
		FROM analytics
		WHERE email = $1
		GROUP BY category
	`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("querying analytics: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning analytics row: %w", err)
		}
		counts[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analytics rows: %w", err)
	}
	return counts, nil
}
