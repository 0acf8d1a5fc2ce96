package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlaylistRepository handles playlist record database operations.
type PlaylistRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a playlist record. The ID and creation timestamp are
// assigned here if unset.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *Playlist) error {
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO playlists (id, email, name, url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		playlist.ID,
		playlist.Email,
		playlist.Name,
		playlist.URL,
		playlist.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting playlist: %w", err)
	}
	return nil
}

// ListForOwner returns all playlist records for an owner in insertion order.
func (r *PlaylistRepository) ListForOwner(ctx context.Context, email string) ([]Playlist, error) {
	query := `
		SELECT id, email, name, url, created_at
		FROM playlists
		WHERE email = $1
	`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("querying playlists: %w", err)
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.URL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating playlists: %w", err)
	}
	return playlists, nil
}

// Count returns the total number of playlist records across all owners.
func (r *PlaylistRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM playlists`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting playlists: %w", err)
	}
	return count, nil
}
