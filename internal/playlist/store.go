package playlist

import (
	"context"

	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/db"
)

// dbStore adapts the database repositories to the Store interface.
type dbStore struct {
	database *db.DB
}

// NewStore creates a Store backed by the database.
func NewStore(database *db.DB) Store {
	return &dbStore{database: database}
}

func (s *dbStore) CreatePlaylist(ctx context.Context, playlist *db.Playlist) error {
	return s.database.Playlists().Create(ctx, playlist)
}

func (s *dbStore) RecordEvent(ctx context.Context, event db.AnalyticsEvent) error {
	return s.database.Analytics().Record(ctx, event)
}
