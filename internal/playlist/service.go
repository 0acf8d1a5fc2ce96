// Package playlist provides the services that build remote playlists from
// song references and attach recognized songs to them.
package playlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/classify"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/db"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/youtube"
)

const (
	// DefaultTitle is used when the submitted playlist title is empty.
	DefaultTitle = "My Playlist"

	// RecognizedPlaylistName is the fixed name for playlists created from
	// the recognition flow.
	RecognizedPlaylistName = "Recognized Songs"
)

// VideoAPI abstracts the video-platform operations the builder needs.
// Implemented by youtube.Client; faked in tests.
type VideoAPI interface {
	CreatePlaylist(ctx context.Context, title string) (string, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	SearchVideo(ctx context.Context, query string) (string, error)
}

// Store abstracts the persistence writes performed during a build.
type Store interface {
	CreatePlaylist(ctx context.Context, playlist *db.Playlist) error
	RecordEvent(ctx context.Context, event db.AnalyticsEvent) error
}

// Service orchestrates playlist construction against the video platform
// and the local store.
type Service struct {
	api   VideoAPI
	store Store
}

// New creates a playlist service.
func New(api VideoAPI, store Store) *Service {
	return &Service{api: api, store: store}
}

// BuildResult contains the outcome of a playlist build.
type BuildResult struct {
	URL   string // Public playlist URL
	Songs int    // Number of song lines processed
}

// Build creates a remote unlisted playlist from raw song lines and records
// the build locally. Each line is resolved to a video (direct link parse or
// search fallback), appended to the playlist, and classified for analytics.
// Exactly one playlist record is persisted per call, after all lines are
// processed. A failure partway through leaves a partially populated remote
// playlist with no local record; there is no rollback.
func (s *Service) Build(ctx context.Context, owner, title, rawLines string) (*BuildResult, error) {
	if title == "" {
		title = DefaultTitle
	}

	lines := SplitSongLines(rawLines)

	playlistID, err := s.api.CreatePlaylist(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("creating remote playlist: %w", err)
	}
	url := youtube.PlaylistURL(playlistID)

	for _, line := range lines {
		videoID, err := youtube.ResolveVideoID(ctx, s.api, line)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", line, err)
		}

		if err := s.api.AddVideo(ctx, playlistID, videoID); err != nil {
			return nil, err
		}

		event := db.AnalyticsEvent{
			Email:    owner,
			Category: string(classify.Classify(line)),
		}
		if err := s.store.RecordEvent(ctx, event); err != nil {
			return nil, err
		}
	}

	record := &db.Playlist{
		Email: owner,
		Name:  title,
		URL:   url,
	}
	if err := s.store.CreatePlaylist(ctx, record); err != nil {
		return nil, err
	}

	return &BuildResult{URL: url, Songs: len(lines)}, nil
}

// Target selects where a recognized song is attached: a new playlist with
// the fixed recognized-songs name, or an existing playlist reference.
type Target struct {
	NewPlaylist bool
	PlaylistRef string // playlist URL or ID; parsed with youtube.ExtractPlaylistID
}

// AttachRecognized searches for the best video match to a recognized song
// label and appends it to the target playlist, persisting one playlist
// record. No analytics event is recorded on this path.
func (s *Service) AttachRecognized(ctx context.Context, owner, songLabel string, target Target) (string, error) {
	var playlistID string
	if target.NewPlaylist {
		id, err := s.api.CreatePlaylist(ctx, RecognizedPlaylistName)
		if err != nil {
			return "", fmt.Errorf("creating remote playlist: %w", err)
		}
		playlistID = id
	} else {
		playlistID = youtube.ExtractPlaylistID(target.PlaylistRef)
	}

	videoID, err := s.api.SearchVideo(ctx, songLabel)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", songLabel, err)
	}

	if err := s.api.AddVideo(ctx, playlistID, videoID); err != nil {
		return "", err
	}

	url := youtube.PlaylistURL(playlistID)
	record := &db.Playlist{
		Email: owner,
		Name:  RecognizedPlaylistName,
		URL:   url,
	}
	if err := s.store.CreatePlaylist(ctx, record); err != nil {
		return "", err
	}

	return url, nil
}

// SplitSongLines splits a submitted text blob into individual song
// references, one per line. Blank lines are dropped.
func SplitSongLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
