// Package youtube wraps the subset of the YouTube Data API used by the
// application: playlist creation, playlist-item insertion, and video search.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// requestsPerSecond is a client-side cap on outbound API calls to stay
// within the daily quota during large playlist builds.
const requestsPerSecond = 5

// ErrNoResults is returned when a video search yields no candidates.
var ErrNoResults = errors.New("no matching video found")

// Client wraps an authenticated YouTube Data API service.
type Client struct {
	service *yt.Service
	limiter *rate.Limiter
}

// New creates a Client from an authenticated HTTP client. The HTTP client
// must already carry the user's OAuth credential.
func New(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := yt.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating YouTube service: %w", err)
	}
	return &Client{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// CreatePlaylist creates a new unlisted playlist and returns its ID.
func (c *Client) CreatePlaylist(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	playlist := &yt.Playlist{
		Snippet: &yt.PlaylistSnippet{Title: title},
		Status:  &yt.PlaylistStatus{PrivacyStatus: "unlisted"},
	}

	created, err := c.service.Playlists.Insert([]string{"snippet", "status"}, playlist).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating playlist: %w", err)
	}
	return created.Id, nil
}

// AddVideo appends a video to the end of a playlist.
func (c *Client) AddVideo(ctx context.Context, playlistID, videoID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	item := &yt.PlaylistItem{
		Snippet: &yt.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &yt.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	if _, err := c.service.PlaylistItems.Insert([]string{"snippet"}, item).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("adding video %s to playlist %s: %w", videoID, playlistID, err)
	}
	return nil
}

// SearchVideo returns the video ID of the first search result for a
// free-text query. Returns ErrNoResults if the search comes back empty.
func (c *Client) SearchVideo(ctx context.Context, query string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.service.Search.List([]string{"id"}).
		Q(query).
		MaxResults(1).
		Type("video").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("searching for %q: %w", query, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == nil {
		return "", fmt.Errorf("%w: %q", ErrNoResults, query)
	}
	return resp.Items[0].Id.VideoId, nil
}

// PlaylistURL derives the public URL for a playlist ID.
func PlaylistURL(playlistID string) string {
	return "https://www.youtube.com/playlist?list=" + playlistID
}
