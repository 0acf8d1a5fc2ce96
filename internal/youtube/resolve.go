package youtube

import (
	"context"
	"regexp"
	"strings"
)

// videoIDPattern matches the 11-character video ID embedded in the two
// known link shapes: watch URLs (v=<id>) and short links (youtu.be/<id>).
var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/)([\w-]{11})`)

// Searcher finds the best video match for a free-text query. Implemented
// by Client; faked in tests.
type Searcher interface {
	SearchVideo(ctx context.Context, query string) (string, error)
}

// ExtractVideoID returns the video ID embedded in a song reference, or the
// empty string when the reference contains no recognizable link.
func ExtractVideoID(reference string) string {
	m := videoIDPattern.FindStringSubmatch(reference)
	if m == nil {
		return ""
	}
	return m[1]
}

// ResolveVideoID resolves a song reference to a video ID. References
// containing a recognizable video link are resolved directly without
// touching the API; anything else falls back to a search, taking the first
// result. Returns ErrNoResults (via the Searcher) when nothing matches.
func ResolveVideoID(ctx context.Context, searcher Searcher, reference string) (string, error) {
	if id := ExtractVideoID(reference); id != "" {
		return id, nil
	}
	return searcher.SearchVideo(ctx, strings.TrimSpace(reference))
}

// ExtractPlaylistID parses a playlist reference pasted by the user, taking
// everything after the last "list=" so both bare IDs and full playlist URLs
// are accepted.
func ExtractPlaylistID(reference string) string {
	reference = strings.TrimSpace(reference)
	if i := strings.LastIndex(reference, "list="); i >= 0 {
		return reference[i+len("list="):]
	}
	return reference
}
