package youtube

import (
	"context"
	"errors"
	"testing"
)

// mockSearcher implements Searcher for testing.
type mockSearcher struct {
	results   map[string]string
	callCount int
}

func (m *mockSearcher) SearchVideo(_ context.Context, query string) (string, error) {
	m.callCount++
	if id, ok := m.results[query]; ok {
		return id, nil
	}
	return "", ErrNoResults
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      string
	}{
		{
			name:      "watch URL",
			reference: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:      "dQw4w9WgXcQ",
		},
		{
			name:      "short link",
			reference: "https://youtu.be/dQw4w9WgXcQ",
			want:      "dQw4w9WgXcQ",
		},
		{
			name:      "link with surrounding text",
			reference: "I love you https://youtu.be/dQw4w9WgXcQ",
			want:      "dQw4w9WgXcQ",
		},
		{
			name:      "ID with hyphen and underscore",
			reference: "https://www.youtube.com/watch?v=a-b_c1D2e3F",
			want:      "a-b_c1D2e3F",
		},
		{
			name:      "plain text",
			reference: "party anthem",
			want:      "",
		},
		{
			name:      "too-short ID",
			reference: "https://youtu.be/short",
			want:      "",
		},
		{
			name:      "empty reference",
			reference: "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.reference); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.reference, got, tt.want)
			}
		})
	}
}

func TestResolveVideoID_DirectMatch(t *testing.T) {
	searcher := &mockSearcher{}

	id, err := ResolveVideoID(context.Background(), searcher, "I love you https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "dQw4w9WgXcQ" {
		t.Errorf("got video ID %q, want %q", id, "dQw4w9WgXcQ")
	}
	if searcher.callCount != 0 {
		t.Errorf("search was invoked %d times for a direct link, want 0", searcher.callCount)
	}
}

func TestResolveVideoID_SearchFallback(t *testing.T) {
	searcher := &mockSearcher{
		results: map[string]string{"party anthem": "abc123def45"},
	}

	id, err := ResolveVideoID(context.Background(), searcher, "party anthem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abc123def45" {
		t.Errorf("got video ID %q, want %q", id, "abc123def45")
	}
	if searcher.callCount != 1 {
		t.Errorf("search was invoked %d times, want 1", searcher.callCount)
	}
}

func TestResolveVideoID_NoResults(t *testing.T) {
	searcher := &mockSearcher{}

	_, err := ResolveVideoID(context.Background(), searcher, "no such song")
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("error = %v, want ErrNoResults", err)
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      string
	}{
		{
			name:      "full playlist URL",
			reference: "https://www.youtube.com/playlist?list=PLabc123",
			want:      "PLabc123",
		},
		{
			name:      "bare ID",
			reference: "PLabc123",
			want:      "PLabc123",
		},
		{
			name:      "watch URL with list param",
			reference: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLxyz789",
			want:      "PLxyz789",
		},
		{
			name:      "surrounding whitespace",
			reference: "  PLabc123 ",
			want:      "PLabc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.reference); got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tt.reference, got, tt.want)
			}
		})
	}
}
