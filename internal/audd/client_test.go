package audd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecognize(t *testing.T) {
	tests := []struct {
		name     string
		response recognizeResponse
		want     *Recognition
		wantErr  error
	}{
		{
			name: "recognized track",
			response: recognizeResponse{
				Status: "success",
				Result: &Recognition{Title: "Never Gonna Give You Up", Artist: "Rick Astley"},
			},
			want: &Recognition{Title: "Never Gonna Give You Up", Artist: "Rick Astley"},
		},
		{
			name:     "no match",
			response: recognizeResponse{Status: "success", Result: nil},
			wantErr:  ErrNoMatch,
		},
		{
			name: "invalid API key",
			response: recognizeResponse{
				Status: "error",
				Error:  &apiError{Code: 901, Message: "api_token invalid"},
			},
			wantErr: ErrInvalidAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Fatalf("parsing multipart form: %v", err)
				}
				if got := r.FormValue("api_token"); got != "test-token" {
					t.Errorf("api_token = %q, want %q", got, "test-token")
				}
				if _, _, err := r.FormFile("file"); err != nil {
					t.Errorf("missing file part: %v", err)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(tt.response)
			}))
			defer server.Close()

			client := &Client{
				apiToken:   "test-token",
				httpClient: server.Client(),
				baseURL:    server.URL + "/",
			}

			got, err := client.Recognize(context.Background(), "clip.wav", strings.NewReader("fake audio bytes"))

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Recognize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got.Title != tt.want.Title || got.Artist != tt.want.Artist {
				t.Errorf("Recognize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecognize_UploadsAudioBytes(t *testing.T) {
	const payload = "riff-wave-data"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()

		if header.Filename != "clip.wav" {
			t.Errorf("filename = %q, want %q", header.Filename, "clip.wav")
		}
		body, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("reading file part: %v", err)
		}
		if string(body) != payload {
			t.Errorf("file payload = %q, want %q", body, payload)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recognizeResponse{
			Status: "success",
			Result: &Recognition{Title: "Song", Artist: "Artist"},
		})
	}))
	defer server.Close()

	client := &Client{
		apiToken:   "test-token",
		httpClient: server.Client(),
		baseURL:    server.URL + "/",
	}

	if _, err := client.Recognize(context.Background(), "clip.wav", strings.NewReader(payload)); err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
}

func TestRecognitionLabel(t *testing.T) {
	r := Recognition{Title: "Never Gonna Give You Up", Artist: "Rick Astley"}
	if got, want := r.Label(), "Never Gonna Give You Up Rick Astley"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		wantErr  error
	}{
		{name: "valid API key", envValue: "audd-test-key"},
		{name: "missing API key", envValue: "", wantErr: ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUDD_API_KEY", tt.envValue)

			cfg, err := LoadConfig()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && cfg.APIKey != tt.envValue {
				t.Errorf("LoadConfig() APIKey = %q, want %q", cfg.APIKey, tt.envValue)
			}
		})
	}
}
