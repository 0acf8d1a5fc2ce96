package audd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	baseURL   = "https://api.audd.io/"
	userAgent = "yt-playlist-maker/1.0"
)

// AudD API error codes.
const (
	errCodeInvalidAPIKey = 901
	errCodeNoFile        = 300
)

// Sentinel errors.
var (
	// ErrNoMatch is returned when the service cannot identify the clip.
	ErrNoMatch = errors.New("song could not be recognized")

	// ErrInvalidAPIKey is returned when the API token is rejected.
	ErrInvalidAPIKey = errors.New("invalid AudD API token")
)

// Client is an AudD audio fingerprinting API client.
type Client struct {
	apiToken   string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new AudD API client from the provided configuration.
func NewClient(cfg *Config) *Client {
	return &Client{
		apiToken: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Recognize uploads an audio clip and returns the best-guess track.
// Returns ErrNoMatch when the service finds no result.
func (c *Client) Recognize(ctx context.Context, filename string, audio io.Reader) (*Recognition, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("api_token", c.apiToken); err != nil {
		return nil, fmt.Errorf("writing api_token field: %w", err)
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("copying audio payload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing recognition response: %w", err)
	}

	if parsed.Error != nil {
		switch parsed.Error.Code {
		case errCodeInvalidAPIKey:
			return nil, ErrInvalidAPIKey
		default:
			return nil, fmt.Errorf("API error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
	}

	if parsed.Result == nil {
		return nil, ErrNoMatch
	}
	return parsed.Result, nil
}
