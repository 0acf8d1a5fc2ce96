package web

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

const testClientSecrets = `{
  "web": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "client_secret": "test-client-secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://127.0.0.1:8080/callback"]
  }
}`

func writeClientSecrets(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client_secrets.json")
	if err := os.WriteFile(path, []byte(testClientSecrets), 0o600); err != nil {
		t.Fatalf("writing client secrets: %v", err)
	}
	return path
}

func TestNewAuthenticator(t *testing.T) {
	auth, err := NewAuthenticator(writeClientSecrets(t), "http://127.0.0.1:9090/callback")
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}

	url := auth.AuthURL("state123")
	if !strings.Contains(url, "state=state123") {
		t.Errorf("AuthURL() missing state parameter: %s", url)
	}
	if !strings.Contains(url, "youtube") {
		t.Errorf("AuthURL() missing YouTube scope: %s", url)
	}
	if !strings.Contains(url, "access_type=offline") {
		t.Errorf("AuthURL() missing offline access: %s", url)
	}
	if !strings.Contains(url, "127.0.0.1%3A9090") {
		t.Errorf("AuthURL() does not use the overridden redirect URL: %s", url)
	}
}

func TestNewAuthenticator_MissingFile(t *testing.T) {
	if _, err := NewAuthenticator(filepath.Join(t.TempDir(), "nope.json"), ""); err == nil {
		t.Fatal("NewAuthenticator() error = nil for missing secrets file")
	}
}

func TestHTTPClient_NoCredential(t *testing.T) {
	auth, err := NewAuthenticator(writeClientSecrets(t), "")
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}

	if _, err := auth.HTTPClient(context.Background(), nil); !errors.Is(err, ErrNoCredential) {
		t.Errorf("HTTPClient(nil) error = %v, want ErrNoCredential", err)
	}
}

// fakeIDToken builds an unsigned JWT-shaped identity token with the given
// payload JSON.
func fakeIDToken(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"RS256"}`)) + "." + enc([]byte(payload)) + "." + enc([]byte("sig"))
}

func tokenWithID(idToken string) *oauth2.Token {
	token := &oauth2.Token{AccessToken: "at"}
	return token.WithExtra(map[string]any{"id_token": idToken})
}

func TestEmailFromIDToken(t *testing.T) {
	tests := []struct {
		name    string
		token   *oauth2.Token
		want    string
		wantErr error
	}{
		{
			name:  "valid email claim",
			token: tokenWithID(fakeIDToken(`{"email":"user@example.com","email_verified":true}`)),
			want:  "user@example.com",
		},
		{
			name:    "no id_token",
			token:   &oauth2.Token{AccessToken: "at"},
			wantErr: ErrNoIDToken,
		},
		{
			name:    "malformed token",
			token:   tokenWithID("just-one-segment"),
			wantErr: ErrNoIDToken,
		},
		{
			name:    "missing email claim",
			token:   tokenWithID(fakeIDToken(`{"sub":"12345"}`)),
			wantErr: ErrNoEmailClaim,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EmailFromIDToken(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("EmailFromIDToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("EmailFromIDToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmailFromIDToken_BadPayload(t *testing.T) {
	// Payload segment is not valid base64url.
	token := tokenWithID("aGVhZGVy.!!!notbase64!!!.c2ln")
	if _, err := EmailFromIDToken(token); err == nil {
		t.Fatal("EmailFromIDToken() error = nil for undecodable payload")
	}
}
