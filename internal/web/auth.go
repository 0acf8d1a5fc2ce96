package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// youtubeScope grants management of the user's YouTube account.
const youtubeScope = "https://www.googleapis.com/auth/youtube"

// Sentinel errors for the login flow.
var (
	// ErrNoIDToken is returned when the token exchange yields no identity token.
	ErrNoIDToken = errors.New("authorization response carried no identity token")

	// ErrNoEmailClaim is returned when the identity token has no email claim.
	ErrNoEmailClaim = errors.New("identity token carried no email claim")

	// ErrNoCredential is returned when a protected operation needs the video
	// platform but the session holds no stored credential.
	ErrNoCredential = errors.New("no credential in session")
)

// Authenticator wraps the Google OAuth authorization-code flow.
type Authenticator struct {
	config *oauth2.Config
}

// NewAuthenticator builds an Authenticator from a Google client-secrets
// JSON file. The redirect URL overrides whatever the file declares.
func NewAuthenticator(clientSecretsPath, redirectURL string) (*Authenticator, error) {
	data, err := os.ReadFile(clientSecretsPath)
	if err != nil {
		return nil, fmt.Errorf("reading client secrets: %w", err)
	}

	config, err := google.ConfigFromJSON(data, youtubeScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets: %w", err)
	}
	config.RedirectURL = redirectURL

	return &Authenticator{config: config}, nil
}

// AuthURL builds the authorization URL for the login redirect.
func (a *Authenticator) AuthURL(state string) string {
	return a.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange trades an authorization code for a credential.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}

// HTTPClient returns an HTTP client authenticated with the stored
// credential, refreshing it transparently when expired.
func (a *Authenticator) HTTPClient(ctx context.Context, token *oauth2.Token) (*http.Client, error) {
	if token == nil {
		return nil, ErrNoCredential
	}
	return a.config.Client(ctx, token), nil
}

// EmailFromIDToken extracts the email claim from the identity token
// attached to an exchanged credential. The claim payload is decoded with a
// strict base64/JSON parse; the token arrives directly from the provider's
// token endpoint over TLS, so its signature is not re-verified here.
func EmailFromIDToken(token *oauth2.Token) (string, error) {
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", ErrNoIDToken
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: malformed identity token", ErrNoIDToken)
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decoding identity token payload: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("parsing identity token claims: %w", err)
	}
	if claims.Email == "" {
		return "", ErrNoEmailClaim
	}
	return claims.Email, nil
}
