// Package web provides the HTTP server and web UI for the playlist maker.
package web

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const (
	sessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour
)

// Session represents per-browser server-side state. It is created at the
// login entry point to hold the OAuth state nonce and becomes authenticated
// once the callback completes.
type Session struct {
	ID             string
	Email          string // empty until the OAuth callback completes
	Admin          bool
	OAuthState     string // anti-forgery nonce, used once during login
	Token          *oauth2.Token
	RecognizedSong string // "title artist" label from the recognition flow
	CreatedAt      time.Time
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.Email != ""
}

// SessionStore manages sessions in memory. The session cookie carries only
// the session ID, HMAC-signed with the application secret.
type SessionStore struct {
	secret []byte

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore(secret string) *SessionStore {
	return &SessionStore{
		secret:   []byte(secret),
		sessions: make(map[string]*Session),
	}
}

// Create generates a new anonymous session.
func (s *SessionStore) Create() (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        id,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session, nil
}

// Get retrieves a session by ID, or nil if it does not exist or has expired.
func (s *SessionStore) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if time.Since(session.CreatedAt) > sessionTTL {
		return nil
	}
	return session
}

// Delete removes a session by ID.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// SetOAuthState stores the anti-forgery nonce issued at the login entry point.
func (s *SessionStore) SetOAuthState(id, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.OAuthState = state
	}
}

// Authenticate marks a session as signed in after a completed OAuth
// exchange. The state nonce is single-use and cleared here.
func (s *SessionStore) Authenticate(id, email string, admin bool, token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.Email = email
		session.Admin = admin
		session.Token = token
		session.OAuthState = ""
	}
}

// SetRecognizedSong stores the recognized-song label for the next step of
// the recognition flow.
func (s *SessionStore) SetRecognizedSong(id, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.RecognizedSong = label
	}
}

// ClearRecognizedSong removes the recognized-song label once attached.
func (s *SessionStore) ClearRecognizedSong(id string) {
	s.SetRecognizedSong(id, "")
}

// GetFromRequest extracts the session from the signed request cookie.
// Returns nil for missing, tampered, or expired sessions.
func (s *SessionStore) GetFromRequest(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	id, ok := s.verify(cookie.Value)
	if !ok {
		return nil
	}
	return s.Get(id)
}

// SetCookie sets the signed session cookie on the response.
func (s *SessionStore) SetCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.sign(session.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
}

// ClearCookie removes the session cookie from the response.
func (s *SessionStore) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// sign produces the cookie value "<id>.<hmac>" for a session ID.
func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

// verify parses and validates a signed cookie value, returning the session
// ID. The signature check is constant-time.
func (s *SessionStore) verify(value string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}

	want, err := hex.DecodeString(sig)
	if err != nil {
		return "", false
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	if !hmac.Equal(mac.Sum(nil), want) {
		return "", false
	}
	return id, true
}

// generateSessionID creates a cryptographically random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
