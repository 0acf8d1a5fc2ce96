package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/audd"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/classify"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/db"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/playlist"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/youtube"
)

// maxAudioUpload caps recognition uploads at 10 MiB.
const maxAudioUpload = 10 << 20

// Recognizer abstracts the audio fingerprinting service.
type Recognizer interface {
	Recognize(ctx context.Context, filename string, audio io.Reader) (*audd.Recognition, error)
}

// Builder abstracts the playlist service bound to a signed-in user's
// credential.
type Builder interface {
	Build(ctx context.Context, owner, title, rawLines string) (*playlist.BuildResult, error)
	AttachRecognized(ctx context.Context, owner, songLabel string, target playlist.Target) (string, error)
}

// BuilderFactory produces a Builder from a stored credential. Returns
// ErrNoCredential when the session holds none.
type BuilderFactory func(ctx context.Context, token *oauth2.Token) (Builder, error)

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	auth       *Authenticator
	sessions   *SessionStore
	templates  *Templates
	database   *db.DB
	recognizer Recognizer
	newBuilder BuilderFactory
	adminEmail string
	logger     *log.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(auth *Authenticator, sessions *SessionStore, templates *Templates,
	database *db.DB, recognizer Recognizer, newBuilder BuilderFactory,
	adminEmail string, logger *log.Logger) *Handlers {
	return &Handlers{
		auth:       auth,
		sessions:   sessions,
		templates:  templates,
		database:   database,
		recognizer: recognizer,
		newBuilder: newBuilder,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// requireLogin gates protected routes: requests without a signed-in session
// are redirected to the login entry point without touching persistence.
func (h *Handlers) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := h.sessions.GetFromRequest(r)
		if !session.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	h.render(w, "home", HomePageData{
		PageData:      h.pageData("YT Playlist Maker", r, session),
		Authenticated: session.Authenticated(),
	})
}

// Login initiates the OAuth flow (GET /login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		var err error
		session, err = h.sessions.Create()
		if err != nil {
			h.logger.Error("creating session", "err", err)
			h.renderError(w, http.StatusInternalServerError, "Failed to start login")
			return
		}
		h.sessions.SetCookie(w, session)
	}

	state, err := generateOAuthState()
	if err != nil {
		h.logger.Error("generating state", "err", err)
		h.renderError(w, http.StatusInternalServerError, "Failed to start login")
		return
	}
	h.sessions.SetOAuthState(session.ID, state)

	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusSeeOther)
}

// Callback completes the OAuth flow (GET /callback). The state returned by
// the provider must match the nonce issued at the login entry point.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil || session.OAuthState == "" {
		h.renderError(w, http.StatusBadRequest, "Login session expired, please try again")
		return
	}

	if r.URL.Query().Get("state") != session.OAuthState {
		h.renderError(w, http.StatusBadRequest, "State mismatch")
		return
	}

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		h.renderError(w, http.StatusBadRequest, "Sign-in was not completed: "+errMsg)
		return
	}

	token, err := h.auth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Error("exchanging authorization code", "err", err)
		h.renderError(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}

	email, err := EmailFromIDToken(token)
	if err != nil {
		h.logger.Error("reading identity token", "err", err)
		h.renderError(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}

	if err := h.database.Users().Upsert(r.Context(), email); err != nil {
		h.logger.Error("upserting user", "email", email, "err", err)
		h.renderError(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}

	h.sessions.Authenticate(session.ID, email, email == h.adminEmail, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session and redirects to home (POST /logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(session.ID)
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard lists the user's playlist records (GET /dashboard).
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)

	playlists, err := h.database.Playlists().ListForOwner(r.Context(), session.Email)
	if err != nil {
		h.logger.Error("listing playlists", "email", session.Email, "err", err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load playlists")
		return
	}

	h.render(w, "dashboard", DashboardPageData{
		PageData:  h.pageData("Dashboard", r, session),
		Playlists: playlists,
	})
}

// CreateForm shows the playlist creation form (GET /create).
func (h *Handlers) CreateForm(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	h.render(w, "create", CreatePageData{
		PageData: h.pageData("Create Playlist", r, session),
	})
}

// Create builds a playlist from submitted song lines (POST /create).
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)

	builder, err := h.newBuilder(r.Context(), session.Token)
	if err != nil {
		h.handleBuilderError(w, err)
		return
	}

	_, err = builder.Build(r.Context(), session.Email, r.FormValue("title"), r.FormValue("items"))
	if err != nil {
		h.handleBuildError(w, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// RecognizeForm shows the audio upload form (GET /recognize).
func (h *Handlers) RecognizeForm(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	h.render(w, "recognize", RecognizePageData{
		PageData: h.pageData("Recognize a Song", r, session),
	})
}

// Recognize forwards an uploaded clip to the fingerprinting service
// (POST /recognize).
func (h *Handlers) Recognize(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	file, header, err := r.FormFile("audio")
	if err != nil {
		h.renderError(w, http.StatusBadRequest, "Missing audio upload")
		return
	}
	defer file.Close()

	recognition, err := h.recognizer.Recognize(r.Context(), header.Filename, file)
	if errors.Is(err, audd.ErrNoMatch) {
		h.render(w, "recognize", RecognizePageData{
			PageData: h.pageData("Recognize a Song", r, session),
			Error:    "Song could not be recognized",
		})
		return
	}
	if err != nil {
		h.logger.Error("recognizing audio", "err", err)
		h.renderError(w, http.StatusBadGateway, "The recognition service request failed")
		return
	}

	h.sessions.SetRecognizedSong(session.ID, recognition.Label())
	http.Redirect(w, r, "/recognize/result", http.StatusSeeOther)
}

// RecognizeResult shows the recognized song and attachment choices
// (GET /recognize/result).
func (h *Handlers) RecognizeResult(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session.RecognizedSong == "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	playlists, err := h.database.Playlists().ListForOwner(r.Context(), session.Email)
	if err != nil {
		h.logger.Error("listing playlists", "email", session.Email, "err", err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load playlists")
		return
	}

	h.render(w, "recognize_result", RecognizeResultPageData{
		PageData:  h.pageData("Recognized Song", r, session),
		Song:      session.RecognizedSong,
		Playlists: playlists,
	})
}

// RecognizeResultSubmit attaches the recognized song to a new or existing
// playlist (POST /recognize/result).
func (h *Handlers) RecognizeResultSubmit(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	song := session.RecognizedSong
	if song == "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	target := playlist.Target{NewPlaylist: r.FormValue("action") == "new"}
	if !target.NewPlaylist {
		target.PlaylistRef = r.FormValue("playlist_id")
	}

	builder, err := h.newBuilder(r.Context(), session.Token)
	if err != nil {
		h.handleBuilderError(w, err)
		return
	}

	if _, err := builder.AttachRecognized(r.Context(), session.Email, song, target); err != nil {
		h.handleBuildError(w, err)
		return
	}

	h.sessions.ClearRecognizedSong(session.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Analytics shows per-category song counts for the user (GET /analytics).
func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)

	counts, err := h.database.Analytics().CountByCategory(r.Context(), session.Email)
	if err != nil {
		h.logger.Error("loading analytics", "email", session.Email, "err", err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	ordered := make([]CategoryCount, 0, len(counts))
	for _, category := range classify.All() {
		if n, ok := counts[string(category)]; ok {
			ordered = append(ordered, CategoryCount{Category: string(category), Count: n})
		}
	}

	h.render(w, "analytics", AnalyticsPageData{
		PageData: h.pageData("Analytics", r, session),
		Counts:   ordered,
	})
}

// Admin shows global usage counts (GET /admin). Non-admin sessions get a
// 403 before any counts are read.
func (h *Handlers) Admin(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if !session.Admin {
		h.renderError(w, http.StatusForbidden, "Forbidden")
		return
	}

	userCount, err := h.database.Users().Count(r.Context())
	if err != nil {
		h.logger.Error("counting users", "err", err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load admin view")
		return
	}

	playlistCount, err := h.database.Playlists().Count(r.Context())
	if err != nil {
		h.logger.Error("counting playlists", "err", err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load admin view")
		return
	}

	h.render(w, "admin", AdminPageData{
		PageData:      h.pageData("Admin", r, session),
		UserCount:     userCount,
		PlaylistCount: playlistCount,
	})
}

// Terms shows the terms of service page (GET /terms).
func (h *Handlers) Terms(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	h.render(w, "terms", h.pageData("Terms of Service", r, session))
}

// Privacy shows the privacy policy page (GET /privacy).
func (h *Handlers) Privacy(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	h.render(w, "privacy", h.pageData("Privacy Policy", r, session))
}

// handleBuilderError maps credential failures from the builder factory.
func (h *Handlers) handleBuilderError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoCredential) {
		h.renderError(w, http.StatusUnauthorized, "Your sign-in has expired, please log in again")
		return
	}
	h.logger.Error("creating video platform client", "err", err)
	h.renderError(w, http.StatusBadGateway, "The video platform request failed")
}

// handleBuildError maps playlist build failures to user-visible responses.
func (h *Handlers) handleBuildError(w http.ResponseWriter, err error) {
	if errors.Is(err, youtube.ErrNoResults) {
		h.renderError(w, http.StatusNotFound, "No video matched one of your songs")
		return
	}
	h.logger.Error("building playlist", "err", err)
	h.renderError(w, http.StatusBadGateway, "The video platform request failed")
}

// pageData assembles the common template data for a request.
func (h *Handlers) pageData(title string, r *http.Request, session *Session) PageData {
	data := PageData{
		Title:       title,
		CurrentPath: r.URL.Path,
	}
	if session.Authenticated() {
		data.Email = session.Email
		data.Admin = session.Admin
	}
	return data
}

// render writes a page template, falling back to a plain 500 when the
// template itself fails.
func (h *Handlers) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, data); err != nil {
		h.logger.Error("rendering template", "page", page, "err", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// renderError writes the generic error page with the given status.
func (h *Handlers) renderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "error", ErrorPageData{
		PageData: PageData{Title: "Error"},
		Message:  message,
	}); err != nil {
		h.logger.Error("rendering error page", "err", err)
	}
}

// generateOAuthState creates a random state string for OAuth.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
