package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/db"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the
// given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}
	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" layout which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// load parses all page templates together with the shared layouts.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	for _, page := range pages {
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")]

		files := append([]string{page}, layouts...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// formatDate formats a time as "Jan 2, 2006 15:04"
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Email       string
	Admin       bool
	CurrentPath string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Authenticated bool
}

// DashboardPageData contains data for the dashboard template.
type DashboardPageData struct {
	PageData
	Playlists []db.Playlist
}

// CreatePageData contains data for the playlist creation form.
type CreatePageData struct {
	PageData
}

// RecognizePageData contains data for the recognition upload form.
type RecognizePageData struct {
	PageData
	Error string
}

// RecognizeResultPageData contains data for the recognition result page.
type RecognizeResultPageData struct {
	PageData
	Song      string
	Playlists []db.Playlist
}

// CategoryCount pairs a category bucket with its event count.
type CategoryCount struct {
	Category string
	Count    int
}

// AnalyticsPageData contains data for the analytics template.
type AnalyticsPageData struct {
	PageData
	Counts []CategoryCount
}

// AdminPageData contains data for the admin template.
type AdminPageData struct {
	PageData
	UserCount     int
	PlaylistCount int
}

// ErrorPageData contains data for the generic error page.
type ErrorPageData struct {
	PageData
	Message string
}
