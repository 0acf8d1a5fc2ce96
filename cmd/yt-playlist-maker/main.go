// Command yt-playlist-maker runs the YT Playlist Maker web application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/audd"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/db"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/web"
	webfs "github.com/bvadavimath72-star/YT-Playlist-Maker/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	// Validate environment variables
	sessionSecret := os.Getenv("SESSION_SECRET")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	clientSecrets := os.Getenv("GOOGLE_CLIENT_SECRETS")
	databaseURL := os.Getenv("DATABASE_URL")

	if sessionSecret == "" || clientSecrets == "" || databaseURL == "" {
		return fmt.Errorf("please set SESSION_SECRET, GOOGLE_CLIENT_SECRETS and DATABASE_URL environment variables")
	}

	auddConfig, err := audd.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	database, err := db.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:              os.Getenv("ADDR"),
		SessionSecret:     sessionSecret,
		AdminEmail:        adminEmail,
		ClientSecretsPath: clientSecrets,
		RedirectURL:       os.Getenv("OAUTH_REDIRECT_URL"),
		TemplatesFS:       templates,
		StaticFS:          static,
		Database:          database,
		Recognizer:        audd.NewClient(auddConfig),
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
