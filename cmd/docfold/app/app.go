// Package app provides the application context and dependency management
// for the docfold CLI. It centralizes configuration, logging, and session
// construction so commands stay thin.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/docfold"
	"github.com/agentstation/docfold/internal/extract"
	"github.com/agentstation/docfold/pkg/schema"
)

// App represents the docfold application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger

	// Session is lazy-initialized and reused across subcommands.
	mu      sync.Mutex
	session docfold.Session
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Session returns the reconciliation session, creating it on first use.
func (a *App) Session() (docfold.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	opts := []docfold.Option{
		docfold.WithLogger(a.logger),
	}
	if a.config.SimilarityThreshold > 0 {
		opts = append(opts, docfold.WithThreshold(a.config.SimilarityThreshold))
	}

	session, err := docfold.New(opts...)
	if err != nil {
		return nil, err
	}
	a.session = session
	return session, nil
}

// Extractor builds the Gemini extractor from configuration.
func (a *App) Extractor() (extract.Extractor, error) {
	opts := []extract.GoogleOption{}
	if a.config.GeminiModel != "" {
		opts = append(opts, extract.WithModel(a.config.GeminiModel))
	}
	if a.config.GeminiAPIKey != "" {
		opts = append(opts, extract.WithAPIKey(a.config.GeminiAPIKey))
	}
	return extract.NewGoogle(schema.Mortgage(), opts...)
}
