package application

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pawlakmarek/comic-manager/internal/cli"
	"github.com/pawlakmarek/comic-manager/internal/config"
	"github.com/pawlakmarek/comic-manager/internal/listing"
)

// NoCommandHint is printed when the binary is invoked without a subcommand.
const NoCommandHint = "No subcommand was used. Use --help for more information."

// App encapsulates the application dependencies.
type App struct {
	cfg    *config.Config
	lister listing.Lister
	out    io.Writer
	logger *zap.Logger
}

// Option configures App.
type Option func(*App)

// WithLister replaces the listing service (primarily for tests).
func WithLister(l listing.Lister) Option {
	return func(a *App) {
		a.lister = l
	}
}

// New initializes the application from the loaded configuration.
func New(cfg *config.Config, logger *zap.Logger, out io.Writer, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		cfg:    cfg,
		out:    out,
		logger: logger,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.lister == nil {
		app.lister = listing.NewService(out, logger)
	}

	logger.Debug("configuration loaded",
		zap.String("source", cfg.Source),
		zap.String("database_url", cfg.Database.URL),
		zap.String("marvel_base_url", cfg.API.MarvelBaseURL),
		zap.String("comicvine_base_url", cfg.API.ComicVineBaseURL),
		zap.Stringer("marvel_public_key", cfg.Secrets.MarvelPublicKey),
		zap.Stringer("marvel_private_key", cfg.Secrets.MarvelPrivateKey),
		zap.Stringer("comicvine_api_key", cfg.Secrets.ComicVineAPIKey),
	)

	return app, nil
}

// Run executes the command selected by inv.
func (a *App) Run(ctx context.Context, inv cli.Invocation) error {
	a.logger.Debug("dispatching command", zap.Stringer("command", inv.Command))

	switch inv.Command {
	case cli.CommandNone:
		if _, err := fmt.Fprintln(a.out, NoCommandHint); err != nil {
			return fmt.Errorf("write hint: %w", err)
		}
		return nil
	case cli.CommandList:
		if err := a.lister.List(ctx, inv.Entity); err != nil {
			return fmt.Errorf("list %s: %w", inv.Entity, err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported command %s", inv.Command)
	}
}
