package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/urfave/cli/v3"

	"github.com/mixtapehq/mixtape/internal/auth"
	"github.com/mixtapehq/mixtape/internal/repositories"
	"github.com/mixtapehq/mixtape/internal/server"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads the config file named by the --config flag, falling back to
// defaults (plus environment overrides) when the file does not exist.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		if config, err := shared.LoadConfig(path); err == nil {
			return config
		} else {
			r.logger.Warn("failed to load config, using defaults", "path", path, "err", err)
		}
	}
	return shared.DefaultConfig()
}

// Setup opens the database and applies pending migrations.
// With --rollback it instead rolls back the most recent migration.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if cmd.Bool("rollback") {
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		r.logger.Info("rolled back most recent migration", "path", config.Database.Path)
		return nil
	}

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	r.logger.Info("database ready", "path", config.Database.Path)
	return nil
}

// Serve starts the playlist API server and blocks until the context is
// cancelled or the listener fails.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if config.Database.MaxOpenConns > 0 {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	}

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(config.Auth.Secret, time.Duration(config.TokenTTLHoursOrDefault())*time.Hour)
	if err != nil {
		return err
	}

	var catalog services.Catalog
	if spotify, err := services.NewSpotifyService(config.Spotify.ClientID, config.Spotify.ClientSecret); err == nil {
		catalog = spotify
	} else {
		r.logger.Warn("spotify credentials missing, search disabled", "err", err)
		catalog = services.UnconfiguredCatalog{}
	}

	api := server.New(&server.Options{
		Users:             repositories.NewUserRepository(db),
		Playlists:         repositories.NewPlaylistRepository(db),
		Tracks:            repositories.NewTrackRepository(db),
		Catalog:           catalog,
		Tokens:            tokens,
		Logger:            r.logger,
		RequestsPerSecond: config.Server.RequestsPerSecond,
	})

	router := mux.NewRouter()
	api.RegisterHandlers(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: cors(router),
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("listening", "addr", addr, "catalog", catalog.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}

// ConfigInit writes the example config file for editing.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	fmt.Fprintf(r.output, "wrote %s\n", path)
	return nil
}
