package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workout-tracker/internal/auth"
	"workout-tracker/internal/config"
	"workout-tracker/internal/handlers"
	"workout-tracker/internal/logging"
	"workout-tracker/internal/maintenance"
	"workout-tracker/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "workout-tracker",
		Short:        "Workout log web server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP server port (or PORT env var)")
	flags.StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "IP address to bind to (or BIND env var)")
	flags.StringVarP(&cfg.DBPath, "db", "d", cfg.DBPath, "SQLite database path (or DB_PATH env var)")
	flags.StringVar(&cfg.TemplateDir, "templates", cfg.TemplateDir, "Template directory")
	flags.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Static asset directory")
	flags.BoolVar(&cfg.SecureCookie, "secure-cookie", cfg.SecureCookie, "Mark session cookies Secure (HTTPS only)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: trace, debug, info, warn, error")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path (default: next to the database)")
	flags.StringVar(&cfg.SessionCleanupSchedule, "session-cleanup", cfg.SessionCleanupSchedule, "Cron schedule for expired session cleanup")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "workout-tracker %s\n", version)
		},
	})

	return rootCmd
}

func run(ctx context.Context, cfg config.Config) error {
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = logging.FilePathForDB(cfg.DBPath)
	}
	logging.Apply(cfg.LogLevel, logFile)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := ensureAdminUser(db, cfg.AdminUser, cfg.AdminPassword); err != nil {
		return err
	}

	cleaner, err := maintenance.NewScheduler(db, cfg.SessionCleanupSchedule)
	if err != nil {
		return err
	}
	cleaner.RunOnce()
	cleaner.Start()
	defer cleaner.Stop()

	h := handlers.NewHandlers(db, cfg.TemplateDir, cfg.SecureCookie)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(h, cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("version", version).
			Str("addr", srv.Addr).
			Str("database", cfg.DBPath).
			Msg("Starting workout tracker")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func setupRouter(h *handlers.Handlers, staticDir string) http.Handler {
	return h.Router(staticDir)
}

// ensureAdminUser creates the configured bootstrap user if it does not exist yet.
func ensureAdminUser(db *storage.DB, username, password string) error {
	if username == "" {
		return nil
	}

	_, err := db.GetUserByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required to create admin user %s", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user, err := db.CreateUser(username, hash)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Info().Str("username", user.Username).Int64("id", user.ID).Msg("Created admin user")
	return nil
}
