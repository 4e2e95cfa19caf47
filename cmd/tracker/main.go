package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/internal/auth"
	"tracker/internal/config"
	"tracker/internal/server"
	"tracker/internal/storage/sqlite"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stdout, cfg)

	if len(args) > 0 {
		switch args[0] {
		case "createuser":
			return createUser(cfg, logger, args[1:])
		case "deleteuser":
			return deleteUser(cfg, logger, args[1:])
		case "serve":
			args = args[1:]
		}
	}
	return serve(cfg, logger, args)
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func serve(cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addrFlag := fs.String("addr", cfg.Addr, "HTTP listen address")
	dbFlag := fs.String("db", cfg.DBPath, "Path to sqlite database file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.Session.Secret == config.InsecureSessionSecret {
		logger.Warn("using the built-in session secret; set TRACKER_SESSION_SECRET")
	}

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer store.Close()

	srv, err := server.New(store, newHasher(cfg), logger, server.Options{
		SessionName:     cfg.Session.Name,
		SessionSecret:   cfg.Session.Secret,
		SessionMaxAge:   cfg.Session.MaxAge,
		SessionSecure:   cfg.Session.Secure,
		SessionSameSite: sameSite(cfg.Session.SameSite),
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		TrustedProxies:  cfg.TrustedProxies,
		LoginRate:       cfg.LoginRate,
		Metrics:         cfg.Metrics,
		Development:     cfg.Development,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              *addrFlag,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("db", *dbFlag))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}

// createUser provisions an account. There is no registration endpoint.
func createUser(cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("createuser", flag.ContinueOnError)
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "plain text password")
	dbFlag := fs.String("db", cfg.DBPath, "Path to sqlite database file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("createuser: -username and -password are required")
	}

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer store.Close()

	hash, err := newHasher(cfg).Hash(*password)
	if err != nil {
		return err
	}
	user, err := store.CreateUser(context.Background(), *username, hash)
	if err != nil {
		return err
	}
	logger.Info("user created", slog.Int64("id", user.ID), slog.String("username", user.Username))
	return nil
}

// deleteUser removes an account with everything it owns.
func deleteUser(cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("deleteuser", flag.ContinueOnError)
	username := fs.String("username", "", "login name")
	dbFlag := fs.String("db", cfg.DBPath, "Path to sqlite database file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("deleteuser: -username is required")
	}

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	user, err := store.GetUserByUsername(ctx, *username)
	if err != nil {
		return fmt.Errorf("deleteuser %s: %w", *username, err)
	}
	if err := store.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	logger.Info("user deleted", slog.String("username", user.Username))
	return nil
}

func newHasher(cfg *config.Config) *auth.Hasher {
	return auth.NewHasher(auth.Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
	})
}

func sameSite(mode string) http.SameSite {
	switch mode {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteNoneMode
	}
}
