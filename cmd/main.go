package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubnight/shuttlecup/brackets"
	"github.com/clubnight/shuttlecup/config"
	"github.com/clubnight/shuttlecup/db"
	"github.com/clubnight/shuttlecup/handlers"
	"github.com/clubnight/shuttlecup/repositories"
	api "github.com/clubnight/shuttlecup/routes"
	"github.com/clubnight/shuttlecup/services"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
		slog.String("tournament_id", cfg.TournamentID))

	repo, cleanup, err := buildRepository(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize state store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	ctx := context.Background()

	// Seed the default record so the first client sees the empty setup
	// instead of a 404.
	if _, err := repo.Get(ctx, cfg.TournamentID); errors.Is(err, repositories.ErrTournamentNotFound) {
		if _, err := repo.Reset(ctx, cfg.TournamentID); err != nil {
			logger.Error("failed to seed default tournament", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seeded default tournament", slog.String("tournament_id", cfg.TournamentID))
	} else if err != nil {
		logger.Error("failed to read tournament state", slog.Any("error", err))
		os.Exit(1)
	}

	roster, err := repositories.LoadRoster(cfg.RosterPath)
	if err != nil {
		logger.Error("failed to load player roster", slog.String("path", cfg.RosterPath), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("player roster loaded", slog.Int("players", len(roster.Names())))

	hub := brackets.NewHub(logger)
	go hub.Run()

	tournamentService := services.NewTournamentService(repo, hub)
	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewAuthHandler(authService),
		handlers.NewRosterHandler(roster),
		handlers.NewWebSocketHandler(hub),
		cfg.JWTSecretKey,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)
	group.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}

func buildRepository(cfg *config.Config, logger *slog.Logger) (repositories.TournamentRepository, func(), error) {
	noop := func() {}
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return repositories.NewMemoryTournamentRepository(), noop, nil

	case config.StoreSQLite:
		conn, err := db.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if err := conn.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}
		return repositories.NewSQLiteTournamentRepository(conn), cleanup, nil

	case config.StorePostgres:
		conn, err := db.ConnectPostgres(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if err := conn.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}
		return repositories.NewPostgresTournamentRepository(conn), cleanup, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
