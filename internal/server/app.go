// Package server initializes and runs the webshop backend.
// It opens the database, applies migrations, wires the services behind the
// HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wstore/webshop/internal/logging"
	"github.com/wstore/webshop/internal/server/config"
	"github.com/wstore/webshop/internal/server/httpapi"
	"github.com/wstore/webshop/internal/server/repositories/repomanager"
	"github.com/wstore/webshop/internal/server/services"
)

// tokenPurgeInterval is how often expired refresh tokens are swept from the
// ledger.
const tokenPurgeInterval = time.Hour

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *services.SessionService
	server   *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	sessions := services.NewSessionService(db, rm, cfg)
	users := services.NewUserService(db, rm)
	images := services.NewImageService(cfg)
	products := services.NewProductService(db, rm, images)
	orders := services.NewOrderService(db, rm)

	server := httpapi.NewServer(cfg, logger, sessions, users, products, orders)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
		server:   server,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := app.server.HTTPServer()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}()

	app.logger.Info(ctx, fmt.Sprintf("HTTP server listening on %s", app.config.EndpointAddrHTTP))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startTokenJanitor periodically removes expired refresh tokens so the
// ledger does not grow without bound.
func (app *App) startTokenJanitor(ctx context.Context) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.sessions.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Error(ctx, fmt.Sprintf("token purge error: %v", err))
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, fmt.Sprintf("purged %d expired refresh tokens", n))
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startTokenJanitor(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
