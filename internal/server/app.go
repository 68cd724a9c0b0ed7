// Package server initializes and runs the journal service: it wires
// configuration, storage, the classifier capability and the HTTP API
// together, and handles graceful shutdown. Nothing in here is a global;
// every collaborator is constructed and injected explicitly.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/classifier"
	"github.com/dmitrijs2005/moodjournal/internal/server/config"
	"github.com/dmitrijs2005/moodjournal/internal/server/httpapi"
	"github.com/dmitrijs2005/moodjournal/internal/server/journal"
	"github.com/dmitrijs2005/moodjournal/internal/server/reports"
	"github.com/dmitrijs2005/moodjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/moodjournal/internal/server/suggestions"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	router *gin.Engine
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	clf := classifier.NewHTTPClassifier(cfg.ClassifierEndpoint, cfg.ClassifierToken, cfg.ClassifierTimeout, logger)
	picker := suggestions.NewPicker(suggestions.DefaultPools(), nil)

	policy := journal.DatePolicyLenient
	if cfg.StrictDates {
		policy = journal.DatePolicyStrict
	}

	journalSvc := journal.NewService(db, rm, clf, picker, policy, logger)
	reportSvc := reports.NewService(journalSvc, cfg)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		JournalHandler: httpapi.NewJournalHandler(journalSvc, reportSvc, logger),
	})

	return &App{config: cfg, logger: logger, db: db, router: router}, nil
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

	srv := &http.Server{Addr: app.config.EndpointAddrHTTP, Handler: app.router}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
