package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/auth"
	"github.com/mamadbah2/labeltracker/internal/config"
	"github.com/mamadbah2/labeltracker/internal/repository/file"
	"github.com/mamadbah2/labeltracker/internal/repository/mongodb"
	"github.com/mamadbah2/labeltracker/internal/repository/sheets"
	"github.com/mamadbah2/labeltracker/internal/scheduler"
	"github.com/mamadbah2/labeltracker/internal/server/handlers"
	"github.com/mamadbah2/labeltracker/internal/server/router"
	reportingsvc "github.com/mamadbah2/labeltracker/internal/service/reporting"
	"github.com/mamadbah2/labeltracker/internal/service/tracker"
	syncmgr "github.com/mamadbah2/labeltracker/internal/sync"
	"github.com/mamadbah2/labeltracker/pkg/clients/anthropic"
	"github.com/mamadbah2/labeltracker/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := file.NewStore(cfg.Storage.DataDir, baseLogger.Named("repo.file"))
	if err != nil {
		baseLogger.Fatal("failed to init snapshot store", zap.Error(err))
	}

	var reportingSvc *reportingsvc.Service
	if cfg.SheetsEnabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingSvc = reportingsvc.NewService(sheetsRepo, baseLogger.Named("svc.reporting"))
		baseLogger.Info("weekly spreadsheet export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, weekly spreadsheet export disabled")
	}

	var archive mongodb.Archive
	if cfg.MongoDB.URI != "" {
		mongoArchive, err := mongodb.NewMongoDBArchive(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb archive", zap.Error(err))
		}
		defer func() {
			if err := mongoArchive.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoArchive
		baseLogger.Info("received snapshot archive enabled")
	}

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, inventory insights disabled")
	}

	trackerSvc := tracker.NewService(store, baseLogger.Named("svc.tracker"))
	sessions := auth.NewSessionManager()
	syncManager := syncmgr.NewManager(store, baseLogger.Named("sync"))

	sched := scheduler.NewScheduler(store, syncManager, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(trackerSvc, sessions, baseLogger.Named("handlers.auth")),
		Inventory: handlers.NewInventoryHandler(trackerSvc, baseLogger.Named("handlers.inventory")),
		Users:     handlers.NewUsersHandler(trackerSvc, baseLogger.Named("handlers.users")),
		System:    handlers.NewSystemHandler(trackerSvc, store, syncManager, sessions, aiClient, baseLogger.Named("handlers.system")),
		Sync:      handlers.NewSyncHandler(syncManager, archive, baseLogger.Named("handlers.sync")),
		Session:   handlers.SessionMiddleware(trackerSvc, sessions, baseLogger.Named("handlers.session")),
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
