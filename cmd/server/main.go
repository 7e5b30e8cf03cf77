package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/vebops/store/internal/config"
	"github.com/vebops/store/internal/repository/mongodb"
	"github.com/vebops/store/internal/repository/sheets"
	"github.com/vebops/store/internal/scheduler"
	"github.com/vebops/store/internal/server/handlers"
	"github.com/vebops/store/internal/server/router"
	authsvc "github.com/vebops/store/internal/service/auth"
	catalogsvc "github.com/vebops/store/internal/service/catalog"
	historysvc "github.com/vebops/store/internal/service/history"
	ledgersvc "github.com/vebops/store/internal/service/ledger"
	reportingsvc "github.com/vebops/store/internal/service/reporting"
	"github.com/vebops/store/pkg/clients/webhook"
	"github.com/vebops/store/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := mongoRepo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	var archive sheets.Archive
	if cfg.Sheets.CredentialsPath != "" && cfg.Sheets.SpreadsheetID != "" {
		archive, err = sheets.NewGoogleSheetArchive(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets archive", zap.Error(err))
		}
		baseLogger.Info("sheets report archive enabled")
	}

	var notifier *webhook.Notifier
	if cfg.Webhook.URL != "" {
		notifier = webhook.NewNotifier(cfg.Webhook.URL)
		baseLogger.Info("report webhook enabled")
	}

	authSvc := authsvc.NewService(mongoRepo, cfg.Auth, baseLogger.Named("svc.auth"))
	if err := authSvc.SeedAdmin(context.Background(), cfg.Seed); err != nil {
		baseLogger.Fatal("failed to seed admin account", zap.Error(err))
	}

	ledgerSvc := ledgersvc.NewService(mongoRepo, baseLogger.Named("svc.ledger"))
	historySvc := historysvc.NewService(mongoRepo, baseLogger.Named("svc.history"))
	catalogSvc := catalogsvc.NewService(mongoRepo, baseLogger.Named("svc.catalog"))
	reportingSvc := reportingsvc.NewService(mongoRepo, ledgerSvc, archive, notifier, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Auth:    handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		History: handlers.NewHistoryHandler(historySvc, baseLogger.Named("handlers.history")),
		Stock:   handlers.NewStockHandler(ledgerSvc, baseLogger.Named("handlers.stock")),
		Catalog: handlers.NewCatalogHandler(catalogSvc, baseLogger.Named("handlers.catalog")),
		Intake:  handlers.NewIntakeHandler(catalogSvc, baseLogger.Named("handlers.intake")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
