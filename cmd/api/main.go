package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "clinical-records/internal/adapters/storage/postgres"
	"clinical-records/internal/config"
	"clinical-records/internal/domain/clinic"
	"clinical-records/internal/platform/logger"
	"clinical-records/internal/router"

	"gorm.io/gorm"
)

// @title Clinical Records API
// @version 1.0
// @description Registro de pacientes, médicos, citas e historial médico.
// @BasePath /
func main() {
	seed := flag.Bool("seed", false, "carga datos de demostración al arrancar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err})
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if err != nil {
		logger.NewFromEnv().Error("logger init failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var db *gorm.DB
	if cfg.Database.DSN != "" {
		db, err = openDatabase(cfg, log)
		if err != nil {
			log.Error("database init failed", map[string]any{"error": err})
			os.Exit(1)
		}
		log.Info("using postgres storage", nil)
	} else {
		log.Info("DB_DSN empty, using in-memory storage", nil)
	}

	svc := clinic.NewService(router.NewGateway(db), log)
	if *seed {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := svc.SeedDemoData(ctx)
		cancel()
		if err != nil {
			log.Error("seed failed", map[string]any{"error": err})
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(router.Options{Logger: log, Service: svc}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err})
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	log.Info("server stopped", nil)
}

func openDatabase(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	sqlDB, err := pg.Open(cfg.Database.DSN, pg.PoolOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}

	db, err := pg.OpenGorm(sqlDB, log)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := pg.AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info("schema migrated", nil)
	}
	return db, nil
}
