package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "talent-intake/docs" // Swagger docs
	"talent-intake/internal/api"
	"talent-intake/internal/blob"
	"talent-intake/internal/config"
	"talent-intake/internal/extract"
	"talent-intake/internal/ingest"
	"talent-intake/internal/notify"
	"talent-intake/internal/storage"
)

// @title Talent Intake API
// @version 1.0
// @description Candidate resume ingestion with duplicate detection and concurrent bulk upload

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "talent-intake").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db open")
	}
	defer db.Close()
	logger.Info().Msg("database connected")

	blobs, err := blob.NewStore(blob.Config{
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		Prefix:        cfg.S3Prefix,
		PublicBaseURL: cfg.S3PublicBaseURL,
		UseSSL:        cfg.S3UseSSL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("blob store")
	}
	if err := blobs.EnsureBucket(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("blob bucket")
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.SMTPHost != "" {
		notifier = &notify.EmailNotifier{
			Host:           cfg.SMTPHost,
			Port:           cfg.SMTPPort,
			From:           cfg.SMTPFrom,
			MeetingBaseURL: cfg.MeetingBaseURL,
		}
		logger.Info().Str("host", cfg.SMTPHost).Msg("candidate notifications enabled")
	}

	svc := ingest.NewService(db, blobs, extract.New(), logger)
	apiSrv := api.NewAPI(svc, db, notifier, cfg.UploadConcurrency, logger)
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // bulk uploads can be slow to arrive
		WriteTimeout: 5 * time.Minute,  // a full batch must finish within one response
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown")
		}
		close(idleConnsClosed)
	}()

	logger.Info().Str("port", cfg.Port).Msg("API server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server")
	}

	<-idleConnsClosed
}
