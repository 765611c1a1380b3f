package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okvist/rota/internal/backup"
	"github.com/okvist/rota/internal/database"
	"github.com/okvist/rota/internal/logging"
	"github.com/okvist/rota/internal/server"
	"github.com/okvist/rota/internal/store"
	"github.com/okvist/rota/internal/twilio"
	ws "github.com/okvist/rota/internal/websocket"
)

func main() {
	logger := logging.Setup(os.Getenv("ROTA_LOG_LEVEL"), os.Getenv("ROTA_LOG_FORMAT"))

	port := os.Getenv("ROTA_PORT")
	if port == "" {
		port = "8080"
	}

	var st store.Store
	switch os.Getenv("ROTA_STORE") {
	case "sqlite":
		dbPath := os.Getenv("ROTA_DATA_PATH")
		if dbPath == "" {
			dbPath = "data/rota.db"
		}
		db, err := database.Open(dbPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		st = store.NewSQLiteStore(db)
	default:
		dataPath := os.Getenv("ROTA_DATA_PATH")
		if dataPath == "" {
			dataPath = "data/cleaning_rota.json"
		}
		st = store.NewFileStore(dataPath)
	}

	notifier := twilio.NewClient(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	)
	if notifier.Configured() {
		logger.Info("twilio client configured")
	} else {
		logger.Warn("twilio credentials missing, notification sending disabled")
	}

	dueCheckInterval := 24 * time.Hour
	if raw := os.Getenv("ROTA_DUE_CHECK_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid ROTA_DUE_CHECK_INTERVAL: %v", err)
		}
		dueCheckInterval = d
	}

	srv := server.New(st, notifier, dueCheckInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv.Scheduler().Start(ctx)
	defer srv.Scheduler().Stop()

	backupInterval := 24 * time.Hour
	if raw := os.Getenv("ROTA_BACKUP_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			backupInterval = d
		}
	}
	backupMgr := backup.NewManager(backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("ROTA_BACKUP_S3_ENDPOINT"),
			Bucket:    os.Getenv("ROTA_BACKUP_S3_BUCKET"),
			Region:    os.Getenv("ROTA_BACKUP_S3_REGION"),
			AccessKey: os.Getenv("ROTA_BACKUP_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("ROTA_BACKUP_S3_SECRET_KEY"),
		},
		Passphrase: os.Getenv("ROTA_BACKUP_PASSPHRASE"),
		Interval:   backupInterval,
	}, srv.Service(), func(s backup.Status) {
		srv.Hub().Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra:  map[string]any{"error": s.Error},
		})
	}, logger.With("component", "backup"))
	if backupMgr.Enabled() {
		backupMgr.Start(ctx)
		defer backupMgr.Stop()
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("cleaning rota running", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
