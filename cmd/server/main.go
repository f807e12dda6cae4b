package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandwatch/sandwatch/internal/api"
	"github.com/sandwatch/sandwatch/internal/backend"
	"github.com/sandwatch/sandwatch/internal/config"
	"github.com/sandwatch/sandwatch/internal/history"
	"github.com/sandwatch/sandwatch/internal/storage"
	"github.com/sandwatch/sandwatch/internal/supervise"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	b := backend.NewHTTPBackend(cfg.BackendURL, cfg.BackendToken)
	log.Printf("sandwatch: sandbox backend at %s", cfg.BackendURL)

	mountProfile := supervise.PollProfile{
		Interval:    time.Duration(cfg.MountPollIntervalMS) * time.Millisecond,
		MaxAttempts: cfg.MountPollAttempts,
	}
	execProfile := supervise.PollProfile{
		Interval:    time.Duration(cfg.ExecPollIntervalMS) * time.Millisecond,
		MaxAttempts: cfg.ExecPollAttempts,
	}

	creds := supervise.StorageCredentials{
		AccessKeyID:     cfg.TigrisAccessKeyID,
		SecretAccessKey: cfg.TigrisSecretAccessKey,
		AccountID:       cfg.TigrisAccountID,
	}
	detector := supervise.NewMountDetector(b, cfg.MountPath, cfg.MountFSType, creds, mountProfile)
	log.Printf("sandwatch: watching for %q", detector.Marker())

	registry := supervise.NewRegistry(b)
	locator := supervise.NewLocator(registry, cfg.GatewaySignature)
	prober := supervise.NewProber(b, execProfile)

	opts := api.ServerOpts{
		Detector:          detector,
		Registry:          registry,
		Locator:           locator,
		Prober:            prober,
		GatewayVersionCmd: cfg.GatewayVersionCmd,
		GatewayConfigCmd:  cfg.GatewayConfigCmd,
	}

	// Check-history SQLite store (optional: keep serving without it)
	store, err := history.Open(cfg.DataDir)
	if err != nil {
		log.Printf("sandwatch: check history not available: %v (continuing without)", err)
	} else {
		defer store.Close()
		opts.History = store
		log.Printf("sandwatch: check history at %s", cfg.DataDir)
	}

	// Control-plane-side bucket probe (if a bucket is configured)
	if cfg.Bucket != "" {
		opts.BucketProbe = storage.NewBucketProbe(storage.Config{
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.TigrisAccessKeyID,
			SecretAccessKey: cfg.TigrisSecretAccessKey,
			ForcePathStyle:  cfg.ForcePathStyle,
		})
		log.Printf("sandwatch: bucket probe configured (bucket=%s, endpoint=%s)", cfg.Bucket, cfg.S3Endpoint)
	}

	server := api.NewServer(cfg.APIKey, opts)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("sandwatch: starting server on %s", addr)

	go func() {
		if err := server.Start(addr); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("sandwatch: shutting down...")
	if err := server.Close(); err != nil {
		log.Printf("error closing server: %v", err)
	}
}
