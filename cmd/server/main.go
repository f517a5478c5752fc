package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/mgnrega-backend/internal/config"
	"github.com/mgnrega-backend/internal/db"
	"github.com/mgnrega-backend/internal/ingest"
	"github.com/mgnrega-backend/internal/scheduler"
	"github.com/mgnrega-backend/internal/store"
	"github.com/mgnrega-backend/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	flag.Parse()

	config.LoadEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("=== MGNREGA Data Backend ===")
	fmt.Printf("Target state: %s (%s)\n", cfg.TargetState, cfg.FinYear)
	fmt.Printf("Fetch interval: %v\n", cfg.FetchInterval())

	conn, err := db.NewConnection(cfg.DatabaseURL, cfg.MaxConnections)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.EnsureSchema(conn.DB); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	fmt.Println("Database connected, schema ensured")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := ingest.NewClient(cfg.APIURL, cfg.APIKey, cfg.FetchTimeout())
	pipeline := ingest.NewPipeline(client, store.New(conn.DB), ingest.Options{
		TargetState: cfg.TargetState,
		FinYear:     cfg.FinYear,
		FetchLimit:  cfg.FetchLimit,
		BatchSize:   cfg.BatchSize,
	})

	sched := scheduler.New(cfg.FetchInterval(), func(ctx context.Context) error {
		_, err := pipeline.Run(ctx)
		return err
	})
	go sched.Start(ctx)

	webCfg := &web.Config{
		Host: cfg.HTTPHost,
		Port: cfg.HTTPPort,
		Info: web.ServiceInfo{
			TargetState: cfg.TargetState,
			FinYear:     cfg.FinYear,
			DataSource:  cfg.APIURL,
		},
		CacheLimit: 100,
	}

	server := web.NewServer(webCfg, conn.DB)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	fmt.Println("Server stopped")
}
