package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mgnrega-backend/internal/config"
	"github.com/mgnrega-backend/internal/db"
	"github.com/mgnrega-backend/internal/ingest"
	"github.com/mgnrega-backend/internal/store"
	"github.com/mgnrega-backend/internal/web"
)

var configPath string

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "mgnrega",
		Short: "MGNREGA statistics pipeline",
		Long:  `Fetches MGNREGA employment-program statistics from the public data API and maintains them in Postgres`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to YAML config file (optional)")

	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createPingCmd())
	rootCmd.AddCommand(createSchemaCmd())
	rootCmd.AddCommand(createServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func connect() (*config.Config, *db.Connection, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	conn, err := db.NewConnection(cfg.DatabaseURL, cfg.MaxConnections)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, conn, nil
}

// createRunCmd creates the one-shot pipeline command
func createRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one fetch-and-ingest pipeline pass",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, conn, err := connect()
			if err != nil {
				log.Fatal(err)
			}
			defer conn.Close()

			if err := db.EnsureSchema(conn.DB); err != nil {
				log.Fatalf("Failed to apply schema: %v", err)
			}

			client := ingest.NewClient(cfg.APIURL, cfg.APIKey, cfg.FetchTimeout())
			pipeline := ingest.NewPipeline(client, store.New(conn.DB), ingest.Options{
				TargetState: cfg.TargetState,
				FinYear:     cfg.FinYear,
				FetchLimit:  cfg.FetchLimit,
				BatchSize:   cfg.BatchSize,
			})

			summary, err := pipeline.Run(context.Background())
			if err != nil {
				log.Fatalf("Pipeline run failed: %v", err)
			}

			out, _ := json.MarshalIndent(summary, "", "  ")
			fmt.Println(string(out))
		},
	}
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			_, conn, err := connect()
			if err != nil {
				log.Fatal(err)
			}
			defer conn.Close()

			fmt.Println("Database connection successful!")

			for _, table := range []string{"states", "districts", "mgnrega_data", "raw_api_cache"} {
				var count int
				if err := conn.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
					log.Printf("Error counting %s records: %v", table, err)
					continue
				}
				fmt.Printf("%s: %d rows\n", table, count)
			}
		},
	}
}

// createSchemaCmd creates the schema apply command
func createSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create tables and indexes if they do not exist",
		Run: func(cmd *cobra.Command, args []string) {
			_, conn, err := connect()
			if err != nil {
				log.Fatal(err)
			}
			defer conn.Close()

			if err := db.EnsureSchema(conn.DB); err != nil {
				log.Fatalf("Failed to apply schema: %v", err)
			}
			fmt.Println("Schema applied")
		},
	}
}

// createServeCmd starts the read API without the scheduler
func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API without the fetch scheduler",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, conn, err := connect()
			if err != nil {
				log.Fatal(err)
			}
			defer conn.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

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
		},
	}
}
