package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print pending migration SQL without executing it")
	timeout := flag.Duration("timeout", 2*time.Minute, "Migration timeout")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database",
		"host", cfg.Postgres.Host,
		"schema", cfg.Postgres.Schema,
	)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *dryRun {
		logger.Info("Dry run mode - printing pending migrations without executing")
		pending, err := db.PendingMigrations(ctx)
		if err != nil {
			logger.Fatalw("Failed to list pending migrations", "error", err)
		}
		for _, m := range pending {
			fmt.Printf("-- %s\n%s\n", m.Version, m.SQL)
		}
		fmt.Printf("%d pending migration(s)\n", len(pending))
		return
	}

	logger.Info("Running database migrations...")
	applied, err := db.Migrate(ctx, cfg.Postgres.Schema)
	if err != nil {
		logger.Fatalw("Failed to apply migrations", "error", err, "applied", applied)
	}
	logger.Infow("Migration completed successfully", "applied", applied)

	fmt.Println("Migration process completed")
}
