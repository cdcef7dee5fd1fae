package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"bicho/cmd"
	"bicho/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatalf("Migration error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: bicho migrate [up|down] [steps]")
	}

	databaseURL := os.Getenv("BICHO_DATABASE_URL")
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	switch os.Args[2] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := 1
		if len(os.Args) > 3 {
			parsed, err := strconv.Atoi(os.Args[3])
			if err != nil {
				return fmt.Errorf("invalid steps %q: %w", os.Args[3], err)
			}
			steps = parsed
		}
		return database.MigrateDown(databaseURL, steps)
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}
