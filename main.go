package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"bootcamp/cmd"
	"bootcamp/config"
	"bootcamp/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.Fatalf("Migration error: %v", err)
			}
			return
		case "adjust-points":
			if err := handleAdjustCommand(ctx); err != nil {
				log.Fatalf("Adjustment error: %v", err)
			}
			return
		}
	}

	// Run the service until a shutdown signal arrives
	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: bootcamp migrate [up|down|status] [args...]")
	}

	databaseURL := config.Get().GetDatabaseURL()

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := 1
		if len(os.Args) > 3 {
			n, err := strconv.Atoi(os.Args[3])
			if err != nil {
				return fmt.Errorf("invalid number of steps: %s", os.Args[3])
			}
			steps = n
		}
		return database.MigrateDown(databaseURL, steps)
	case "status":
		return database.MigrateStatus(databaseURL)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

func handleAdjustCommand(ctx context.Context) error {
	if len(os.Args) < 5 {
		return fmt.Errorf("usage: bootcamp adjust-points <user-id> <delta> <reason>")
	}

	delta, err := strconv.ParseInt(os.Args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid delta: %s", os.Args[3])
	}

	return cmd.AdjustPoints(ctx, os.Args[2], delta, strings.Join(os.Args[4:], " "))
}
