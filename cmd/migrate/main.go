package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"cuebook-api/config"
	"cuebook-api/migrations"

	"github.com/fatih/color"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	config.ConnectDatabase(cfg)

	migrator, err := migrations.NewMigrator(config.DB)
	if err != nil {
		log.Fatal(err)
	}
	for _, migration := range migrations.GetAllMigrations() {
		migrator.AddMigration(migration)
	}

	switch command := os.Args[1]; command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			color.Red("Migration failed: %v", err)
			os.Exit(1)
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			s, err := strconv.Atoi(os.Args[2])
			if err != nil || s < 1 {
				color.Red("Invalid number of steps: %s", os.Args[2])
				os.Exit(2)
			}
			steps = s
		}
		if err := migrator.Rollback(steps); err != nil {
			color.Red("Rollback failed: %v", err)
			os.Exit(1)
		}
	case "status":
		showStatus(migrator)
	default:
		color.Red("Unknown command: %s", command)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migrations (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
}

func showStatus(migrator *migrations.Migrator) {
	done, pending, err := migrator.Status()
	if err != nil {
		log.Fatal("Failed to read migration status:", err)
	}

	if len(done) == 0 {
		color.Yellow("No migrations have been run yet.")
	} else {
		fmt.Println("Batch | Name")
		fmt.Println("------|-----")
		for _, migration := range done {
			fmt.Printf("%-5d | %s\n", migration.Batch, migration.Name)
		}
	}

	for _, name := range pending {
		color.Yellow("Pending | %s", name)
	}
}
