package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"cuebook-api/config"
	"cuebook-api/fixtures"

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

	ctx := context.Background()
	fixtureManager := fixtures.NewFixtures(config.DB)

	// The directory argument wins over FIXTURES_DIR.
	dir := cfg.FixturesDir
	if len(os.Args) > 2 {
		dir = os.Args[2]
	}

	switch command := os.Args[1]; command {
	case "load":
		if err := fixtureManager.Load(ctx, fixtures.Source(dir)); err != nil {
			fail("Failed to load fixtures", err)
		}
		color.Green("Fixtures loaded successfully!")
	case "clear":
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			fail("Failed to clear fixtures", err)
		}
		color.Green("All fixture data cleared!")
	case "reload":
		color.Cyan("Clearing existing data...")
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			fail("Failed to clear fixtures", err)
		}
		color.Cyan("Loading fixtures...")
		if err := fixtureManager.Load(ctx, fixtures.Source(dir)); err != nil {
			fail("Failed to load fixtures", err)
		}
		color.Green("Fixtures reloaded successfully!")
	default:
		color.Red("Unknown command: %s", command)
		printUsage()
		os.Exit(2)
	}
}

func fail(msg string, err error) {
	color.Red("%s: %v", msg, err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures load [dir]    - Import fixtures (embedded set when no dir is given)")
	fmt.Println("  go run ./cmd/fixtures clear         - Remove every tournament and player")
	fmt.Println("  go run ./cmd/fixtures reload [dir]  - Clear, then import again")
}
