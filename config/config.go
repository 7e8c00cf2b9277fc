// Package config reads the runtime configuration from the environment and
// opens the database connection.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"cuebook-api/packages/core/standings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	SourceFixtures = "fixtures"
	SourceDatabase = "database"
)

var DB *gorm.DB

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	// TournamentSource is either SourceFixtures or SourceDatabase.
	TournamentSource   string
	FixturesDir        string
	FixturesReloadCron string
	PreviousRankWindow int
	PlayedPolicy       standings.PlayedPolicy
	CORSOrigins        []string
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TournamentSource:   getEnv("TOURNAMENT_SOURCE", SourceFixtures),
		FixturesDir:        os.Getenv("FIXTURES_DIR"),
		FixturesReloadCron: getEnv("FIXTURES_RELOAD_CRON", "0 */5 * * * *"),
	}

	switch cfg.TournamentSource {
	case SourceFixtures, SourceDatabase:
	default:
		return nil, fmt.Errorf("TOURNAMENT_SOURCE must be %q or %q, got %q", SourceFixtures, SourceDatabase, cfg.TournamentSource)
	}

	window, err := strconv.Atoi(getEnv("PREVIOUS_RANK_WINDOW", "1"))
	if err != nil || window < 0 {
		return nil, fmt.Errorf("PREVIOUS_RANK_WINDOW must be a non-negative integer")
	}
	cfg.PreviousRankWindow = window

	policy, err := standings.ParsePlayedPolicy(os.Getenv("STANDINGS_PLAYED_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("STANDINGS_PLAYED_POLICY: %w", err)
	}
	cfg.PlayedPolicy = policy

	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}

// StandingsPolicy returns the default point weights with the configured
// played policy.
func (c *Config) StandingsPolicy() standings.Policy {
	policy := standings.DefaultPolicy()
	policy.Played = c.PlayedPolicy
	return policy
}

// ConnectDatabase opens the PostgreSQL connection and stores it in DB.
func ConnectDatabase(cfg *Config) {
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connected")
	DB = db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
