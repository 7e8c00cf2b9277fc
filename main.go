package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cuebook-api/config"
	_ "cuebook-api/docs" // Swagger docs
	"cuebook-api/fixtures"
	"cuebook-api/packages/auth"
	"cuebook-api/packages/core"
	"cuebook-api/packages/core/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Cuebook API
// @version         1.0
// @description     Pool tournament results, standings, brackets and player ratings

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Ledger groups always live in the database.
	config.ConnectDatabase(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reader store.TournamentReader
	reloadSchedule := ""
	switch cfg.TournamentSource {
	case config.SourceDatabase:
		reader = store.NewGormStore(config.DB)
	default:
		fixtureStore, err := store.NewFixtureStore(ctx, fixtures.Source(cfg.FixturesDir))
		if err != nil {
			log.Fatal("Failed to load fixtures: ", err)
		}
		reader = fixtureStore
		// Embedded fixtures never change, only a directory is worth watching.
		if cfg.FixturesDir != "" {
			reloadSchedule = cfg.FixturesReloadCron
		}
	}
	log.Printf("Tournament source: %s", cfg.TournamentSource)

	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	authModule := auth.NewModule(cfg.JWTSecret)
	authModule.SetupRoutes(r)

	coreModule := core.NewModule(
		reader,
		store.NewGormMembershipRepository(config.DB),
		store.NewGormGroupRepository(config.DB),
		core.Options{
			Policy:             cfg.StandingsPolicy(),
			PreviousRankWindow: cfg.PreviousRankWindow,
			ReloadSchedule:     reloadSchedule,
		},
	)
	coreModule.SetupRoutes(r, authModule)

	if err := coreModule.StartScheduler(); err != nil {
		log.Fatal("Failed to start scheduler: ", err)
	}
	defer coreModule.StopScheduler()

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", healthHandler)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AddAllowHeaders("Authorization")
	return c
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Message:  "Server is running",
			Database: "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Message:  "Server is running",
		Database: "connected",
	})
}
