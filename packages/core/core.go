package core

import (
	"log"

	"cuebook-api/packages/auth"
	"cuebook-api/packages/core/cron"
	"cuebook-api/packages/core/handlers"
	"cuebook-api/packages/core/services"
	"cuebook-api/packages/core/standings"
	"cuebook-api/packages/core/store"

	"github.com/gin-gonic/gin"
)

type Options struct {
	Policy             standings.Policy
	PreviousRankWindow int
	// ReloadSchedule is the cron expression of the fixture reload job. Empty
	// disables the job.
	ReloadSchedule string
}

type Module struct {
	TournamentHandler *handlers.TournamentHandler
	TournamentService *services.TournamentService
	PlayerHandler     *handlers.PlayerHandler
	PlayerService     *services.PlayerService
	StatsHandler      *handlers.StatsHandler
	StatsService      *services.StatsService
	GroupHandler      *handlers.GroupHandler
	GroupService      *services.GroupService
	MembershipService *services.MembershipService
	FixtureHandler    *handlers.FixtureHandler
	Scheduler         *cron.Scheduler
}

// NewModule wires the services on top of the given stores. When reader can
// be reloaded (fixtures), the admin reload route and the reload job are
// enabled.
func NewModule(reader store.TournamentReader, members store.MembershipRepository, groups store.GroupRepository, opts Options) *Module {
	tournamentService := services.NewTournamentService(reader, opts.Policy)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)

	playerService := services.NewPlayerService(reader, opts.PreviousRankWindow)
	playerHandler := handlers.NewPlayerHandler(playerService)

	statsService := services.NewStatsService(reader)
	statsHandler := handlers.NewStatsHandler(statsService)

	groupService := services.NewGroupService(groups, members)
	membershipService := services.NewMembershipService(members, groups)
	groupHandler := handlers.NewGroupHandler(groupService, membershipService)

	m := &Module{
		TournamentHandler: tournamentHandler,
		TournamentService: tournamentService,
		PlayerHandler:     playerHandler,
		PlayerService:     playerService,
		StatsHandler:      statsHandler,
		StatsService:      statsService,
		GroupHandler:      groupHandler,
		GroupService:      groupService,
		MembershipService: membershipService,
	}

	if reloader, ok := reader.(cron.Reloader); ok {
		m.FixtureHandler = handlers.NewFixtureHandler(reloader)
		m.Scheduler = cron.NewScheduler(reloader, opts.ReloadSchedule)
	} else {
		m.Scheduler = cron.NewScheduler(nil, "")
	}

	return m
}

func (m *Module) SetupRoutes(r *gin.Engine, authModule *auth.Module) {
	tournaments := r.Group("/tournaments")
	{
		tournaments.GET("", m.TournamentHandler.GetTournaments)
		tournaments.GET("/:id", m.TournamentHandler.GetTournament)
		tournaments.GET("/:id/standings", m.TournamentHandler.GetStandings)
		tournaments.GET("/:id/bracket", m.TournamentHandler.GetBracket)
		tournaments.GET("/:id/qualifiers", m.TournamentHandler.GetQualifiers)
	}

	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetAllPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/elo-history", m.PlayerHandler.GetEloHistory)
		players.GET("/:id/achievements", m.PlayerHandler.GetAchievements)
	}

	r.GET("/stats", m.StatsHandler.GetStats)

	groups := r.Group("/groups")
	groups.Use(authModule.JWTMiddleware())
	{
		groups.POST("", m.GroupHandler.CreateGroup)
		groups.GET("/:id", m.GroupHandler.GetGroup)
		groups.GET("/:id/members", m.GroupHandler.GetMembers)
		groups.POST("/:id/members/:userId/actions", m.GroupHandler.ApplyAction)
	}

	if m.FixtureHandler != nil {
		admin := r.Group("/admin")
		admin.Use(authModule.JWTMiddleware(), authModule.RequireAdmin())
		{
			admin.POST("/fixtures/reload", m.FixtureHandler.Reload)
		}
	}
}

// StartScheduler starts the cron scheduler for the fixture reload job
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}
