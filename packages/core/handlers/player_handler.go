package handlers

import (
	"net/http"

	"cuebook-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// GetAllPlayers retrieves the leaderboard
// @Summary Get all players
// @Description Get every player ordered by Elo rating, with current and previous rank
// @Tags players
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of players per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedPlayersResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetAllPlayers(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	response, err := h.playerService.GetAllPlayers(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to retrieve players")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPlayer retrieves a player by ID
// @Summary Get player by ID
// @Description Get the rating, rank and record of a player
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} models.PlayerStats
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	stats, err := h.playerService.GetPlayerStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetEloHistory retrieves ELO history for a player
// @Summary Get player ELO history
// @Description Get the rating change of every completed match of a player, oldest first
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {array} models.RatingChange
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/elo-history [get]
func (h *PlayerHandler) GetEloHistory(c *gin.Context) {
	history, err := h.playerService.GetEloHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve ELO history")
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetAchievements retrieves the tournament results of a player
// @Summary Get player achievements
// @Description Get the furthest stage reached by a player in every completed tournament
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {array} models.Achievement
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/achievements [get]
func (h *PlayerHandler) GetAchievements(c *gin.Context) {
	achievements, err := h.playerService.GetAchievements(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve achievements")
		return
	}

	c.JSON(http.StatusOK, achievements)
}
