package handlers

import (
	"net/http"

	"cuebook-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(tournamentService *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

// GetTournaments retrieves every tournament with its summary
// @Summary Get all tournaments
// @Description Get tournaments, newest first, with group, player and match counts and their status
// @Tags tournaments
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of tournaments per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedTournamentsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments [get]
func (h *TournamentHandler) GetTournaments(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	response, err := h.tournamentService.GetAllTournaments(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to retrieve tournaments")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTournament retrieves one tournament
// @Summary Get tournament by ID
// @Description Get a tournament with its groups, matches and summary. The slug is accepted as well.
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID or slug"
// @Success 200 {object} services.TournamentDetailResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	tournament, err := h.tournamentService.GetTournament(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve tournament")
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// GetStandings retrieves the group tables of a tournament
// @Summary Get tournament standings
// @Description Get the standings of every group, ordered by points, head to head, rack difference and racks won
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID or slug"
// @Success 200 {array} models.GroupStandings
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments/{id}/standings [get]
func (h *TournamentHandler) GetStandings(c *gin.Context) {
	tables, err := h.tournamentService.GetStandings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute standings")
		return
	}

	c.JSON(http.StatusOK, tables)
}

// GetBracket retrieves the knockout bracket of a tournament
// @Summary Get tournament bracket
// @Description Get the knockout rounds with placeholder labels, and the champion and runner-up once the final is completed
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID or slug"
// @Success 200 {object} services.BracketResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments/{id}/bracket [get]
func (h *TournamentHandler) GetBracket(c *gin.Context) {
	bracket, err := h.tournamentService.GetBracket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build bracket")
		return
	}

	c.JSON(http.StatusOK, bracket)
}

// GetQualifiers retrieves the players currently qualifying for the knockout stage
// @Summary Get tournament qualifiers
// @Description Apply the advancement rules of the tournament to the current standings
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID or slug"
// @Success 200 {array} knockout.Qualifier
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments/{id}/qualifiers [get]
func (h *TournamentHandler) GetQualifiers(c *gin.Context) {
	qualifiers, err := h.tournamentService.GetQualifiers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute qualifiers")
		return
	}

	c.JSON(http.StatusOK, qualifiers)
}
