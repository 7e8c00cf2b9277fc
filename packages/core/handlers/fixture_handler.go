package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Reloader interface {
	Reload(ctx context.Context) error
}

type FixtureHandler struct {
	reloader Reloader
}

func NewFixtureHandler(reloader Reloader) *FixtureHandler {
	return &FixtureHandler{
		reloader: reloader,
	}
}

// Reload re-reads the tournament fixtures
// @Summary Reload fixtures
// @Description Re-read the fixture files. Invalid fixtures are rejected and the data currently served is kept.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/fixtures/reload [post]
func (h *FixtureHandler) Reload(c *gin.Context) {
	if err := h.reloader.Reload(c.Request.Context()); err != nil {
		log.Printf("Fixture reload rejected: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fixtures reloaded",
	})
}
