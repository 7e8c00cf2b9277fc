package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/services"
	"cuebook-api/packages/core/store"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to a status code. Anything unknown is
// logged and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var transition *membership.TransitionError

	switch {
	case errors.Is(err, store.ErrTournamentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
	case errors.Is(err, store.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
	case errors.Is(err, store.ErrGroupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{
			"error":  transition.Reason,
			"status": transition.Status,
			"action": transition.Action,
		})
	case errors.Is(err, store.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": "Membership was changed by another request, please retry"})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// pagination reads page and pageSize from the query string. It answers 400
// itself and returns ok=false on bad input.
func pagination(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid page parameter",
		})
		return 0, 0, false
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pageSize parameter",
		})
		return 0, 0, false
	}

	// Cap the pageSize to prevent excessive responses
	if pageSize > 100 {
		pageSize = 100
	}

	return page, pageSize, true
}
