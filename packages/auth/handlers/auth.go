package handlers

import (
	"net/http"

	"cuebook-api/packages/auth/middleware"
	"cuebook-api/packages/auth/models"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Profile returns the identity carried by the access token
// @Summary Get current user
// @Description Get the user id and roles of the authenticated user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
		return
	}
	roles, _ := middleware.GetUserRoles(c)

	c.JSON(http.StatusOK, models.ProfileResponse{
		UserID: userID,
		Roles:  roles,
	})
}
