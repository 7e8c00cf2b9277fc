// Package auth verifies access tokens issued by the identity provider.
// Issuing tokens and managing accounts happen elsewhere.
package auth

import (
	"cuebook-api/packages/auth/handlers"
	"cuebook-api/packages/auth/middleware"
	"cuebook-api/packages/auth/models"

	"github.com/gin-gonic/gin"
)

type Module struct {
	Handler *handlers.AuthHandler
	secret  string
}

func NewModule(secret string) *Module {
	return &Module{
		Handler: handlers.NewAuthHandler(),
		secret:  secret,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	users := r.Group("/users")
	users.Use(m.JWTMiddleware())
	{
		users.GET("/me", m.Handler.Profile)
	}
}

func (m *Module) JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware(m.secret)
}

func (m *Module) RequireAdmin() gin.HandlerFunc {
	return middleware.RequireRole(models.RoleAdmin)
}
