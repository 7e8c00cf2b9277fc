package models

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Roles []string

// GetDefaultRoles returns the roles given to a token that carries none.
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

func (r Roles) HasRole(role string) bool {
	for _, have := range r {
		if have == role {
			return true
		}
	}
	return false
}

// Claims is the payload of an access token. The user id is the subject.
type Claims struct {
	Roles Roles `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type ProfileResponse struct {
	UserID string `json:"user_id" example:"u-42"`
	Roles  Roles  `json:"roles"`
}
