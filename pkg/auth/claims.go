package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/tahweela/tahweela-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   string
	UserType enums.UserType
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   string         `json:"user_id"`
	UserType enums.UserType `json:"user_type"`
	jwt.RegisteredClaims
}

// SessionID returns the token identifier used to track logout.
func (c *AccessTokenClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}
