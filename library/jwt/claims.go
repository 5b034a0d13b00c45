package jwt

import (
	jwtgo "github.com/golang-jwt/jwt/v5"
)

// UserClaims is the payload embedded in every token the service issues.
type UserClaims struct {
	jwtgo.RegisteredClaims
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
