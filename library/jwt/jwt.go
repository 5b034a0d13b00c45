// Package jwt signs and verifies the bearer tokens issued by the auth routes.
package jwt

import (
	"time"

	"github.com/Laisky/errors/v2"
	jwtgo "github.com/golang-jwt/jwt/v5"
)

// Token lifetimes per issuing path. Password login and the token-exchange
// endpoint hand out week-long tokens, the browser OAuth callback a day.
const (
	ExpiresLogin = 7 * 24 * time.Hour
	ExpiresOAuth = 24 * time.Hour
)

type JWT struct {
	secret []byte
}

func New(secret []byte) (*JWT, error) {
	if len(secret) == 0 {
		return nil, errors.Errorf("empty jwt secret")
	}

	return &JWT{secret: secret}, nil
}

// Sign issues an HS256 token for the user with the given lifetime.
func (j *JWT) Sign(userID, role string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			IssuedAt:  jwtgo.NewNumericDate(now),
			ExpiresAt: jwtgo.NewNumericDate(now.Add(expiresIn)),
		},
		UserID: userID,
		Role:   role,
	}

	token, err := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).
		SignedString(j.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return token, nil
}

// Verify parses the token and returns its claims. Expired, malformed or
// wrongly signed tokens all return an error.
func (j *JWT) Verify(raw string) (*UserClaims, error) {
	claims := new(UserClaims)
	token, err := jwtgo.ParseWithClaims(raw, claims,
		func(t *jwtgo.Token) (any, error) {
			if _, ok := t.Method.(*jwtgo.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %q", t.Header["alg"])
			}
			return j.secret, nil
		})
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return nil, errors.Errorf("invalid token")
	}

	return claims, nil
}
