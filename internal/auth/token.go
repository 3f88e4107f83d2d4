// Package auth implements admin login and bearer-token verification.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/starford/folio/internal/models"
)

// TokenService signs and parses admin bearer tokens.
type TokenService struct {
	Secret   []byte
	Issuer   string
	Duration time.Duration
}

// Claims carries the user id as the token subject.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sign issues a token for u.
func (ts TokenService) Sign(u *models.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ts.Duration)

	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.Issuer,
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(ts.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return s, exp, nil
}

// Parse verifies tokenString and returns its claims.
func (ts TokenService) Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.Secret, nil
	}, jwt.WithIssuer(ts.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("auth: invalid token claims")
	}
	return claims, nil
}
