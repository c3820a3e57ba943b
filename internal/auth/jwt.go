package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "worktrack"

// Claims is the payload of a session token. A token binds a display name to
// one workspace; there are no accounts or passwords behind it.
type Claims struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 session token for a workspace.
func GenerateToken(workspaceID, name, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		WorkspaceID: workspaceID,
		Name:        name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   workspaceID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ParseToken checks signature, expiry, issuer and signing method and
// returns the claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			// Reject "none" and asymmetric algorithms before verifying.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.WorkspaceID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
