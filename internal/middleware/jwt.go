package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateClientToken mints an HS256 token for a scraper client.
// Tokens are issued out-of-band; the API only validates them.
func GenerateClientToken(secret string, clientID string, ttl time.Duration) (string, error) {
	if clientID == "" {
		return "", errors.New("empty clientID passed to GenerateClientToken")
	}
	if secret == "" {
		return "", errors.New("empty signing secret")
	}

	claims := jwt.MapClaims{
		"client_id": clientID,
		"exp":       time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func validateClientToken(secret string, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	clientID, _ := claims["client_id"].(string)
	if clientID == "" {
		return "", errors.New("token missing client_id")
	}

	return clientID, nil
}
