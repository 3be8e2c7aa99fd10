// File: guildroster/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"guildroster/config"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateAdminToken creates a signed admin JWT. The jti claim ties the
// token to its Redis session so logout can revoke it before expiry.
func GenerateAdminToken(tokenID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": "admin",
		"jti": tokenID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractTokenID returns the jti claim from a valid admin token.
func ExtractTokenID(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return "", errors.New("token does not contain a valid 'jti' claim")
	}
	return jti, nil
}
