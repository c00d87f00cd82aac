package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key, loaded from the environment in main
var JwtKey []byte

// Claims represents the JWT claims. Only the user id is encoded; the role is
// always resolved from the user store so a stale token cannot carry a revoked
// role.
type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// GenerateJWT generates a signed token for a user id, valid for 24 hours
func GenerateJWT(userID string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseJWT validates a token string and returns its claims
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorSignatureInvalid)
	}
	return claims, nil
}
