package auth

import (
	"time"

	"cafe-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

type JWTCustomClaims struct {
	Email string           `json:"email"`
	Name  string           `json:"name"`
	Role  models.StaffRole `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, acc models.Account, now time.Time) (string, error) {
	claims := &JWTCustomClaims{
		Email: acc.Email,
		Name:  acc.Name,
		Role:  acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
