package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/FilipLeonard/blogql/internal/config"
)

// Срок жизни токена — час, как и у сессии на фронте.
const tokenTTL = time.Hour

// IssueToken подписывает токен с userId и email.
// Секрет берется из окружения (JWT_SECRET), не из константы.
func IssueToken(userID, email string) (string, error) {
	jwtSecret := config.GetEnv("JWT_SECRET")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
