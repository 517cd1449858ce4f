package utils

import (
	"os"
	"time"

	"fakestore_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Expiration fixe : une heure, pas de refresh token. L'expiration force
// une reconnexion.
const TokenTTL = time.Hour

// JWTSecret lit la clé de signature. Lue à chaque appel pour que les tests
// puissent la positionner via t.Setenv.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret_key"
	}
	return []byte(secret)
}

// GenerateJWT émet un token HS256 liant user_id et email.
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
