package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fakestore_back_end/internal/middleware"
	"fakestore_back_end/internal/models"
	"fakestore_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func request(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newProtectedRouter()

	token, err := utils.GenerateJWT(models.User{ID: "u1", Email: "a@b.fr"})
	require.NoError(t, err)

	rr := request(r, "Bearer "+token)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"user_id":"u1"`)
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newProtectedRouter()

	rr := request(r, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthRequired_BadFormat(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newProtectedRouter()

	rr := request(r, "Token abc")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthRequired_BadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newProtectedRouter()

	// token signé avec une autre clé
	claims := jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("autre_clé"))
	require.NoError(t, err)

	rr := request(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newProtectedRouter()

	claims := jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	rr := request(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthRequired_MissingUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newProtectedRouter()

	claims := jwt.MapClaims{"email": "a@b.fr", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	rr := request(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
