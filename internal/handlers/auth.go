package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"fakestore_back_end/internal/storage"
	"fakestore_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	Users storage.UserStore
}

func NewAuthHandler(users storage.UserStore) *AuthHandler {
	return &AuthHandler{Users: users}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	email := strings.TrimSpace(input.Email)
	if !emailRegexp.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format d'email invalide"})
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), email)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		// base injoignable != mauvais identifiants
		internalError(c, "Erreur recherche utilisateur", err)
		return
	}
	if err != nil || !utils.CheckPassword(user.Password, input.Password) {
		// même message dans les deux cas : ne révèle pas si l'email existe
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GET /auth/verify — derrière AuthRequired : arriver ici == token valide
func (h *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// ne retourne jamais l'erreur brute du driver au client
func internalError(c *gin.Context, context string, err error) {
	log.Printf("❌ %s: %v", context, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
}
