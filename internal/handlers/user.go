package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fakestore_back_end/internal/models"
	"fakestore_back_end/internal/storage"
	"fakestore_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	Users storage.UserStore
}

func NewUserHandler(users storage.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

// GET /users?limit=&sort=desc
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	descending := c.Query("sort") == "desc"

	users, err := h.Users.List(c.Request.Context(), limit, descending)
	if err != nil {
		internalError(c, "Erreur récupération utilisateurs", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	user, err := h.Users.GetByPublicID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}
		internalError(c, "Erreur récupération utilisateur", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// POST /users — inscription
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		internalError(c, "Erreur hash mot de passe", err)
		return
	}

	user := &models.User{
		ID:       primitive.NewObjectID().Hex(),
		Email:    input.Email,
		Password: hashed,
		Name:     input.Name,
	}

	created, err := h.Users.Create(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
		internalError(c, "Erreur création utilisateur", err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// PUT+PATCH /users/:id — édition du profil
func (h *UserHandler) EditUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Name     *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	upd := storage.UserUpdate{Email: input.Email, Name: input.Name}
	if input.Password != nil {
		// toujours stocker un hash, même en édition de profil
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			internalError(c, "Erreur hash mot de passe", err)
			return
		}
		upd.Password = &hashed
	}

	user, err := h.Users.Update(c.Request.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		case errors.Is(err, storage.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Un compte avec cet email existe déjà"})
		default:
			internalError(c, "Erreur mise à jour utilisateur", err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DELETE /users/:id — administratif, jamais appelé par le flux normal
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	user, err := h.Users.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}
		internalError(c, "Erreur suppression utilisateur", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé", "user": user})
}
