package handlers

import (
	"errors"
	"net/http"
	"time"

	"fakestore_back_end/internal/models"
	"fakestore_back_end/internal/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderHandler struct {
	Orders storage.OrderStore
}

func NewOrderHandler(orders storage.OrderStore) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

//
// 🧾 POST /orders — instantané du panier en commande, panier vidé
//
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Items []struct {
			ProductID flexID  `json:"productId"`
			Title     string  `json:"title"`
			Price     float64 `json:"price"`
			Image     string  `json:"image"`
			Quantity  int     `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun article dans la commande"})
		return
	}

	// copies de valeurs, pas des références : un changement ultérieur du
	// catalogue ne modifie jamais une commande passée
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID.String(),
			Title:     item.Title,
			Price:     item.Price,
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}

	now := time.Now()
	order := &models.Order{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		Items:     items,
		Total:     models.ComputeTotal(items),
		Status:    models.OrderStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := h.Orders.CreateAndClearCart(c.Request.Context(), order)
	if err != nil {
		internalError(c, "Erreur création commande", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

//
// 📋 GET /orders — commandes de l'appelant, plus récentes en premier
//
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := h.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "Erreur récupération commandes", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

//
// 🔄 PATCH /orders/:orderId/status
//
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.IsValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), orderID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		case errors.Is(err, storage.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Transition de statut interdite"})
		case errors.Is(err, storage.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		default:
			internalError(c, "Erreur mise à jour statut", err)
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
