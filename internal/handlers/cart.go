package handlers

import (
	"errors"
	"net/http"

	"fakestore_back_end/internal/models"
	"fakestore_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts    storage.CartStore
	Products storage.ProductStore
}

func NewCartHandler(carts storage.CartStore, products storage.ProductStore) *CartHandler {
	return &CartHandler{Carts: carts, Products: products}
}

// ligne de panier enrichie des attributs produit (forme du GET)
type cartLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// ligne de panier avec l'objet produit complet (forme du POST/PUT)
type cartLineFull struct {
	Product  productPayload `json:"product"`
	Quantity int            `json:"quantity"`
}

type productPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

//
// 🛒 GET /carts/user — get-or-create, jamais un 404
//
func (h *CartHandler) GetUserCart(c *gin.Context) {
	userID := c.GetString("user_id")

	cart, err := h.Carts.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "Erreur récupération panier", err)
		return
	}

	products, err := h.lookupProducts(c, cart.Items)
	if err != nil {
		internalError(c, "Erreur récupération produits", err)
		return
	}

	lines := make([]cartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := cartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := products[item.ProductID]; ok {
			line.Title = p.Title
			line.Price = p.Price
			line.Image = p.Image
		}
		lines = append(lines, line)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       cart.UserID,
		"userId":   cart.UserID,
		"date":     cart.Date,
		"products": lines,
	})
}

//
// 🔁 POST /carts — remplacement complet du panier
//
func (h *CartHandler) UpdateCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Products []struct {
			Product struct {
				ID          flexID  `json:"id"`
				Title       string  `json:"title"`
				Price       float64 `json:"price"`
				Image       string  `json:"image"`
				Description string  `json:"description"`
				Category    string  `json:"category"`
			} `json:"product"`
			Quantity int `json:"quantity"`
		} `json:"products"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Products == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La liste products est requise"})
		return
	}

	ctx := c.Request.Context()
	items := make([]models.CartItem, 0, len(input.Products))
	for _, entry := range input.Products {
		if entry.Product.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chaque élément doit contenir un produit et une quantité"})
			return
		}

		// le produit est "découvert" en passant : créé ou écrasé par la
		// version que le client référence (last-writer-wins)
		_, err := h.Products.Upsert(ctx, models.Product{
			ID:          entry.Product.ID.String(),
			Title:       entry.Product.Title,
			Price:       entry.Product.Price,
			Image:       entry.Product.Image,
			Description: entry.Product.Description,
			Category:    entry.Product.Category,
		})
		if err != nil {
			internalError(c, "Erreur upsert produit", err)
			return
		}

		items = append(items, models.CartItem{
			ProductID: entry.Product.ID.String(),
			Quantity:  entry.Quantity,
		})
	}

	cart, err := h.Carts.Replace(ctx, userID, items)
	if err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Le panier a été modifié entre-temps, réessayez"})
			return
		}
		internalError(c, "Erreur remplacement panier", err)
		return
	}

	h.respondFullCart(c, cart)
}

//
// ✏️ PUT /carts/items/:productId — fixe la quantité d'une ligne
//
func (h *CartHandler) UpdateCartItemQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	var input struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId et une quantité valide sont requis"})
		return
	}

	// quantité <= 0 : la ligne est retirée, jamais stockée à zéro
	cart, err := h.Carts.SetItemQuantity(c.Request.Context(), userID, productID, *input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Panier introuvable"})
		case errors.Is(err, storage.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit absent du panier"})
		default:
			internalError(c, "Erreur mise à jour quantité", err)
		}
		return
	}

	h.respondFullCart(c, cart)
}

func (h *CartHandler) lookupProducts(c *gin.Context, items []models.CartItem) (map[string]models.Product, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return h.Products.GetByIDs(c.Request.Context(), ids)
}

// réponse avec l'objet produit complet par ligne (forme du POST/PUT)
func (h *CartHandler) respondFullCart(c *gin.Context, cart *models.Cart) {
	products, err := h.lookupProducts(c, cart.Items)
	if err != nil {
		internalError(c, "Erreur récupération produits", err)
		return
	}

	lines := make([]cartLineFull, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := cartLineFull{
			Product:  productPayload{ID: item.ProductID},
			Quantity: item.Quantity,
		}
		if p, ok := products[item.ProductID]; ok {
			line.Product.Title = p.Title
			line.Product.Price = p.Price
			line.Product.Image = p.Image
			line.Product.Description = p.Description
			line.Product.Category = p.Category
		}
		lines = append(lines, line)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       cart.UserID,
		"userId":   cart.UserID,
		"date":     cart.Date,
		"products": lines,
	})
}
