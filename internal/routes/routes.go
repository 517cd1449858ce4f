package routes

import (
	"fakestore_back_end/internal/handlers"
	"fakestore_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers regroupe les handlers injectés dans le routeur.
type Handlers struct {
	Auth  *handlers.AuthHandler
	User  *handlers.UserHandler
	Cart  *handlers.CartHandler
	Order *handlers.OrderHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Auth
	auth := r.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.GET("/verify", middleware.AuthRequired(), h.Auth.Verify)

	// Panier (tout sous bearer)
	carts := r.Group("/carts", middleware.AuthRequired())
	carts.GET("/user", h.Cart.GetUserCart)
	carts.POST("", h.Cart.UpdateCart)
	carts.PUT("/items/:productId", h.Cart.UpdateCartItemQuantity)

	// Commandes (tout sous bearer)
	orders := r.Group("/orders", middleware.AuthRequired())
	orders.POST("", h.Order.CreateOrder)
	orders.GET("", h.Order.GetUserOrders)
	orders.PATCH("/:orderId/status", h.Order.UpdateOrderStatus)

	// Utilisateurs — la liste et l'inscription sont publiques, le reste sous bearer
	r.GET("/users", h.User.GetAllUsers)
	r.POST("/users", h.User.CreateUser)
	users := r.Group("/users", middleware.AuthRequired())
	users.GET("/:id", h.User.GetUser)
	users.PUT("/:id", h.User.EditUser)
	users.PATCH("/:id", h.User.EditUser)
	users.DELETE("/:id", h.User.DeleteUser)
}
