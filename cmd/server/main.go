package main

import (
	"context"
	"log"
	"os"
	"time"

	"fakestore_back_end/internal/cache"
	"fakestore_back_end/internal/config"
	"fakestore_back_end/internal/database"
	"fakestore_back_end/internal/handlers"
	"fakestore_back_end/internal/middleware"
	"fakestore_back_end/internal/routes"
	"fakestore_back_end/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		database.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal("❌ Erreur création index:", err)
	}

	// Stores MongoDB, décorés par le cache Redis quand il est disponible
	userStore := storage.NewMongoUserStore(database.MongoDB)
	productStore := storage.NewMongoProductStore(database.MongoDB)

	var cartStore storage.CartStore = storage.NewMongoCartStore(database.MongoDB)
	var orderStore storage.OrderStore = storage.NewMongoOrderStore(database.MongoClient, database.MongoDB)
	if database.Redis != nil {
		cartStore = cache.NewCachedCartStore(cartStore, database.Redis)
		orderStore = cache.NewCachedOrderStore(orderStore, database.Redis)
		log.Println("✅ Cache Redis actif sur paniers et commandes")
	}

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:  handlers.NewAuthHandler(userStore),
		User:  handlers.NewUserHandler(userStore),
		Cart:  handlers.NewCartHandler(cartStore, productStore),
		Order: handlers.NewOrderHandler(orderStore),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Println("🚀 Serveur fake-store lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur serveur:", err)
	}
}
