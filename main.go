// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"go-bulkorder/config"
	"go-bulkorder/controllers"
	"go-bulkorder/middleware"
	"go-bulkorder/routes"
	"go-bulkorder/utils"
)

func main() {
	// Load configuration from the environment (.env honored)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Initialize services
	tokens := utils.NewTokenService(cfg.JWTSecret)
	emailService := utils.NewEmailService(cfg.Postmark.APIToken, cfg.Postmark.Sender)
	auth := middleware.NewAuth(client, cfg.Database, tokens)

	// Initialize controllers
	userController := controllers.NewUserController(client, cfg.Database, tokens)
	productController := controllers.NewProductController(client, cfg.Database)
	orderController := controllers.NewOrderController(client, cfg.Database, emailService)
	analyticsController := controllers.NewAnalyticsController(client, cfg.Database)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, auth, userController, productController, orderController, analyticsController)

	// Start the server
	fmt.Printf("Server is running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
