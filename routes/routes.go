// routes/routes.go
package routes

import (
	"go-bulkorder/controllers"
	"go-bulkorder/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	auth *middleware.Auth,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	analyticsController *controllers.AnalyticsController,
) {
	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Authenticated routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(auth.Middleware)
	protected.HandleFunc("/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders/{id}", orderController.GetOrder).Methods("GET")
	protected.HandleFunc("/user/orders", orderController.GetUserOrders).Methods("GET")
	protected.HandleFunc("/user/orders/{id}", orderController.CancelOrder).Methods("DELETE")

	// Admin routes
	products := router.PathPrefix("/products").Subrouter()
	products.Use(auth.Middleware)
	products.Use(middleware.AdminOnly)
	products.HandleFunc("", productController.CreateProduct).Methods("POST")
	products.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	products.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware)
	admin.Use(middleware.AdminOnly)
	admin.HandleFunc("/orders", orderController.GetAllOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", orderController.UpdateOrderStatus).Methods("PUT", "PATCH")
	admin.HandleFunc("/analytics", analyticsController.GetAnalytics).Methods("GET")
}
