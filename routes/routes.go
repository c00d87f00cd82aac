package routes

import (
	"github.com/gorilla/mux"

	"github.com/Changes18/poepoe/controllers"
	"github.com/Changes18/poepoe/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, auth *middleware.Authenticator, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController) {
	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Authenticated routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(auth.Authenticate)
	protected.HandleFunc("/users/{id}", userController.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart/{id}", cartController.UpdateCartItem).Methods("PUT")
	protected.HandleFunc("/cart/{id}", cartController.RemoveFromCart).Methods("DELETE")
	protected.HandleFunc("/cart", cartController.ClearCart).Methods("DELETE")
	protected.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/").Subrouter()
	admin.Use(auth.Authenticate, auth.RequireAdmin)
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", orderController.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/orders/{id}", orderController.DeleteOrder).Methods("DELETE")
}
