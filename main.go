package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Changes18/poepoe/cache"
	"github.com/Changes18/poepoe/config"
	"github.com/Changes18/poepoe/controllers"
	"github.com/Changes18/poepoe/logger"
	"github.com/Changes18/poepoe/middleware"
	"github.com/Changes18/poepoe/repository"
	"github.com/Changes18/poepoe/routes"
	"github.com/Changes18/poepoe/utils"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET is not set")
	}
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.MongoURI)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Log.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	db := client.Database(cfg.DBName)

	// Stores
	users := repository.NewMongoUserStore(db)
	products := repository.NewMongoProductStore(db)
	carts := repository.NewMongoCartStore(db)
	orders := repository.NewMongoOrderStore(db)

	// Optional product read cache
	productCache, err := cache.NewProductCache(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Invalid REDIS_URL", zap.Error(err))
	}
	if productCache == nil {
		logger.Log.Info("Product cache disabled (REDIS_URL not set)")
	}

	emailService := utils.NewEmailService(cfg.PostmarkAPIToken, cfg.EmailSender)
	if !emailService.Enabled() {
		logger.Log.Info("Email disabled (POSTMARK_API_TOKEN not set)")
	}

	// Controllers
	userController := controllers.NewUserController(users)
	productController := controllers.NewProductController(products, productCache)
	cartController := controllers.NewCartController(carts, products)
	orderController := controllers.NewOrderController(orders, products, users, emailService)

	auth := middleware.NewAuthenticator(users, func(token string) (string, error) {
		claims, err := utils.ParseJWT(token)
		if err != nil {
			return "", err
		}
		return claims.UserID, nil
	})

	router := mux.NewRouter()
	router.Use(logger.RequestLogger)
	routes.RegisterRoutes(router, auth, userController, productController, cartController, orderController)

	logger.Log.Info("Server is running", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Log.Fatal("Server stopped", zap.Error(err))
	}
}
