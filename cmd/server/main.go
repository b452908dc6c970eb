package main

import (
	"log"
	"time"

	"food_delivery/internal/config"
	"food_delivery/internal/database"
	"food_delivery/internal/events"
	"food_delivery/internal/handlers"
	"food_delivery/internal/middleware"
	"food_delivery/internal/migrations"
	"food_delivery/internal/redis"
	"food_delivery/internal/repository"
	"food_delivery/internal/services"
	"food_delivery/pkg/mailer"
	"food_delivery/pkg/telegram"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Outbound clients; each degrades to a no-op when unconfigured
	telegramClient := telegram.NewClient(cfg.TelegramClientBotToken, cfg.TelegramCourierBotToken, cfg.TelegramAdminBotToken)
	mailClient := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
	if publisher != nil {
		defer publisher.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewDeliverySettingsRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	authService := services.NewAuthService(
		userRepo,
		redisClient,
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTL)*time.Minute,
		time.Duration(cfg.RefreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo)
	deliveryService := services.NewDeliveryService(settingsRepo, redisClient, time.Duration(cfg.CacheTTL)*time.Second)
	notificationService := services.NewNotificationService(userRepo, telegramClient, mailClient)
	orderService := services.NewOrderService(orderRepo, productRepo, deliveryService, notificationService, publisher)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, cfg.ClientBaseURL)
	exportService := services.NewExportService(orderRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, favoriteService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	adminHandler := handlers.NewAdminHandler(userService, productService, orderService, deliveryService, exportService, statsRepo)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.GET("/categories", productHandler.Categories)

		api.GET("/delivery/calculate", deliveryHandler.Calculate)
		api.GET("/delivery/available", deliveryHandler.Available)
		api.GET("/delivery/zones", deliveryHandler.Zones)
		api.GET("/delivery/working-hours", deliveryHandler.WorkingHours)
	}

	authorized := api.Group("")
	authorized.Use(middleware.Auth(authService))
	{
		authorized.GET("/auth/me", authHandler.Me)

		authorized.GET("/cart", cartHandler.Get)
		authorized.POST("/cart", cartHandler.SetItem)
		authorized.PUT("/cart/:product_id", cartHandler.UpdateItem)
		authorized.DELETE("/cart/:product_id", cartHandler.RemoveItem)
		authorized.DELETE("/cart", cartHandler.Clear)

		authorized.GET("/favorites", cartHandler.Favorites)
		authorized.POST("/favorites", cartHandler.AddFavorite)
		authorized.DELETE("/favorites/:product_id", cartHandler.RemoveFavorite)

		authorized.POST("/orders", orderHandler.Create)
		authorized.GET("/orders", orderHandler.List)
		authorized.GET("/orders/:id", orderHandler.Get)
		authorized.POST("/orders/:id/cancel", orderHandler.Cancel)

		authorized.POST("/payments/create", paymentHandler.Create)
		authorized.GET("/payments/:payment_id/status", paymentHandler.Status)
		authorized.POST("/payments/:payment_id/cancel", paymentHandler.Cancel)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(authService), middleware.RequireAdmin())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/products", adminHandler.ListProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)

		admin.POST("/categories", adminHandler.CreateCategory)
		admin.PUT("/categories/:id", adminHandler.UpdateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/export", adminHandler.ExportOrders)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PUT("/orders/:id", adminHandler.UpdateOrder)
		admin.PUT("/orders/:id/items", adminHandler.UpdateOrderItems)

		admin.GET("/delivery/settings", adminHandler.GetDeliverySettings)
		admin.POST("/delivery/settings", adminHandler.UpdateDeliverySettings)
		admin.PUT("/delivery/settings", adminHandler.UpdateDeliverySettings)

		admin.GET("/delivery/zones", adminHandler.ListZones)
		admin.POST("/delivery/zones", adminHandler.CreateZone)
		admin.PUT("/delivery/zones/:zone_id", adminHandler.UpdateZone)
		admin.DELETE("/delivery/zones/:zone_id", adminHandler.DeleteZone)
		admin.PUT("/delivery/working-hours", adminHandler.UpdateWorkingHours)

		admin.GET("/stats/dashboard", adminHandler.Dashboard)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
