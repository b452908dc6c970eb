package main

import (
	"fmt"
	"log"

	"food_delivery/internal/config"
	"food_delivery/internal/database"
	"food_delivery/internal/migrations"
	"food_delivery/internal/models"
	"food_delivery/internal/repository"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Drop and recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Favorite{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.DeliverySettings{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Favorite{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.DeliverySettings{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Default admin and delivery settings
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to seed default data:", err)
	}

	// Sample catalog
	fmt.Println("Creating sample catalog...")
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	pizza := &models.Category{Name: "Пицца", Description: "Пицца на тонком тесте", IsActive: true}
	salads := &models.Category{Name: "Салаты", Description: "Свежие салаты", IsActive: true}
	drinks := &models.Category{Name: "Напитки", Description: "Холодные напитки", IsActive: true}
	for _, category := range []*models.Category{pizza, salads, drinks} {
		if err := categoryRepo.Create(category); err != nil {
			log.Printf("Warning: Failed to create category %s: %v", category.Name, err)
		}
	}

	products := []*models.Product{
		{Name: "Маргарита", Description: "Томаты, моцарелла, базилик", Price: 499, CategoryID: pizza.ID, IsAvailable: true, StockQuantity: 100},
		{Name: "Пепперони", Description: "Пепперони, моцарелла", Price: 599, OldPrice: 649, CategoryID: pizza.ID, IsAvailable: true, StockQuantity: 100},
		{Name: "Цезарь", Description: "Курица, романо, пармезан", Price: 349, CategoryID: salads.ID, IsAvailable: true, StockQuantity: 50},
		{Name: "Морс клюквенный", Description: "0.5 л", Price: 129, CategoryID: drinks.ID, IsAvailable: true, StockQuantity: 200},
	}
	for _, product := range products {
		if err := productRepo.Create(product); err != nil {
			log.Printf("Warning: Failed to create product %s: %v", product.Name, err)
		}
	}

	fmt.Println("Database initialization completed successfully!")
}
