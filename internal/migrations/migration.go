package migrations

import (
	"log"

	"food_delivery/internal/models"
	"food_delivery/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations seeds the default data a fresh database needs to serve
// requests: an admin account and a delivery settings row. Schema changes
// are applied by database.Initialize before this runs.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := createDefaultAdmin(db); err != nil {
		log.Printf("Warning: Failed to create default admin: %v", err)
	}
	if err := createDefaultSettings(db); err != nil {
		log.Printf("Warning: Failed to create default delivery settings: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultAdmin(db *gorm.DB) error {
	userRepo := repository.NewUserRepository(db)

	existing, err := userRepo.GetByUsername("admin")
	if err == nil && existing != nil {
		log.Println("Admin user already exists")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:       "admin",
		Email:          "admin@example.com",
		HashedPassword: string(hashed),
		FullName:       "Администратор",
		Role:           string(models.RoleAdmin),
		IsActive:       true,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	log.Println("Admin user created successfully")
	log.Println("Email: admin@example.com")
	log.Println("Password: admin123")
	return nil
}

func createDefaultSettings(db *gorm.DB) error {
	settingsRepo := repository.NewDeliverySettingsRepository(db)

	existing, err := settingsRepo.GetCurrent()
	if err != nil {
		return err
	}
	if existing != nil {
		log.Println("Delivery settings already exist")
		return nil
	}

	settings := &models.DeliverySettings{
		BaseDeliveryCost:      150,
		FreeDeliveryThreshold: 2000,
		DeliveryTimeMin:       30,
		DeliveryTimeMax:       60,
		IsDeliveryAvailable:   true,
		MaxProductsPerOrder:   50,
		CreatedBy:             1,
	}
	if err := settingsRepo.Create(settings); err != nil {
		return err
	}

	log.Println("Default delivery settings created")
	return nil
}
