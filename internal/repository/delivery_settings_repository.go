package repository

import (
	"errors"

	"food_delivery/internal/models"

	"gorm.io/gorm"
)

type DeliverySettingsRepository interface {
	// GetCurrent returns the latest settings row by creation time, or
	// (nil, nil) when no settings exist yet.
	GetCurrent() (*models.DeliverySettings, error)
	Create(settings *models.DeliverySettings) error
	Update(settings *models.DeliverySettings) error
}

type deliverySettingsRepository struct {
	db *gorm.DB
}

func NewDeliverySettingsRepository(db *gorm.DB) DeliverySettingsRepository {
	return &deliverySettingsRepository{db: db}
}

func (r *deliverySettingsRepository) GetCurrent() (*models.DeliverySettings, error) {
	var settings models.DeliverySettings
	err := r.db.Order("created_at DESC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *deliverySettingsRepository) Create(settings *models.DeliverySettings) error {
	return r.db.Create(settings).Error
}

func (r *deliverySettingsRepository) Update(settings *models.DeliverySettings) error {
	return r.db.Save(settings).Error
}
