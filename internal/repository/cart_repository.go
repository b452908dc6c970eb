package repository

import (
	"food_delivery/internal/models"

	"gorm.io/gorm"
)

type CartRepository interface {
	GetByUserID(userID uint) ([]models.CartItem, error)
	GetItem(userID, productID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	Delete(userID, productID uint) error
	Clear(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetByUserID(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func (r *cartRepository) GetItem(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Upsert(item *models.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepository) Delete(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *cartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

type FavoriteRepository interface {
	GetByUserID(userID uint) ([]models.Favorite, error)
	Add(fav *models.Favorite) error
	Remove(userID, productID uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) GetByUserID(userID uint) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&favs).Error
	return favs, err
}

func (r *favoriteRepository) Add(fav *models.Favorite) error {
	return r.db.Create(fav).Error
}

func (r *favoriteRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{}).Error
}
