package models

import (
	"time"
)

// CartItem is one product row in a user's cart, unique per (user, product).
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_cart_user_product,unique"`
	ProductID uint      `json:"product_id" gorm:"not null;index:idx_cart_user_product,unique"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_fav_user_product,unique"`
	ProductID uint      `json:"product_id" gorm:"not null;index:idx_fav_user_product,unique"`
	CreatedAt time.Time `json:"created_at"`
}
