package models

import (
	"time"
)

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "product_categories"
}

type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null;index"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"not null"`
	OldPrice      float64   `json:"old_price"`
	ImageURL      string    `json:"image_url"`
	Weight        string    `json:"weight"` // e.g. "500г", "1л"
	Brand         string    `json:"brand"`
	Barcode       string    `json:"barcode" gorm:"index"`
	IsAvailable   bool      `json:"is_available" gorm:"default:true"`
	IsDiscount    bool      `json:"is_discount" gorm:"default:false"`
	StockQuantity int       `json:"stock_quantity" gorm:"default:0"`
	CategoryID    uint      `json:"category_id" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
