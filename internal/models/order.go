package models

import (
	"time"
)

type Order struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	Status          string    `json:"status" gorm:"default:'pending'"` // pending, confirmed, preparing, delivering, delivered, cancelled
	TotalAmount     float64   `json:"total_amount" gorm:"not null"`
	DeliveryAddress string    `json:"delivery_address" gorm:"not null"`
	DeliveryPhone   string    `json:"delivery_phone" gorm:"not null"`
	Notes           string    `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderPreparing  OrderStatus = "preparing"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// statusLabels are the customer-facing status names sent in notifications.
var statusLabels = map[string]string{
	"pending":    "создан",
	"confirmed":  "подтвержден",
	"preparing":  "готовится",
	"delivering": "в пути",
	"delivered":  "доставлен",
	"cancelled":  "отменен",
}

// StatusLabel returns the localized label for the order's current status,
// falling back to the raw status string for unknown values.
func (o *Order) StatusLabel() string {
	if label, ok := statusLabels[o.Status]; ok {
		return label
	}
	return o.Status
}

// IsTerminal reports whether the order reached a state in which its
// item list is immutable.
func (o *Order) IsTerminal() bool {
	return o.Status == string(OrderDelivered) || o.Status == string(OrderCancelled)
}
