package models

import (
	"time"
)

type Payment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	OrderID         uint      `json:"order_id" gorm:"not null;index"`
	PaymentID       string    `json:"payment_id" gorm:"unique;not null"` // external id, mock_<order>_<unix>
	Amount          float64   `json:"amount" gorm:"not null"`
	Currency        string    `json:"currency" gorm:"default:'RUB'"`
	Status          string    `json:"status" gorm:"not null"` // pending, succeeded, canceled
	Description     string    `json:"description" gorm:"type:text"`
	ConfirmationURL string    `json:"confirmation_url" gorm:"type:text"`
	IsTest          bool      `json:"is_test" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentCanceled  PaymentStatus = "canceled"
)
