package services

import (
	"errors"
	"fmt"
)

var (
	// ErrDeliveryUnavailable rejects order placement outside delivery hours
	// or while the global kill-switch is off.
	ErrDeliveryUnavailable = errors.New("доставка сейчас недоступна")

	// ErrEmptyOrder rejects an order with no items.
	ErrEmptyOrder = errors.New("заказ должен содержать хотя бы один товар")

	// ErrOrderNotEditable rejects item edits on delivered or cancelled orders.
	ErrOrderNotEditable = errors.New("нельзя редактировать доставленный или отмененный заказ")

	// ErrInvalidQuantity rejects non-positive item quantities.
	ErrInvalidQuantity = errors.New("количество товара должно быть больше нуля")

	// ErrSettingsNotFound signals that no delivery settings row exists yet.
	ErrSettingsNotFound = errors.New("настройки доставки не найдены")

	// ErrZoneNotFound signals an unknown delivery zone id.
	ErrZoneNotFound = errors.New("зона доставки не найдена")
)

// ProductNotFoundError carries the offending product id so mutation
// endpoints can report the precise cause.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("продукт с ID %d не найден", e.ProductID)
}

// ProductUnavailableError carries the product name for the client message.
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("продукт '%s' недоступен", e.Name)
}
