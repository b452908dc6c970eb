package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food_delivery/internal/middleware"
	"food_delivery/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// orderError maps engine errors onto HTTP responses: validation and
// precondition failures keep their precise message, storage failures
// surface as a generic 500 after the transaction rolled back.
func orderError(c *gin.Context, err error) {
	var notFound *services.ProductNotFoundError
	var unavailable *services.ProductUnavailableError

	switch {
	case errors.Is(err, services.ErrDeliveryUnavailable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrOrderNotEditable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Заказ не найден"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера"})
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные заказа"})
		return
	}

	order, err := h.orderService.CreateOrder(middleware.UserID(c), req)
	if err != nil {
		orderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.GetUserOrders(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить заказы"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID заказа"})
		return
	}

	order, err := h.orderService.GetOrder(uint(orderID), middleware.UserID(c))
	if err != nil {
		orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID заказа"})
		return
	}

	if err := h.orderService.CancelOrder(uint(orderID), middleware.UserID(c)); err != nil {
		orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Заказ отменен"})
}
