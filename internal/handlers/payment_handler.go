package handlers

import (
	"errors"
	"net/http"

	"food_delivery/internal/middleware"
	"food_delivery/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Укажите order_id"})
		return
	}

	payment, err := h.paymentService.CreatePayment(req.OrderID, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заказ не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать платеж"})
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) Status(c *gin.Context) {
	payment, err := h.paymentService.CheckStatus(c.Param("payment_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Платеж не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось проверить статус платежа"})
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) Cancel(c *gin.Context) {
	payment, err := h.paymentService.CancelPayment(c.Param("payment_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Платеж не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось отменить платеж"})
		return
	}
	c.JSON(http.StatusOK, payment)
}
