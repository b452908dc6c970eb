package handlers

import (
	"net/http"
	"strconv"

	"food_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct {
	deliveryService services.DeliveryService
}

func NewDeliveryHandler(deliveryService services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Calculate handles GET /delivery/calculate?order_amount=&delivery_zone=
func (h *DeliveryHandler) Calculate(c *gin.Context) {
	orderAmount, err := strconv.ParseFloat(c.Query("order_amount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная сумма заказа"})
		return
	}
	if orderAmount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма заказа не может быть отрицательной"})
		return
	}

	quote, err := h.deliveryService.CalculateDeliveryCost(orderAmount, c.Query("delivery_zone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось рассчитать доставку"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Available handles GET /delivery/available
func (h *DeliveryHandler) Available(c *gin.Context) {
	available, err := h.deliveryService.IsDeliveryAvailableNow()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось проверить доступность"})
		return
	}
	zones, err := h.deliveryService.GetZones()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить зоны"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_available": available,
		"zones":        zones,
	})
}

// Zones handles GET /delivery/zones
func (h *DeliveryHandler) Zones(c *gin.Context) {
	zones, err := h.deliveryService.GetZones()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить зоны"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

// WorkingHours handles GET /delivery/working-hours
func (h *DeliveryHandler) WorkingHours(c *gin.Context) {
	wh, err := h.deliveryService.GetWorkingHours()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить рабочие часы"})
		return
	}
	c.JSON(http.StatusOK, wh)
}
