package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food_delivery/internal/middleware"
	"food_delivery/internal/models"
	"food_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService services.CartService
	favService  services.FavoriteService
}

func NewCartHandler(cartService services.CartService, favService services.FavoriteService) *CartHandler {
	return &CartHandler{cartService: cartService, favService: favService}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	items, err := h.cartService.GetCart(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить корзину"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// SetItem handles POST /cart
func (h *CartHandler) SetItem(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные корзины"})
		return
	}

	item, err := h.cartService.SetItem(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		var notFound *services.ProductNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /cart/:product_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID продукта"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные корзины"})
		return
	}

	item, err := h.cartService.SetItem(middleware.UserID(c), uint(productID), req.Quantity)
	if err != nil {
		var notFound *services.ProductNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveItem handles DELETE /cart/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID продукта"})
		return
	}

	if err := h.cartService.RemoveItem(middleware.UserID(c), uint(productID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить из корзины"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Удалено из корзины"})
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.ClearCart(middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось очистить корзину"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Корзина очищена"})
}

// Favorites handles GET /favorites
func (h *CartHandler) Favorites(c *gin.Context) {
	favs, err := h.favService.GetFavorites(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить избранное"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

// AddFavorite handles POST /favorites
func (h *CartHandler) AddFavorite(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Укажите product_id"})
		return
	}

	fav := &models.Favorite{UserID: middleware.UserID(c), ProductID: req.ProductID}
	if err := h.favService.AddFavorite(fav); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось добавить в избранное"})
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// RemoveFavorite handles DELETE /favorites/:product_id
func (h *CartHandler) RemoveFavorite(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID продукта"})
		return
	}

	if err := h.favService.RemoveFavorite(middleware.UserID(c), uint(productID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить из избранного"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Удалено из избранного"})
}
