package handlers

import (
	"net/http"
	"strconv"

	"food_delivery/internal/repository"
	"food_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func listFilter(c *gin.Context) repository.ProductFilter {
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	return repository.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: uint(categoryID),
		Offset:     offset,
		Limit:      limit,
	}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	filter := listFilter(c)
	filter.OnlyAvailable = true

	products, err := h.productService.ListProducts(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить продукты"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID продукта"})
		return
	}

	product, err := h.productService.GetProduct(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Продукт не найден"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Categories handles GET /categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.productService.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить категории"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
