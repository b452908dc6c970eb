package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"food_delivery/internal/middleware"
	"food_delivery/internal/models"
	"food_delivery/internal/repository"
	"food_delivery/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler serves the back-office: user management, catalog CRUD,
// order supervision and export, delivery configuration, dashboard stats.
type AdminHandler struct {
	userService     services.UserService
	productService  services.ProductService
	orderService    services.OrderService
	deliveryService services.DeliveryService
	exportService   services.ExportService
	statsRepo       repository.StatsRepository
}

func NewAdminHandler(
	userService services.UserService,
	productService services.ProductService,
	orderService services.OrderService,
	deliveryService services.DeliveryService,
	exportService services.ExportService,
	statsRepo repository.StatsRepository,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		productService:  productService,
		orderService:    orderService,
		deliveryService: deliveryService,
		exportService:   exportService,
		statsRepo:       statsRepo,
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID"})
		return 0, false
	}
	return uint(id), true
}

// orderFilter reads admin listing filters off the query string. Malformed
// dates are ignored rather than rejected.
func orderFilter(c *gin.Context) repository.OrderFilter {
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 32)

	filter := repository.OrderFilter{
		Status: c.Query("status"),
		UserID: uint(userID),
		Offset: offset,
		Limit:  limit,
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}
	return filter
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	users, err := h.userService.GetAllUsers(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить пользователей"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch services.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные пользователя"})
		return
	}

	user, err := h.userService.UpdateUser(id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить пользователя"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить пользователя"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Пользователь удален"})
}

// ListProducts handles GET /admin/products (unavailable products included)
func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(listFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить продукты"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные продукта"})
		return
	}

	if err := h.productService.CreateProduct(&product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать продукт"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Продукт не найден"})
		return
	}

	if err := c.ShouldBindJSON(product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные продукта"})
		return
	}
	product.ID = id

	if err := h.productService.UpdateProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить продукт"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить продукт"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Продукт удален"})
}

// CreateCategory handles POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные категории"})
		return
	}

	if err := h.productService.CreateCategory(&category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать категорию"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные категории"})
		return
	}
	category.ID = id

	if err := h.productService.UpdateCategory(&category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить категорию"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteCategory(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить категорию"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Категория удалена"})
}

// ListOrders handles GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(orderFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить заказы"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ExportOrders handles GET /admin/orders/export?format=csv|xlsx
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	filter := orderFilter(c)
	filename := fmt.Sprintf("orders_%s", time.Now().Format("2006-01-02"))

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		data, err := h.exportService.ExportOrdersXLSX(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось выгрузить заказы"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "csv":
		data, err := h.exportService.ExportOrdersCSV(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось выгрузить заказы"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Поддерживаемые форматы: csv, xlsx"})
	}
}

// GetOrder handles GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderAdmin(id)
	if err != nil {
		orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder handles PUT /admin/orders/:id
func (h *AdminHandler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch services.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные заказа"})
		return
	}

	order, err := h.orderService.UpdateOrder(id, patch)
	if err != nil {
		orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderItems handles PUT /admin/orders/:id/items
func (h *AdminHandler) UpdateOrderItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Items []services.OrderItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный список позиций"})
		return
	}

	result, err := h.orderService.UpdateOrderItems(id, req.Items)
	if err != nil {
		orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDeliverySettings handles GET /admin/delivery/settings
func (h *AdminHandler) GetDeliverySettings(c *gin.Context) {
	settings, err := h.deliveryService.GetSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить настройки доставки"})
		return
	}
	if settings == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Настройки доставки не найдены"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateDeliverySettings handles PUT and POST /admin/delivery/settings.
// Both verbs merge onto the current row; the row is created on first write.
func (h *AdminHandler) UpdateDeliverySettings(c *gin.Context) {
	var patch services.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные настройки доставки"})
		return
	}

	settings, err := h.deliveryService.UpdateSettings(patch, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить настройки доставки"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListZones handles GET /admin/delivery/zones
func (h *AdminHandler) ListZones(c *gin.Context) {
	zones, err := h.deliveryService.GetZones()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить зоны доставки"})
		return
	}

	views := make([]services.ZoneView, 0, len(zones))
	for id, zone := range zones {
		views = append(views, services.ZoneView{ID: id, ZoneConfig: zone})
	}
	c.JSON(http.StatusOK, gin.H{"zones": views})
}

func zoneError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrZoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSettingsNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить зону доставки"})
	}
}

// CreateZone handles POST /admin/delivery/zones
func (h *AdminHandler) CreateZone(c *gin.Context) {
	var input services.ZoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные зоны"})
		return
	}

	zone, err := h.deliveryService.CreateZone(input)
	if err != nil {
		zoneError(c, err)
		return
	}
	c.JSON(http.StatusCreated, zone)
}

// UpdateZone handles PUT /admin/delivery/zones/:zone_id
func (h *AdminHandler) UpdateZone(c *gin.Context) {
	var input services.ZoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные зоны"})
		return
	}

	zone, err := h.deliveryService.UpdateZone(c.Param("zone_id"), input)
	if err != nil {
		zoneError(c, err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// DeleteZone handles DELETE /admin/delivery/zones/:zone_id
func (h *AdminHandler) DeleteZone(c *gin.Context) {
	if err := h.deliveryService.DeleteZone(c.Param("zone_id")); err != nil {
		zoneError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Зона удалена"})
}

// UpdateWorkingHours handles PUT /admin/delivery/working-hours
func (h *AdminHandler) UpdateWorkingHours(c *gin.Context) {
	var wh models.WorkingHours
	if err := c.ShouldBindJSON(&wh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный график работы"})
		return
	}

	if err := h.deliveryService.UpdateWorkingHours(&wh, middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить график работы"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "График работы обновлен"})
}

// Dashboard handles GET /admin/stats/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsRepo.GetDashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить статистику"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
