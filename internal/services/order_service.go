package services

import (
	"errors"
	"time"

	"food_delivery/internal/events"
	"food_delivery/internal/models"
	"food_delivery/internal/repository"

	"gorm.io/gorm"
)

type CreateOrderItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	DeliveryAddress string            `json:"delivery_address" binding:"required"`
	DeliveryPhone   string            `json:"delivery_phone" binding:"required"`
	Notes           string            `json:"notes"`
	Items           []CreateOrderItem `json:"items"`
}

// OrderItemInput is one entry of an item-list edit. A nonzero ID that
// matches a current item of the order means "update in place"; otherwise
// the entry is inserted as a new item. Price, when set, overrides the
// snapshot taken from the current product price.
type OrderItemInput struct {
	ID        uint     `json:"id"`
	ProductID uint     `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"`
}

// OrderItemDetail is an order item with product fields denormalized into
// the response; the product name and image are never stored on the item.
type OrderItemDetail struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
}

type OrderDetail struct {
	ID              uint              `json:"id"`
	UserID          uint              `json:"user_id"`
	Status          string            `json:"status"`
	TotalAmount     float64           `json:"total_amount"`
	DeliveryAddress string            `json:"delivery_address"`
	DeliveryPhone   string            `json:"delivery_phone"`
	Notes           string            `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Items           []OrderItemDetail `json:"items"`
}

// OrderPatch is an admin field update. Status accepts any value; manual
// override may skip states on purpose.
type OrderPatch struct {
	Status          *string `json:"status"`
	DeliveryAddress *string `json:"delivery_address"`
	DeliveryPhone   *string `json:"delivery_phone"`
	Notes           *string `json:"notes"`
}

type ItemsUpdateResult struct {
	OrderID     uint    `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

type OrderService interface {
	CreateOrder(userID uint, req CreateOrderRequest) (*OrderDetail, error)
	GetUserOrders(userID uint) ([]OrderDetail, error)
	GetOrder(orderID, userID uint) (*OrderDetail, error)
	GetOrderAdmin(orderID uint) (*OrderDetail, error)
	ListOrders(filter repository.OrderFilter) ([]models.Order, error)
	UpdateOrder(orderID uint, patch OrderPatch) (*models.Order, error)
	UpdateOrderItems(orderID uint, items []OrderItemInput) (*ItemsUpdateResult, error)
	CancelOrder(orderID, userID uint) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	delivery    DeliveryService
	notifier    NotificationService
	publisher   *events.Publisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	delivery DeliveryService,
	notifier NotificationService,
	publisher *events.Publisher,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		delivery:    delivery,
		notifier:    notifier,
		publisher:   publisher,
	}
}

func (s *orderService) CreateOrder(userID uint, req CreateOrderRequest) (*OrderDetail, error) {
	available, err := s.delivery.IsDeliveryAvailableNow()
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrDeliveryUnavailable
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var totalAmount float64
	items := make([]models.OrderItem, 0, len(req.Items))
	details := make([]OrderItemDetail, 0, len(req.Items))

	for _, in := range req.Items {
		if in.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.resolveProduct(in.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsAvailable {
			return nil, &ProductUnavailableError{Name: product.Name}
		}

		// Price is snapshotted here; later product price changes must
		// not affect this order.
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Price:     product.Price,
		})
		details = append(details, OrderItemDetail{
			ProductID:    product.ID,
			Quantity:     in.Quantity,
			Price:        product.Price,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
		})
		totalAmount += product.Price * float64(in.Quantity)
	}

	order := &models.Order{
		UserID:          userID,
		Status:          string(models.OrderPending),
		TotalAmount:     totalAmount,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		Notes:           req.Notes,
	}

	if err := s.orderRepo.Create(order, items); err != nil {
		return nil, err
	}

	// Side effects run after the transaction committed and never fail
	// the request.
	s.notifier.NotifyOrderCreated(order)
	s.publisher.Publish(events.OrderEvent{
		Type:        events.OrderCreated,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	})

	for i := range details {
		details[i].ID = order.Items[i].ID
	}
	return s.toDetailWithItems(order, details), nil
}

func (s *orderService) GetUserOrders(userID uint) ([]OrderDetail, error) {
	orders, err := s.orderRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	result := make([]OrderDetail, 0, len(orders))
	for i := range orders {
		detail, err := s.loadDetail(&orders[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

func (s *orderService) GetOrder(orderID, userID uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(order)
}

func (s *orderService) GetOrderAdmin(orderID uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(order)
}

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(filter)
}

func (s *orderService) UpdateOrder(orderID uint, patch OrderPatch) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if patch.Status != nil && *patch.Status != order.Status {
		order.Status = *patch.Status
		statusChanged = true
	}
	if patch.DeliveryAddress != nil {
		order.DeliveryAddress = *patch.DeliveryAddress
	}
	if patch.DeliveryPhone != nil {
		order.DeliveryPhone = *patch.DeliveryPhone
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if statusChanged {
		s.notifier.NotifyStatusChange(order)
		s.publisher.Publish(events.OrderEvent{
			Type:        events.OrderStatusChanged,
			OrderID:     order.ID,
			UserID:      order.UserID,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
		})
	}
	return order, nil
}

func (s *orderService) UpdateOrderItems(orderID uint, items []OrderItemInput) (*ItemsUpdateResult, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, ErrOrderNotEditable
	}

	updated, err := s.orderRepo.UpdateItems(orderID, func(current []models.OrderItem) (*repository.ItemReconciliation, error) {
		return s.reconcileItems(current, items)
	})
	if err != nil {
		return nil, err
	}

	return &ItemsUpdateResult{OrderID: updated.ID, TotalAmount: updated.TotalAmount}, nil
}

// reconcileItems diffs the incoming list against the order's current
// items: matched ids are updated in place, unmatched entries are
// inserted, and every current item missing from the incoming list is
// deleted. Omission deletes; this is full-replace semantics, not a patch.
func (s *orderService) reconcileItems(current []models.OrderItem, incoming []OrderItemInput) (*repository.ItemReconciliation, error) {
	currentByID := make(map[uint]models.OrderItem, len(current))
	for _, item := range current {
		currentByID[item.ID] = item
	}

	plan := &repository.ItemReconciliation{}
	kept := make(map[uint]bool, len(incoming))

	for _, in := range incoming {
		if in.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.resolveProduct(in.ProductID)
		if err != nil {
			return nil, err
		}

		price := product.Price
		if in.Price != nil {
			price = *in.Price
		}

		if existing, ok := currentByID[in.ID]; in.ID != 0 && ok {
			existing.ProductID = in.ProductID
			existing.Quantity = in.Quantity
			existing.Price = price
			plan.Update = append(plan.Update, existing)
			kept[in.ID] = true
		} else {
			plan.Insert = append(plan.Insert, models.OrderItem{
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				Price:     price,
			})
		}
		plan.TotalAmount += price * float64(in.Quantity)
	}

	for _, item := range current {
		if !kept[item.ID] {
			plan.DeleteIDs = append(plan.DeleteIDs, item.ID)
		}
	}
	return plan, nil
}

func (s *orderService) CancelOrder(orderID, userID uint) error {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return err
	}
	if order.IsTerminal() {
		return ErrOrderNotEditable
	}

	order.Status = string(models.OrderCancelled)
	if err := s.orderRepo.Update(order); err != nil {
		return err
	}

	s.notifier.NotifyStatusChange(order)
	s.publisher.Publish(events.OrderEvent{
		Type:        events.OrderStatusChanged,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	})
	return nil
}

func (s *orderService) resolveProduct(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: productID}
		}
		return nil, err
	}
	return product, nil
}

func (s *orderService) loadDetail(order *models.Order) (*OrderDetail, error) {
	items, err := s.orderRepo.GetItems(order.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	details := make([]OrderItemDetail, 0, len(items))
	for _, item := range items {
		detail := OrderItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if p, ok := productByID[item.ProductID]; ok {
			detail.ProductName = p.Name
			detail.ProductImage = p.ImageURL
		}
		details = append(details, detail)
	}
	return s.toDetailWithItems(order, details), nil
}

func (s *orderService) toDetailWithItems(order *models.Order, items []OrderItemDetail) *OrderDetail {
	return &OrderDetail{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryPhone:   order.DeliveryPhone,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           items,
	}
}
