package services

import (
	"errors"
	"testing"

	"food_delivery/internal/models"
	"food_delivery/internal/repository"

	"gorm.io/gorm"
)

type fakeProductRepo struct {
	products map[uint]models.Product
}

func (f *fakeProductRepo) Create(p *models.Product) error { f.products[p.ID] = *p; return nil }

func (f *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) GetByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(repository.ProductFilter) ([]models.Product, error) { return nil, nil }

func (f *fakeProductRepo) Update(p *models.Product) error { f.products[p.ID] = *p; return nil }

func (f *fakeProductRepo) Delete(id uint) error { delete(f.products, id); return nil }

type fakeOrderRepo struct {
	orders     map[uint]*models.Order
	items      map[uint][]models.OrderItem
	nextOrder  uint
	nextItemID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     map[uint]*models.Order{},
		items:      map[uint][]models.OrderItem{},
		nextOrder:  1,
		nextItemID: 1,
	}
}

func (f *fakeOrderRepo) Create(order *models.Order, items []models.OrderItem) error {
	order.ID = f.nextOrder
	f.nextOrder++
	for i := range items {
		items[i].ID = f.nextItemID
		items[i].OrderID = order.ID
		f.nextItemID++
	}
	order.Items = items
	f.orders[order.ID] = order
	f.items[order.ID] = items
	return nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetByIDForUser(id, userID uint) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetByUserID(userID uint) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) List(repository.OrderFilter) ([]models.Order, error) { return nil, nil }

func (f *fakeOrderRepo) Update(order *models.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) GetItems(orderID uint) ([]models.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) UpdateItems(orderID uint, reconcile func([]models.OrderItem) (*repository.ItemReconciliation, error)) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	plan, err := reconcile(f.items[orderID])
	if err != nil {
		return nil, err
	}

	byID := map[uint]models.OrderItem{}
	for _, item := range f.items[orderID] {
		byID[item.ID] = item
	}
	for _, item := range plan.Update {
		byID[item.ID] = item
	}
	for _, item := range plan.Insert {
		item.ID = f.nextItemID
		item.OrderID = orderID
		f.nextItemID++
		byID[item.ID] = item
	}
	for _, id := range plan.DeleteIDs {
		delete(byID, id)
	}

	var items []models.OrderItem
	for _, item := range byID {
		items = append(items, item)
	}
	f.items[orderID] = items

	order.TotalAmount = plan.TotalAmount
	copied := *order
	return &copied, nil
}

// stubDelivery overrides only the availability gate; nothing else is
// consulted by the order flow.
type stubDelivery struct {
	DeliveryService
	available bool
}

func (s stubDelivery) IsDeliveryAvailableNow() (bool, error) { return s.available, nil }

type recordingNotifier struct {
	created []uint
	status  []string
}

func (n *recordingNotifier) NotifyOrderCreated(order *models.Order) {
	n.created = append(n.created, order.ID)
}

func (n *recordingNotifier) NotifyStatusChange(order *models.Order) {
	n.status = append(n.status, order.Status)
}

func testOrderService() (*orderService, *fakeOrderRepo, *fakeProductRepo, *recordingNotifier) {
	orderRepo := newFakeOrderRepo()
	productRepo := &fakeProductRepo{products: map[uint]models.Product{
		1: {ID: 1, Name: "Пицца", Price: 500, IsAvailable: true},
		2: {ID: 2, Name: "Салат", Price: 250, IsAvailable: true},
		3: {ID: 3, Name: "Десерт", Price: 300, IsAvailable: false},
	}}
	notifier := &recordingNotifier{}
	svc := NewOrderService(orderRepo, productRepo, stubDelivery{available: true}, notifier, nil).(*orderService)
	return svc, orderRepo, productRepo, notifier
}

func TestCreateOrder(t *testing.T) {
	svc, _, _, notifier := testOrderService()

	order, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "ул. Ленина, 1",
		DeliveryPhone:   "+79001234567",
		Items: []CreateOrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.TotalAmount != 1250 {
		t.Errorf("total = %g, want 1250", order.TotalAmount)
	}
	if order.Status != string(models.OrderPending) {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	if order.Items[0].Price != 500 || order.Items[0].ProductName != "Пицца" {
		t.Errorf("item snapshot wrong: %+v", order.Items[0])
	}
	if len(notifier.created) != 1 || notifier.created[0] != order.ID {
		t.Errorf("creation notification not sent: %+v", notifier.created)
	}
}

func TestCreateOrderPriceSnapshot(t *testing.T) {
	svc, orderRepo, productRepo, _ := testOrderService()

	order, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "адрес",
		DeliveryPhone:   "телефон",
		Items:           []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Raising the catalog price must not change the stored item price.
	p := productRepo.products[1]
	p.Price = 999
	productRepo.products[1] = p

	items, _ := orderRepo.GetItems(order.ID)
	if items[0].Price != 500 {
		t.Errorf("snapshot price = %g, want 500", items[0].Price)
	}
}

func TestCreateOrderErrors(t *testing.T) {
	svc, _, _, _ := testOrderService()

	tests := []struct {
		name  string
		req   CreateOrderRequest
		check func(error) bool
	}{
		{
			"empty items",
			CreateOrderRequest{DeliveryAddress: "а", DeliveryPhone: "т"},
			func(err error) bool { return errors.Is(err, ErrEmptyOrder) },
		},
		{
			"zero quantity",
			CreateOrderRequest{DeliveryAddress: "а", DeliveryPhone: "т", Items: []CreateOrderItem{{ProductID: 1, Quantity: 0}}},
			func(err error) bool { return errors.Is(err, ErrInvalidQuantity) },
		},
		{
			"unknown product",
			CreateOrderRequest{DeliveryAddress: "а", DeliveryPhone: "т", Items: []CreateOrderItem{{ProductID: 99, Quantity: 1}}},
			func(err error) bool {
				var notFound *ProductNotFoundError
				return errors.As(err, &notFound) && notFound.ProductID == 99
			},
		},
		{
			"unavailable product",
			CreateOrderRequest{DeliveryAddress: "а", DeliveryPhone: "т", Items: []CreateOrderItem{{ProductID: 3, Quantity: 1}}},
			func(err error) bool {
				var unavailable *ProductUnavailableError
				return errors.As(err, &unavailable)
			},
		},
	}
	for _, tt := range tests {
		_, err := svc.CreateOrder(10, tt.req)
		if err == nil || !tt.check(err) {
			t.Errorf("%s: err = %v", tt.name, err)
		}
	}
}

func TestCreateOrderDeliveryGate(t *testing.T) {
	svc, _, _, _ := testOrderService()
	svc.delivery = stubDelivery{available: false}

	_, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "а",
		DeliveryPhone:   "т",
		Items:           []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	if !errors.Is(err, ErrDeliveryUnavailable) {
		t.Errorf("err = %v, want ErrDeliveryUnavailable", err)
	}
}

func TestUpdateOrderItems(t *testing.T) {
	svc, orderRepo, _, _ := testOrderService()

	order, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "а",
		DeliveryPhone:   "т",
		Items: []CreateOrderItem{
			{ProductID: 1, Quantity: 2}, // item id 1
			{ProductID: 2, Quantity: 1}, // item id 2
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Keep item 2 with a new quantity, add product 1 as a fresh line,
	// drop item 1 by omission.
	result, err := svc.UpdateOrderItems(order.ID, []OrderItemInput{
		{ID: 2, ProductID: 2, Quantity: 3},
		{ProductID: 1, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("UpdateOrderItems: %v", err)
	}

	if result.TotalAmount != 1250 {
		t.Errorf("total = %g, want 1250", result.TotalAmount)
	}

	items, _ := orderRepo.GetItems(order.ID)
	if len(items) != 2 {
		t.Fatalf("items after edit = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.ID == 1 {
			t.Error("omitted item 1 was not deleted")
		}
		if item.ID == 2 && item.Quantity != 3 {
			t.Errorf("item 2 quantity = %d, want 3", item.Quantity)
		}
	}
}

func TestUpdateOrderItemsPriceOverride(t *testing.T) {
	svc, orderRepo, _, _ := testOrderService()

	order, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "а",
		DeliveryPhone:   "т",
		Items:           []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	override := 450.0
	result, err := svc.UpdateOrderItems(order.ID, []OrderItemInput{
		{ID: 1, ProductID: 1, Quantity: 2, Price: &override},
	})
	if err != nil {
		t.Fatalf("UpdateOrderItems: %v", err)
	}
	if result.TotalAmount != 900 {
		t.Errorf("total = %g, want 900", result.TotalAmount)
	}

	items, _ := orderRepo.GetItems(order.ID)
	if items[0].Price != 450 {
		t.Errorf("item price = %g, want override 450", items[0].Price)
	}
}

func TestUpdateOrderItemsTerminal(t *testing.T) {
	svc, orderRepo, _, _ := testOrderService()

	order, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "а",
		DeliveryPhone:   "т",
		Items:           []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	stored := orderRepo.orders[order.ID]
	stored.Status = string(models.OrderDelivered)

	_, err = svc.UpdateOrderItems(order.ID, []OrderItemInput{{ProductID: 2, Quantity: 1}})
	if !errors.Is(err, ErrOrderNotEditable) {
		t.Errorf("err = %v, want ErrOrderNotEditable", err)
	}
}

func TestUpdateOrderStatusNotification(t *testing.T) {
	svc, _, _, notifier := testOrderService()

	order, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "а",
		DeliveryPhone:   "т",
		Items:           []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	status := string(models.OrderConfirmed)
	if _, err := svc.UpdateOrder(order.ID, OrderPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if len(notifier.status) != 1 || notifier.status[0] != status {
		t.Errorf("status notification = %+v, want [confirmed]", notifier.status)
	}

	// Re-assigning the same status must not notify again.
	if _, err := svc.UpdateOrder(order.ID, OrderPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateOrder repeat: %v", err)
	}
	if len(notifier.status) != 1 {
		t.Errorf("unchanged status re-notified: %+v", notifier.status)
	}

	notes := "позвонить заранее"
	updated, err := svc.UpdateOrder(order.ID, OrderPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateOrder notes: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("notes = %q, want %q", updated.Notes, notes)
	}
	if len(notifier.status) != 1 {
		t.Error("field-only patch triggered a status notification")
	}
}

func TestCancelOrder(t *testing.T) {
	svc, orderRepo, _, _ := testOrderService()

	order, err := svc.CreateOrder(10, CreateOrderRequest{
		DeliveryAddress: "а",
		DeliveryPhone:   "т",
		Items:           []CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Another user cannot cancel.
	if err := svc.CancelOrder(order.ID, 11); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("foreign cancel: err = %v, want record not found", err)
	}

	if err := svc.CancelOrder(order.ID, 10); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if got := orderRepo.orders[order.ID].Status; got != string(models.OrderCancelled) {
		t.Errorf("status after cancel = %q", got)
	}

	// A terminal order cannot be cancelled again.
	if err := svc.CancelOrder(order.ID, 10); !errors.Is(err, ErrOrderNotEditable) {
		t.Errorf("double cancel: err = %v, want ErrOrderNotEditable", err)
	}
}
