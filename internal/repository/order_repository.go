package repository

import (
	"time"

	"food_delivery/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows admin order listings; zero values mean "no filter".
type OrderFilter struct {
	Status    string
	UserID    uint
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}

// ItemReconciliation is the outcome of diffing an incoming item list
// against an order's current items. It is applied atomically together
// with the recomputed order total.
type ItemReconciliation struct {
	Update      []models.OrderItem
	Insert      []models.OrderItem
	DeleteIDs   []uint
	TotalAmount float64
}

type OrderRepository interface {
	// Create persists the order and all of its items in one transaction.
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUser(id, userID uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	List(filter OrderFilter) ([]models.Order, error)
	Update(order *models.Order) error
	GetItems(orderID uint) ([]models.OrderItem, error)
	// UpdateItems reads the order's current item set inside a transaction,
	// hands it to the reconcile callback, and applies the returned plan and
	// total atomically. The order row is locked for the duration so the
	// diff is always computed against a consistent read.
	UpdateItems(orderID uint, reconcile func(current []models.OrderItem) (*ItemReconciliation, error)) (*models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order, items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDForUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) List(filter OrderFilter) ([]models.Order, error) {
	query := r.db.Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var orders []models.Order
	err := query.Offset(filter.Offset).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *orderRepository) GetItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

func (r *orderRepository) UpdateItems(orderID uint, reconcile func(current []models.OrderItem) (*ItemReconciliation, error)) (*models.Order, error) {
	var order models.Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			return err
		}

		var current []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Order("id").Find(&current).Error; err != nil {
			return err
		}

		plan, err := reconcile(current)
		if err != nil {
			return err
		}

		for i := range plan.Update {
			if err := tx.Save(&plan.Update[i]).Error; err != nil {
				return err
			}
		}
		for i := range plan.Insert {
			plan.Insert[i].OrderID = orderID
			if err := tx.Create(&plan.Insert[i]).Error; err != nil {
				return err
			}
		}
		if len(plan.DeleteIDs) > 0 {
			if err := tx.Where("order_id = ? AND id IN ?", orderID, plan.DeleteIDs).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
		}

		order.TotalAmount = plan.TotalAmount
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
