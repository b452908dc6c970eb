package repository

import (
	"food_delivery/internal/models"

	"gorm.io/gorm"
)

// DashboardStats is the aggregate snapshot shown on the admin dashboard.
type DashboardStats struct {
	TotalOrders      int64            `json:"total_orders"`
	OrdersByStatus   map[string]int64 `json:"orders_by_status"`
	DeliveredRevenue float64          `json:"delivered_revenue"`
	TotalUsers       int64            `json:"total_users"`
	TotalProducts    int64            `json:"total_products"`
}

type StatsRepository interface {
	GetDashboard() (*DashboardStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetDashboard() (*DashboardStats, error) {
	stats := &DashboardStats{OrdersByStatus: map[string]int64{}}

	if err := r.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Count
	}

	if err := r.db.Model(&models.Order{}).
		Where("status = ?", string(models.OrderDelivered)).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.DeliveredRevenue).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
