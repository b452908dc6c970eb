package models

import (
	"time"
)

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Username        string    `json:"username" gorm:"unique;not null"`
	HashedPassword  string    `json:"-" gorm:"not null"`
	FullName        string    `json:"full_name" gorm:"not null"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	Role            string    `json:"role" gorm:"default:'customer'"` // customer, courier, admin, super_admin
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	TelegramUserID  string    `json:"telegram_user_id" gorm:"index"`
	IsAdminOnline   bool      `json:"is_admin_online" gorm:"default:false"`
	IsCourierOnline bool      `json:"is_courier_online" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleCourier    UserRole = "courier"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// IsAdmin reports whether the user may access the admin surface.
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin) || u.Role == string(RoleSuperAdmin)
}
