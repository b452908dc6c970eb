package services

import (
	"food_delivery/internal/models"
	"food_delivery/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserPatch struct {
	FullName        *string `json:"full_name"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Role            *string `json:"role"`
	IsActive        *bool   `json:"is_active"`
	TelegramUserID  *string `json:"telegram_user_id"`
	IsAdminOnline   *bool   `json:"is_admin_online"`
	IsCourierOnline *bool   `json:"is_courier_online"`
	Password        *string `json:"password"`
}

type UserService interface {
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers(offset, limit int) ([]models.User, error)
	UpdateUser(id uint, patch UserPatch) (*models.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers(offset, limit int) ([]models.User, error) {
	return s.userRepo.GetAll(offset, limit)
}

func (s *userService) UpdateUser(id uint, patch UserPatch) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.TelegramUserID != nil {
		user.TelegramUserID = *patch.TelegramUserID
	}
	if patch.IsAdminOnline != nil {
		user.IsAdminOnline = *patch.IsAdminOnline
	}
	if patch.IsCourierOnline != nil {
		user.IsCourierOnline = *patch.IsCourierOnline
	}
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}
