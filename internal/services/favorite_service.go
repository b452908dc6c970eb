package services

import (
	"food_delivery/internal/models"
	"food_delivery/internal/repository"
)

type FavoriteService interface {
	GetFavorites(userID uint) ([]models.Favorite, error)
	AddFavorite(fav *models.Favorite) error
	RemoveFavorite(userID, productID uint) error
}

type favoriteService struct {
	favRepo repository.FavoriteRepository
}

func NewFavoriteService(favRepo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favRepo: favRepo}
}

func (s *favoriteService) GetFavorites(userID uint) ([]models.Favorite, error) {
	return s.favRepo.GetByUserID(userID)
}

func (s *favoriteService) AddFavorite(fav *models.Favorite) error {
	return s.favRepo.Add(fav)
}

func (s *favoriteService) RemoveFavorite(userID, productID uint) error {
	return s.favRepo.Remove(userID, productID)
}
