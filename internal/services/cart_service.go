package services

import (
	"errors"

	"food_delivery/internal/models"
	"food_delivery/internal/repository"

	"gorm.io/gorm"
)

// CartItemDetail is a cart row with its product denormalized in.
type CartItemDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   *models.Product `json:"product,omitempty"`
}

type CartService interface {
	GetCart(userID uint) ([]CartItemDetail, error)
	SetItem(userID, productID uint, quantity int) (*models.CartItem, error)
	RemoveItem(userID, productID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(userID uint) ([]CartItemDetail, error) {
	items, err := s.cartRepo.GetByUserID(userID)
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

	result := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		detail := CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if p, ok := productByID[item.ProductID]; ok {
			product := p
			detail.Product = &product
		}
		result = append(result, detail)
	}
	return result, nil
}

// SetItem upserts a cart row; a zero or negative quantity removes it.
func (s *cartService) SetItem(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, s.cartRepo.Delete(userID, productID)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: productID}
		}
		return nil, err
	}
	if !product.IsAvailable {
		return nil, &ProductUnavailableError{Name: product.Name}
	}

	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item = &models.CartItem{UserID: userID, ProductID: productID}
	}
	item.Quantity = quantity

	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, productID uint) error {
	return s.cartRepo.Delete(userID, productID)
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.Clear(userID)
}
