package services

import (
	"food_delivery/internal/models"
	"food_delivery/internal/repository"
)

type ProductService interface {
	GetProduct(id uint) (*models.Product, error)
	ListProducts(filter repository.ProductFilter) ([]models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error

	GetCategories() ([]models.Category, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *productService) GetProduct(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

func (s *productService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

func (s *productService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}

func (s *productService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *productService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

func (s *productService) UpdateCategory(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

func (s *productService) DeleteCategory(id uint) error {
	return s.categoryRepo.Delete(id)
}
