package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
)

// --- Custom Service Errors for Product ---
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductValidation = errors.New("product data validation error")
	ErrProductInUse      = errors.New("product cannot be deleted as it is referenced in transactions")
)

const (
	maxProductPrice = 5000.0
	maxProductStock = 10000
)

// --- Product DTOs ---
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"required,min=10,max=500"`
	Category    string  `json:"category" binding:"required,product_category"`
	Tags        string  `json:"tags" binding:"required,min=2"`
	Price       float64 `json:"price" binding:"min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,product_category"`
	Tags        *string  `json:"tags"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(req CreateProductRequest) (*models.Product, error)
	GetProductByID(productID int64) (*models.Product, error)
	GetProducts(page, pageSize int, category, searchTerm *string) ([]models.Product, int, error)
	UpdateProduct(productID int64, req UpdateProductRequest) (*models.Product, error)
	DeleteProduct(productID int64) error
}

// --- productService Implementation ---
type productService struct {
	productRepo repositories.ProductRepository
	db          *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(repo repositories.ProductRepository, db *sql.DB) ProductService {
	return &productService{productRepo: repo, db: db}
}

func validateProductNumbers(price float64, stock int) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrProductValidation)
	}
	if price > maxProductPrice {
		return fmt.Errorf("%w: price cannot exceed %.0f", ErrProductValidation, maxProductPrice)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrProductValidation)
	}
	if stock > maxProductStock {
		return fmt.Errorf("%w: stock cannot exceed %d", ErrProductValidation, maxProductStock)
	}
	return nil
}

func (s *productService) CreateProduct(req CreateProductRequest) (*models.Product, error) {
	if err := validateProductNumbers(req.Price, req.Stock); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Tags:        strings.TrimSpace(req.Tags),
		Price:       req.Price,
		Stock:       req.Stock,
	}

	id, err := s.productRepo.CreateProduct(s.db, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product in repository: %w", err)
	}
	return s.productRepo.GetProductByID(id)
}

func (s *productService) GetProductByID(productID int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (s *productService) GetProducts(page, pageSize int, category, searchTerm *string) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	products, totalCount, err := s.productRepo.GetProducts(page, pageSize, category, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, totalCount, nil
}

func (s *productService) UpdateProduct(productID int64, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrProductValidation)
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Tags != nil {
		product.Tags = strings.TrimSpace(*req.Tags)
	}

	price := product.Price
	if req.Price != nil {
		price = *req.Price
	}
	stock := product.Stock
	if req.Stock != nil {
		stock = *req.Stock
	}
	if err := validateProductNumbers(price, stock); err != nil {
		return nil, err
	}
	product.Price = price
	product.Stock = stock

	err = s.productRepo.UpdateProduct(s.db, product)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product in repository: %w", err)
	}
	return s.productRepo.GetProductByID(productID)
}

func (s *productService) DeleteProduct(productID int64) error {
	_, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to find product for deletion: %w", err)
	}

	err = s.productRepo.DeleteProduct(s.db, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		if strings.Contains(err.Error(), "referenced by transactions") {
			return ErrProductInUse
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
