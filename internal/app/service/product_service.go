package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/internal/app/repository"
	"github.com/mohammadh73/restbucks-backend/pkg/logger"
	"github.com/mohammadh73/restbucks-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const menuCacheKey = "menu:products"

type ProductService interface {
	ListProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
}

type productService struct {
	productRepo repository.ProductRepository
	menuCache   *redis.Cache
}

// NewProductService builds the catalog service. The cache argument is
// optional; without it every listing hits the database.
func NewProductService(productRepo repository.ProductRepository, menuCache ...*redis.Cache) ProductService {
	var cache *redis.Cache
	if len(menuCache) > 0 {
		cache = menuCache[0]
	}
	return &productService{
		productRepo: productRepo,
		menuCache:   cache,
	}
}

func (s *productService) ListProducts() ([]model.Product, error) {
	logger.Debug("Listing products")

	if s.menuCache != nil {
		if payload, ok := s.menuCache.Get(context.Background(), menuCacheKey); ok {
			var products []model.Product
			if err := json.Unmarshal(payload, &products); err == nil {
				logger.Debug("Products served from cache", map[string]interface{}{
					"count": len(products),
				})
				return products, nil
			}
			logger.Warn("Stale menu cache payload, falling back to database")
		}
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	if s.menuCache != nil {
		if payload, err := json.Marshal(products); err == nil {
			s.menuCache.Set(context.Background(), menuCacheKey, payload)
		}
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"title": product.Title,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"title": product.Title,
		})
		return err
	}

	if s.menuCache != nil {
		s.menuCache.Invalidate(context.Background(), menuCacheKey)
	}
	return nil
}
