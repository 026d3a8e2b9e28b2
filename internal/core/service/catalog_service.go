package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rl1809/shop-backend/internal/core/domain"
	"github.com/rl1809/shop-backend/internal/port"
)

type CatalogService struct {
	products port.ProductRepository
}

func NewCatalogService(products port.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// NewProduct carries the caller-supplied fields of a catalog entry; the store
// assigns the ID and the service stamps the timestamps.
type NewProduct struct {
	Name           string
	Price          float64
	Description    string
	Category       string
	InventoryCount int
	Sizes          []string
}

func (s *CatalogService) CreateProduct(ctx context.Context, input NewProduct) (*domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		Name:           strings.TrimSpace(input.Name),
		Price:          input.Price,
		Description:    input.Description,
		Category:       input.Category,
		InventoryCount: input.InventoryCount,
		Sizes:          NormalizeSizes(input.Sizes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.products.Insert(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &created, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter port.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

// NormalizeSizes trims, lowercases and deduplicates a size list, dropping
// entries that are empty after trimming. First occurrence wins the ordering.
func NormalizeSizes(sizes []string) []string {
	normalized := make([]string, 0, len(sizes))
	seen := make(map[string]struct{}, len(sizes))
	for _, size := range sizes {
		size = strings.ToLower(strings.TrimSpace(size))
		if size == "" {
			continue
		}
		if _, ok := seen[size]; ok {
			continue
		}
		seen[size] = struct{}{}
		normalized = append(normalized, size)
	}
	return normalized
}
