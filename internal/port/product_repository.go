package port

import (
	"context"

	"github.com/rl1809/shop-backend/internal/core/domain"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Name   string // case-insensitive substring match
	Size   string // matches products whose size set contains it
	Limit  int64
	Offset int64
}

type ProductRepository interface {
	// Insert persists a new product and returns it with the store-assigned ID.
	Insert(ctx context.Context, product domain.Product) (domain.Product, error)

	// FindByID returns nil without error when no product matches.
	FindByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the filter, ordered by insertion sequence.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// DecrementInventory atomically checks and decreases inventory in a single
	// conditional write. Returns false, without applying anything, when the
	// remaining count is insufficient at the moment of the write.
	DecrementInventory(ctx context.Context, id string, quantity int) (bool, error)

	// IncrementInventory restores inventory (for rollback on late failure).
	IncrementInventory(ctx context.Context, id string, quantity int) error

	// Count reports the number of stored products.
	Count(ctx context.Context) (int64, error)
}
