package port

import (
	"context"

	"github.com/rl1809/shop-backend/internal/core/domain"
)

type OrderRepository interface {
	// Insert persists a new order and returns it with the store-assigned ID.
	Insert(ctx context.Context, order domain.Order) (domain.Order, error)

	// ListByUser returns a user's orders ordered by insertion sequence.
	ListByUser(ctx context.Context, userID string, limit, offset int64) ([]domain.Order, error)

	// Delete removes an order (compensation for a failed placement).
	Delete(ctx context.Context, id string) error

	// Count reports the number of stored orders.
	Count(ctx context.Context) (int64, error)
}
