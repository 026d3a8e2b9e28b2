package service

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rl1809/shop-backend/internal/core/domain"
	"github.com/rl1809/shop-backend/internal/port"
)

// totalTolerance bounds the accepted drift between the declared order total
// and the sum of quantity*unitPrice across items.
const totalTolerance = 0.01

type OrderService struct {
	products port.ProductRepository
	orders   port.OrderRepository
}

func NewOrderService(products port.ProductRepository, orders port.OrderRepository) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
	}
}

// PlaceOrder validates every item against the catalog and, only if all pass,
// persists the order and decrements inventory per item. Validation runs in two
// passes over the items in input order: existence first, then stock, so a
// missing product is always reported before any stock shortage. On any
// validation failure nothing is persisted and no inventory changes.
//
// The decrement itself is a conditional write; when it reports insufficient
// stock (lost race with a concurrent order), the decrements already applied
// for this order are restored and the just-inserted order is removed before
// the error is returned.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, items []domain.OrderItem, totalAmount float64) (*domain.Order, error) {
	if userID == "" || len(items) == 0 {
		return nil, ErrInvalidOrder
	}

	found := make([]*domain.Product, len(items))
	for i, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("look up product %s: %w", item.ProductID, err)
		}
		if product == nil {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		found[i] = product
	}

	for i, item := range items {
		if found[i].InventoryCount < item.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: found[i].Name,
				Available:   found[i].InventoryCount,
				Requested:   item.Quantity,
			}
		}
	}

	var sum float64
	for _, item := range items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	if math.Abs(sum-totalAmount) > totalTolerance {
		return nil, ErrTotalMismatch
	}

	now := time.Now().UTC()
	order := domain.Order{
		UserID:      userID,
		Items:       items,
		TotalAmount: totalAmount,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.orders.Insert(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i, item := range items {
		ok, err := s.products.DecrementInventory(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.compensate(ctx, created.ID, items[:i])
			return nil, fmt.Errorf("decrement inventory for product %s: %w", item.ProductID, err)
		}
		if !ok {
			s.compensate(ctx, created.ID, items[:i])
			return nil, &InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: found[i].Name,
				Available:   s.currentCount(ctx, item.ProductID, found[i].InventoryCount),
				Requested:   item.Quantity,
			}
		}
	}

	return &created, nil
}

// ListUserOrders returns the given user's order history ordered by creation
// sequence.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string, limit, offset int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.orders.Count(ctx)
}

// compensate undoes the decrements already applied for a failed placement and
// removes the order record. A failure here leaves the stores inconsistent;
// there is no further remedy, so it is logged at the highest severity short of
// exiting.
func (s *OrderService) compensate(ctx context.Context, orderID string, applied []domain.OrderItem) {
	for _, item := range applied {
		if err := s.products.IncrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
			log.WithFields(log.Fields{
				"order":    orderID,
				"product":  item.ProductID,
				"quantity": item.Quantity,
			}).WithError(err).Error("CRITICAL: inventory rollback failed")
		}
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		log.WithField("order", orderID).WithError(err).Error("CRITICAL: order rollback failed")
	}
}

// currentCount re-reads the product for an accurate availability figure in
// the error message, falling back to the pre-check snapshot.
func (s *OrderService) currentCount(ctx context.Context, productID string, fallback int) int {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil || product == nil {
		return fallback
	}
	return product.InventoryCount
}
