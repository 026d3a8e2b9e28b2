package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/shop-backend/internal/core/domain"
)

func testOrder(userID string) domain.Order {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Order{
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: "ffffffffffffffffffffffff", Quantity: 2, UnitPrice: 10.00},
		},
		TotalAmount: 20.00,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestOrderInsertAndListByUser(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoOrderAdapter(db)
	ctx := context.Background()

	created, err := adapter.Insert(ctx, testOrder("user-1"))
	require.NoError(t, err)
	require.Len(t, created.ID, 24)
	assert.Equal(t, domain.OrderStatusPending, created.Status)

	_, err = adapter.Insert(ctx, testOrder("user-2"))
	require.NoError(t, err)

	orders, err := adapter.ListByUser(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, created.ID, orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	orders, err = adapter.ListByUser(ctx, "nobody", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderListByUser_Pagination(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoOrderAdapter(db)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := adapter.Insert(ctx, testOrder("user-1"))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	first, err := adapter.ListByUser(ctx, "user-1", 1, 0)
	require.NoError(t, err)
	second, err := adapter.ListByUser(ctx, "user-1", 1, 1)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, ids[0], first[0].ID)
	assert.Equal(t, ids[1], second[0].ID)
}

func TestOrderDelete(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoOrderAdapter(db)
	ctx := context.Background()

	created, err := adapter.Insert(ctx, testOrder("user-1"))
	require.NoError(t, err)

	require.NoError(t, adapter.Delete(ctx, created.ID))

	orders, err := adapter.ListByUser(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestEnsureIndexes(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureIndexes(ctx, db))
	// second run must be a no-op
	require.NoError(t, EnsureIndexes(ctx, db))
}
