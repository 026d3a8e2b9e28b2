package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rl1809/shop-backend/internal/core/domain"
	"github.com/rl1809/shop-backend/internal/port"
)

func getTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	t.Cleanup(func() {
		client.Disconnect(context.Background())
	})

	// Fresh database per test run
	db := client.Database("shop_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		db.Drop(context.Background())
	})
	return db
}

func testProduct(name string, stock int) domain.Product {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Product{
		Name:           name,
		Price:          10.00,
		Category:       "Test",
		InventoryCount: stock,
		Sizes:          []string{"small", "medium"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestProductInsertAndFind(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoProductAdapter(db)
	ctx := context.Background()

	created, err := adapter.Insert(ctx, testProduct("Widget", 5))
	require.NoError(t, err)
	require.Len(t, created.ID, 24)

	found, err := adapter.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Widget", found.Name)
	assert.Equal(t, 5, found.InventoryCount)
	assert.Equal(t, []string{"small", "medium"}, found.Sizes)
}

func TestProductFindByID_Missing(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoProductAdapter(db)
	ctx := context.Background()

	found, err := adapter.FindByID(ctx, "ffffffffffffffffffffffff")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = adapter.FindByID(ctx, "not-a-hex-id")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProductList_Filters(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoProductAdapter(db)
	ctx := context.Background()

	shirt := testProduct("Premium Cotton Shirt", 5)
	jeans := testProduct("Blue Jeans", 5)
	jeans.Sizes = []string{"xl"}
	for _, p := range []domain.Product{shirt, jeans} {
		_, err := adapter.Insert(ctx, p)
		require.NoError(t, err)
	}

	// case-insensitive substring on name
	got, err := adapter.List(ctx, port.ProductFilter{Name: "cotton", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Premium Cotton Shirt", got[0].Name)

	// regex metacharacters in the filter are literal
	got, err = adapter.List(ctx, port.ProductFilter{Name: ".*", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got)

	// size membership
	got, err = adapter.List(ctx, port.ProductFilter{Size: "xl", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Blue Jeans", got[0].Name)
}

func TestProductList_Pagination(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoProductAdapter(db)
	ctx := context.Background()

	names := []string{"A", "B", "C"}
	for _, name := range names {
		_, err := adapter.Insert(ctx, testProduct(name, 1))
		require.NoError(t, err)
	}

	first, err := adapter.List(ctx, port.ProductFilter{Limit: 1, Offset: 0})
	require.NoError(t, err)
	second, err := adapter.List(ctx, port.ProductFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "A", first[0].Name)
	assert.Equal(t, "B", second[0].Name)
}

func TestDecrementInventory_Conditional(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoProductAdapter(db)
	ctx := context.Background()

	created, err := adapter.Insert(ctx, testProduct("Widget", 3))
	require.NoError(t, err)

	ok, err := adapter.DecrementInventory(ctx, created.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// count is now 0; any further decrement must be refused, not clamped
	ok, err = adapter.DecrementInventory(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := adapter.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.InventoryCount)
	assert.True(t, found.UpdatedAt.After(found.CreatedAt))
}

func TestIncrementInventory(t *testing.T) {
	db := getTestDB(t)
	adapter := NewMongoProductAdapter(db)
	ctx := context.Background()

	created, err := adapter.Insert(ctx, testProduct("Widget", 1))
	require.NoError(t, err)

	require.NoError(t, adapter.IncrementInventory(ctx, created.ID, 4))

	found, err := adapter.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.InventoryCount)
}
