package storage

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rl1809/shop-backend/internal/core/domain"
	"github.com/rl1809/shop-backend/internal/port"
)

type productDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Price          float64            `bson:"price"`
	Description    string             `bson:"description,omitempty"`
	Category       string             `bson:"category,omitempty"`
	InventoryCount int                `bson:"inventory_count"`
	Sizes          []string           `bson:"sizes"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Price:          d.Price,
		Description:    d.Description,
		Category:       d.Category,
		InventoryCount: d.InventoryCount,
		Sizes:          d.Sizes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type MongoProductAdapter struct {
	collection *mongo.Collection
}

func NewMongoProductAdapter(db *mongo.Database) *MongoProductAdapter {
	return &MongoProductAdapter{collection: db.Collection(productCollection)}
}

func (m *MongoProductAdapter) Insert(ctx context.Context, product domain.Product) (domain.Product, error) {
	doc := productDocument{
		Name:           product.Name,
		Price:          product.Price,
		Description:    product.Description,
		Category:       product.Category,
		InventoryCount: product.InventoryCount,
		Sizes:          product.Sizes,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
	if doc.Sizes == nil {
		doc.Sizes = []string{}
	}

	result, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "insert product")
	}

	doc.ID = result.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (m *MongoProductAdapter) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed ID cannot reference any stored product.
		return nil, nil
	}

	var doc productDocument
	err = m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}

	product := doc.toDomain()
	return &product, nil
}

func (m *MongoProductAdapter) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.Size != "" {
		query["sizes"] = bson.M{"$in": bson.A{filter.Size}}
	}

	opts := options.Find().
		SetSkip(filter.Offset).
		SetLimit(filter.Limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toDomain())
	}
	return products, nil
}

// DecrementInventory applies the decrement only if the stored count still
// covers the quantity, in one conditional update. A zero match means the
// stock ran out between the caller's check and this write.
func (m *MongoProductAdapter) DecrementInventory(ctx context.Context, id string, quantity int) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "inventory_count": bson.M{"$gte": quantity}},
		bson.M{
			"$inc": bson.M{"inventory_count": -quantity},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, errors.Wrap(err, "decrement inventory")
	}
	return result.ModifiedCount == 1, nil
}

func (m *MongoProductAdapter) IncrementInventory(ctx context.Context, id string, quantity int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.Errorf("malformed product id %q", id)
	}

	_, err = m.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"inventory_count": quantity},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return errors.Wrap(err, "increment inventory")
}

func (m *MongoProductAdapter) Count(ctx context.Context) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, bson.D{})
	return count, errors.Wrap(err, "count products")
}
