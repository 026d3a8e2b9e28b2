// Command seed loads a sample catalog into the configured database.
package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/rl1809/shop-backend/internal/adapter/storage"
	"github.com/rl1809/shop-backend/internal/config"
	"github.com/rl1809/shop-backend/internal/core/service"
)

var sampleCatalog = []service.NewProduct{
	{
		Name:           "Premium Cotton T-Shirt",
		Price:          34.99,
		Description:    "Ultra-soft premium cotton t-shirt with modern cut",
		Category:       "Clothing",
		InventoryCount: 120,
		Sizes:          []string{"xs", "small", "medium", "large", "xl"},
	},
	{
		Name:           "Classic Blue Jeans",
		Price:          89.99,
		Description:    "Timeless blue jeans with comfortable stretch fabric",
		Category:       "Clothing",
		InventoryCount: 80,
		Sizes:          []string{"small", "medium", "large", "xl"},
	},
	{
		Name:           "Athletic Running Sneakers",
		Price:          149.99,
		Description:    "High-performance running shoes with advanced cushioning",
		Category:       "Footwear",
		InventoryCount: 60,
		Sizes:          []string{"8", "9", "10", "11", "12"},
	},
	{
		Name:           "Leather Messenger Bag",
		Price:          199.99,
		Description:    "Handcrafted leather bag with laptop compartment",
		Category:       "Accessories",
		InventoryCount: 25,
		Sizes:          []string{},
	},
	{
		Name:           "Wool Winter Beanie",
		Price:          24.99,
		Description:    "Warm merino wool beanie for cold weather",
		Category:       "Accessories",
		InventoryCount: 200,
		Sizes:          []string{"medium", "large"},
	},
	{
		Name:           "Lightweight Rain Jacket",
		Price:          119.99,
		Description:    "Packable waterproof jacket with sealed seams",
		Category:       "Outerwear",
		InventoryCount: 45,
		Sizes:          []string{"small", "medium", "large", "xl", "xxl"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect mongodb")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DatabaseName)
	catalog := service.NewCatalogService(storage.NewMongoProductAdapter(db))

	for _, sample := range sampleCatalog {
		product, err := catalog.CreateProduct(ctx, sample)
		if err != nil {
			log.WithError(err).WithField("name", sample.Name).Fatal("failed to seed product")
		}
		log.WithFields(log.Fields{
			"id":    product.ID,
			"name":  product.Name,
			"stock": product.InventoryCount,
		}).Info("seeded product")
	}

	log.WithField("count", len(sampleCatalog)).Info("sample catalog loaded")
}
