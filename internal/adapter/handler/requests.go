package handler

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rl1809/shop-backend/internal/core/domain"
	"github.com/rl1809/shop-backend/internal/core/service"
)

const maxPageLimit = 50

type createProductRequest struct {
	Name           string   `json:"name" binding:"required,max=200"`
	Price          float64  `json:"price" binding:"gt=0"`
	Description    string   `json:"description" binding:"max=1000"`
	Category       string   `json:"category" binding:"max=100"`
	InventoryCount *int     `json:"inventoryCount" binding:"required,gte=0"`
	Sizes          []string `json:"sizes"`
}

func (r *createProductRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("product name cannot be empty")
	}
	r.Sizes = service.NormalizeSizes(r.Sizes)
	return nil
}

type listProductsRequest struct {
	Name   string `form:"name"`
	Size   string `form:"size"`
	Limit  int64  `form:"limit,default=10"`
	Offset int64  `form:"offset,default=0"`
}

type pageRequest struct {
	Limit  int64 `form:"limit,default=10"`
	Offset int64 `form:"offset,default=0"`
}

type orderItemRequest struct {
	ProductID string  `json:"productId" binding:"required,len=24,hexadecimal"`
	Quantity  int     `json:"quantity" binding:"gt=0"`
	UnitPrice float64 `json:"unitPrice" binding:"gt=0"`
}

type createOrderRequest struct {
	UserID      string             `json:"userId" binding:"required"`
	Items       []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount float64            `json:"totalAmount" binding:"gt=0"`
}

func (r *createOrderRequest) validate() error {
	r.UserID = strings.TrimSpace(r.UserID)
	if r.UserID == "" {
		return errors.New("user id cannot be empty")
	}

	var sum float64
	for _, item := range r.Items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	if math.Abs(sum-r.TotalAmount) > 0.01 {
		return errors.New("total amount does not match sum of item prices")
	}
	return nil
}

func (r *createOrderRequest) toDomain() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return items
}

// clampPage bounds pagination to limit in [1,50] and offset >= 0.
func clampPage(limit, offset int64) (int64, int64) {
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// bindingMessage flattens a binding failure into a client-facing message,
// listing the offending fields when the failure came from tag validation.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", v.Field(), v.Tag()))
	}
	return "validation failed: " + strings.Join(fields, ", ")
}
