package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/shop-backend/internal/core/service"
	"github.com/rl1809/shop-backend/internal/port"
)

type HTTPHandler struct {
	catalog *service.CatalogService
	orders  *service.OrderService
}

func NewHTTPHandler(catalog *service.CatalogService, orders *service.OrderService) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, orders: orders}
}

// Router builds the gin engine with all routes and middleware attached.
func (h *HTTPHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/health", h.Health)
	router.GET("/stats", h.Stats)
	router.POST("/products", h.CreateProduct)
	router.GET("/products", h.ListProducts)
	router.POST("/orders", h.CreateOrder)
	router.GET("/orders/:userId", h.ListUserOrders)

	return router
}

func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindingMessage(err)})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), service.NewProduct{
		Name:           req.Name,
		Price:          req.Price,
		Description:    req.Description,
		Category:       req.Category,
		InventoryCount: *req.InventoryCount,
		Sizes:          req.Sizes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(*product))
}

func (h *HTTPHandler) ListProducts(c *gin.Context) {
	var req listProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindingMessage(err)})
		return
	}

	limit, offset := clampPage(req.Limit, req.Offset)
	products, err := h.catalog.ListProducts(c.Request.Context(), port.ProductFilter{
		Name:   req.Name,
		Size:   req.Size,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

func (h *HTTPHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindingMessage(err)})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), req.UserID, req.toDomain(), req.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTotalMismatch), errors.Is(err, service.ErrInvalidOrder):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *HTTPHandler) ListUserOrders(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindingMessage(err)})
		return
	}

	limit, offset := clampPage(req.Limit, req.Offset)
	orders, err := h.orders.ListUserOrders(c.Request.Context(), c.Param("userId"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) Stats(c *gin.Context) {
	productCount, err := h.catalog.CountProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	orderCount, err := h.orders.CountOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productsCount": productCount,
		"ordersCount":   orderCount,
	})
}
