package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	rentalapp "github.com/rentora/backend/internal/application/rental"
	"github.com/rentora/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *rentalapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *rentalapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers order routes on the given group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.GET("/number/:number", h.GetByOrderNumber)
		orders.POST("/:id/pickup", h.Pickup)
		orders.POST("/:id/return", h.Return)
		orders.POST("/:id/complete", h.Complete)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id/schedule", h.Schedule)
	}
}

// Create creates a new order
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req rentalapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List retrieves orders with filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter rentalapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// GetByID retrieves an order by ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByOrderNumber retrieves an order by its order number
func (h *OrderHandler) GetByOrderNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), tenantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Pickup marks a rental order as picked up
func (h *OrderHandler) Pickup(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	var req rentalapp.PickupOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Pickup(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Return marks a rental order as returned
func (h *OrderHandler) Return(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	var req rentalapp.ReturnOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Return(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Complete closes a returned rental order
func (h *OrderHandler) Complete(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Complete(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	var req rentalapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Schedule sets planned pickup and return times
func (h *OrderHandler) Schedule(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	var req rentalapp.ScheduleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Schedule(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// tenantAndOrderID parses the tenant header and the :id path parameter.
// It writes the error response itself when either is invalid.
func (h *OrderHandler) tenantAndOrderID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, orderID, true
}
