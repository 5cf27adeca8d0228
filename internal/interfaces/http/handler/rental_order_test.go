package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rentalapp "github.com/rentora/backend/internal/application/rental"
	"github.com/rentora/backend/internal/domain/rental"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockOrderRepository implements rental.OrderRepository for handler tests
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*rental.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*rental.Order, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]rental.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindTouchingWindow(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]rental.Order, error) {
	args := m.Called(ctx, tenantID, start, end)
	return args.Get(0).([]rental.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *rental.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *rental.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newOrderRouter(repo rental.OrderRepository) *gin.Engine {
	h := NewOrderHandler(rentalapp.NewOrderService(repo))
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func reservedOrder(t *testing.T, tenantID uuid.UUID) *rental.Order {
	t.Helper()
	order, err := rental.NewOrder(
		tenantID,
		"RO-2026-001",
		uuid.New(),
		"Alice",
		rental.OrderTypeRent,
		valueobject.NewMoneyUSD(decimal.NewFromInt(500)),
		valueobject.NewMoneyUSD(decimal.NewFromInt(100)),
	)
	require.NoError(t, err)
	return order
}

func doRequest(engine *gin.Engine, method, path string, tenantID uuid.UUID, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID.String())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOrderHandler_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates an order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("FindByOrderNumber", mock.Anything, tenantID, "RO-2026-001").
			Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*rental.Order")).Return(nil)

		body := map[string]any{
			"order_number":   "RO-2026-001",
			"customer_id":    uuid.New().String(),
			"customer_name":  "Alice",
			"order_type":     "RENT",
			"total_amount":   "500",
			"deposit_amount": "100",
		}
		w := doRequest(newOrderRouter(repo), "POST", "/api/v1/orders", tenantID, body)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "RO-2026-001", data["order_number"])
		assert.Equal(t, "RESERVED", data["status"])
		repo.AssertExpectations(t)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		repo := new(MockOrderRepository)

		w := doRequest(newOrderRouter(repo), "POST", "/api/v1/orders", tenantID,
			map[string]any{"customer_name": "Alice"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("duplicate order number returns 409", func(t *testing.T) {
		repo := new(MockOrderRepository)
		existing := reservedOrder(t, tenantID)
		repo.On("FindByOrderNumber", mock.Anything, tenantID, "RO-2026-001").
			Return(existing, nil)

		body := map[string]any{
			"order_number": "RO-2026-001",
			"customer_id":  uuid.New().String(),
			"order_type":   "RENT",
			"total_amount": "500",
		}
		w := doRequest(newOrderRouter(repo), "POST", "/api/v1/orders", tenantID, body)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("invalid tenant header returns 400", func(t *testing.T) {
		repo := new(MockOrderRepository)
		engine := newOrderRouter(repo)

		req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(nil))
		req.Header.Set("X-Tenant-ID", "not-a-uuid")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns the order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		order := reservedOrder(t, tenantID)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)

		w := doRequest(newOrderRouter(repo), "GET", "/api/v1/orders/"+order.ID.String(), tenantID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, order.ID.String(), data["id"])
	})

	t.Run("unknown order returns 404", func(t *testing.T) {
		repo := new(MockOrderRepository)
		orderID := uuid.New()
		repo.On("FindByIDForTenant", mock.Anything, tenantID, orderID).
			Return(nil, shared.ErrNotFound)

		w := doRequest(newOrderRouter(repo), "GET", "/api/v1/orders/"+orderID.String(), tenantID, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("malformed ID returns 400", func(t *testing.T) {
		repo := new(MockOrderRepository)

		w := doRequest(newOrderRouter(repo), "GET", "/api/v1/orders/not-a-uuid", tenantID, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Lifecycle(t *testing.T) {
	tenantID := uuid.New()

	t.Run("pickup with empty body", func(t *testing.T) {
		repo := new(MockOrderRepository)
		order := reservedOrder(t, tenantID)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*rental.Order")).Return(nil)

		w := doRequest(newOrderRouter(repo), "POST", "/api/v1/orders/"+order.ID.String()+"/pickup", tenantID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "PICKUPED", data["status"])
	})

	t.Run("cancel carries the reason", func(t *testing.T) {
		repo := new(MockOrderRepository)
		order := reservedOrder(t, tenantID)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*rental.Order")).Return(nil)

		w := doRequest(newOrderRouter(repo), "POST", "/api/v1/orders/"+order.ID.String()+"/cancel", tenantID,
			map[string]any{"reason": "customer changed plans"})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "CANCELLED", data["status"])
		assert.Equal(t, "customer changed plans", data["cancel_reason"])
	})

	t.Run("pickup before creation returns 400", func(t *testing.T) {
		repo := new(MockOrderRepository)
		order := reservedOrder(t, tenantID)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)

		w := doRequest(newOrderRouter(repo), "POST", "/api/v1/orders/"+order.ID.String()+"/pickup", tenantID,
			map[string]any{"picked_up_at": "2000-01-01T00:00:00Z"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("invalid transition returns 422", func(t *testing.T) {
		repo := new(MockOrderRepository)
		order := reservedOrder(t, tenantID)
		repo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)

		// a reserved order cannot be returned before pickup
		w := doRequest(newOrderRouter(repo), "POST", "/api/v1/orders/"+order.ID.String()+"/return", tenantID, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestOrderHandler_List(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns orders with pagination meta", func(t *testing.T) {
		repo := new(MockOrderRepository)
		order := reservedOrder(t, tenantID)
		repo.On("FindAllForTenant", mock.Anything, tenantID, mock.Anything).
			Return([]rental.Order{*order}, nil)
		repo.On("CountForTenant", mock.Anything, tenantID, mock.Anything).
			Return(int64(1), nil)

		w := doRequest(newOrderRouter(repo), "GET", "/api/v1/orders?status=RESERVED", tenantID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
		assert.Equal(t, 20, resp.Meta.PageSize)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		repo := new(MockOrderRepository)

		w := doRequest(newOrderRouter(repo), "GET", "/api/v1/orders?status=SHIPPED", tenantID, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "FindAllForTenant")
	})
}
