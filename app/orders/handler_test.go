package orders

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mondaymerch/ecommerce-api/app/auth"
	"github.com/mondaymerch/ecommerce-api/models"
)

// --- Mock Repo ---

type MockOrderRepo struct {
	Order  *models.Order
	Orders []models.Order
	Err    error

	// Fields to capture call arguments
	lastCalledUser     *models.User
	lastCalledItems    []models.OrderItemRequest
	lastCalledShipping models.ShippingAddress
	lastCalledUserID   uint
}

func (m *MockOrderRepo) CreateOrder(_ context.Context, user *models.User, items []models.OrderItemRequest, shipping models.ShippingAddress) (*models.Order, error) {
	m.lastCalledUser = user
	m.lastCalledItems = items
	m.lastCalledShipping = shipping

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func (m *MockOrderRepo) ListForUser(_ context.Context, userID uint) ([]models.Order, error) {
	m.lastCalledUserID = userID

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Orders, nil
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *models.User {
	return &models.User{
		ID:        7,
		Email:     "shopper@example.com",
		FirstName: "Sam",
		LastName:  "Shopper",
		IsActive:  true,
	}
}

func testOrder() *models.Order {
	return &models.Order{
		ID:              42,
		UserID:          7,
		Status:          models.OrderStatusPending,
		TotalAmount:     decimal.RequireFromString("19.98"),
		ShippingStreet:  "123 Main St",
		ShippingCountry: "USA",
		CreatedAt:       time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		OrderItems: []models.OrderItem{
			{
				ID:              1,
				OrderID:         42,
				ProductID:       3,
				Quantity:        2,
				PriceAtPurchase: decimal.RequireFromString("9.99"),
				Product: models.Product{
					ID:         3,
					Title:      "Widget",
					Price:      decimal.RequireFromString("99.99"),
					CategoryID: 1,
					Category:   models.Category{ID: 1, Name: "Electronics", Slug: "electronics"},
				},
			},
		},
	}
}

func authedRequest(method, url, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	return req.WithContext(auth.WithUser(req.Context(), testUser()))
}

// --- Tests: POST /api/v1/orders ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		request            *http.Request
		mockRepoSetup      func() *MockOrderRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockOrderRepo)
	}{
		{
			name:    "Success",
			request: authedRequest("POST", "/api/v1/orders", `{"items":[{"product_id":3,"quantity":2}],"shipping_street":"9 Request Way"}`),
			mockRepoSetup: func() *MockOrderRepo {
				return &MockOrderRepo{Order: testOrder()}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp OrderResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, uint(42), resp.ID)
				assert.Equal(t, "PENDING", resp.Status)
				assert.Equal(t, 19.98, resp.TotalAmount)
				assert.Len(t, resp.OrderItems, 1)
				assert.Equal(t, 9.99, resp.OrderItems[0].PriceAtPurchase)
				assert.Equal(t, "Widget", resp.OrderItems[0].Product.Title)
				assert.Equal(t, "Electronics", resp.OrderItems[0].Product.Category.Name)
			},
			checkRepoCalls: func(t *testing.T, repo *MockOrderRepo) {
				assert.Equal(t, uint(7), repo.lastCalledUser.ID)
				assert.Equal(t, []models.OrderItemRequest{{ProductID: 3, Quantity: 2}}, repo.lastCalledItems)
				assert.Equal(t, "9 Request Way", repo.lastCalledShipping.Street)
			},
		},
		{
			name:    "Validation failure maps to 400 with the engine message",
			request: authedRequest("POST", "/api/v1/orders", `{"items":[{"product_id":3,"quantity":6}]}`),
			mockRepoSetup: func() *MockOrderRepo {
				return &MockOrderRepo{Err: &models.OrderValidationError{
					Reason:       models.ReasonInsufficientInventory,
					ProductID:    3,
					ProductTitle: "Widget",
					Available:    5,
					Requested:    6,
				}}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Contains(t, errResp["error"], "insufficient inventory")
				assert.Contains(t, errResp["error"], "Available: 5")
				assert.Contains(t, errResp["error"], "Requested: 6")
			},
		},
		{
			name:    "Unknown product maps to 400",
			request: authedRequest("POST", "/api/v1/orders", `{"items":[{"product_id":9999,"quantity":1}]}`),
			mockRepoSetup: func() *MockOrderRepo {
				return &MockOrderRepo{Err: &models.OrderValidationError{
					Reason:    models.ReasonProductNotFound,
					ProductID: 9999,
				}}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Contains(t, errResp["error"], "9999")
				assert.Contains(t, errResp["error"], "not found")
			},
		},
		{
			name:    "Storage failure maps to generic 500",
			request: authedRequest("POST", "/api/v1/orders", `{"items":[{"product_id":3,"quantity":1}]}`),
			mockRepoSetup: func() *MockOrderRepo {
				return &MockOrderRepo{Err: errors.New("connection reset")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.NotContains(t, errResp["error"], "connection reset", "internal detail must not leak")
			},
		},
		{
			name:               "Invalid JSON body",
			request:            authedRequest("POST", "/api/v1/orders", `{"items": [`),
			mockRepoSetup:      func() *MockOrderRepo { return &MockOrderRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCalls: func(t *testing.T, repo *MockOrderRepo) {
				assert.Nil(t, repo.lastCalledUser, "repo must not be called")
			},
		},
		{
			name:               "Empty item list",
			request:            authedRequest("POST", "/api/v1/orders", `{"items":[]}`),
			mockRepoSetup:      func() *MockOrderRepo { return &MockOrderRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCalls: func(t *testing.T, repo *MockOrderRepo) {
				assert.Nil(t, repo.lastCalledUser, "repo must not be called")
			},
		},
		{
			name:               "Non-positive quantity",
			request:            authedRequest("POST", "/api/v1/orders", `{"items":[{"product_id":3,"quantity":0}]}`),
			mockRepoSetup:      func() *MockOrderRepo { return &MockOrderRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCalls: func(t *testing.T, repo *MockOrderRepo) {
				assert.Nil(t, repo.lastCalledUser, "repo must not be called")
			},
		},
		{
			name:               "Missing identity",
			request:            httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"items":[{"product_id":3,"quantity":1}]}`)),
			mockRepoSetup:      func() *MockOrderRepo { return &MockOrderRepo{} },
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := tc.mockRepoSetup()
			handler := NewOrdersHandler(mockRepo, discardLogger())
			rec := httptest.NewRecorder()

			handler.HandleCreate(rec, tc.request)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, mockRepo)
			}
		})
	}
}

// --- Tests: GET /api/v1/orders ---

func TestHandleList(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := &MockOrderRepo{Orders: []models.Order{*testOrder()}}
		handler := NewOrdersHandler(mockRepo, discardLogger())
		rec := httptest.NewRecorder()

		handler.HandleList(rec, authedRequest("GET", "/api/v1/orders", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(7), mockRepo.lastCalledUserID)

		var resp []OrderResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, uint(42), resp[0].ID)
		assert.Equal(t, 19.98, resp[0].TotalAmount)
	})

	t.Run("Empty list", func(t *testing.T) {
		handler := NewOrdersHandler(&MockOrderRepo{}, discardLogger())
		rec := httptest.NewRecorder()

		handler.HandleList(rec, authedRequest("GET", "/api/v1/orders", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []OrderResponse
		err := json.NewDecoder(rec.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Len(t, resp, 0)
	})

	t.Run("Repository error", func(t *testing.T) {
		handler := NewOrdersHandler(&MockOrderRepo{Err: errors.New("db down")}, discardLogger())
		rec := httptest.NewRecorder()

		handler.HandleList(rec, authedRequest("GET", "/api/v1/orders", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Missing identity", func(t *testing.T) {
		handler := NewOrdersHandler(&MockOrderRepo{}, discardLogger())
		rec := httptest.NewRecorder()

		handler.HandleList(rec, httptest.NewRequest("GET", "/api/v1/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
