// Package orders exposes order placement and retrieval for the
// authenticated user.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mondaymerch/ecommerce-api/app/api"
	"github.com/mondaymerch/ecommerce-api/app/auth"
	"github.com/mondaymerch/ecommerce-api/database"
	"github.com/mondaymerch/ecommerce-api/models"
)

type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items              []OrderItemInput `json:"items"`
	ShippingStreet     string           `json:"shipping_street"`
	ShippingCity       string           `json:"shipping_city"`
	ShippingState      string           `json:"shipping_state"`
	ShippingPostalCode string           `json:"shipping_postal_code"`
	ShippingCountry    string           `json:"shipping_country"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Product struct {
	ID         uint     `json:"id"`
	Title      string   `json:"title"`
	Price      float64  `json:"price"`
	CategoryID uint     `json:"category_id"`
	Category   Category `json:"category"`
}

type OrderItemResponse struct {
	ID              uint    `json:"id"`
	ProductID       uint    `json:"product_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
	Product         Product `json:"product"`
}

type OrderResponse struct {
	ID                 uint                `json:"id"`
	UserID             uint                `json:"user_id"`
	Status             string              `json:"status"`
	TotalAmount        float64             `json:"total_amount"`
	ShippingStreet     string              `json:"shipping_street,omitempty"`
	ShippingCity       string              `json:"shipping_city,omitempty"`
	ShippingState      string              `json:"shipping_state,omitempty"`
	ShippingPostalCode string              `json:"shipping_postal_code,omitempty"`
	ShippingCountry    string              `json:"shipping_country,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	OrderItems         []OrderItemResponse `json:"order_items"`
}

// OrderProvider is the slice of the orders repository the handlers need.
type OrderProvider interface {
	CreateOrder(ctx context.Context, user *models.User, items []models.OrderItemRequest, shipping models.ShippingAddress) (*models.Order, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Order, error)
}

type OrdersHandler struct {
	repo OrderProvider
	log  *slog.Logger
}

func NewOrdersHandler(r OrderProvider, log *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		repo: r,
		log:  log,
	}
}

// HandleCreate places an order for the current user. Validation failures
// from the transaction engine surface as 400 with the engine's message;
// anything else is a generic 500.
func (h *OrdersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	var input CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if len(input.Items) == 0 {
		api.Error(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}
	items := make([]models.OrderItemRequest, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity < 1 {
			api.Error(w, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
		items[i] = models.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	shipping := models.ShippingAddress{
		Street:     input.ShippingStreet,
		City:       input.ShippingCity,
		State:      input.ShippingState,
		PostalCode: input.ShippingPostalCode,
		Country:    input.ShippingCountry,
	}

	order, err := h.repo.CreateOrder(r.Context(), user, items, shipping)
	if err != nil {
		var vErr *models.OrderValidationError
		if errors.As(err, &vErr) {
			h.log.Warn("order rejected", "user_id", user.ID, "reason", vErr.Reason, "product_id", vErr.ProductID)
			api.Error(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.log.Error("order creation failed", "error", err, "user_id", user.ID)
		if database.SchemaOutOfDate(err) {
			api.Error(w, http.StatusInternalServerError, "Database schema is out of date. Please restart the application to apply migrations.")
			return
		}
		api.Error(w, http.StatusInternalServerError, "An error occurred while creating the order")
		return
	}

	h.log.Info("order created", "order_id", order.ID, "user_id", user.ID, "total", order.TotalAmount)
	api.JSON(w, http.StatusCreated, toOrderResponse(order))
}

// HandleList returns the current user's orders, newest first.
func (h *OrdersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	orders, err := h.repo.ListForUser(r.Context(), user.ID)
	if err != nil {
		h.log.Error("order listing failed", "error", err, "user_id", user.ID)
		api.Error(w, http.StatusInternalServerError, "An error occurred while fetching orders")
		return
	}

	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = toOrderResponse(&orders[i])
	}

	api.JSON(w, http.StatusOK, response)
}

func toOrderResponse(order *models.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.OrderItems))
	for i, item := range order.OrderItems {
		items[i] = OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase.InexactFloat64(),
			Product: Product{
				ID:         item.Product.ID,
				Title:      item.Product.Title,
				Price:      item.Product.Price.InexactFloat64(),
				CategoryID: item.Product.CategoryID,
				Category: Category{
					ID:   item.Product.Category.ID,
					Name: item.Product.Category.Name,
					Slug: item.Product.Category.Slug,
				},
			},
		}
	}

	return OrderResponse{
		ID:                 order.ID,
		UserID:             order.UserID,
		Status:             string(order.Status),
		TotalAmount:        order.TotalAmount.InexactFloat64(),
		ShippingStreet:     order.ShippingStreet,
		ShippingCity:       order.ShippingCity,
		ShippingState:      order.ShippingState,
		ShippingPostalCode: order.ShippingPostalCode,
		ShippingCountry:    order.ShippingCountry,
		CreatedAt:          order.CreatedAt,
		OrderItems:         items,
	}
}
