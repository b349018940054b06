package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// DefaultShippingCountry is applied when neither the request nor the user
// profile provides a country.
const DefaultShippingCountry = "USA"

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	ProductID uint
	Quantity  int
}

// ShippingAddress carries the request-supplied shipping fields. Empty fields
// fall back to the corresponding user profile values at order creation.
type ShippingAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Reasons carried by OrderValidationError.
const (
	ReasonProductNotFound       = "product not found"
	ReasonInsufficientInventory = "insufficient inventory"
)

// OrderValidationError reports a caller-correctable problem with the
// submitted items. When one is returned the whole transaction has been
// rolled back and nothing was persisted.
type OrderValidationError struct {
	Reason       string
	ProductID    uint
	ProductTitle string
	Available    int
	Requested    int
}

func (e *OrderValidationError) Error() string {
	if e.Reason == ReasonInsufficientInventory {
		return fmt.Sprintf("insufficient inventory for product %q. Available: %d, Requested: %d",
			e.ProductTitle, e.Available, e.Requested)
	}
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

// CreateOrder places an order for the given user inside a single
// transaction: it batch-fetches the referenced products, validates every
// line in submission order, computes the total with exact decimal
// arithmetic, persists the order with its price snapshots, and decrements
// inventory. Any failure rolls the whole transaction back.
//
// Inventory is decremented with a conditional UPDATE guarded on the current
// stock, so a concurrent order that depleted a product between the batch
// fetch and the decrement fails validation instead of driving inventory
// negative.
func (r *OrdersRepository) CreateOrder(ctx context.Context, user *User, items []OrderItemRequest, shipping ShippingAddress) (*Order, error) {
	var orderID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Batch-fetch all referenced products in one query.
		ids := make([]uint, 0, len(items))
		seen := make(map[uint]bool, len(items))
		for _, item := range items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}

		var fetched []Product
		if err := tx.Where("id IN ?", ids).Find(&fetched).Error; err != nil {
			return err
		}
		products := make(map[uint]Product, len(fetched))
		for _, p := range fetched {
			products[p.ID] = p
		}

		// Validate each line in the order it was submitted and accumulate
		// the total.
		total := decimal.Zero
		for _, item := range items {
			product, ok := products[item.ProductID]
			if !ok {
				return &OrderValidationError{
					Reason:    ReasonProductNotFound,
					ProductID: item.ProductID,
				}
			}
			if product.Inventory < item.Quantity {
				return &OrderValidationError{
					Reason:       ReasonInsufficientInventory,
					ProductID:    product.ID,
					ProductTitle: product.Title,
					Available:    product.Inventory,
					Requested:    item.Quantity,
				}
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order := Order{
			UserID:             user.ID,
			Status:             OrderStatusPending,
			TotalAmount:        total,
			ShippingStreet:     firstNonEmpty(shipping.Street, user.StreetAddress),
			ShippingCity:       firstNonEmpty(shipping.City, user.City),
			ShippingState:      firstNonEmpty(shipping.State, user.State),
			ShippingPostalCode: firstNonEmpty(shipping.PostalCode, user.PostalCode),
			ShippingCountry:    firstNonEmpty(shipping.Country, user.Country, DefaultShippingCountry),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]OrderItem, len(items))
		for i, item := range items {
			product := products[item.ProductID]
			orderItems[i] = OrderItem{
				OrderID:         order.ID,
				ProductID:       product.ID,
				Quantity:        item.Quantity,
				PriceAtPurchase: product.Price,
			}
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		for _, item := range items {
			res := tx.Model(&Product{}).
				Where("id = ? AND inventory >= ?", item.ProductID, item.Quantity).
				Update("inventory", gorm.Expr("inventory - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Stock ran out under us, either concurrently or because
				// the same product appears on several lines.
				var current Product
				if err := tx.First(&current, item.ProductID).Error; err != nil {
					return err
				}
				return &OrderValidationError{
					Reason:       ReasonInsufficientInventory,
					ProductID:    current.ID,
					ProductTitle: current.Title,
					Available:    current.Inventory,
					Requested:    item.Quantity,
				}
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Re-read the committed order fully hydrated for response shaping.
	return r.GetByID(ctx, orderID)
}

// GetByID returns one order with its line items, products and categories
// eagerly loaded.
func (r *OrdersRepository) GetByID(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems.Product.Category").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListForUser returns all orders of a user, newest first, fully hydrated.
func (r *OrdersRepository) ListForUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("OrderItems.Product.Category").
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
