package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order represents a placed order. TotalAmount is computed once at creation
// and never recomputed. The shipping fields are a snapshot taken at creation
// time and stay frozen even if the user profile changes afterwards.
type Order struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	User        User            `gorm:"foreignKey:UserID"`
	Status      OrderStatus     `gorm:"size:50;index;not null;default:PENDING"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;check:total_amount >= 0"`

	ShippingStreet     string `gorm:"size:255"`
	ShippingCity       string `gorm:"size:100"`
	ShippingState      string `gorm:"size:100"`
	ShippingPostalCode string `gorm:"size:20"`
	ShippingCountry    string `gorm:"size:100"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. PriceAtPurchase is a snapshot of the
// product price at order time; it never changes after creation.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey"`
	OrderID         uint            `gorm:"index;not null"`
	ProductID       uint            `gorm:"index;not null"`
	Product         Product         `gorm:"foreignKey:ProductID"`
	Quantity        int             `gorm:"not null;check:quantity > 0"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
