package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog. Price is stored as an
// exact decimal; inventory is mutated only by order creation.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"size:200;index;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price >= 0"`
	Inventory   int             `gorm:"not null;default:0;check:inventory >= 0"`
	CategoryID  uint            `gorm:"index;not null"`
	Category    Category        `gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Product) TableName() string {
	return "products"
}
