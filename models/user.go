package models

import "time"

// User represents a customer account. The address fields act as shipping
// defaults: order creation copies them when the request leaves a shipping
// field empty.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null"`
	Phone        string `gorm:"size:20"`

	StreetAddress string `gorm:"size:255"`
	City          string `gorm:"size:100"`
	State         string `gorm:"size:100"`
	PostalCode    string `gorm:"size:20"`
	Country       string `gorm:"size:100;default:USA"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Orders []Order `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) TableName() string {
	return "users"
}
