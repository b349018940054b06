package models

// Category represents a product category.
// Name and slug are both unique across the catalog.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
	Slug string `gorm:"size:100;uniqueIndex;not null"`

	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (c *Category) TableName() string {
	return "categories"
}
