package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	// Search matches the product title as a case-insensitive substring.
	Search string
	// Category restricts results to products whose category name equals it exactly.
	Category string
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetFilteredProducts returns one page of products together with the total
// number of rows matching the filters before pagination. Results are ordered
// by product id ascending; the storage default ordering is not contractual,
// so it is pinned here.
func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{}).Preload("Category")

	// Filter
	if filters.Search != "" {
		query = query.Where("LOWER(products.title) LIKE LOWER(?)", "%"+filters.Search+"%")
	}
	if filters.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", filters.Category)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.Order("products.id ASC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByIDs fetches all requested products in a single query, keyed by id.
// Missing ids are simply absent from the result map.
func (r *ProductsRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}
