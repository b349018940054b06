// Package seed loads sample data into an empty database so a fresh
// checkout is usable immediately.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mondaymerch/ecommerce-api/models"
)

//go:embed seed_data.json
var seedData []byte

type seedFile struct {
	Categories []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"categories"`
	Products []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Price       string `json:"price"`
		Inventory   int    `json:"inventory"`
		Category    string `json:"category"`
	} `json:"products"`
	Users []struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		Phone         string `json:"phone"`
		StreetAddress string `json:"street_address"`
		City          string `json:"city"`
		State         string `json:"state"`
		PostalCode    string `json:"postal_code"`
		Country       string `json:"country"`
	} `json:"users"`
}

// IfEmpty seeds categories, products and users when the products table is
// empty. It runs in one transaction so a partially seeded database cannot
// occur.
func IfEmpty(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check for existing data: %w", err)
	}
	if count > 0 {
		log.Info("database already contains data, skipping seed")
		return nil
	}

	var data seedFile
	if err := json.Unmarshal(seedData, &data); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]uint, len(data.Categories))
		for _, c := range data.Categories {
			category := models.Category{Name: c.Name, Slug: c.Slug}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
			categories[c.Name] = category.ID
		}

		for _, p := range data.Products {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return fmt.Errorf("seed product %q: bad price %q: %w", p.Title, p.Price, err)
			}
			categoryID, ok := categories[p.Category]
			if !ok {
				return fmt.Errorf("seed product %q: unknown category %q", p.Title, p.Category)
			}
			product := models.Product{
				Title:       p.Title,
				Description: p.Description,
				Price:       price,
				Inventory:   p.Inventory,
				CategoryID:  categoryID,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("seed product %q: %w", p.Title, err)
			}
		}

		for _, u := range data.Users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("seed user %q: %w", u.Email, err)
			}
			user := models.User{
				Email:         u.Email,
				PasswordHash:  string(hash),
				FirstName:     u.FirstName,
				LastName:      u.LastName,
				Phone:         u.Phone,
				StreetAddress: u.StreetAddress,
				City:          u.City,
				State:         u.State,
				PostalCode:    u.PostalCode,
				Country:       u.Country,
				IsActive:      true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %q: %w", u.Email, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("database seeded",
		"categories", len(data.Categories),
		"products", len(data.Products),
		"users", len(data.Users),
	)
	return nil
}
