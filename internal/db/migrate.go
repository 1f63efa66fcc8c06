package db

import (
	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.ProductItem{},
		&model.CartEntry{},
		&model.Order{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed loads the default drinks menu when the catalog is empty. The xlsx
// importer (cmd/seed) is the real provisioning path; this keeps fresh
// development databases usable.
func Seed() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding default menu...")

	menu := []model.Product{
		{
			Title:  "Latte",
			Price:  decimal.NewFromFloat(5.00),
			Option: "Milk",
			Items: []model.ProductItem{
				{Name: "skim"}, {Name: "semi"}, {Name: "whole"},
			},
		},
		{
			Title:  "Cappuccino",
			Price:  decimal.NewFromFloat(4.75),
			Option: "Size",
			Items: []model.ProductItem{
				{Name: "small"}, {Name: "medium"}, {Name: "large"},
			},
		},
		{
			Title:  "Espresso",
			Price:  decimal.NewFromFloat(3.00),
			Option: "Shots",
			Items: []model.ProductItem{
				{Name: "single"}, {Name: "double"}, {Name: "triple"},
			},
		},
		{
			Title:  "Hot Chocolate",
			Price:  decimal.NewFromFloat(4.25),
			Option: "Kind",
			Items: []model.ProductItem{
				{Name: "dark"}, {Name: "milk"},
			},
		},
		{
			Title: "Tea",
			Price: decimal.NewFromFloat(2.50),
		},
	}

	for _, product := range menu {
		if err := DB.Create(&product).Error; err != nil {
			logger.Error("Failed to seed product", err, map[string]interface{}{
				"title": product.Title,
			})
			return err
		}
	}

	logger.Info("Default menu seeded successfully", map[string]interface{}{
		"products": len(menu),
	})
	return nil
}
