package repository

import (
	"time"

	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(entry *model.CartEntry) error
	FindByUserID(userID uint) ([]model.CartEntry, error)
	FindByID(id uint) (*model.CartEntry, error)
	FindByUserAndProduct(userID, productID uint) (*model.CartEntry, error)
	Update(entry *model.CartEntry) error
	Delete(id uint) error
	DeleteByUserID(userID uint) error
	DeleteIdleSince(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(entry *model.CartEntry) error {
	logger.Debug("Creating cart entry in database", map[string]interface{}{
		"user_id":    entry.UserID,
		"product_id": entry.ProductID,
	})

	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create cart entry in database", err, map[string]interface{}{
			"user_id":    entry.UserID,
			"product_id": entry.ProductID,
		})
		return err
	}

	logger.Debug("Cart entry created in database", map[string]interface{}{
		"cart_entry_id": entry.ID,
		"user_id":       entry.UserID,
		"product_id":    entry.ProductID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartEntry, error) {
	logger.Debug("Finding cart entries by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var entries []model.CartEntry
	err := r.db.Where("user_id = ?", userID).
		Preload("Product.Items").
		Order("id").
		Find(&entries).Error
	if err != nil {
		logger.Error("Failed to find cart entries by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart entries found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(entries),
	})
	return entries, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartEntry, error) {
	logger.Debug("Finding cart entry by ID in database", map[string]interface{}{
		"cart_entry_id": id,
	})

	var entry model.CartEntry
	if err := r.db.Preload("Product.Items").First(&entry, id).Error; err != nil {
		logger.Error("Failed to find cart entry by ID in database", err, map[string]interface{}{
			"cart_entry_id": id,
		})
		return nil, err
	}

	return &entry, nil
}

func (r *cartRepository) FindByUserAndProduct(userID, productID uint) (*model.CartEntry, error) {
	logger.Debug("Finding cart entry by user and product in database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	var entry model.CartEntry
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&entry).Error
	if err != nil {
		logger.Error("Failed to find cart entry by user and product in database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	return &entry, nil
}

func (r *cartRepository) Update(entry *model.CartEntry) error {
	logger.Debug("Updating cart entry in database", map[string]interface{}{
		"cart_entry_id": entry.ID,
		"user_id":       entry.UserID,
		"product_id":    entry.ProductID,
	})

	if err := r.db.Save(entry).Error; err != nil {
		logger.Error("Failed to update cart entry in database", err, map[string]interface{}{
			"cart_entry_id": entry.ID,
			"user_id":       entry.UserID,
		})
		return err
	}

	return nil
}

func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart entry from database", map[string]interface{}{
		"cart_entry_id": id,
	})

	if err := r.db.Delete(&model.CartEntry{}, id).Error; err != nil {
		logger.Error("Failed to delete cart entry from database", err, map[string]interface{}{
			"cart_entry_id": id,
		})
		return err
	}

	return nil
}

// DeleteByUserID empties a user's cart. Deleting an already-empty cart is
// a no-op, not an error.
func (r *cartRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Deleting cart entries by user ID from database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Where("user_id = ?", userID).Delete(&model.CartEntry{}).Error; err != nil {
		logger.Error("Failed to delete cart entries by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	return nil
}

// DeleteIdleSince removes entries not touched since cutoff; used by the
// cart janitor.
func (r *cartRepository) DeleteIdleSince(cutoff time.Time) (int64, error) {
	logger.Debug("Deleting idle cart entries from database", map[string]interface{}{
		"cutoff": cutoff,
	})

	result := r.db.Where("updated_at < ?", cutoff).Delete(&model.CartEntry{})
	if result.Error != nil {
		logger.Error("Failed to delete idle cart entries from database", result.Error, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, result.Error
	}

	logger.Debug("Idle cart entries deleted from database", map[string]interface{}{
		"cutoff": cutoff,
		"count":  result.RowsAffected,
	})
	return result.RowsAffected, nil
}
