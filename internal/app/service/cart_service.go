package service

import (
	"errors"

	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/internal/app/repository"
	apperrors "github.com/mohammadh73/restbucks-backend/internal/errors"
	"github.com/mohammadh73/restbucks-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartEntryNotFound    = errors.New("cart entry not found")
	ErrInvalidCustomization = errors.New("invalid customization")
	ErrCartConflict         = errors.New("cart changed concurrently")
)

// CustomizationValidator checks a customization payload against the
// product it is for. The default validator only enforces item membership;
// tests and future option kinds can swap in their own.
type CustomizationValidator func(product *model.Product, customization map[string]string) error

// ValidateItemMembership rejects a selected item that the product's
// catalog does not list. Products without items accept any payload, and
// an absent selection is always fine.
func ValidateItemMembership(product *model.Product, customization map[string]string) error {
	selected, ok := customization[model.CustomizationItemKey]
	if !ok || selected == "" {
		return nil
	}
	if len(product.Items) == 0 {
		return nil
	}
	if !product.HasItem(selected) {
		return ErrInvalidCustomization
	}
	return nil
}

type CartService interface {
	GetUserCart(userID uint) (*CartSummary, error)
	AddToCart(userID, productID uint, customization map[string]string) (*model.CartEntry, error)
	RemoveFromCart(userID, entryID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	validate    CustomizationValidator
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	validator ...CustomizationValidator,
) CartService {
	validate := ValidateItemMembership
	if len(validator) > 0 && validator[0] != nil {
		validate = validator[0]
	}
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		validate:    validate,
	}
}

func (s *cartService) GetUserCart(userID uint) (*CartSummary, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	entries, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	summary := Summarize(entries)

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id":     userID,
		"count":       summary.Count,
		"total_price": summary.TotalPrice,
	})
	return &summary, nil
}

func (s *cartService) AddToCart(userID, productID uint, customization map[string]string) (*model.CartEntry, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	if err := s.validate(product, customization); err != nil {
		logger.Warn("Cannot add to cart: customization rejected", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	encoded, err := model.EncodeCustomization(customization)
	if err != nil {
		logger.Error("Failed to encode customization", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart entry", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	// One entry per (user, product); re-adding replaces the customization
	// instead of growing the cart.
	if existing != nil {
		logger.Debug("Updating existing cart entry", map[string]interface{}{
			"cart_entry_id": existing.ID,
		})
		existing.Customization = encoded
		if err := s.cartRepo.Update(existing); err != nil {
			logger.Error("Failed to update cart entry", err, map[string]interface{}{
				"cart_entry_id": existing.ID,
			})
			return nil, err
		}
		existing.Product = *product
		return existing, nil
	}

	entry := &model.CartEntry{
		UserID:        userID,
		ProductID:     productID,
		Customization: encoded,
	}

	if err := s.cartRepo.Create(entry); err != nil {
		// The unique index is the source of truth; a concurrent add for the
		// same (user, product) can slip past the existence check above.
		if apperrors.IsUniqueViolation(err) {
			logger.Warn("Cart entry already created concurrently", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrCartConflict
		}
		logger.Error("Failed to create cart entry", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	entry.Product = *product

	logger.Info("Cart entry added successfully", map[string]interface{}{
		"cart_entry_id": entry.ID,
	})
	return entry, nil
}

func (s *cartService) RemoveFromCart(userID, entryID uint) error {
	logger.Info("Removing cart entry", map[string]interface{}{
		"user_id":       userID,
		"cart_entry_id": entryID,
	})

	entry, err := s.cartRepo.FindByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart entry not found for removal", map[string]interface{}{
				"cart_entry_id": entryID,
			})
			return ErrCartEntryNotFound
		}
		logger.Error("Failed to fetch cart entry for removal", err, map[string]interface{}{
			"cart_entry_id": entryID,
		})
		return err
	}

	if entry.UserID != userID {
		logger.Warn("Cart entry removal denied: ownership mismatch", map[string]interface{}{
			"user_id":       userID,
			"cart_entry_id": entryID,
			"owner_id":      entry.UserID,
		})
		return ErrCartEntryNotFound
	}

	if err := s.cartRepo.Delete(entryID); err != nil {
		logger.Error("Failed to delete cart entry", err, map[string]interface{}{
			"cart_entry_id": entryID,
		})
		return err
	}

	logger.Info("Cart entry removed", map[string]interface{}{
		"cart_entry_id": entryID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
