package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohammadh73/restbucks-backend/internal/app/service"
	apperrors "github.com/mohammadh73/restbucks-backend/internal/errors"
	"github.com/mohammadh73/restbucks-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID     uint              `json:"product_id" binding:"required"`
	Customization map[string]string `json:"customization"`
}

// GetCart returns the user's priced cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to cart", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id":     userID,
		"count":       summary.Count,
		"total_price": summary.TotalPrice,
	})

	c.JSON(http.StatusOK, summary)
}

// AddToCart adds a product to the cart, replacing the customization when
// the product is already there
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to cart", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
	})

	entry, err := ctrl.cartService.AddToCart(userID, req.ProductID, req.Customization)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrInvalidCustomization) {
			log.Warn("Invalid customization for cart entry", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.BadRequest(c, apperrors.CartInvalidCustomization, "Invalid customization")
			return
		}
		if errors.Is(err, service.ErrCartConflict) {
			log.Warn("Concurrent cart update detected", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.Conflict(c, apperrors.ResourceConflict, "Cart changed concurrently, please retry")
			return
		}
		log.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to cart")
		return
	}

	log.Info("Product added to cart successfully", map[string]interface{}{
		"user_id":       userID,
		"product_id":    req.ProductID,
		"cart_entry_id": entry.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Product added to cart successfully",
		"cart_entry_id": entry.ID,
	})
}

// RemoveFromCart removes one entry from the cart
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove cart entry", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid cart entry ID format", map[string]interface{}{
			"user_id":       userID,
			"cart_entry_id": idStr,
			"error":         err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart entry ID")
		return
	}

	err = ctrl.cartService.RemoveFromCart(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCartEntryNotFound) {
			log.Warn("Cart entry not found for removal", map[string]interface{}{
				"user_id":       userID,
				"cart_entry_id": id,
			})
			apperrors.NotFound(c, apperrors.CartEntryNotFound, "Cart entry not found")
			return
		}
		log.Error("Failed to remove cart entry", err, map[string]interface{}{
			"user_id":       userID,
			"cart_entry_id": id,
		})
		apperrors.InternalError(c, "Failed to remove cart entry")
		return
	}

	log.Info("Cart entry removed successfully", map[string]interface{}{
		"user_id":       userID,
		"cart_entry_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart entry removed successfully",
	})
}

// ClearCart removes every entry from the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to clear cart", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	log.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}
