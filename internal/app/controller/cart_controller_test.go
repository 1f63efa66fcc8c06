package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/internal/app/service"
	apperrors "github.com/mohammadh73/restbucks-backend/internal/errors"
	"github.com/mohammadh73/restbucks-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
)

// stubCartService returns a fixed error from AddToCart; the other
// operations are unused by the tests below.
type stubCartService struct {
	addErr error
}

func (s stubCartService) GetUserCart(userID uint) (*service.CartSummary, error) {
	return &service.CartSummary{}, nil
}

func (s stubCartService) AddToCart(userID, productID uint, customization map[string]string) (*model.CartEntry, error) {
	return nil, s.addErr
}

func (s stubCartService) RemoveFromCart(userID, entryID uint) error {
	return nil
}

func (s stubCartService) ClearCart(userID uint) error {
	return nil
}

func setupCartControllerTest(svc service.CartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewCartController(svc)
	router.POST("/cart", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uint(1))
	}, ctrl.AddToCart)
	return router
}

func postCart(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/cart", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartController_AddToCart_ConcurrentConflict(t *testing.T) {
	router := setupCartControllerTest(stubCartService{addErr: service.ErrCartConflict})

	w := postCart(router, `{"product_id": 1}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ResourceConflict)
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	router := setupCartControllerTest(stubCartService{addErr: service.ErrProductNotFound})

	w := postCart(router, `{"product_id": 9999}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ProductNotFound)
}
