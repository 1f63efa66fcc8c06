package service

import (
	"testing"

	"github.com/lib/pq"
	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/internal/app/repository"
	"github.com/mohammadh73/restbucks-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	product := &model.Product{
		Title:  "Latte",
		Price:  decimal.RequireFromString("5.00"),
		Option: "Milk",
		Items: []model.ProductItem{
			{Name: "skim"}, {Name: "semi"}, {Name: "whole"},
		},
	}
	require.NoError(t, testDB.Create(product).Error)

	return cartService, user, product, testDB
}

func TestCartService_GetUserCart_Empty(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.TotalPrice.IsZero())
	assert.Len(t, summary.Products, 0)
}

func TestCartService_AddToCart_Success(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	entry, err := cartService.AddToCart(user.ID, product.ID, map[string]string{"item": "skim"})
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	require.Len(t, summary.Products, 1)
	assert.Equal(t, "Latte", summary.Products[0].Title)
	assert.Equal(t, "skim", summary.Products[0].SelectedItem)
}

func TestCartService_AddToCart_NoCustomization(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, nil)
	require.NoError(t, err)

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Products, 1)
	assert.Equal(t, model.UnknownItemLabel, summary.Products[0].SelectedItem)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	entry, err := cartService.AddToCart(user.ID, 9999, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, entry)
}

func TestCartService_AddToCart_InvalidCustomization(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	entry, err := cartService.AddToCart(user.ID, product.ID, map[string]string{"item": "oat"})
	assert.ErrorIs(t, err, ErrInvalidCustomization)
	assert.Nil(t, entry)
}

func TestCartService_AddToCart_ExistingEntryReplacesCustomization(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	first, err := cartService.AddToCart(user.ID, product.ID, map[string]string{"item": "skim"})
	require.NoError(t, err)

	second, err := cartService.AddToCart(user.ID, product.ID, map[string]string{"item": "whole"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	require.Len(t, summary.Products, 1)
	assert.Equal(t, "whole", summary.Products[0].SelectedItem)
}

func TestCartService_AddToCart_CustomValidator(t *testing.T) {
	_, user, product, testDB := setupCartServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	acceptAll := func(*model.Product, map[string]string) error { return nil }
	permissive := NewCartService(cartRepo, productRepo, acceptAll)

	_, err := permissive.AddToCart(user.ID, product.ID, map[string]string{"item": "oat"})
	assert.NoError(t, err)
}

// racingCartRepo simulates a concurrent add that wins between the
// existence check and the insert.
type racingCartRepo struct {
	repository.CartRepository
}

func (racingCartRepo) FindByUserAndProduct(userID, productID uint) (*model.CartEntry, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingCartRepo) Create(entry *model.CartEntry) error {
	return &pq.Error{Code: "23505", Constraint: "idx_cart_user_product"}
}

func TestCartService_AddToCart_ConcurrentDuplicate(t *testing.T) {
	_, user, product, testDB := setupCartServiceTest(t)

	productRepo := repository.NewProductRepository(testDB)
	racy := NewCartService(racingCartRepo{}, productRepo)

	entry, err := racy.AddToCart(user.ID, product.ID, nil)
	assert.ErrorIs(t, err, ErrCartConflict)
	assert.Nil(t, entry)
}

func TestCartService_RemoveFromCart_NotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	err := cartService.RemoveFromCart(user.ID, 9999)
	assert.ErrorIs(t, err, ErrCartEntryNotFound)
}

func TestCartService_RemoveFromCart_WrongUser(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	entry, err := cartService.AddToCart(user.ID, product.ID, nil)
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(other).Error)

	err = cartService.RemoveFromCart(other.ID, entry.ID)
	assert.ErrorIs(t, err, ErrCartEntryNotFound)

	// Owner can still remove it
	assert.NoError(t, cartService.RemoveFromCart(user.ID, entry.ID))
}

func TestCartService_ClearCart_Idempotent(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, nil)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(user.ID))

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)

	// Clearing twice is fine
	assert.NoError(t, cartService.ClearCart(user.ID))
}
