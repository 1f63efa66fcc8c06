package service

import (
	"testing"
	"time"

	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/internal/app/repository"
	"github.com/mohammadh73/restbucks-backend/internal/db"
	"github.com/mohammadh73/restbucks-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 168*time.Hour)

	return authService, testDB
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("new@example.com", "longenough")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Stored hash verifies against the plain password
	var stored model.User
	require.NoError(t, testDB.Where("email = ?", "new@example.com").First(&stored).Error)
	assert.NotEqual(t, "longenough", stored.PasswordHash)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "longenough"))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("taken@example.com", "longenough")
	require.NoError(t, err)

	user, tokens, err := authService.Register("taken@example.com", "otherpassword")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Nil(t, user)
	assert.Nil(t, tokens)
}

func TestAuthService_Register_PasswordLengthBoundary(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	// Seven characters is rejected
	user, tokens, err := authService.Register("short@example.com", "1234567")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Nil(t, user)
	assert.Nil(t, tokens)

	// Seven multibyte characters is still seven characters
	user, _, err = authService.Register("short@example.com", "ñññññññ")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Nil(t, user)

	// Eight characters is accepted
	user, _, err = authService.Register("short@example.com", "12345678")
	assert.NoError(t, err)
	assert.NotNil(t, user)
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "longenough")
	require.NoError(t, err)

	user, tokens, err := authService.Login("login@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "longenough")
	require.NoError(t, err)

	user, tokens, err := authService.Login("login@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Nil(t, tokens)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, tokens, err := authService.Login("nobody@example.com", "whatever123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Nil(t, tokens)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}
