package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndAuthenticate(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewUserService()

	user, err := svc.Register(ctx, "Ali Usta", "ali@example.com", "gizli-sifre", false)
	require.NoError(t, err)
	assert.NotEqual(t, "gizli-sifre", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "ali@example.com", "gizli-sifre")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Son giriş zamanı damgalanır.
	fresh, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLoginAt)

	_, err = svc.Authenticate(ctx, "ali@example.com", "yanlis")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "yok@example.com", "gizli-sifre")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserRegisterValidation(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewUserService()

	_, err := svc.Register(ctx, "Kısa", "kisa@example.com", "1234567", false)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, "Ali", "ali@example.com", "gizli-sifre", false)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Ali 2", "ali@example.com", "gizli-sifre", false)
	assert.ErrorIs(t, err, ErrUserEmailTaken)
}

func TestUserInactiveCannotAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewUserService()

	user, err := svc.Register(ctx, "Pasif", "pasif@example.com", "gizli-sifre", false)
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = svc.Authenticate(ctx, "pasif@example.com", "gizli-sifre")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestUserUpdatePassword(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewUserService()

	user, err := svc.Register(ctx, "Ali", "ali@example.com", "eski-sifre", false)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePassword(ctx, user.ID, "yanlis-eski", "yeni-sifre"), ErrCurrentPasswordBad)
	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "eski-sifre", "yeni-sifre"))

	_, err = svc.Authenticate(ctx, "ali@example.com", "yeni-sifre")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "ali@example.com", "eski-sifre")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
