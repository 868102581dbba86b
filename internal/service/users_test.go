package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		FirstName:   "Maria",
		LastName:    "Santos",
		Email:       "maria@example.com",
		Password:    "correct-horse-battery",
		DateOfBirth: "1992-03-14",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	user, err := svc.Register(context.Background(), registerRequest())
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse-battery")))
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	_, err := svc.Register(context.Background(), registerRequest())
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateEmail))
	assert.Len(t, store.users, 1)
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	_, err := svc.Register(context.Background(), registerRequest())
	assert.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "maria@example.com", "correct-horse-battery")
	assert.NoError(t, err)
	assert.Equal(t, "maria@example.com", user.Email)

	// wrong password and unknown account are indistinguishable
	_, err = svc.Authenticate(context.Background(), "maria@example.com", "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "correct-horse-battery")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestChangePasswordValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	user, err := svc.Register(context.Background(), registerRequest())
	assert.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, &models.ChangePasswordRequest{
		CurrentPassword:    "wrong",
		NewPassword:        "a-new-password",
		ConfirmNewPassword: "a-new-password",
	})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	err = svc.ChangePassword(context.Background(), user.ID, &models.ChangePasswordRequest{
		CurrentPassword:    "correct-horse-battery",
		NewPassword:        "a-new-password",
		ConfirmNewPassword: "different",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	err = svc.ChangePassword(context.Background(), user.ID, &models.ChangePasswordRequest{
		CurrentPassword:    "correct-horse-battery",
		NewPassword:        "correct-horse-battery",
		ConfirmNewPassword: "correct-horse-battery",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	err = svc.ChangePassword(context.Background(), user.ID, &models.ChangePasswordRequest{
		CurrentPassword:    "correct-horse-battery",
		NewPassword:        "a-new-password",
		ConfirmNewPassword: "a-new-password",
	})
	assert.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "maria@example.com", "a-new-password")
	assert.NoError(t, err)
}
