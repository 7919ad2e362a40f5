package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"booknetwork_backend/internals/errs"
	"booknetwork_backend/internals/features/users/dto"
	"booknetwork_backend/internals/features/users/model"
	"booknetwork_backend/internals/helpers/mailer"
	"booknetwork_backend/internals/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	// no SMTP host configured, the mailer logs and skips delivery
	return NewAuthService(db, mailer.NewFromEnv()), db
}

func latestToken(t *testing.T, db *gorm.DB, user model.UserModel) model.TokenModel {
	t.Helper()
	var token model.TokenModel
	require.NoError(t, db.
		Where("token_user_id = ?", user.UserID).
		Order("token_created_at DESC").
		First(&token).Error)
	return token
}

func registerUser(t *testing.T, svc *AuthService, email string) model.UserModel {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), dto.RegisterRequest{
		UserFirstName: "Jane",
		UserLastName:  "Doe",
		UserEmail:     email,
		UserPassword:  "s3cretpass",
	}))
	var user model.UserModel
	require.NoError(t, svc.DB.First(&user, "user_email = ?", email).Error)
	return user
}

func TestRegisterCreatesDisabledUserWithToken(t *testing.T) {
	svc, db := newAuthService(t)
	user := registerUser(t, svc, "jane@example.com")

	assert.False(t, user.UserEnabled)
	assert.NotEqual(t, "s3cretpass", user.UserPassword)

	token := latestToken(t, db, user)
	assert.Len(t, token.TokenValue, 6)
	assert.True(t, token.TokenExpiresAt.After(time.Now()))
	assert.Nil(t, token.TokenValidatedAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	registerUser(t, svc, "jane@example.com")

	err := svc.Register(context.Background(), dto.RegisterRequest{
		UserFirstName: "Other",
		UserLastName:  "Person",
		UserEmail:     "jane@example.com",
		UserPassword:  "whatever1",
	})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestActivateAndLogin(t *testing.T) {
	svc, db := newAuthService(t)
	user := registerUser(t, svc, "jane@example.com")

	ctx := context.Background()

	// not activated yet
	_, err := svc.Login(ctx, dto.LoginRequest{UserEmail: "jane@example.com", UserPassword: "s3cretpass"})
	require.Error(t, err)
	assert.True(t, errs.IsNotPermitted(err))

	token := latestToken(t, db, user)
	require.NoError(t, svc.Activate(ctx, token.TokenValue))

	var activated model.UserModel
	require.NoError(t, db.First(&activated, "user_id = ?", user.UserID).Error)
	assert.True(t, activated.UserEnabled)

	resp, err := svc.Login(ctx, dto.LoginRequest{UserEmail: "jane@example.com", UserPassword: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.UserID, resp.UserID)
	assert.Equal(t, "Jane Doe", resp.FullName)

	// a consumed token cannot activate again
	err = svc.Activate(ctx, token.TokenValue)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db := newAuthService(t)
	user := registerUser(t, svc, "jane@example.com")
	require.NoError(t, db.Model(&model.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_enabled", true).Error)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		UserEmail:    "jane@example.com",
		UserPassword: "wrongpass1",
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotPermitted(err))
}

func TestActivateExpiredTokenResends(t *testing.T) {
	svc, db := newAuthService(t)
	user := registerUser(t, svc, "jane@example.com")

	token := latestToken(t, db, user)
	require.NoError(t, db.Model(&model.TokenModel{}).
		Where("token_id = ?", token.TokenID).
		Update("token_expires_at", time.Now().Add(-time.Minute)).Error)

	err := svc.Activate(context.Background(), token.TokenValue)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// a fresh token was issued for the same user
	fresh := latestToken(t, db, user)
	assert.NotEqual(t, token.TokenID, fresh.TokenID)
	assert.True(t, fresh.TokenExpiresAt.After(time.Now()))

	var stillDisabled model.UserModel
	require.NoError(t, db.First(&stillDisabled, "user_id = ?", user.UserID).Error)
	assert.False(t, stillDisabled.UserEnabled)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, db := newAuthService(t)
	user := registerUser(t, svc, "jane@example.com")
	require.NoError(t, db.Model(&model.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_enabled", true).Error)

	ctx := context.Background()

	err := svc.ResetPassword(ctx, "whatever", dto.ResetPasswordRequest{
		NewPassword:          "newpass123",
		ConfirmationPassword: "different1",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.EqualError(t, err, "Passwords do not match")

	require.NoError(t, svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{UserEmail: "jane@example.com"}))
	token := latestToken(t, db, user)

	require.NoError(t, svc.ResetPassword(ctx, token.TokenValue, dto.ResetPasswordRequest{
		NewPassword:          "newpass123",
		ConfirmationPassword: "newpass123",
	}))

	_, err = svc.Login(ctx, dto.LoginRequest{UserEmail: "jane@example.com", UserPassword: "s3cretpass"})
	require.Error(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{UserEmail: "jane@example.com", UserPassword: "newpass123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{UserEmail: "nobody@example.com"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
