// internals/features/users/service/auth_service.go
package service

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"booknetwork_backend/internals/configs"
	"booknetwork_backend/internals/errs"
	"booknetwork_backend/internals/features/users/dto"
	"booknetwork_backend/internals/features/users/model"
	"booknetwork_backend/internals/helpers/mailer"
)

const (
	activationCodeLength = 6
	activationCodeTTL    = 15 * time.Minute
)

type AuthService struct {
	DB     *gorm.DB
	Mailer *mailer.Mailer
}

func NewAuthService(db *gorm.DB, m *mailer.Mailer) *AuthService {
	return &AuthService{DB: db, Mailer: m}
}

/* =========================================================
   REGISTER
   ========================================================= */

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) error {
	var existing model.UserModel
	err := s.DB.WithContext(ctx).First(&existing, "user_email = ?", req.UserEmail).Error
	if err == nil {
		return errs.Conflict("User with this email already exists")
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.UserModel{
		UserFirstName: req.UserFirstName,
		UserLastName:  req.UserLastName,
		UserEmail:     req.UserEmail,
		UserPassword:  string(hash),
		UserEnabled:   false,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}

	return s.sendActivationEmail(ctx, &user)
}

/* =========================================================
   LOGIN
   ========================================================= */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	var user model.UserModel
	err := s.DB.WithContext(ctx).First(&user, "user_email = ?", req.UserEmail).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.LoginResponse{}, errs.NotPermitted("Invalid email or password")
		}
		return dto.LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.UserPassword)) != nil {
		return dto.LoginResponse{}, errs.NotPermitted("Invalid email or password")
	}
	if user.UserAccountLocked {
		return dto.LoginResponse{}, errs.NotPermitted("Account is locked")
	}
	if !user.UserEnabled {
		return dto.LoginResponse{}, errs.NotPermitted("Account is not activated yet")
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{
		Token:    token,
		UserID:   user.UserID,
		FullName: user.FullName(),
	}, nil
}

func (s *AuthService) issueToken(user *model.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.UserID.String(),
		"user_id":   user.UserID.String(),
		"full_name": user.FullName(),
		"iat":       now.Unix(),
		"exp":       now.Add(configs.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

/* =========================================================
   ACTIVATION
   ========================================================= */

func (s *AuthService) Activate(ctx context.Context, code string) error {
	token, user, err := s.lookupToken(ctx, code)
	if err != nil {
		return err
	}

	// The resend must survive the failure, so it happens before any
	// transaction is opened.
	if time.Now().After(token.TokenExpiresAt) {
		if mailErr := s.sendActivationEmail(ctx, user); mailErr != nil {
			log.Printf("[ERROR] resend activation mail: %v", mailErr)
		}
		return errs.Invalid("Activation token has expired. A new token has been sent to the same email")
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserModel{}).
			Where("user_id = ?", user.UserID).
			Update("user_enabled", true).Error; err != nil {
			return err
		}
		return spendToken(tx, token.TokenID)
	})
}

/* =========================================================
   PASSWORD RESET
   ========================================================= */

func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error {
	var user model.UserModel
	err := s.DB.WithContext(ctx).First(&user, "user_email = ?", req.UserEmail).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NotFound("User", uuid.Nil)
		}
		return err
	}
	return s.sendResetEmail(ctx, &user)
}

func (s *AuthService) ResetPassword(ctx context.Context, code string, req dto.ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmationPassword {
		return errs.Invalid("Passwords do not match")
	}

	token, user, err := s.lookupToken(ctx, code)
	if err != nil {
		return err
	}

	if time.Now().After(token.TokenExpiresAt) {
		if mailErr := s.sendResetEmail(ctx, user); mailErr != nil {
			log.Printf("[ERROR] resend reset mail: %v", mailErr)
		}
		return errs.Invalid("Reset token has expired. A new token has been sent to the same email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserModel{}).
			Where("user_id = ?", user.UserID).
			Update("user_password", string(hash)).Error; err != nil {
			return err
		}
		return spendToken(tx, token.TokenID)
	})
}

// lookupToken resolves an unspent code to its token row and user.
func (s *AuthService) lookupToken(ctx context.Context, code string) (*model.TokenModel, *model.UserModel, error) {
	var token model.TokenModel
	err := s.DB.WithContext(ctx).
		Where("token_value = ? AND token_validated_at IS NULL", code).
		Order("token_created_at DESC").
		First(&token).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errs.Invalid("Invalid token")
		}
		return nil, nil, err
	}

	var user model.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "user_id = ?", token.TokenUserID).Error; err != nil {
		return nil, nil, err
	}
	return &token, &user, nil
}

func spendToken(tx *gorm.DB, tokenID uuid.UUID) error {
	now := time.Now()
	return tx.Model(&model.TokenModel{}).
		Where("token_id = ?", tokenID).
		Update("token_validated_at", &now).Error
}

/* =========================================================
   Internal
   ========================================================= */

func (s *AuthService) sendActivationEmail(ctx context.Context, user *model.UserModel) error {
	code, err := s.generateAndSaveToken(ctx, user.UserID)
	if err != nil {
		return err
	}
	return s.Mailer.Send(
		user.UserEmail, user.FullName(),
		mailer.TemplateActivateAccount,
		configs.ActivationURL, code,
		"Account activation",
	)
}

func (s *AuthService) sendResetEmail(ctx context.Context, user *model.UserModel) error {
	code, err := s.generateAndSaveToken(ctx, user.UserID)
	if err != nil {
		return err
	}
	return s.Mailer.Send(
		user.UserEmail, user.FullName(),
		mailer.TemplateForgotPassword,
		configs.ResetURL, code,
		"Password reset",
	)
}

func (s *AuthService) generateAndSaveToken(ctx context.Context, userID uuid.UUID) (string, error) {
	code, err := generateActivationCode(activationCodeLength)
	if err != nil {
		return "", err
	}
	token := model.TokenModel{
		TokenValue:     code,
		TokenUserID:    userID,
		TokenExpiresAt: time.Now().Add(activationCodeTTL),
	}
	if err := s.DB.WithContext(ctx).Create(&token).Error; err != nil {
		return "", err
	}
	return code, nil
}

func generateActivationCode(length int) (string, error) {
	const digits = "0123456789"
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		out[i] = digits[n.Int64()]
	}
	return string(out), nil
}
