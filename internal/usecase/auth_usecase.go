package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sachin24864/RealEstate-Website/internal/auth"
	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// decoyHash is compared against on unknown emails so both login failures
// cost one bcrypt round.
var decoyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
	return hash
})

// Mailer sends plain-text mail. Satisfied by the SMTP adapter.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, bodyText string) error
}

type AuthUseCase struct {
	admins repository.AdminRepository
	tokens *auth.TokenManager
	mailer Mailer
	// inbox receives reset passwords; empty means the admin's own address.
	inbox  string
	logger *zap.Logger
}

func NewAuthUseCase(admins repository.AdminRepository, tokens *auth.TokenManager, mailer Mailer, inbox string, log *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		admins: admins,
		tokens: tokens,
		mailer: mailer,
		inbox:  inbox,
		logger: log.Named("AuthUseCase"),
	}
}

// Login verifies credentials and returns the admin with a signed session token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.Admin, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", NewValidationError("Email and password are required")
	}

	admin, err := uc.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(password))
			uc.logger.Info("Login attempt for unknown email")
			return nil, "", ErrInvalidCredentials
		}
		uc.logger.Error("Failed to get admin by email", zap.Error(err))
		return nil, "", fmt.Errorf("AuthUseCase.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		uc.logger.Info("Invalid password on login", zap.String("admin_id", admin.ID))
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		uc.logger.Error("Failed to issue session token", zap.String("admin_id", admin.ID), zap.Error(err))
		return nil, "", fmt.Errorf("AuthUseCase.Login: %w", err)
	}
	return admin, token, nil
}

func (uc *AuthUseCase) VerifyToken(token string) (*auth.Claims, error) {
	return uc.tokens.Parse(token)
}

// ForgotPassword replaces the admin's password with a random one and mails it.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewValidationError("Email is required")
	}

	admin, err := uc.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAdminNotFound
		}
		uc.logger.Error("Failed to get admin by email", zap.Error(err))
		return fmt.Errorf("AuthUseCase.ForgotPassword: %w", err)
	}
	if admin.Role != entity.RoleAdmin {
		return ErrAdminNotFound
	}

	// Without a way to deliver it, a new password would lock the admin out.
	if uc.mailer == nil {
		uc.logger.Error("Password reset requested but no mailer is configured", zap.String("admin_id", admin.ID))
		return fmt.Errorf("AuthUseCase.ForgotPassword: %w", ErrMailerNotConfigured)
	}

	password, err := generatePassword()
	if err != nil {
		return fmt.Errorf("AuthUseCase.ForgotPassword: %w", err)
	}
	if err := uc.setPassword(ctx, admin.ID, password); err != nil {
		return fmt.Errorf("AuthUseCase.ForgotPassword: %w", err)
	}

	to := uc.inbox
	if to == "" {
		to = admin.Email
	}
	body := fmt.Sprintf("Hello %s,\n\nYour password has been reset. Your new password is: %s\n\nPlease log in and keep it safe.\n", admin.Name, password)
	if err := uc.mailer.Send(ctx, []string{to}, "Your Password Has Been Reset", body); err != nil {
		uc.logger.Error("Failed to send password reset email, restoring previous password", zap.String("admin_id", admin.ID), zap.Error(err))
		if restoreErr := uc.admins.UpdatePassword(context.WithoutCancel(ctx), admin.ID, admin.PasswordHash); restoreErr != nil {
			uc.logger.Error("Failed to restore previous password", zap.String("admin_id", admin.ID), zap.Error(restoreErr))
			return fmt.Errorf("AuthUseCase.ForgotPassword: failed to send email: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("AuthUseCase.ForgotPassword: failed to send email: %w", err)
	}

	uc.logger.Info("Password reset", zap.String("admin_id", admin.ID))
	return nil
}

type CreateAdminInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

func (uc *AuthUseCase) CreateAdmin(ctx context.Context, in CreateAdminInput) (*entity.Admin, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" {
		return nil, NewValidationError("Name and email are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, NewValidationError("Password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("AuthUseCase.CreateAdmin: failed to hash password: %w", err)
	}

	admin := &entity.Admin{
		Name:         in.Name,
		Email:        in.Email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}
	id, err := uc.admins.Create(ctx, admin)
	if err != nil {
		return nil, fmt.Errorf("AuthUseCase.CreateAdmin: %w", err)
	}
	admin.ID = id
	return admin, nil
}

// ResetPassword sets a chosen password; used by the admin CLI.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, email, password string) error {
	if len(password) < minPasswordLength {
		return NewValidationError("Password must be at least %d characters", minPasswordLength)
	}
	admin, err := uc.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("AuthUseCase.ResetPassword: %w", err)
	}
	if err := uc.setPassword(ctx, admin.ID, password); err != nil {
		return fmt.Errorf("AuthUseCase.ResetPassword: %w", err)
	}
	return nil
}

func (uc *AuthUseCase) setPassword(ctx context.Context, adminID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := uc.admins.UpdatePassword(ctx, adminID, string(hash)); err != nil {
		uc.logger.Error("Failed to update admin password", zap.String("admin_id", adminID), zap.Error(err))
		return err
	}
	return nil
}

func generatePassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
