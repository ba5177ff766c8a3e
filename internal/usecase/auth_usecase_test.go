package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/auth"
	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAdmin(t *testing.T, password string) *entity.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.Admin{
		ID:           "665f1c2e9b1e8a3d4c2b1c00",
		Name:         "Naveen",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()
	admin := newTestAdmin(t, "s3cret-pass")
	repo := new(MockAdminRepository)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	uc := NewAuthUseCase(repo, tokens, nil, "", zap.NewNop())

	repo.On("GetByEmail", ctx, "admin@example.com").Return(admin, nil)
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

	t.Run("success", func(t *testing.T) {
		got, token, err := uc.Login(ctx, " admin@example.com ", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, got.ID)

		claims, err := uc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.UserID)
		assert.Equal(t, entity.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := uc.Login(ctx, "admin@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown admin looks like a wrong password", func(t *testing.T) {
		_, _, err := uc.Login(ctx, "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.NotErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := uc.Login(ctx, "", "")
		assert.True(t, IsValidationError(err))
	})
}

func TestAuthUseCase_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	admin := newTestAdmin(t, "old-password")
	repo := new(MockAdminRepository)
	mailer := &recordingMailer{}
	uc := NewAuthUseCase(repo, auth.NewTokenManager("k", time.Hour), mailer, "", zap.NewNop())

	var newHash string
	repo.On("GetByEmail", ctx, admin.Email).Return(admin, nil).Once()
	repo.On("UpdatePassword", ctx, admin.ID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { newHash = args.String(2) }).
		Return(nil).Once()

	require.NoError(t, uc.ForgotPassword(ctx, admin.Email))

	sent := mailer.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{admin.Email}, sent[0].To)

	// The mailed password must match the stored hash.
	const marker = "Your new password is: "
	body := sent[0].Body
	idx := strings.Index(body, marker)
	require.GreaterOrEqual(t, idx, 0)
	password := body[idx+len(marker) : idx+len(marker)+16]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte(password)))
	repo.AssertExpectations(t)
}

func TestAuthUseCase_ForgotPasswordUnknownEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	mailer := &recordingMailer{}
	uc := NewAuthUseCase(repo, auth.NewTokenManager("k", time.Hour), mailer, "", zap.NewNop())

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()

	err := uc.ForgotPassword(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrAdminNotFound)
	assert.Empty(t, mailer.messages())
}

func TestAuthUseCase_ForgotPasswordMailFailure(t *testing.T) {
	ctx := context.Background()
	admin := newTestAdmin(t, "old-password")
	oldHash := admin.PasswordHash
	repo := new(MockAdminRepository)
	mailer := &recordingMailer{err: errors.New("smtp down")}
	uc := NewAuthUseCase(repo, auth.NewTokenManager("k", time.Hour), mailer, "", zap.NewNop())

	repo.On("GetByEmail", ctx, admin.Email).Return(admin, nil).Once()
	repo.On("UpdatePassword", ctx, admin.ID, mock.MatchedBy(func(h string) bool { return h != oldHash })).
		Return(nil).Once()
	repo.On("UpdatePassword", mock.Anything, admin.ID, oldHash).Return(nil).Once()

	err := uc.ForgotPassword(ctx, admin.Email)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAdminNotFound))
	assert.Len(t, mailer.messages(), 1)
	// The undelivered password is rolled back to the previous hash.
	repo.AssertExpectations(t)
}

func TestAuthUseCase_ForgotPasswordWithoutMailerKeepsPassword(t *testing.T) {
	ctx := context.Background()
	admin := newTestAdmin(t, "old-password")
	repo := new(MockAdminRepository)
	uc := NewAuthUseCase(repo, auth.NewTokenManager("k", time.Hour), nil, "", zap.NewNop())

	repo.On("GetByEmail", ctx, admin.Email).Return(admin, nil).Once()

	err := uc.ForgotPassword(ctx, admin.Email)
	assert.ErrorIs(t, err, ErrMailerNotConfigured)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestAuthUseCase_CreateAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	uc := NewAuthUseCase(repo, auth.NewTokenManager("k", time.Hour), nil, "", zap.NewNop())

	_, err := uc.CreateAdmin(ctx, CreateAdminInput{Name: "A", Email: "a@example.com", Password: "short"})
	assert.True(t, IsValidationError(err))

	repo.On("Create", ctx, mock.MatchedBy(func(a *entity.Admin) bool {
		return a.Role == entity.RoleAdmin && bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("long-enough")) == nil
	})).Return("665f1c2e9b1e8a3d4c2b1c01", nil).Once()

	admin, err := uc.CreateAdmin(ctx, CreateAdminInput{Name: "A", Email: "a@example.com", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, "665f1c2e9b1e8a3d4c2b1c01", admin.ID)
	repo.AssertExpectations(t)
}
