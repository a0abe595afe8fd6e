package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinic-directory/internal/domain"
	apperrors "github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/usecase"
	"github.com/clinic-directory/internal/usecase/dto"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const testSecret = "test-secret"

func TestAuthUseCase_Register(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUsers, logger, testSecret, time.Hour)

		mockUsers.On("GetByEmail", ctx, "jane@example.com").Return(nil, nil)
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			// The hash must verify against the original password
			err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3curepass"))
			return u.Email == "jane@example.com" && u.Role == domain.RolePatient && err == nil
		})).Return(&domain.User{ID: 7, Email: "jane@example.com", Role: domain.RolePatient}, nil)

		resp, err := uc.Register(ctx, dto.RegisterRequest{
			Email:    "jane@example.com",
			Password: "s3curepass",
			Role:     domain.RolePatient,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		mockUsers.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUsers, logger, testSecret, time.Hour)

		mockUsers.On("GetByEmail", ctx, "jane@example.com").
			Return(&domain.User{ID: 7, Email: "jane@example.com"}, nil)

		resp, err := uc.Register(ctx, dto.RegisterRequest{
			Email:    "jane@example.com",
			Password: "s3curepass",
			Role:     domain.RolePatient,
		})

		assert.Nil(t, resp)
		assert.Equal(t, apperrors.ErrUserExists, err)
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3curepass"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &domain.User{
		ID:           7,
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         domain.RolePatient,
	}

	t.Run("success issues verifiable token", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUsers, logger, testSecret, time.Hour)

		mockUsers.On("GetByEmail", ctx, "jane@example.com").Return(storedUser, nil)

		resp, err := uc.Login(ctx, dto.LoginRequest{
			Email:    "jane@example.com",
			Password: "s3curepass",
		})

		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)

		token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(7), claims["sub"])
		assert.Equal(t, domain.RolePatient, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUsers, logger, testSecret, time.Hour)

		mockUsers.On("GetByEmail", ctx, "jane@example.com").Return(storedUser, nil)

		resp, err := uc.Login(ctx, dto.LoginRequest{
			Email:    "jane@example.com",
			Password: "wrong",
		})

		assert.Nil(t, resp)
		assert.Equal(t, apperrors.ErrInvalidCredentials, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUsers, logger, testSecret, time.Hour)

		mockUsers.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

		resp, err := uc.Login(ctx, dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "s3curepass",
		})

		assert.Nil(t, resp)
		assert.Equal(t, apperrors.ErrInvalidCredentials, err)
	})
}
