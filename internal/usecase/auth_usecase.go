package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/usecase/dto"
)

// AuthUseCase handles registration, login and token issuance.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	logger    *zap.Logger
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	logger *zap.Logger,
	jwtSecret string,
	jwtTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (uc *AuthUseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisteredUserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Error("User lookup failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if req.Name != "" {
		name := req.Name
		user.Name = &name
	}

	created, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		uc.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User registered",
		zap.Int64("user_id", created.ID),
		zap.String("role", created.Role))

	return &dto.RegisteredUserResponse{
		ID:    created.ID,
		Email: created.Email,
		Role:  created.Role,
	}, nil
}

// Login verifies credentials and returns a signed JWT.
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Error("User lookup failed", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := uc.issueToken(user)
	if err != nil {
		uc.logger.Error("Failed to sign token", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	uc.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return &dto.AuthResponse{Token: token}, nil
}

func (uc *AuthUseCase) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(uc.jwtTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}
