package repository

import (
	"context"

	"github.com/clinic-directory/internal/domain"
)

// UserRepository persists registered users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
