package repository

import (
	"context"

	"github.com/clinic-directory/internal/domain"
)

// ReviewRepository persists clinic reviews.
type ReviewRepository interface {
	ListByClinic(ctx context.Context, clinicID int64) ([]*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	AverageRating(ctx context.Context, clinicID int64) (float64, int, error)
}
