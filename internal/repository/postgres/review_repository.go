package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
)

const reviewColumns = `id, patient_id, clinic_id, rating, comment, created_at`

type reviewRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReviewRepository(db *DB) repository.ReviewRepository {
	return &reviewRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *reviewRepository) ListByClinic(ctx context.Context, clinicID int64) ([]*domain.Review, error) {
	reviews := make([]*domain.Review, 0)
	err := r.db.SelectContext(ctx, &reviews,
		`SELECT `+reviewColumns+` FROM reviews
		 WHERE clinic_id = $1 ORDER BY created_at DESC`, clinicID)
	if err != nil {
		r.logger.Error("Failed to list reviews", zap.Int64("clinic_id", clinicID), zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	query := `
		INSERT INTO reviews (patient_id, clinic_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING ` + reviewColumns

	var rev domain.Review
	err := r.db.QueryRowxContext(ctx, query,
		review.PatientID, review.ClinicID, review.Rating, review.Comment,
	).StructScan(&rev)
	if err != nil {
		r.logger.Error("Failed to create review", zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return &rev, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, clinicID int64) (float64, int, error) {
	var row struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count
		 FROM reviews WHERE clinic_id = $1`, clinicID)
	if err != nil {
		r.logger.Error("Failed to compute average rating", zap.Int64("clinic_id", clinicID), zap.Error(err))
		return 0, 0, errors.NewStoreUnavailable(err)
	}
	return row.Avg, row.Count, nil
}
