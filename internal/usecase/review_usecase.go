package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/usecase/dto"
)

// ReviewUseCase handles clinic reviews and keeps the clinic's stored average
// rating in sync.
type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	clinicRepo repository.ClinicRepository
	logger     *zap.Logger
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	clinicRepo repository.ClinicRepository,
	logger *zap.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		clinicRepo: clinicRepo,
		logger:     logger,
	}
}

// Create stores a review and recomputes the clinic's average rating.
func (uc *ReviewUseCase) Create(ctx context.Context, patientID int64, req dto.CreateReviewRequest) (*domain.Review, error) {
	if _, err := uc.clinicRepo.GetByID(ctx, req.ClinicID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		PatientID: patientID,
		ClinicID:  req.ClinicID,
		Rating:    req.Rating,
	}
	if req.Comment != "" {
		comment := req.Comment
		review.Comment = &comment
	}

	created, err := uc.reviewRepo.Create(ctx, review)
	if err != nil {
		uc.logger.Error("Failed to create review", zap.Error(err))
		return nil, err
	}

	// Rating refresh is best effort: the review itself is already stored.
	avg, count, err := uc.reviewRepo.AverageRating(ctx, req.ClinicID)
	if err != nil {
		uc.logger.Warn("Failed to recompute clinic rating",
			zap.Int64("clinic_id", req.ClinicID),
			zap.Error(err))
		return created, nil
	}
	if err := uc.clinicRepo.SetRating(ctx, req.ClinicID, avg); err != nil {
		uc.logger.Warn("Failed to store clinic rating",
			zap.Int64("clinic_id", req.ClinicID),
			zap.Error(err))
		return created, nil
	}

	uc.logger.Info("Review created",
		zap.Int64("review_id", created.ID),
		zap.Int64("clinic_id", req.ClinicID),
		zap.Float64("new_rating", avg),
		zap.Int("review_count", count))
	return created, nil
}

// ListByClinic returns all reviews for a clinic.
func (uc *ReviewUseCase) ListByClinic(ctx context.Context, clinicID int64) (*dto.ReviewListResponse, error) {
	if _, err := uc.clinicRepo.GetByID(ctx, clinicID); err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByClinic(ctx, clinicID)
	if err != nil {
		uc.logger.Error("Failed to list reviews",
			zap.Int64("clinic_id", clinicID),
			zap.Error(err))
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	}, nil
}
