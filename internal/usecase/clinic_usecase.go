package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
	"github.com/clinic-directory/internal/usecase/dto"
)

const defaultListLimit = 50

// ClinicUseCase covers owner-managed clinic records, separate from discovery.
type ClinicUseCase struct {
	clinicRepo repository.ClinicRepository
	logger     *zap.Logger
}

func NewClinicUseCase(clinicRepo repository.ClinicRepository, logger *zap.Logger) *ClinicUseCase {
	return &ClinicUseCase{
		clinicRepo: clinicRepo,
		logger:     logger,
	}
}

// GetByID returns a single clinic.
func (uc *ClinicUseCase) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	clinic, err := uc.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return clinic, nil
}

// List returns clinics, optionally filtered by a service substring.
func (uc *ClinicUseCase) List(ctx context.Context, service string, limit int) ([]*domain.Clinic, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return uc.clinicRepo.List(ctx, service, limit)
}

// Create inserts an owner-managed clinic record.
func (uc *ClinicUseCase) Create(ctx context.Context, req dto.CreateClinicRequest) (*domain.Clinic, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	clinic := &domain.Clinic{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsActive:  true,
	}
	if req.Address != "" {
		addr := req.Address
		clinic.Address = &addr
	}
	if req.Services != "" {
		svc := req.Services
		clinic.Services = &svc
	}
	if req.Contact != "" {
		contact := req.Contact
		clinic.Contact = &contact
	}
	clinic.ConsultationFee = req.ConsultationFee

	created, err := uc.clinicRepo.Create(ctx, clinic)
	if err != nil {
		uc.logger.Error("Failed to create clinic", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Clinic created",
		zap.Int64("clinic_id", created.ID),
		zap.String("name", created.Name))
	return created, nil
}

// Update applies a partial update on top of the stored record.
func (uc *ClinicUseCase) Update(ctx context.Context, id int64, req dto.UpdateClinicRequest) (*domain.Clinic, error) {
	clinic, err := uc.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Address != nil {
		clinic.Address = req.Address
	}
	if req.Latitude != nil {
		clinic.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		clinic.Longitude = *req.Longitude
	}
	if !utils.ValidateCoordinates(clinic.Latitude, clinic.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}
	if req.Services != nil {
		clinic.Services = req.Services
	}
	if req.ConsultationFee != nil {
		clinic.ConsultationFee = req.ConsultationFee
	}
	if req.Contact != nil {
		clinic.Contact = req.Contact
	}
	if req.IsActive != nil {
		clinic.IsActive = *req.IsActive
	}

	updated, err := uc.clinicRepo.Update(ctx, clinic)
	if err != nil {
		uc.logger.Error("Failed to update clinic",
			zap.Int64("clinic_id", id),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Clinic updated", zap.Int64("clinic_id", id))
	return updated, nil
}

// Delete removes a clinic record.
func (uc *ClinicUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.clinicRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete clinic",
			zap.Int64("clinic_id", id),
			zap.Error(err))
		return err
	}
	uc.logger.Info("Clinic deleted", zap.Int64("clinic_id", id))
	return nil
}
