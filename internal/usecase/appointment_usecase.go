package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/usecase/dto"
)

// AppointmentUseCase handles patient bookings against clinic records.
type AppointmentUseCase struct {
	apptRepo   repository.AppointmentRepository
	clinicRepo repository.ClinicRepository
	logger     *zap.Logger
}

func NewAppointmentUseCase(
	apptRepo repository.AppointmentRepository,
	clinicRepo repository.ClinicRepository,
	logger *zap.Logger,
) *AppointmentUseCase {
	return &AppointmentUseCase{
		apptRepo:   apptRepo,
		clinicRepo: clinicRepo,
		logger:     logger,
	}
}

// Create books an appointment for the patient at an existing clinic.
func (uc *AppointmentUseCase) Create(ctx context.Context, patientID int64, req dto.CreateAppointmentRequest) (*domain.Appointment, error) {
	if req.AppointmentDate.Before(time.Now()) {
		return nil, errors.NewValidation("appointment date must be in the future")
	}

	// Booking against a missing clinic fails with CLINIC_NOT_FOUND up front.
	if _, err := uc.clinicRepo.GetByID(ctx, req.ClinicID); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		PatientID:       patientID,
		ClinicID:        req.ClinicID,
		AppointmentDate: req.AppointmentDate,
		Status:          domain.AppointmentPending,
	}
	if req.Notes != "" {
		notes := req.Notes
		appt.Notes = &notes
	}

	created, err := uc.apptRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("Failed to create appointment", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Appointment created",
		zap.Int64("appointment_id", created.ID),
		zap.Int64("patient_id", patientID),
		zap.Int64("clinic_id", req.ClinicID))
	return created, nil
}

// ListByPatient returns the patient's own appointments.
func (uc *AppointmentUseCase) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Appointment, error) {
	return uc.apptRepo.ListByPatient(ctx, patientID)
}

// UpdateStatus transitions an appointment. Patients may only cancel their own
// pending or confirmed appointments; other transitions require the owner role.
func (uc *AppointmentUseCase) UpdateStatus(ctx context.Context, userID int64, role string, apptID int64, status string) (*domain.Appointment, error) {
	appt, err := uc.apptRepo.GetByID(ctx, apptID)
	if err != nil {
		return nil, err
	}

	if role != domain.RoleClinicOwner {
		if appt.PatientID != userID {
			return nil, errors.ErrUnauthorized
		}
		if status != domain.AppointmentCancelled {
			return nil, errors.NewUnauthorized("patients may only cancel appointments")
		}
	}

	if appt.Status == domain.AppointmentCompleted || appt.Status == domain.AppointmentCancelled {
		return nil, errors.NewValidation("appointment is already " + appt.Status)
	}

	updated, err := uc.apptRepo.UpdateStatus(ctx, apptID, status)
	if err != nil {
		uc.logger.Error("Failed to update appointment status",
			zap.Int64("appointment_id", apptID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Appointment status updated",
		zap.Int64("appointment_id", apptID),
		zap.String("status", status))
	return updated, nil
}
