package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
)

const appointmentColumns = `
	id, patient_id, clinic_id, appointment_date, status, notes, created_at, updated_at
`

type appointmentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAppointmentRepository(db *DB) repository.AppointmentRepository {
	return &appointmentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	err := r.db.GetContext(ctx, &a,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrAppointmentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get appointment", zap.Int64("id", id), zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return &a, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)
	err := r.db.SelectContext(ctx, &appts,
		`SELECT `+appointmentColumns+` FROM appointments
		 WHERE patient_id = $1 ORDER BY appointment_date ASC`, patientID)
	if err != nil {
		r.logger.Error("Failed to list appointments", zap.Int64("patient_id", patientID), zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return appts, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	query := `
		INSERT INTO appointments (patient_id, clinic_id, appointment_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING ` + appointmentColumns

	var a domain.Appointment
	err := r.db.QueryRowxContext(ctx, query,
		appt.PatientID, appt.ClinicID, appt.AppointmentDate, appt.Status, appt.Notes,
	).StructScan(&a)
	if err != nil {
		r.logger.Error("Failed to create appointment", zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return &a, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Appointment, error) {
	query := `
		UPDATE appointments SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + appointmentColumns

	var a domain.Appointment
	err := r.db.QueryRowxContext(ctx, query, id, status).StructScan(&a)
	if err == sql.ErrNoRows {
		return nil, errors.ErrAppointmentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update appointment status", zap.Int64("id", id), zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return &a, nil
}
