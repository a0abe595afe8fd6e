package repository

import (
	"context"

	"github.com/clinic-directory/internal/domain"
)

// AppointmentRepository persists appointment bookings.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*domain.Appointment, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Appointment, error)
}
