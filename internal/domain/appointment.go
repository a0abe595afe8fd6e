package domain

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

type Appointment struct {
	ID              int64     `json:"id" db:"id"`
	PatientID       int64     `json:"patient_id" db:"patient_id"`
	ClinicID        int64     `json:"clinic_id" db:"clinic_id"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	Status          string    `json:"status" db:"status"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
