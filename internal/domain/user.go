package domain

import "time"

// User roles. Clinic owners manage clinic records, patients book appointments.
const (
	RolePatient     = "patient"
	RoleClinicOwner = "clinic_owner"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Name         *string   `json:"name,omitempty" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
