package dto

import "time"

// RegisterRequest - new user registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=patient clinic_owner"`
	Name     string `json:"name" validate:"omitempty,min=2"`
}

// LoginRequest - user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GeocodeRequest carries either a forward address or a reverse lat/lng pair.
type GeocodeRequest struct {
	Address string   `json:"address" validate:"omitempty,min=3"`
	Lat     *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng     *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
}

// DirectionsRequest - route between two points
type DirectionsRequest struct {
	Origin      PointParam `json:"origin" validate:"required"`
	Destination PointParam `json:"destination" validate:"required"`
}

// PointParam - a lat/lng pair in a request body
type PointParam struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// CreateClinicRequest - owner-managed clinic creation
type CreateClinicRequest struct {
	Name            string   `json:"name" validate:"required,min=2"`
	Address         string   `json:"address" validate:"required"`
	Latitude        float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude       float64  `json:"longitude" validate:"min=-180,max=180"`
	Services        string   `json:"services" validate:"omitempty"`
	ConsultationFee *float64 `json:"consultation_fee" validate:"omitempty,min=0"`
	Contact         string   `json:"contact" validate:"omitempty"`
}

// UpdateClinicRequest - partial clinic update
type UpdateClinicRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=2"`
	Address         *string  `json:"address"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Services        *string  `json:"services"`
	ConsultationFee *float64 `json:"consultation_fee" validate:"omitempty,min=0"`
	Contact         *string  `json:"contact"`
	IsActive        *bool    `json:"is_active"`
}

// CreateAppointmentRequest - appointment booking
type CreateAppointmentRequest struct {
	ClinicID        int64     `json:"clinic_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Notes           string    `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateAppointmentStatusRequest - status transition
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// CreateReviewRequest - clinic review
type CreateReviewRequest struct {
	ClinicID int64  `json:"clinic_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,max=2000"`
}
