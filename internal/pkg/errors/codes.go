package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Latitude and longitude are required and must be valid coordinates",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrValidation = New(
		"VALIDATION_ERROR",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request body",
		http.StatusBadRequest,
	)

	ErrClinicNotFound = New(
		"CLINIC_NOT_FOUND",
		"Clinic not found",
		http.StatusNotFound,
	)

	ErrAppointmentNotFound = New(
		"APPOINTMENT_NOT_FOUND",
		"Appointment not found",
		http.StatusNotFound,
	)

	ErrUserExists = New(
		"USER_EXISTS",
		"User already exists",
		http.StatusConflict,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		http.StatusUnauthorized,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid authorization token",
		http.StatusUnauthorized,
	)

	ErrStoreUnavailable = New(
		"STORE_UNAVAILABLE",
		"Clinic store unreachable or misconfigured",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// NewValidation builds a VALIDATION_ERROR carrying a specific reason without
// mutating the sentinel.
func NewValidation(reason string) *AppError {
	e := New(
		ErrValidation.Code,
		ErrValidation.Message,
		ErrValidation.StatusCode,
	)
	e.Details["reason"] = reason
	return e
}

// NewUnauthorized builds an UNAUTHORIZED error carrying a specific reason.
func NewUnauthorized(reason string) *AppError {
	e := New(
		ErrUnauthorized.Code,
		ErrUnauthorized.Message,
		ErrUnauthorized.StatusCode,
	)
	e.Details["reason"] = reason
	return e
}

// NewProviderError wraps a failed places/geocoding provider call. The underlying
// message travels in details so callers can surface it for diagnostics.
func NewProviderError(err error) *AppError {
	e := New(
		"PROVIDER_ERROR",
		"Places provider request failed",
		http.StatusBadGateway,
	)
	if err != nil {
		e.Details["cause"] = err.Error()
	}
	return e
}

// NewStoreUnavailable wraps a persistence failure without mutating the sentinel.
func NewStoreUnavailable(err error) *AppError {
	e := New(
		ErrStoreUnavailable.Code,
		ErrStoreUnavailable.Message,
		ErrStoreUnavailable.StatusCode,
	)
	if err != nil {
		e.Details["cause"] = err.Error()
	}
	return e
}
