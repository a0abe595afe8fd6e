package repository

import (
	"context"

	"github.com/clinic-directory/internal/domain"
)

// ClinicRepository is the persistence boundary for clinic records. Nearby reads
// use an approximate geographic filter; writes are keyed by the external place id.
type ClinicRepository interface {
	// FindNearby returns active clinics within radiusKm of the center, optionally
	// filtered by service types. Zero matches is an empty slice, not an error.
	FindNearby(ctx context.Context, lat, lng, radiusKm float64, types []string) ([]*domain.Clinic, error)

	// Upsert inserts or updates each input keyed by google_place_id and returns
	// the canonical post-upsert rows. Atomic per record.
	Upsert(ctx context.Context, inputs []domain.ClinicInput) ([]*domain.Clinic, error)

	// UpdateDetails refreshes contact and rating from provider place details.
	UpdateDetails(ctx context.Context, placeID string, contact *string, rating float64) error

	// GetByID returns a clinic by internal id.
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)

	// List returns clinics, optionally filtered by a service substring.
	List(ctx context.Context, service string, limit int) ([]*domain.Clinic, error)

	// Create inserts an owner-managed clinic record.
	Create(ctx context.Context, clinic *domain.Clinic) (*domain.Clinic, error)

	// Update overwrites the mutable fields of a clinic.
	Update(ctx context.Context, clinic *domain.Clinic) (*domain.Clinic, error)

	// Delete removes a clinic. Administrative operation, never called by discovery.
	Delete(ctx context.Context, id int64) error

	// SetRating stores a recomputed average rating.
	SetRating(ctx context.Context, id int64, rating float64) error
}
