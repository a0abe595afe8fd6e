package repository

import (
	"context"

	"github.com/clinic-directory/internal/domain"
)

// PlacesRepository is the boundary to the external places/geocoding provider.
// Implementations return plain errors; the use case layer maps them to
// PROVIDER_ERROR so a failed call is never mistaken for an empty result.
type PlacesRepository interface {
	// SearchNearby runs a circle-restricted nearby search.
	SearchNearby(ctx context.Context, req domain.NearbySearchRequest) (*domain.NearbySearchResult, error)

	// GetPlaceDetails fetches the detailed record for one place id.
	GetPlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error)

	// Geocode resolves an address to coordinates.
	Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error)

	// ReverseGeocode resolves coordinates to an address.
	ReverseGeocode(ctx context.Context, lat, lng float64) (*domain.GeocodeResult, error)

	// GetDirections returns the best route summary between two points.
	GetDirections(ctx context.Context, originLat, originLng, destLat, destLng float64) (*domain.DirectionsResult, error)
}
