package dto

import "github.com/clinic-directory/internal/domain"

// Discovery sources for the nearby response debug block.
const (
	SourceCache    = "cache"
	SourceProvider = "provider"
)

// NearbyResponse is the map-facing nearby-search payload. The debug block lets
// clients distinguish a cache-served response from a fresh provider fetch.
type NearbyResponse struct {
	Clinics []*domain.Clinic `json:"clinics"`
	Debug   NearbyDebug      `json:"debug"`
}

// NearbyDebug echoes the normalized query plus result provenance.
type NearbyDebug struct {
	Source      string                 `json:"source"`
	Query       NearbyQueryEcho        `json:"query"`
	CachedCount *int                   `json:"cached_count,omitempty"`
	PlaceCount  *int                   `json:"place_count,omitempty"`
	PlacesMeta  map[string]interface{} `json:"places_meta,omitempty"`
}

// NearbyQueryEcho is the normalized GeoQuery as seen by the discovery service.
type NearbyQueryEcho struct {
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	RadiusKm   float64  `json:"radius_km"`
	RadiusMode string   `json:"radius_mode"`
	Types      []string `json:"types,omitempty"`
	Ranking    string   `json:"ranking,omitempty"`
	MaxResults int      `json:"max_results"`
	SkipCache  bool     `json:"skip_cache"`
}

// EchoQuery converts a GeoQuery back into its response representation.
func EchoQuery(q domain.GeoQuery) NearbyQueryEcho {
	return NearbyQueryEcho{
		Latitude:   q.Lat,
		Longitude:  q.Lng,
		RadiusKm:   q.RadiusKm,
		RadiusMode: string(q.RadiusMode),
		Types:      q.Types,
		Ranking:    string(q.Ranking),
		MaxResults: q.MaxResults,
		SkipCache:  q.SkipCache,
	}
}

// CachedClinicsResponse is the store-only read used by the map fallback.
type CachedClinicsResponse struct {
	Clinics []*domain.Clinic `json:"clinics"`
	Source  string           `json:"source"`
	Count   int              `json:"count"`
}

// AuthResponse - issued token after login
type AuthResponse struct {
	Token string `json:"token"`
}

// RegisteredUserResponse - public view of a created user
type RegisteredUserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GeocodeResponse wraps a forward or reverse geocoding result.
type GeocodeResponse struct {
	Mode   string                `json:"mode"`
	Result *domain.GeocodeResult `json:"result"`
}

// ReviewListResponse - reviews for a clinic
type ReviewListResponse struct {
	Reviews []*domain.Review `json:"reviews"`
	Total   int              `json:"total"`
}
