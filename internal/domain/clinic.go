package domain

import "time"

// Clinic is the canonical directory entry for a healthcare facility. Rows are
// created when a place is first discovered via the provider and updated on every
// re-discovery; the discovery path never deletes them.
type Clinic struct {
	ID              int64    `json:"id" db:"id"`
	GooglePlaceID   string   `json:"google_place_id" db:"google_place_id"`
	Name            string   `json:"name" db:"name"`
	Address         *string  `json:"address,omitempty" db:"address"`
	Latitude        float64  `json:"latitude" db:"latitude"`
	Longitude       float64  `json:"longitude" db:"longitude"`
	Services        *string  `json:"services,omitempty" db:"services"`
	ConsultationFee *float64 `json:"consultation_fee,omitempty" db:"consultation_fee"`
	Contact         *string  `json:"contact,omitempty" db:"contact"`
	Rating          float64  `json:"rating" db:"rating"`
	IsActive        bool     `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ClinicInput carries the mutable fields of an upsert keyed by GooglePlaceID.
type ClinicInput struct {
	GooglePlaceID string
	Name          string
	Address       *string
	Latitude      float64
	Longitude     float64
	Services      *string
	Rating        float64
	IsActive      bool
}

// RadiusMode distinguishes a fixed radius pick from an interactive resize.
// Drag searches always bypass the cache: the user is actively adjusting the
// area and expects fresh provider data.
type RadiusMode string

const (
	RadiusModePreset RadiusMode = "preset"
	RadiusModeDrag   RadiusMode = "drag"
)

// Ranking is the provider-side result ordering strategy.
type Ranking string

const (
	RankingDistance   Ranking = "DISTANCE"
	RankingPopularity Ranking = "POPULARITY"
)

// minRadiusMeters keeps the provider call from ever seeing a zero radius.
const minRadiusMeters = 100.0

// GeoQuery is the per-request value object describing a nearby search.
// It is built by the request normalization layer and never persisted.
type GeoQuery struct {
	Lat        float64
	Lng        float64
	RadiusKm   float64
	RadiusMode RadiusMode
	Types      []string
	Ranking    Ranking
	MaxResults int
	SkipCache  bool
}

// RadiusMeters converts the search radius for the provider, floored at 100 m.
func (q GeoQuery) RadiusMeters() float64 {
	m := q.RadiusKm * 1000
	if m < minRadiusMeters {
		return minRadiusMeters
	}
	return m
}

// BypassCache reports whether the cache must be skipped for this query.
func (q GeoQuery) BypassCache() bool {
	return q.SkipCache || q.RadiusMode == RadiusModeDrag
}
