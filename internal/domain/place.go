package domain

// Place is a single result from the places provider's nearby search.
type Place struct {
	ID               string      `json:"id"`
	DisplayName      DisplayName `json:"displayName"`
	FormattedAddress string      `json:"formattedAddress"`
	Location         LatLng      `json:"location"`
	Rating           float64     `json:"rating,omitempty"`
	UserRatingCount  int         `json:"userRatingCount,omitempty"`
	BusinessStatus   string      `json:"businessStatus,omitempty"`
	Types            []string    `json:"types,omitempty"`
}

type DisplayName struct {
	Text string `json:"text"`
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NearbySearchRequest is the provider-facing shape of a nearby search.
type NearbySearchRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Types        []string
	MaxResults   int
	Ranking      Ranking
}

// NearbySearchResult carries the provider places plus the echoed query metadata.
type NearbySearchResult struct {
	Places []Place                `json:"places"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// PlaceDetails is the detailed provider record for a single place.
type PlaceDetails struct {
	ID               string      `json:"id"`
	DisplayName      DisplayName `json:"displayName"`
	FormattedAddress string      `json:"formattedAddress"`
	Location         LatLng      `json:"location"`
	Rating           float64     `json:"rating,omitempty"`
	BusinessStatus   string      `json:"businessStatus,omitempty"`
	PhoneNumber      string      `json:"nationalPhoneNumber,omitempty"`
	WebsiteURI       string      `json:"websiteUri,omitempty"`
	Types            []string    `json:"types,omitempty"`
}

// GeocodeResult is a forward or reverse geocoding answer.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
	PlaceID          string  `json:"place_id,omitempty"`
}

// DirectionsResult is the summary of the best route between two points.
type DirectionsResult struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
	Polyline string `json:"polyline"`
}

// StreamClinicDetails is the Redis stream carrying place ids whose stored
// clinic record should be refreshed with provider details.
const StreamClinicDetails = "clinic:details:enrich"

// ClinicDetailsEvent is the payload published to StreamClinicDetails.
type ClinicDetailsEvent struct {
	PlaceID string `json:"place_id"`
}

// StreamMessage is a raw message read from a Redis stream.
type StreamMessage struct {
	ID   string
	Data string
}
