package dto

import (
	"strconv"
	"strings"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
)

// Defaults for the nearby-search query string.
const (
	DefaultRadiusKm   = 5.0
	MinRadiusKm       = 0.1
	DefaultMaxResults = 20
)

// NearbyQueryParams is the raw nearby-search query string, untouched. Every
// field arrives as text; ParseNearbyRequest owns all typing and defaulting.
type NearbyQueryParams struct {
	Lat        string
	Lng        string
	RadiusKm   string
	RadiusMode string
	Types      string
	Ranking    string
	MaxResults string
	SkipCache  string
}

// ParseNearbyRequest turns the raw query into a well-formed GeoQuery.
//
// Policy:
//   - lat/lng are required, numeric and range-checked
//   - radiusKm defaults to 5 and is floored at 0.1 km, so the provider never
//     sees a zero or negative radius
//   - radiusMode defaults to preset; anything that is not "drag" is preset
//   - types is a comma-separated list, trimmed, empties dropped
//   - maxResults defaults to 20 when omitted or non-numeric
//   - skipCache is true only for the literal string "true"
func ParseNearbyRequest(raw NearbyQueryParams) (domain.GeoQuery, error) {
	var q domain.GeoQuery

	if raw.Lat == "" || raw.Lng == "" {
		return q, errors.ErrInvalidCoordinates
	}

	lat, errLat := strconv.ParseFloat(raw.Lat, 64)
	lng, errLng := strconv.ParseFloat(raw.Lng, 64)
	if errLat != nil || errLng != nil || !utils.ValidateCoordinates(lat, lng) {
		return q, errors.ErrInvalidCoordinates
	}

	radiusKm := DefaultRadiusKm
	if raw.RadiusKm != "" {
		parsed, err := strconv.ParseFloat(raw.RadiusKm, 64)
		if err != nil {
			return q, errors.ErrInvalidRadius
		}
		radiusKm = parsed
	}
	if radiusKm < MinRadiusKm {
		radiusKm = MinRadiusKm
	}

	mode := domain.RadiusModePreset
	if raw.RadiusMode == string(domain.RadiusModeDrag) {
		mode = domain.RadiusModeDrag
	}

	var types []string
	if raw.Types != "" {
		for _, t := range strings.Split(raw.Types, ",") {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				types = append(types, trimmed)
			}
		}
	}

	var ranking domain.Ranking
	switch raw.Ranking {
	case "":
	case string(domain.RankingDistance):
		ranking = domain.RankingDistance
	case string(domain.RankingPopularity):
		ranking = domain.RankingPopularity
	default:
		return q, errors.ErrValidation
	}

	maxResults := DefaultMaxResults
	if raw.MaxResults != "" {
		if parsed, err := strconv.Atoi(raw.MaxResults); err == nil && parsed > 0 {
			maxResults = parsed
		}
	}

	return domain.GeoQuery{
		Lat:        lat,
		Lng:        lng,
		RadiusKm:   radiusKm,
		RadiusMode: mode,
		Types:      types,
		Ranking:    ranking,
		MaxResults: maxResults,
		SkipCache:  raw.SkipCache == "true",
	}, nil
}
