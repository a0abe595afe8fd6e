package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinic-directory/internal/domain"
	apperrors "github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/usecase/dto"
)

func validParams() dto.NearbyQueryParams {
	return dto.NearbyQueryParams{
		Lat: "-1.2921",
		Lng: "36.8219",
	}
}

func TestParseNearbyRequest_Defaults(t *testing.T) {
	q, err := dto.ParseNearbyRequest(validParams())

	assert.NoError(t, err)
	assert.Equal(t, -1.2921, q.Lat)
	assert.Equal(t, 36.8219, q.Lng)
	assert.Equal(t, 5.0, q.RadiusKm)
	assert.Equal(t, domain.RadiusModePreset, q.RadiusMode)
	assert.Equal(t, 20, q.MaxResults)
	assert.False(t, q.SkipCache)
	assert.Empty(t, q.Types)
	assert.Empty(t, string(q.Ranking))
}

func TestParseNearbyRequest_Coordinates(t *testing.T) {
	cases := []struct {
		name string
		lat  string
		lng  string
	}{
		{"missing lat", "", "36.8"},
		{"missing lng", "-1.3", ""},
		{"non numeric lat", "abc", "36.8"},
		{"non numeric lng", "-1.3", "east"},
		{"lat out of range", "91", "36.8"},
		{"lat below range", "-90.5", "36.8"},
		{"lng out of range", "-1.3", "180.1"},
		{"lng below range", "-1.3", "-181"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			params.Lat = tc.lat
			params.Lng = tc.lng

			_, err := dto.ParseNearbyRequest(params)

			appErr, ok := err.(*apperrors.AppError)
			assert.True(t, ok)
			assert.Equal(t, "INVALID_COORDINATES", appErr.Code)
		})
	}

	t.Run("boundary values accepted", func(t *testing.T) {
		params := dto.NearbyQueryParams{Lat: "-90", Lng: "180"}
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, -90.0, q.Lat)
		assert.Equal(t, 180.0, q.Lng)
	})
}

func TestParseNearbyRequest_Radius(t *testing.T) {
	t.Run("explicit radius kept", func(t *testing.T) {
		params := validParams()
		params.RadiusKm = "12.5"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, 12.5, q.RadiusKm)
	})

	t.Run("non numeric radius rejected", func(t *testing.T) {
		params := validParams()
		params.RadiusKm = "wide"
		_, err := dto.ParseNearbyRequest(params)

		appErr, ok := err.(*apperrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_RADIUS", appErr.Code)
	})

	t.Run("tiny radius floored", func(t *testing.T) {
		params := validParams()
		params.RadiusKm = "0.01"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, 0.1, q.RadiusKm)
	})

	t.Run("zero radius floored", func(t *testing.T) {
		params := validParams()
		params.RadiusKm = "0"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, 0.1, q.RadiusKm)
		assert.GreaterOrEqual(t, q.RadiusMeters(), 100.0)
	})

	t.Run("negative radius floored", func(t *testing.T) {
		params := validParams()
		params.RadiusKm = "-3"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, 0.1, q.RadiusKm)
	})
}

func TestParseNearbyRequest_RadiusMode(t *testing.T) {
	params := validParams()
	params.RadiusMode = "drag"
	q, err := dto.ParseNearbyRequest(params)
	assert.NoError(t, err)
	assert.Equal(t, domain.RadiusModeDrag, q.RadiusMode)
	assert.True(t, q.BypassCache())

	// Anything that is not drag falls back to preset
	params.RadiusMode = "DRAG"
	q, err = dto.ParseNearbyRequest(params)
	assert.NoError(t, err)
	assert.Equal(t, domain.RadiusModePreset, q.RadiusMode)
	assert.False(t, q.BypassCache())
}

func TestParseNearbyRequest_Types(t *testing.T) {
	params := validParams()
	params.Types = " dental_clinic, hospital ,, physiotherapist "

	q, err := dto.ParseNearbyRequest(params)

	assert.NoError(t, err)
	assert.Equal(t, []string{"dental_clinic", "hospital", "physiotherapist"}, q.Types)
}

func TestParseNearbyRequest_Ranking(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		params := validParams()
		params.Ranking = "DISTANCE"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, domain.RankingDistance, q.Ranking)

		params.Ranking = "POPULARITY"
		q, err = dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, domain.RankingPopularity, q.Ranking)
	})

	t.Run("unknown value rejected", func(t *testing.T) {
		params := validParams()
		params.Ranking = "nearest"
		_, err := dto.ParseNearbyRequest(params)

		appErr, ok := err.(*apperrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestParseNearbyRequest_MaxResults(t *testing.T) {
	t.Run("explicit value kept", func(t *testing.T) {
		params := validParams()
		params.MaxResults = "7"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, 7, q.MaxResults)
	})

	t.Run("non numeric falls back to default", func(t *testing.T) {
		params := validParams()
		params.MaxResults = "many"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, 20, q.MaxResults)
	})

	t.Run("non positive falls back to default", func(t *testing.T) {
		params := validParams()
		params.MaxResults = "0"
		q, err := dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.Equal(t, 20, q.MaxResults)
	})
}

func TestParseNearbyRequest_SkipCache(t *testing.T) {
	params := validParams()
	params.SkipCache = "true"
	q, err := dto.ParseNearbyRequest(params)
	assert.NoError(t, err)
	assert.True(t, q.SkipCache)

	// Only the literal string "true" counts
	for _, v := range []string{"TRUE", "1", "yes", ""} {
		params.SkipCache = v
		q, err = dto.ParseNearbyRequest(params)
		assert.NoError(t, err)
		assert.False(t, q.SkipCache)
	}
}

func TestGeoQuery_RadiusMeters(t *testing.T) {
	q := domain.GeoQuery{RadiusKm: 2.5}
	assert.Equal(t, 2500.0, q.RadiusMeters())

	q.RadiusKm = 0.05
	assert.Equal(t, 100.0, q.RadiusMeters())
}
