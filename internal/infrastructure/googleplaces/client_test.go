package googleplaces_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/infrastructure/googleplaces"
)

func TestClient_SearchNearby(t *testing.T) {
	var gotBody map[string]interface{}
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchNearby", r.URL.Path)

		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"places": []map[string]interface{}{
				{
					"id":               "ChIJabc123",
					"displayName":      map[string]string{"text": "Nairobi Dental Centre"},
					"formattedAddress": "Kimathi Street, Nairobi",
					"location":         map[string]float64{"latitude": -1.2856, "longitude": 36.8243},
					"rating":           4.6,
					"userRatingCount":  120,
					"businessStatus":   "OPERATIONAL",
					"types":            []string{"dental_clinic"},
				},
			},
		})
	}))
	defer server.Close()

	client := googleplaces.NewClientForTest("test-key", server.URL, nil)

	result, err := client.SearchNearby(context.Background(), domain.NearbySearchRequest{
		Latitude:     -1.2921,
		Longitude:    36.8219,
		RadiusMeters: 5000,
		Types:        []string{"dental_clinic", "hospital"},
		MaxResults:   20,
		Ranking:      domain.RankingDistance,
	})

	require.NoError(t, err)
	require.Len(t, result.Places, 1)

	place := result.Places[0]
	assert.Equal(t, "ChIJabc123", place.ID)
	assert.Equal(t, "Nairobi Dental Centre", place.DisplayName.Text)
	assert.Equal(t, 4.6, place.Rating)
	assert.Equal(t, -1.2856, place.Location.Latitude)

	// Auth and billing headers
	assert.Equal(t, "test-key", gotHeaders.Get("X-Goog-Api-Key"))
	assert.Contains(t, gotHeaders.Get("X-Goog-FieldMask"), "places.location")

	// Request body shape expected by the Places API (New)
	assert.Equal(t, float64(20), gotBody["maxResultCount"])
	assert.Equal(t, "DISTANCE", gotBody["rankPreference"])
	assert.Equal(t, "KE", gotBody["regionCode"])

	restriction := gotBody["locationRestriction"].(map[string]interface{})
	circle := restriction["circle"].(map[string]interface{})
	assert.Equal(t, float64(5000), circle["radius"])

	types := gotBody["includedTypes"].([]interface{})
	assert.Len(t, types, 2)
}

func TestClient_SearchNearby_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "API key invalid"}}`))
	}))
	defer server.Close()

	client := googleplaces.NewClientForTest("bad-key", server.URL, nil)

	result, err := client.SearchNearby(context.Background(), domain.NearbySearchRequest{
		Latitude:     -1.2921,
		Longitude:    36.8219,
		RadiusMeters: 5000,
		MaxResults:   20,
	})

	assert.Nil(t, result)
	assert.ErrorContains(t, err, "status 403")
}

func TestClient_GetPlaceDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/ChIJabc123", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                  "ChIJabc123",
			"displayName":         map[string]string{"text": "Nairobi Dental Centre"},
			"rating":              4.6,
			"nationalPhoneNumber": "020 1234567",
			"websiteUri":          "https://nairobidental.example",
		})
	}))
	defer server.Close()

	client := googleplaces.NewClientForTest("test-key", server.URL, nil)

	details, err := client.GetPlaceDetails(context.Background(), "ChIJabc123")

	require.NoError(t, err)
	assert.Equal(t, "020 1234567", details.PhoneNumber)
	assert.Equal(t, "https://nairobidental.example", details.WebsiteURI)
}

func TestClient_GetPlaceDetails_EmptyID(t *testing.T) {
	client := googleplaces.NewClientForTest("test-key", "http://unused", nil)

	details, err := client.GetPlaceDetails(context.Background(), "")

	assert.Nil(t, details)
	assert.Error(t, err)
}

func TestClient_Geocode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/geocode", r.URL.Path)
			assert.Equal(t, "Kenyatta Hospital, Nairobi", r.URL.Query().Get("address"))
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "OK",
				"results": []map[string]interface{}{
					{
						"formatted_address": "Kenyatta National Hospital, Hospital Rd, Nairobi",
						"place_id":          "ChIJhosp",
						"geometry": map[string]interface{}{
							"location": map[string]float64{"lat": -1.3013, "lng": 36.8073},
						},
					},
				},
			})
		}))
		defer server.Close()

		client := googleplaces.NewClientForTest("test-key", server.URL, nil)

		result, err := client.Geocode(context.Background(), "Kenyatta Hospital, Nairobi")

		require.NoError(t, err)
		assert.Equal(t, -1.3013, result.Lat)
		assert.Equal(t, 36.8073, result.Lng)
		assert.Equal(t, "ChIJhosp", result.PlaceID)
	})

	t.Run("non-OK status surfaces error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":        "REQUEST_DENIED",
				"error_message": "The provided API key is invalid.",
				"results":       []interface{}{},
			})
		}))
		defer server.Close()

		client := googleplaces.NewClientForTest("test-key", server.URL, nil)

		result, err := client.Geocode(context.Background(), "Nairobi")

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "REQUEST_DENIED")
		assert.ErrorContains(t, err, "The provided API key is invalid.")
	})

	t.Run("zero results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "ZERO_RESULTS",
				"results": []interface{}{},
			})
		}))
		defer server.Close()

		client := googleplaces.NewClientForTest("test-key", server.URL, nil)

		result, err := client.Geocode(context.Background(), "nowhere at all")

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "ZERO_RESULTS")
	})
}

func TestClient_ReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("latlng"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"results": []map[string]interface{}{
				{
					"formatted_address": "Moi Avenue, Nairobi",
					"place_id":          "ChIJmoi",
					"geometry": map[string]interface{}{
						"location": map[string]float64{"lat": -1.2847, "lng": 36.8260},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := googleplaces.NewClientForTest("test-key", server.URL, nil)

	result, err := client.ReverseGeocode(context.Background(), -1.2847, 36.8260)

	require.NoError(t, err)
	assert.Equal(t, "Moi Avenue, Nairobi", result.FormattedAddress)
}

func TestClient_GetDirections(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/directions", r.URL.Path)
			assert.NotEmpty(t, r.URL.Query().Get("origin"))
			assert.NotEmpty(t, r.URL.Query().Get("destination"))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "OK",
				"routes": []map[string]interface{}{
					{
						"overview_polyline": map[string]string{"points": "abc123polyline"},
						"legs": []map[string]interface{}{
							{
								"distance": map[string]string{"text": "4.2 km"},
								"duration": map[string]string{"text": "12 mins"},
							},
						},
					},
				},
			})
		}))
		defer server.Close()

		client := googleplaces.NewClientForTest("test-key", server.URL, nil)

		result, err := client.GetDirections(context.Background(), -1.2921, 36.8219, -1.3013, 36.8073)

		require.NoError(t, err)
		assert.Equal(t, "4.2 km", result.Distance)
		assert.Equal(t, "12 mins", result.Duration)
		assert.Equal(t, "abc123polyline", result.Polyline)
	})

	t.Run("no routes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "NOT_FOUND",
				"routes": []interface{}{},
			})
		}))
		defer server.Close()

		client := googleplaces.NewClientForTest("test-key", server.URL, nil)

		result, err := client.GetDirections(context.Background(), 0, 0, 1, 1)

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "NOT_FOUND")
	})
}
