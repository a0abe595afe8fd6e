package googleplaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/clinic-directory/internal/config"
	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
)

// nearbyFieldMask limits the searchNearby response to the fields the directory
// actually stores. Field masks are billed per field on the Places API (New).
const nearbyFieldMask = "places.displayName,places.formattedAddress,places.location," +
	"places.rating,places.userRatingCount,places.businessStatus,places.id,places.types"

const detailsFieldMask = "id,displayName,formattedAddress,location,rating," +
	"businessStatus,types,websiteUri,nationalPhoneNumber"

type client struct {
	httpClient    *http.Client
	apiKey        string
	placesBaseURL string
	geocodeURL    string
	directionsURL string
	regionCode    string
	languageCode  string
	logger        *zap.Logger
}

// NewClient creates a Google Maps platform client. A missing API key is a
// configuration error and fails fast at startup.
func NewClient(cfg *config.GoogleConfig, logger *zap.Logger) (repository.PlacesRepository, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google maps api key is not configured")
	}

	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		apiKey:        cfg.APIKey,
		placesBaseURL: cfg.PlacesBaseURL,
		geocodeURL:    cfg.GeocodeBaseURL,
		directionsURL: cfg.DirectionsURL,
		regionCode:    cfg.RegionCode,
		languageCode:  cfg.LanguageCode,
		logger:        logger,
	}, nil
}

type nearbySearchBody struct {
	IncludedTypes       []string            `json:"includedTypes,omitempty"`
	MaxResultCount      int                 `json:"maxResultCount"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
	RankPreference      string              `json:"rankPreference,omitempty"`
	RegionCode          string              `json:"regionCode,omitempty"`
	LanguageCode        string              `json:"languageCode,omitempty"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center domain.LatLng `json:"center"`
	Radius float64       `json:"radius"`
}

type nearbySearchResponse struct {
	Places []domain.Place `json:"places"`
}

// SearchNearby runs a circle-restricted nearby search against the Places API (New).
func (c *client) SearchNearby(
	ctx context.Context,
	req domain.NearbySearchRequest,
) (*domain.NearbySearchResult, error) {
	body := nearbySearchBody{
		IncludedTypes:  req.Types,
		MaxResultCount: req.MaxResults,
		LocationRestriction: locationRestriction{
			Circle: circle{
				Center: domain.LatLng{Latitude: req.Latitude, Longitude: req.Longitude},
				Radius: req.RadiusMeters,
			},
		},
		RegionCode:   c.regionCode,
		LanguageCode: c.languageCode,
	}
	if req.Ranking != "" {
		body.RankPreference = string(req.Ranking)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	c.logger.Debug("Calling Places searchNearby",
		zap.Float64("lat", req.Latitude),
		zap.Float64("lng", req.Longitude),
		zap.Float64("radius_m", req.RadiusMeters),
		zap.Strings("types", req.Types),
		zap.Int("max_results", req.MaxResults))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.placesBaseURL+":searchNearby", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", nearbyFieldMask)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute searchNearby request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, fmt.Errorf("places API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var searchResp nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Error("Failed to decode searchNearby response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Places searchNearby successful",
		zap.Int("place_count", len(searchResp.Places)))

	return &domain.NearbySearchResult{
		Places: searchResp.Places,
		Meta: map[string]interface{}{
			"radius_meters": req.RadiusMeters,
			"region_code":   c.regionCode,
		},
	}, nil
}

// GetPlaceDetails fetches the detailed record for a single place.
func (c *client) GetPlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	if placeID == "" {
		return nil, fmt.Errorf("place id cannot be empty")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", c.placesBaseURL, placeID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", detailsFieldMask)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute place details request",
			zap.String("place_id", placeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("places API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var details domain.PlaceDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &details, nil
}

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	PlaceID          string `json:"place_id"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Geocode resolves a free-form address to coordinates.
func (c *client) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	if address == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}
	return c.doGeocode(ctx, url.Values{"address": []string{address}})
}

// ReverseGeocode resolves coordinates to the nearest formatted address.
func (c *client) ReverseGeocode(ctx context.Context, lat, lng float64) (*domain.GeocodeResult, error) {
	return c.doGeocode(ctx, url.Values{"latlng": []string{fmt.Sprintf("%f,%f", lat, lng)}})
}

func (c *client) doGeocode(ctx context.Context, params url.Values) (*domain.GeocodeResult, error) {
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", c.geocodeURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute geocode request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocode API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var geocodeResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocodeResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if geocodeResp.Status != "OK" || len(geocodeResp.Results) == 0 {
		if geocodeResp.ErrorMessage != "" {
			return nil, fmt.Errorf("geocode failed: %s - %s", geocodeResp.Status, geocodeResp.ErrorMessage)
		}
		return nil, fmt.Errorf("geocode failed: %s", geocodeResp.Status)
	}

	result := geocodeResp.Results[0]
	return &domain.GeocodeResult{
		Lat:              result.Geometry.Location.Lat,
		Lng:              result.Geometry.Location.Lng,
		FormattedAddress: result.FormattedAddress,
		PlaceID:          result.PlaceID,
	}, nil
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetDirections returns the best route summary between two points.
func (c *client) GetDirections(
	ctx context.Context,
	originLat, originLng, destLat, destLng float64,
) (*domain.DirectionsResult, error) {
	params := url.Values{
		"origin":      []string{fmt.Sprintf("%f,%f", originLat, originLng)},
		"destination": []string{fmt.Sprintf("%f,%f", destLat, destLng)},
		"key":         []string{c.apiKey},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s?%s", c.directionsURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute directions request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("directions API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var dirResp directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dirResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if dirResp.Status != "OK" || len(dirResp.Routes) == 0 || len(dirResp.Routes[0].Legs) == 0 {
		if dirResp.ErrorMessage != "" {
			return nil, fmt.Errorf("directions failed: %s - %s", dirResp.Status, dirResp.ErrorMessage)
		}
		return nil, fmt.Errorf("directions failed: %s", dirResp.Status)
	}

	route := dirResp.Routes[0]
	leg := route.Legs[0]

	return &domain.DirectionsResult{
		Distance: leg.Distance.Text,
		Duration: leg.Duration.Text,
		Polyline: route.OverviewPolyline.Points,
	}, nil
}

// NewClientForTest builds a client against a test server URL.
func NewClientForTest(apiKey, baseURL string, logger *zap.Logger) repository.PlacesRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &client{
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		apiKey:        apiKey,
		placesBaseURL: baseURL + "/places",
		geocodeURL:    baseURL + "/geocode",
		directionsURL: baseURL + "/directions",
		regionCode:    "KE",
		languageCode:  "en",
		logger:        logger,
	}
}
