package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
	"github.com/clinic-directory/internal/usecase"
	"github.com/clinic-directory/internal/usecase/dto"
)

// PlacesHandler - handler for nearby discovery and provider-backed lookups
type PlacesHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	logger      *zap.Logger
}

// NewPlacesHandler - creates a new PlacesHandler
func NewPlacesHandler(discoveryUC *usecase.DiscoveryUseCase, logger *zap.Logger) *PlacesHandler {
	return &PlacesHandler{
		discoveryUC: discoveryUC,
		logger:      logger,
	}
}

// Nearby godoc
// @Summary Nearby clinic search
// @Description Returns clinics around a point, served from the local store when it holds enough matches and from the places provider otherwise. The debug block reports which source answered.
// @Tags Places
// @Produce json
// @Param lat query number true "Latitude of the search center"
// @Param lng query number true "Longitude of the search center"
// @Param radiusKm query number false "Search radius in kilometres" default(5)
// @Param radiusMode query string false "preset or drag; drag always refreshes from the provider" default(preset)
// @Param types query string false "Comma-separated service types (e.g. dental_clinic,hospital)"
// @Param ranking query string false "DISTANCE or POPULARITY"
// @Param maxResults query int false "Maximum provider results" default(20)
// @Param skipCache query string false "true forces a provider fetch"
// @Success 200 {object} dto.NearbyResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/nearby [get]
func (h *PlacesHandler) Nearby(c *fiber.Ctx) error {
	query, err := dto.ParseNearbyRequest(dto.NearbyQueryParams{
		Lat:        c.Query("lat"),
		Lng:        c.Query("lng"),
		RadiusKm:   c.Query("radiusKm"),
		RadiusMode: c.Query("radiusMode"),
		Types:      c.Query("types"),
		Ranking:    c.Query("ranking"),
		MaxResults: c.Query("maxResults"),
		SkipCache:  c.Query("skipCache"),
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.DiscoverNearby(c.Context(), query)
	if err != nil {
		return utils.SendError(c, err)
	}

	// Map clients consume this payload directly, without the data envelope.
	return c.JSON(result)
}

// Cached godoc
// @Summary Cached clinics only
// @Description Returns clinics from the local store without ever calling the provider. Used by map clients as an offline-friendly fallback.
// @Tags Places
// @Produce json
// @Param lat query number true "Latitude of the search center"
// @Param lng query number true "Longitude of the search center"
// @Param radiusKm query number false "Search radius in kilometres" default(5)
// @Param types query string false "Comma-separated service types"
// @Success 200 {object} dto.CachedClinicsResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/cached [get]
func (h *PlacesHandler) Cached(c *fiber.Ctx) error {
	query, err := dto.ParseNearbyRequest(dto.NearbyQueryParams{
		Lat:      c.Query("lat"),
		Lng:      c.Query("lng"),
		RadiusKm: c.Query("radiusKm"),
		Types:    c.Query("types"),
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.GetCachedClinics(c.Context(), query.Lat, query.Lng, query.RadiusKm, query.Types)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// Details godoc
// @Summary Place details
// @Description Fetches provider details for one place id and queues a background refresh of the stored clinic record.
// @Tags Places
// @Produce json
// @Param placeId path string true "Provider place id"
// @Success 200 {object} utils.SuccessResponse{data=domain.PlaceDetails}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/{placeId} [get]
func (h *PlacesHandler) Details(c *fiber.Ctx) error {
	placeID := c.Params("placeId")
	if placeID == "" {
		return utils.SendError(c, errors.ErrValidation)
	}

	details, err := h.discoveryUC.GetPlaceDetails(c.Context(), placeID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, details, nil)
}
