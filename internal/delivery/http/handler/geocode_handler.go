package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
	"github.com/clinic-directory/internal/pkg/validator"
	"github.com/clinic-directory/internal/usecase"
	"github.com/clinic-directory/internal/usecase/dto"
)

// GeocodeHandler - handler for geocoding and routing
type GeocodeHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

// NewGeocodeHandler - creates a new GeocodeHandler
func NewGeocodeHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// Geocode godoc
// @Summary Forward or reverse geocoding
// @Description Resolves an address to coordinates, or a lat/lng pair to an address. Results are cached in Redis.
// @Tags Geo
// @Accept json
// @Produce json
// @Param request body dto.GeocodeRequest true "Address for forward mode, lat/lng for reverse mode"
// @Success 200 {object} utils.SuccessResponse{data=dto.GeocodeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geo/geocode [post]
func (h *GeocodeHandler) Geocode(c *fiber.Ctx) error {
	var req dto.GeocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.geocodeUC.Resolve(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Directions godoc
// @Summary Route between two points
// @Description Returns the best route summary (distance, duration, polyline) between an origin and a destination.
// @Tags Geo
// @Accept json
// @Produce json
// @Param request body dto.DirectionsRequest true "Origin and destination coordinates"
// @Success 200 {object} utils.SuccessResponse{data=domain.DirectionsResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geo/directions [post]
func (h *GeocodeHandler) Directions(c *fiber.Ctx) error {
	var req dto.DirectionsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.geocodeUC.Directions(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
