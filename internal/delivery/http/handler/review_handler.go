package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/delivery/http/middleware"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
	"github.com/clinic-directory/internal/pkg/validator"
	"github.com/clinic-directory/internal/usecase"
	"github.com/clinic-directory/internal/usecase/dto"
)

// ReviewHandler - handler for clinic reviews
type ReviewHandler struct {
	reviewUC *usecase.ReviewUseCase
	logger   *zap.Logger
}

// NewReviewHandler - creates a new ReviewHandler
func NewReviewHandler(reviewUC *usecase.ReviewUseCase, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

// Create godoc
// @Summary Review a clinic
// @Description Stores a review and refreshes the clinic's average rating.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review payload"
// @Success 201 {object} utils.SuccessResponse{data=domain.Review}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	patientID, ok := c.Locals(middleware.LocalUserID).(int64)
	if !ok {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	review, err := h.reviewUC.Create(c.Context(), patientID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, review, nil)
}

// ListByClinic godoc
// @Summary List reviews for a clinic
// @Tags Reviews
// @Produce json
// @Param id path int true "Clinic id"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReviewListResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/clinics/{id}/reviews [get]
func (h *ReviewHandler) ListByClinic(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	result, err := h.reviewUC.ListByClinic(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}
