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

// ClinicHandler - handler for owner-managed clinic records
type ClinicHandler struct {
	clinicUC *usecase.ClinicUseCase
	logger   *zap.Logger
}

// NewClinicHandler - creates a new ClinicHandler
func NewClinicHandler(clinicUC *usecase.ClinicUseCase, logger *zap.Logger) *ClinicHandler {
	return &ClinicHandler{
		clinicUC: clinicUC,
		logger:   logger,
	}
}

// List godoc
// @Summary List clinics
// @Description Returns clinics, optionally filtered by a service substring.
// @Tags Clinics
// @Produce json
// @Param service query string false "Service substring filter"
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Clinic}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/clinics [get]
func (h *ClinicHandler) List(c *fiber.Ctx) error {
	clinics, err := h.clinicUC.List(c.Context(), c.Query("service"), c.QueryInt("limit", 0))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, clinics, &utils.Meta{Total: len(clinics)})
}

// Get godoc
// @Summary Get a clinic
// @Tags Clinics
// @Produce json
// @Param id path int true "Clinic id"
// @Success 200 {object} utils.SuccessResponse{data=domain.Clinic}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/clinics/{id} [get]
func (h *ClinicHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	clinic, err := h.clinicUC.GetByID(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, clinic, nil)
}

// Create godoc
// @Summary Create a clinic
// @Description Clinic owners register their own clinic records alongside discovered ones.
// @Tags Clinics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClinicRequest true "Clinic payload"
// @Success 201 {object} utils.SuccessResponse{data=domain.Clinic}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/clinics [post]
func (h *ClinicHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClinicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	clinic, err := h.clinicUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, clinic, nil)
}

// Update godoc
// @Summary Update a clinic
// @Tags Clinics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Clinic id"
// @Param request body dto.UpdateClinicRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=domain.Clinic}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/clinics/{id} [patch]
func (h *ClinicHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	var req dto.UpdateClinicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	clinic, err := h.clinicUC.Update(c.Context(), int64(id), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, clinic, nil)
}

// Delete godoc
// @Summary Delete a clinic
// @Tags Clinics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Clinic id"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/clinics/{id} [delete]
func (h *ClinicHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	if err := h.clinicUC.Delete(c.Context(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
