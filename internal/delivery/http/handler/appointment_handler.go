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

// AppointmentHandler - handler for patient bookings
type AppointmentHandler struct {
	apptUC *usecase.AppointmentUseCase
	logger *zap.Logger
}

// NewAppointmentHandler - creates a new AppointmentHandler
func NewAppointmentHandler(apptUC *usecase.AppointmentUseCase, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		apptUC: apptUC,
		logger: logger,
	}
}

// Create godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAppointmentRequest true "Booking payload"
// @Success 201 {object} utils.SuccessResponse{data=domain.Appointment}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
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

	appt, err := h.apptUC.Create(c.Context(), patientID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, appt, nil)
}

// ListMine godoc
// @Summary List own appointments
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Appointment}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/appointments [get]
func (h *AppointmentHandler) ListMine(c *fiber.Ctx) error {
	patientID, ok := c.Locals(middleware.LocalUserID).(int64)
	if !ok {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	appts, err := h.apptUC.ListByPatient(c.Context(), patientID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, appts, &utils.Meta{Total: len(appts)})
}

// UpdateStatus godoc
// @Summary Change appointment status
// @Description Patients may cancel their own appointments; clinic owners may confirm, complete or cancel any.
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment id"
// @Param request body dto.UpdateAppointmentStatusRequest true "New status"
// @Success 200 {object} utils.SuccessResponse{data=domain.Appointment}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrValidation)
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	userID, ok := c.Locals(middleware.LocalUserID).(int64)
	if !ok {
		return utils.SendError(c, errors.ErrUnauthorized)
	}
	role, _ := c.Locals(middleware.LocalRole).(string)

	appt, err := h.apptUC.UpdateStatus(c.Context(), userID, role, int64(id), req.Status)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, appt, nil)
}
