package handlers

import (
	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type BookingHandlerInterface interface {
	CreateBooking(c fiber.Ctx) error
	UpdateBookingStatus(c fiber.Ctx) error
}

type BookingHandler struct {
	baseHandler
	flow businessflow.BookingFlow
}

func NewBookingHandler(flow businessflow.BookingFlow) BookingHandlerInterface {
	return &BookingHandler{
		baseHandler: newBaseHandler(),
		flow:        flow,
	}
}

// CreateBooking books a rental at the server-side quote, or at an optional bid
// @Summary Create booking
// @Tags Admin Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} dto.APIResponse{data=dto.BookingDTO}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Company or rate card not found"
// @Router /api/v1/admin/companies/{id}/bookings [post]
func (h *BookingHandler) CreateBooking(c fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/bookings")
	defer cancel()

	res, err := h.flow.CreateBooking(ctx, c.Params("id"), &req, h.metadata(c))
	if err != nil {
		if handled, rerr := h.rentalError(c, err); handled {
			return rerr
		}
		log.Error().Err(err).Str("company_uuid", c.Params("id")).Msg("create booking failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Create booking failed", "BOOKING_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Booking created", res)
}

// UpdateBookingStatus moves a booking along its lifecycle
// @Summary Update booking status
// @Description pending|auto_accepted -> confirmed|cancelled, confirmed -> completed|cancelled
// @Tags Admin Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Booking reference" example(RNT-8F3A2C1D)
// @Param request body dto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.BookingDTO}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Booking not found"
// @Failure 409 {object} dto.APIResponse "Transition not allowed"
// @Router /api/v1/admin/bookings/{reference}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c fiber.Ctx) error {
	var req dto.UpdateBookingStatusRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}
	adminID, ok := h.adminID(c)
	if !ok {
		return h.adminRequired(c)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/bookings/:reference/status")
	defer cancel()

	reference := c.Params("reference")
	res, err := h.flow.UpdateBookingStatus(ctx, reference, &req, adminID, h.metadata(c))
	if err != nil {
		switch {
		case businessflow.IsBookingNotFound(err):
			return h.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND", nil)
		case businessflow.IsInvalidBookingStatusTransition(err):
			return h.ErrorResponse(c, fiber.StatusConflict, "Booking status transition not allowed", "INVALID_STATUS_TRANSITION", err.Error())
		}
		log.Error().Err(err).Str("reference", reference).Msg("update booking status failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Update booking status failed", "BOOKING_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Booking status updated", res)
}
