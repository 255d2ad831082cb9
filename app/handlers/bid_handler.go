package handlers

import (
	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type BidHandlerInterface interface {
	EvaluateBid(c fiber.Ctx) error
}

type BidHandler struct {
	baseHandler
	flow businessflow.BidFlow
}

func NewBidHandler(flow businessflow.BidFlow) BidHandlerInterface {
	return &BidHandler{
		baseHandler: newBaseHandler(),
		flow:        flow,
	}
}

// rentalError maps failures shared by bid evaluation and booking creation
func (h *baseHandler) rentalError(c fiber.Ctx, err error) (bool, error) {
	if handled, rerr := h.companyError(c, err); handled {
		return true, rerr
	}
	switch {
	case businessflow.IsRateCardNotFound(err):
		return true, h.ErrorResponse(c, fiber.StatusNotFound, "No active rate card for this vehicle class", "RATE_CARD_NOT_FOUND", nil)
	case businessflow.IsInvalidRentalPeriod(err):
		return true, h.ErrorResponse(c, fiber.StatusBadRequest, "Dropoff must be after pickup", "INVALID_RENTAL_PERIOD", nil)
	case businessflow.IsInvalidBidAmount(err):
		return true, h.ErrorResponse(c, fiber.StatusBadRequest, "Bid amount must be positive", "INVALID_BID_AMOUNT", nil)
	}
	return false, nil
}

// EvaluateBid quotes a rental and decides whether a customer bid is auto-accepted
// @Summary Evaluate bid
// @Description Quote the rental from the active rate card and compare the bid against the tier's bidding floor
// @Tags Admin Bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param request body dto.EvaluateBidRequest true "Rental and bid"
// @Success 200 {object} dto.APIResponse{data=dto.BidEvaluationResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Company or rate card not found"
// @Router /api/v1/admin/companies/{id}/bids/evaluate [post]
func (h *BidHandler) EvaluateBid(c fiber.Ctx) error {
	var req dto.EvaluateBidRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/bids/evaluate")
	defer cancel()

	res, err := h.flow.EvaluateBid(ctx, c.Params("id"), &req)
	if err != nil {
		if handled, rerr := h.rentalError(c, err); handled {
			return rerr
		}
		log.Error().Err(err).Str("company_uuid", c.Params("id")).Msg("evaluate bid failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Evaluate bid failed", "BID_EVALUATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Bid evaluated", res)
}
