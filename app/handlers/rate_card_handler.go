package handlers

import (
	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type RateCardHandlerInterface interface {
	CreateRateCard(c fiber.Ctx) error
	ListRateCards(c fiber.Ctx) error
}

type RateCardHandler struct {
	baseHandler
	flow businessflow.RateCardFlow
}

func NewRateCardHandler(flow businessflow.RateCardFlow) RateCardHandlerInterface {
	return &RateCardHandler{
		baseHandler: newBaseHandler(),
		flow:        flow,
	}
}

// CreateRateCard adds a daily rate for a vehicle class; the newest active card wins
// @Summary Create rate card
// @Tags Admin Rate Cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param request body dto.CreateRateCardRequest true "Rate card"
// @Success 201 {object} dto.APIResponse{data=dto.RateCardDTO}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/rate-cards [post]
func (h *RateCardHandler) CreateRateCard(c fiber.Ctx) error {
	var req dto.CreateRateCardRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/rate-cards")
	defer cancel()

	res, err := h.flow.CreateRateCard(ctx, c.Params("id"), &req)
	if err != nil {
		if handled, rerr := h.companyError(c, err); handled {
			return rerr
		}
		if businessflow.IsInvalidRate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Daily rate must be positive and CDW rate non-negative", "INVALID_RATE", nil)
		}
		log.Error().Err(err).Str("company_uuid", c.Params("id")).Msg("create rate card failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Create rate card failed", "RATE_CARD_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Rate card created", res)
}

// ListRateCards returns the company's active rate cards
// @Summary List rate cards
// @Tags Admin Rate Cards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Success 200 {object} dto.APIResponse{data=dto.ListRateCardsResponse}
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/rate-cards [get]
func (h *RateCardHandler) ListRateCards(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/rate-cards")
	defer cancel()

	res, err := h.flow.ListRateCards(ctx, c.Params("id"))
	if err != nil {
		if handled, rerr := h.companyError(c, err); handled {
			return rerr
		}
		log.Error().Err(err).Str("company_uuid", c.Params("id")).Msg("list rate cards failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "List rate cards failed", "RATE_CARD_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Rate cards retrieved", res)
}
