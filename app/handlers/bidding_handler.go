package handlers

import (
	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// BiddingHandlerInterface exposes a company's bidding configuration in both shapes:
// the wire payload (bidding percentages) and the discount form shown to admins.
type BiddingHandlerInterface interface {
	GetBiddingConfig(c fiber.Ctx) error
	UpdateBiddingConfig(c fiber.Ctx) error
	GetDiscountForm(c fiber.Ctx) error
	UpdateDiscountForm(c fiber.Ctx) error
}

type BiddingHandler struct {
	baseHandler
	flow businessflow.BiddingConfigFlow
}

func NewBiddingHandler(flow businessflow.BiddingConfigFlow) BiddingHandlerInterface {
	return &BiddingHandler{
		baseHandler: newBaseHandler(),
		flow:        flow,
	}
}

func (h *BiddingHandler) biddingError(c fiber.Ctx, err error, msg string) error {
	if handled, rerr := h.companyError(c, err); handled {
		return rerr
	}
	switch {
	case businessflow.IsBiddingPercentageOutOfRange(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Bidding percentage must be between 50 and 100", "BIDDING_PERCENTAGE_OUT_OF_RANGE", nil)
	case businessflow.IsInvalidDiscount(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Discount must be a number", "INVALID_DISCOUNT", nil)
	}
	log.Error().Err(err).Str("company_uuid", c.Params("id")).Msg(msg)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, msg, "BIDDING_CONFIG_FAILED", nil)
}

// GetBiddingConfig returns the stored bidding percentages
// @Summary Get bidding config
// @Description Bidding percentages per rental tier; null means bidding is disabled for that tier
// @Tags Admin Bidding
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Success 200 {object} dto.APIResponse{data=dto.BiddingConfigPayload}
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/bidding [get]
func (h *BiddingHandler) GetBiddingConfig(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/bidding")
	defer cancel()

	res, err := h.flow.GetBiddingConfig(ctx, c.Params("id"))
	if err != nil {
		return h.biddingError(c, err, "Get bidding config failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Bidding config retrieved", res)
}

// UpdateBiddingConfig replaces the bidding percentages
// @Summary Update bidding config
// @Description Replace all three tiers; null or an omitted field disables bidding for the tier
// @Tags Admin Bidding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param request body dto.BiddingConfigPayload true "Bidding percentages (50..100 or null)"
// @Success 200 {object} dto.APIResponse{data=dto.BiddingConfigPayload}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/bidding [put]
func (h *BiddingHandler) UpdateBiddingConfig(c fiber.Ctx) error {
	var req dto.BiddingConfigPayload
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}
	adminID, ok := h.adminID(c)
	if !ok {
		return h.adminRequired(c)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/bidding")
	defer cancel()

	res, err := h.flow.UpdateBiddingConfig(ctx, c.Params("id"), &req, adminID, h.metadata(c))
	if err != nil {
		return h.biddingError(c, err, "Update bidding config failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Bidding config updated", res)
}

// GetDiscountForm returns the bidding configuration as per-tier discounts
// @Summary Get discount form
// @Tags Admin Bidding
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Success 200 {object} dto.APIResponse{data=dto.DiscountFormResponse}
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/bidding/discounts [get]
func (h *BiddingHandler) GetDiscountForm(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/bidding/discounts")
	defer cancel()

	res, err := h.flow.GetDiscountForm(ctx, c.Params("id"))
	if err != nil {
		return h.biddingError(c, err, "Get discount form failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Discount form retrieved", res)
}

// UpdateDiscountForm saves per-tier discounts
// @Summary Update discount form
// @Description Enabled tiers store 100 - discount as the bidding percentage; disabled tiers are stored as null
// @Tags Admin Bidding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param request body dto.DiscountFormDTO true "Discount tiers"
// @Success 200 {object} dto.APIResponse{data=dto.DiscountFormResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/bidding/discounts [put]
func (h *BiddingHandler) UpdateDiscountForm(c fiber.Ctx) error {
	var req dto.DiscountFormDTO
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}
	adminID, ok := h.adminID(c)
	if !ok {
		return h.adminRequired(c)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/bidding/discounts")
	defer cancel()

	res, err := h.flow.UpdateDiscountForm(ctx, c.Params("id"), &req, adminID, h.metadata(c))
	if err != nil {
		return h.biddingError(c, err, "Update discount form failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Discount form updated", res)
}
