package handlers

import (
	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// CompanyHandlerInterface defines admin endpoints for rental companies
type CompanyHandlerInterface interface {
	CreateCompany(c fiber.Ctx) error
	GetCompany(c fiber.Ctx) error
	ListCompanies(c fiber.Ctx) error
}

type CompanyHandler struct {
	baseHandler
	flow businessflow.CompanyFlow
}

func NewCompanyHandler(flow businessflow.CompanyFlow) CompanyHandlerInterface {
	return &CompanyHandler{
		baseHandler: newBaseHandler(),
		flow:        flow,
	}
}

// CreateCompany registers a rental company
// @Summary Create company
// @Description Create a rental company; slug is derived from the name when omitted
// @Tags Admin Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCompanyRequest true "Company payload"
// @Success 201 {object} dto.APIResponse{data=dto.CompanyDTO} "Company created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Slug already exists"
// @Failure 500 {object} dto.APIResponse "Creation failed"
// @Router /api/v1/admin/companies [post]
func (h *CompanyHandler) CreateCompany(c fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies")
	defer cancel()

	company, err := h.flow.CreateCompany(ctx, &req, h.metadata(c))
	if err != nil {
		switch {
		case businessflow.IsInvalidCompany(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Company name or slug is invalid", "INVALID_COMPANY", nil)
		case businessflow.IsCompanySlugExists(err):
			return h.ErrorResponse(c, fiber.StatusConflict, "Company slug already exists", "COMPANY_SLUG_EXISTS", nil)
		}
		log.Error().Err(err).Str("name", req.Name).Msg("create company failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Create company failed", "COMPANY_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Company created", company)
}

// GetCompany returns a single company
// @Summary Get company
// @Tags Admin Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyDTO}
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id} [get]
func (h *CompanyHandler) GetCompany(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id")
	defer cancel()

	company, err := h.flow.GetCompany(ctx, c.Params("id"))
	if err != nil {
		if handled, rerr := h.companyError(c, err); handled {
			return rerr
		}
		log.Error().Err(err).Str("company_uuid", c.Params("id")).Msg("get company failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Get company failed", "COMPANY_GET_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Company retrieved", company)
}

// ListCompanies returns a page of companies ordered by name
// @Summary List companies
// @Tags Admin Companies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListCompaniesResponse}
// @Failure 400 {object} dto.APIResponse "Invalid pagination"
// @Router /api/v1/admin/companies [get]
func (h *CompanyHandler) ListCompanies(c fiber.Ctx) error {
	var req dto.PaginationRequest
	if ok, err := h.bindQuery(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies")
	defer cancel()

	res, err := h.flow.ListCompanies(ctx, req.Page, req.PageSize)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", err.Error())
		}
		log.Error().Err(err).Msg("list companies failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "List companies failed", "COMPANY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Companies retrieved", res)
}
