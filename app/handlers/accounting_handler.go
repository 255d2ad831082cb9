package handlers

import (
	"fmt"

	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type AccountingHandlerInterface interface {
	GetStatement(c fiber.Ctx) error
	ExportStatementExcel(c fiber.Ctx) error
	ExportStatementPDF(c fiber.Ctx) error
}

type AccountingHandler struct {
	baseHandler
	flow businessflow.AccountingFlow
}

func NewAccountingHandler(flow businessflow.AccountingFlow) AccountingHandlerInterface {
	return &AccountingHandler{
		baseHandler: newBaseHandler(),
		flow:        flow,
	}
}

func (h *AccountingHandler) statementError(c fiber.Ctx, err error) error {
	if handled, rerr := h.companyError(c, err); handled {
		return rerr
	}
	switch {
	case businessflow.IsStartDateAfterEndDate(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "from must not be after to", "START_DATE_AFTER_END_DATE", nil)
	case businessflow.IsInvalidDate(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Dates must be in format YYYY-MM-DD", "INVALID_DATE", nil)
	}
	log.Error().Err(err).Str("company_uuid", c.Params("id")).Msg("statement failed")
	return h.ErrorResponse(c, fiber.StatusInternalServerError, "Statement generation failed", "STATEMENT_FAILED", nil)
}

func (h *AccountingHandler) sendFile(c fiber.Ctx, file *dto.StatementFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Status(fiber.StatusOK).Send(file.Content)
}

// GetStatement returns completed bookings in the period with the commission split
// @Summary Company statement
// @Tags Admin Accounting
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.StatementResponse}
// @Failure 400 {object} dto.APIResponse "Invalid period"
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/statement [get]
func (h *AccountingHandler) GetStatement(c fiber.Ctx) error {
	var req dto.StatementRequest
	if ok, err := h.bindQuery(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/statement")
	defer cancel()

	res, err := h.flow.CompanyStatement(ctx, c.Params("id"), &req)
	if err != nil {
		return h.statementError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Statement generated", res)
}

// ExportStatementExcel downloads the statement as a workbook
// @Summary Export statement (xlsx)
// @Tags Admin Accounting
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.APIResponse "Invalid period"
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/statement/export [get]
func (h *AccountingHandler) ExportStatementExcel(c fiber.Ctx) error {
	var req dto.StatementRequest
	if ok, err := h.bindQuery(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/statement/export")
	defer cancel()

	file, err := h.flow.ExportStatementExcel(ctx, c.Params("id"), &req)
	if err != nil {
		return h.statementError(c, err)
	}
	return h.sendFile(c, file)
}

// ExportStatementPDF downloads the statement as a PDF invoice
// @Summary Export statement invoice (pdf)
// @Tags Admin Accounting
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.APIResponse "Invalid period"
// @Failure 404 {object} dto.APIResponse "Company not found"
// @Router /api/v1/admin/companies/{id}/statement/invoice [get]
func (h *AccountingHandler) ExportStatementPDF(c fiber.Ctx) error {
	var req dto.StatementRequest
	if ok, err := h.bindQuery(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/companies/:id/statement/invoice")
	defer cancel()

	file, err := h.flow.ExportStatementPDF(ctx, c.Params("id"), &req)
	if err != nil {
		return h.statementError(c, err)
	}
	return h.sendFile(c, file)
}
