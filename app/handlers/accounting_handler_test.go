package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccountingApp(flow businessflow.AccountingFlow) *fiber.App {
	h := NewAccountingHandler(flow)
	app := fiber.New()
	app.Get("/companies/:id/statement", h.GetStatement)
	app.Get("/companies/:id/statement/export", h.ExportStatementExcel)
	app.Get("/companies/:id/statement/invoice", h.ExportStatementPDF)
	return app
}

func TestAccountingHandler_GetStatement(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		flowErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "ok", query: "?from=2026-03-01&to=2026-03-31", wantStatus: http.StatusOK},
		{name: "missing to", query: "?from=2026-03-01", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "bad date format", query: "?from=01-03-2026&to=2026-03-31", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "reversed period", query: "?from=2026-04-01&to=2026-03-01", flowErr: businessErr("START_DATE_AFTER_END_DATE", businessflow.ErrStartDateAfterEndDate), wantStatus: http.StatusBadRequest, wantCode: "START_DATE_AFTER_END_DATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := new(mockAccountingFlow)
			if tt.flowErr != nil {
				flow.On("CompanyStatement", mock.Anything, testCompanyUUID, mock.Anything).Return(nil, tt.flowErr)
			} else {
				flow.On("CompanyStatement", mock.Anything, testCompanyUUID, &dto.StatementRequest{From: "2026-03-01", To: "2026-03-31"}).
					Return(&dto.StatementResponse{Currency: "EUR"}, nil)
			}

			resp, body := doJSON(t, newAccountingApp(flow), http.MethodGet, "/companies/"+testCompanyUUID+"/statement"+tt.query, nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestAccountingHandler_ExportDownloads(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		method      string
		file        *dto.StatementFile
		wantDispose string
	}{
		{
			name:        "excel",
			path:        "/statement/export",
			method:      "ExportStatementExcel",
			file:        &dto.StatementFile{Filename: "statement_sunny-wheels_2026-03-01_2026-03-31.xlsx", ContentType: services.XLSXContentType, Content: []byte("PK\x03\x04")},
			wantDispose: `attachment; filename="statement_sunny-wheels_2026-03-01_2026-03-31.xlsx"`,
		},
		{
			name:        "pdf",
			path:        "/statement/invoice",
			method:      "ExportStatementPDF",
			file:        &dto.StatementFile{Filename: "statement_sunny-wheels_2026-03-01_2026-03-31.pdf", ContentType: services.PDFContentType, Content: []byte("%PDF-1.3")},
			wantDispose: `attachment; filename="statement_sunny-wheels_2026-03-01_2026-03-31.pdf"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := new(mockAccountingFlow)
			flow.On(tt.method, mock.Anything, testCompanyUUID, mock.Anything).Return(tt.file, nil)

			req := httptest.NewRequest(http.MethodGet, "/companies/"+testCompanyUUID+tt.path+"?from=2026-03-01&to=2026-03-31", nil)
			resp, err := newAccountingApp(flow).Test(req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.file.ContentType, resp.Header.Get(fiber.HeaderContentType))
			assert.Equal(t, tt.wantDispose, resp.Header.Get(fiber.HeaderContentDisposition))
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.file.Content, raw)
		})
	}
}
