package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCompanyUUID = "6f1c2d3e-4a5b-4c6d-8e7f-901234567890"

// withAdmin stands in for AdminAuthenticate
func withAdmin(adminID uint) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals("admin_id", adminID)
		c.Locals("access_token", "access-token")
		return c.Next()
	}
}

// apiEnvelope mirrors dto.APIResponse with the error decoded as a dto.ErrorDetail
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    any             `json:"data"`
	Error   dto.ErrorDetail `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, apiEnvelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var envelope apiEnvelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if bytes.HasPrefix(raw, []byte("{")) {
		require.NoError(t, json.Unmarshal(raw, &envelope))
	}
	return resp, envelope
}

func businessErr(code string, sentinel error) error {
	return businessflow.NewBusinessError(code, sentinel.Error(), sentinel)
}

type mockAuthFlow struct{ mock.Mock }

func (m *mockAuthFlow) InitCaptcha(ctx context.Context) (*dto.AdminCaptchaInitResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*dto.AdminCaptchaInitResponse)
	return res, args.Error(1)
}

func (m *mockAuthFlow) Login(ctx context.Context, req *dto.AdminCaptchaVerifyRequest, metadata *businessflow.ClientMetadata) (*dto.AdminLoginResponse, error) {
	args := m.Called(ctx, req, metadata)
	res, _ := args.Get(0).(*dto.AdminLoginResponse)
	return res, args.Error(1)
}

func (m *mockAuthFlow) Refresh(ctx context.Context, req *dto.AdminRefreshRequest) (*dto.AdminSessionDTO, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.AdminSessionDTO)
	return res, args.Error(1)
}

func (m *mockAuthFlow) Logout(ctx context.Context, accessToken string, req *dto.AdminLogoutRequest) error {
	return m.Called(ctx, accessToken, req).Error(0)
}

type mockCompanyFlow struct{ mock.Mock }

func (m *mockCompanyFlow) CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest, metadata *businessflow.ClientMetadata) (*dto.CompanyDTO, error) {
	args := m.Called(ctx, req, metadata)
	res, _ := args.Get(0).(*dto.CompanyDTO)
	return res, args.Error(1)
}

func (m *mockCompanyFlow) GetCompany(ctx context.Context, companyUUID string) (*dto.CompanyDTO, error) {
	args := m.Called(ctx, companyUUID)
	res, _ := args.Get(0).(*dto.CompanyDTO)
	return res, args.Error(1)
}

func (m *mockCompanyFlow) ListCompanies(ctx context.Context, page, pageSize int) (*dto.ListCompaniesResponse, error) {
	args := m.Called(ctx, page, pageSize)
	res, _ := args.Get(0).(*dto.ListCompaniesResponse)
	return res, args.Error(1)
}

type mockBiddingFlow struct{ mock.Mock }

func (m *mockBiddingFlow) GetBiddingConfig(ctx context.Context, companyUUID string) (*dto.BiddingConfigPayload, error) {
	args := m.Called(ctx, companyUUID)
	res, _ := args.Get(0).(*dto.BiddingConfigPayload)
	return res, args.Error(1)
}

func (m *mockBiddingFlow) GetDiscountForm(ctx context.Context, companyUUID string) (*dto.DiscountFormResponse, error) {
	args := m.Called(ctx, companyUUID)
	res, _ := args.Get(0).(*dto.DiscountFormResponse)
	return res, args.Error(1)
}

func (m *mockBiddingFlow) UpdateBiddingConfig(ctx context.Context, companyUUID string, req *dto.BiddingConfigPayload, adminID uint, metadata *businessflow.ClientMetadata) (*dto.BiddingConfigPayload, error) {
	args := m.Called(ctx, companyUUID, req, adminID, metadata)
	res, _ := args.Get(0).(*dto.BiddingConfigPayload)
	return res, args.Error(1)
}

func (m *mockBiddingFlow) UpdateDiscountForm(ctx context.Context, companyUUID string, req *dto.DiscountFormDTO, adminID uint, metadata *businessflow.ClientMetadata) (*dto.DiscountFormResponse, error) {
	args := m.Called(ctx, companyUUID, req, adminID, metadata)
	res, _ := args.Get(0).(*dto.DiscountFormResponse)
	return res, args.Error(1)
}

type mockBookingFlow struct{ mock.Mock }

func (m *mockBookingFlow) CreateBooking(ctx context.Context, companyUUID string, req *dto.CreateBookingRequest, metadata *businessflow.ClientMetadata) (*dto.BookingDTO, error) {
	args := m.Called(ctx, companyUUID, req, metadata)
	res, _ := args.Get(0).(*dto.BookingDTO)
	return res, args.Error(1)
}

func (m *mockBookingFlow) UpdateBookingStatus(ctx context.Context, reference string, req *dto.UpdateBookingStatusRequest, adminID uint, metadata *businessflow.ClientMetadata) (*dto.BookingDTO, error) {
	args := m.Called(ctx, reference, req, adminID, metadata)
	res, _ := args.Get(0).(*dto.BookingDTO)
	return res, args.Error(1)
}

type mockAccountingFlow struct{ mock.Mock }

func (m *mockAccountingFlow) CompanyStatement(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementResponse, error) {
	args := m.Called(ctx, companyUUID, req)
	res, _ := args.Get(0).(*dto.StatementResponse)
	return res, args.Error(1)
}

func (m *mockAccountingFlow) ExportStatementExcel(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementFile, error) {
	args := m.Called(ctx, companyUUID, req)
	res, _ := args.Get(0).(*dto.StatementFile)
	return res, args.Error(1)
}

func (m *mockAccountingFlow) ExportStatementPDF(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementFile, error) {
	args := m.Called(ctx, companyUUID, req)
	res, _ := args.Get(0).(*dto.StatementFile)
	return res, args.Error(1)
}
