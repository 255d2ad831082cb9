package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	businessflow "github.com/amirphl/Rentora/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBookingApp(flow businessflow.BookingFlow) *fiber.App {
	h := NewBookingHandler(flow)
	app := fiber.New()
	app.Use(withAdmin(4))
	app.Post("/companies/:id/bookings", h.CreateBooking)
	app.Patch("/bookings/:reference/status", h.UpdateBookingStatus)
	return app
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	pickup := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("dropoff before pickup fails validation", func(t *testing.T) {
		flow := new(mockBookingFlow)
		resp, body := doJSON(t, newBookingApp(flow), http.MethodPost, "/companies/"+testCompanyUUID+"/bookings", map[string]any{
			"vehicle_class": "compact",
			"pickup_at":     pickup,
			"dropoff_at":    pickup.Add(-time.Hour),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		flow.AssertNotCalled(t, "CreateBooking")
	})

	t.Run("bid amount decoded", func(t *testing.T) {
		flow := new(mockBookingFlow)
		flow.On("CreateBooking", mock.Anything, testCompanyUUID, mock.MatchedBy(func(req *dto.CreateBookingRequest) bool {
			return req.BidAmount != nil && req.BidAmount.Equal(decimal.RequireFromString("270.5"))
		}), mock.Anything).Return(&dto.BookingDTO{Reference: "RNT-0A1B2C3D", Status: "auto_accepted"}, nil)

		resp, body := doJSON(t, newBookingApp(flow), http.MethodPost, "/companies/"+testCompanyUUID+"/bookings", map[string]any{
			"vehicle_class": "compact",
			"pickup_at":     pickup,
			"dropoff_at":    pickup.Add(7 * 24 * time.Hour),
			"bid_amount":    "270.50",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "RNT-0A1B2C3D", body.Data.(map[string]any)["reference"])
		flow.AssertExpectations(t)
	})

	t.Run("missing rate card", func(t *testing.T) {
		flow := new(mockBookingFlow)
		flow.On("CreateBooking", mock.Anything, testCompanyUUID, mock.Anything, mock.Anything).
			Return(nil, businessErr("RATE_CARD_NOT_FOUND", businessflow.ErrRateCardNotFound))

		resp, body := doJSON(t, newBookingApp(flow), http.MethodPost, "/companies/"+testCompanyUUID+"/bookings", map[string]any{
			"vehicle_class": "van",
			"pickup_at":     pickup,
			"dropoff_at":    pickup.Add(24 * time.Hour),
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "RATE_CARD_NOT_FOUND", body.Error.Code)
	})
}

func TestBookingHandler_UpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		flowErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "confirmed", status: "confirmed", wantStatus: http.StatusOK},
		{name: "status outside enum", status: "auto_accepted", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "illegal transition", status: "completed", flowErr: businessErr("INVALID_STATUS_TRANSITION", businessflow.ErrInvalidBookingStatusTransition), wantStatus: http.StatusConflict, wantCode: "INVALID_STATUS_TRANSITION"},
		{name: "unknown reference", status: "cancelled", flowErr: businessErr("BOOKING_NOT_FOUND", businessflow.ErrBookingNotFound), wantStatus: http.StatusNotFound, wantCode: "BOOKING_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := new(mockBookingFlow)
			if tt.flowErr != nil {
				flow.On("UpdateBookingStatus", mock.Anything, "RNT-0A1B2C3D", mock.Anything, uint(4), mock.Anything).Return(nil, tt.flowErr)
			} else {
				flow.On("UpdateBookingStatus", mock.Anything, "RNT-0A1B2C3D", &dto.UpdateBookingStatusRequest{Status: tt.status}, uint(4), mock.Anything).
					Return(&dto.BookingDTO{Reference: "RNT-0A1B2C3D", Status: tt.status}, nil)
			}

			resp, body := doJSON(t, newBookingApp(flow), http.MethodPatch, "/bookings/RNT-0A1B2C3D/status", dto.UpdateBookingStatusRequest{Status: tt.status})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}
