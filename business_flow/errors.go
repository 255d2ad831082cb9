// Package businessflow contains the use cases behind the admin API
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Admin-related errors
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAdminInactive     = errors.New("admin is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidCaptcha    = errors.New("invalid captcha")
	ErrInvalidToken      = errors.New("invalid token")

	// Company-related errors
	ErrCompanyNotFound   = errors.New("company not found")
	ErrCompanyInactive   = errors.New("company is inactive")
	ErrCompanySlugExists = errors.New("company slug already exists")
	ErrInvalidCompany    = errors.New("company name or slug is invalid")

	// Bidding errors
	ErrBiddingPercentageOutOfRange = errors.New("bidding percentage must be between 50 and 100")
	ErrInvalidDiscount             = errors.New("discount must be a number")

	// Rate card and bid errors
	ErrRateCardNotFound    = errors.New("rate card not found")
	ErrInvalidRate         = errors.New("invalid rate")
	ErrInvalidBidAmount    = errors.New("bid amount must be positive")
	ErrInvalidRentalPeriod = errors.New("dropoff must be after pickup")

	// Booking errors
	ErrBookingNotFound                = errors.New("booking not found")
	ErrInvalidBookingStatusTransition = errors.New("invalid booking status transition")

	// Accounting errors
	ErrStartDateAfterEndDate = errors.New("start date is after end date")
	ErrInvalidDate           = errors.New("invalid date")

	// Pagination errors
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidPageSize = errors.New("invalid page size")

	ErrCaptchaNotAvailable = errors.New("captcha not available")
)

// BusinessError carries a stable machine-readable code alongside the wrapped cause
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAdminInactive(err error) bool {
	return errors.Is(err, ErrAdminInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsInvalidCaptcha(err error) bool {
	return errors.Is(err, ErrInvalidCaptcha)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsCompanyNotFound(err error) bool {
	return errors.Is(err, ErrCompanyNotFound)
}

func IsCompanyInactive(err error) bool {
	return errors.Is(err, ErrCompanyInactive)
}

func IsInvalidCompany(err error) bool {
	return errors.Is(err, ErrInvalidCompany)
}

func IsCompanySlugExists(err error) bool {
	return errors.Is(err, ErrCompanySlugExists)
}

func IsBiddingPercentageOutOfRange(err error) bool {
	return errors.Is(err, ErrBiddingPercentageOutOfRange)
}

func IsInvalidDiscount(err error) bool {
	return errors.Is(err, ErrInvalidDiscount)
}

func IsRateCardNotFound(err error) bool {
	return errors.Is(err, ErrRateCardNotFound)
}

func IsInvalidRate(err error) bool {
	return errors.Is(err, ErrInvalidRate)
}

func IsInvalidBidAmount(err error) bool {
	return errors.Is(err, ErrInvalidBidAmount)
}

func IsInvalidRentalPeriod(err error) bool {
	return errors.Is(err, ErrInvalidRentalPeriod)
}

func IsBookingNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound)
}

func IsInvalidBookingStatusTransition(err error) bool {
	return errors.Is(err, ErrInvalidBookingStatusTransition)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}

func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsCaptchaNotAvailable(err error) bool {
	return errors.Is(err, ErrCaptchaNotAvailable)
}
