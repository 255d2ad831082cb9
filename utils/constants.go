package utils

import (
	"time"
)

// AppName is reported by the HTTP server and the CLI
const AppName = "Rentora Admin API"

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// CaptchaTTL is how long an admin login captcha challenge stays valid
	CaptchaTTL = 2 * time.Minute
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Marketplace constants
const (
	// DefaultCurrency is used for companies created without an explicit currency
	DefaultCurrency = "EUR"

	// DefaultCommissionRatePct is the platform commission applied when none is configured
	DefaultCommissionRatePct = 15.0

	// MaxPageSize bounds list endpoints
	MaxPageSize = 100
)
