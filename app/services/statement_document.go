package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirphl/Rentora/pricing"
)

// StatementDocument is everything the renderers need to print a company's commission statement
type StatementDocument struct {
	CompanyName       string
	Currency          string
	From              time.Time
	To                time.Time // inclusive day
	CommissionRatePct float64
	Lines             []StatementDocumentLine
	Totals            pricing.CommissionSplit
	GeneratedAt       time.Time
}

type StatementDocumentLine struct {
	Reference    string
	VehicleClass string
	CompletedAt  time.Time
	RentalDays   int
	Split        pricing.CommissionSplit
}

func (d StatementDocument) period() string {
	return fmt.Sprintf("%s to %s", d.From.Format("2006-01-02"), d.To.Format("2006-01-02"))
}

// StatementFilename builds a download name like "statement_sunny-wheels_2026-03-01_2026-03-31.xlsx"
func StatementFilename(slug string, from, to time.Time, ext string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = "company"
	}
	return fmt.Sprintf("statement_%s_%s_%s.%s", slug, from.Format("2006-01-02"), to.Format("2006-01-02"), ext)
}
