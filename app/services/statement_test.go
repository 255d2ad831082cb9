package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/amirphl/Rentora/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleStatement() StatementDocument {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	first := pricing.SplitCommission(decimal.RequireFromString("300.00"), 15)
	second := pricing.SplitCommission(decimal.RequireFromString("1250.50"), 15)

	return StatementDocument{
		CompanyName:       "Sunny Wheels",
		Currency:          "EUR",
		From:              from,
		To:                to,
		CommissionRatePct: 15,
		Lines: []StatementDocumentLine{
			{Reference: "RNT-0001", VehicleClass: "compact", CompletedAt: from.Add(48 * time.Hour), RentalDays: 3, Split: first},
			{Reference: "=HYPERLINK(1)", VehicleClass: "suv", CompletedAt: from.Add(240 * time.Hour), RentalDays: 10, Split: second},
		},
		Totals:      first.Add(second),
		GeneratedAt: to,
	}
}

func TestRenderStatementExcel(t *testing.T) {
	doc := sampleStatement()

	out, err := RenderStatementExcel(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, statementSheet, f.GetSheetName(0))

	title, err := f.GetCellValue(statementSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sunny Wheels commission statement", title)

	period, err := f.GetCellValue(statementSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Period: 2026-03-01 to 2026-03-31", period)

	rows, err := f.GetRows(statementSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 9)
	assert.Equal(t, statementHeaders, rows[4])
	assert.Equal(t, "RNT-0001", rows[5][0])
	assert.Equal(t, "'=HYPERLINK(1)", rows[6][0])

	gross, err := f.GetCellValue(statementSheet, "E6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "300", gross)

	total, err := f.GetCellValue(statementSheet, "A9")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	commission, err := f.GetCellValue(statementSheet, "F9", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "232.58", commission)
}

func TestRenderStatementExcelEmpty(t *testing.T) {
	doc := sampleStatement()
	doc.Lines = nil
	doc.Totals = pricing.CommissionSplit{}

	out, err := RenderStatementExcel(doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	total, err := f.GetCellValue(statementSheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)
}

func TestRenderStatementPDF(t *testing.T) {
	out, err := RenderStatementPDF(sampleStatement())
	require.NoError(t, err)
	require.Greater(t, len(out), 5)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestRenderStatementPDFEmpty(t *testing.T) {
	doc := sampleStatement()
	doc.Lines = nil

	out, err := RenderStatementPDF(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestStatementFilename(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "statement_sunny-wheels_2026-03-01_2026-03-31.xlsx", StatementFilename("sunny-wheels", from, to, "xlsx"))
	assert.Equal(t, "statement_company_2026-03-01_2026-03-31.pdf", StatementFilename(" ", from, to, "pdf"))
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"plain":   "plain",
		"=SUM(1)": "'=SUM(1)",
		"+1":      "'+1",
		"-1":      "'-1",
		"@cmd":    "'@cmd",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeExcelCell(in), in)
	}
}
