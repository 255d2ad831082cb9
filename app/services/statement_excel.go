package services

import (
	"fmt"

	"github.com/amirphl/Rentora/pricing"
	"github.com/xuri/excelize/v2"
)

const (
	statementSheet  = "Statement"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var statementHeaders = []string{"Reference", "Vehicle class", "Completed at", "Days", "Gross", "Commission", "Payout"}

// RenderStatementExcel writes the statement as a single styled sheet.
// Rows 1-3 carry the title, period and commission rate, the table header is on row 5.
func RenderStatementExcel(doc StatementDocument) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), statementSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := []float64{18, 16, 20, 8, 16, 16, 16}
	for i, w := range widths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := xl.SetColWidth(statementSheet, colName, colName, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", colName, err)
		}
	}

	moneyFmt := "#,##0.00"
	titleStyle, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := xl.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := xl.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(statementHeaders))
	if err := xl.MergeCell(statementSheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	_ = xl.SetCellValue(statementSheet, "A1", sanitizeExcelCell(doc.CompanyName)+" commission statement")
	_ = xl.SetCellStyle(statementSheet, "A1", lastCol+"1", titleStyle)
	_ = xl.SetCellValue(statementSheet, "A2", "Period: "+doc.period())
	_ = xl.SetCellValue(statementSheet, "A3", fmt.Sprintf("Commission rate: %s  Currency: %s", pricing.FormatPercentage(doc.CommissionRatePct), doc.Currency))

	headerRow := 5
	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := xl.SetSheetRow(statementSheet, cell, &statementHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	_ = xl.SetCellStyle(statementSheet, cell, fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	rowIdx := headerRow + 1
	for _, l := range doc.Lines {
		record := []any{
			sanitizeExcelCell(l.Reference),
			sanitizeExcelCell(l.VehicleClass),
			l.CompletedAt.UTC().Format("2006-01-02 15:04"),
			l.RentalDays,
			l.Split.Gross.InexactFloat64(),
			l.Split.Commission.InexactFloat64(),
			l.Split.Payout.InexactFloat64(),
		}
		cell, _ = excelize.CoordinatesToCellName(1, rowIdx)
		if err := xl.SetSheetRow(statementSheet, cell, &record); err != nil {
			return nil, fmt.Errorf("write line %s: %w", l.Reference, err)
		}
		_ = xl.SetCellStyle(statementSheet, fmt.Sprintf("E%d", rowIdx), fmt.Sprintf("G%d", rowIdx), moneyStyle)
		rowIdx++
	}

	rowIdx++
	totals := []any{
		"Total",
		"",
		"",
		len(doc.Lines),
		doc.Totals.Gross.InexactFloat64(),
		doc.Totals.Commission.InexactFloat64(),
		doc.Totals.Payout.InexactFloat64(),
	}
	cell, _ = excelize.CoordinatesToCellName(1, rowIdx)
	if err := xl.SetSheetRow(statementSheet, cell, &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}
	_ = xl.SetCellStyle(statementSheet, cell, fmt.Sprintf("%s%d", lastCol, rowIdx), totalStyle)

	_ = xl.SetPanes(statementSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	})

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell keeps user-controlled text from being read as a formula
func sanitizeExcelCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
