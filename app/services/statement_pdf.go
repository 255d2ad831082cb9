package services

import (
	"fmt"
	"strconv"

	"github.com/amirphl/Rentora/pricing"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const PDFContentType = "application/pdf"

var mutedText = &props.Color{Red: 90, Green: 90, Blue: 90}

// RenderStatementPDF prints the statement as an invoice for the platform commission
func RenderStatementPDF(doc StatementDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedText,
		}).
		Build()

	m := maroto.New(cfg)
	addInvoiceHeader(m, doc)
	addInvoiceTableHeader(m)
	for _, l := range doc.Lines {
		addInvoiceLine(m, doc.Currency, l)
	}
	addInvoiceTotals(m, doc)

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdf.GetBytes(), nil
}

func addInvoiceHeader(m core.Maroto, doc StatementDocument) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Commission invoice", props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
		row.New(7).Add(
			col.New(8).Add(
				text.New(doc.CompanyName, props.Text{Size: 11, Style: fontstyle.Bold}),
			),
			col.New(4).Add(
				text.New("Issued "+doc.GeneratedAt.UTC().Format("2006-01-02"), props.Text{Size: 9, Align: align.Right, Color: mutedText}),
			),
		),
		row.New(6).Add(
			col.New(8).Add(
				text.New("Period "+doc.period(), props.Text{Size: 9, Color: mutedText}),
			),
			col.New(4).Add(
				text.New("Commission rate "+pricing.FormatPercentage(doc.CommissionRatePct), props.Text{Size: 9, Align: align.Right, Color: mutedText}),
			),
		),
		row.New(4),
	)
}

func addInvoiceTableHeader(m core.Maroto) {
	cell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	head := props.Text{Size: 8, Style: fontstyle.Bold, Color: &props.Color{Red: 255, Green: 255, Blue: 255}, Top: 1.5, Left: 1}
	headRight := head
	headRight.Align = align.Right
	headRight.Right = 1

	m.AddRows(
		row.New(7).Add(
			col.New(3).Add(text.New("Reference", head)).WithStyle(cell),
			col.New(2).Add(text.New("Vehicle", head)).WithStyle(cell),
			col.New(1).Add(text.New("Days", headRight)).WithStyle(cell),
			col.New(2).Add(text.New("Gross", headRight)).WithStyle(cell),
			col.New(2).Add(text.New("Commission", headRight)).WithStyle(cell),
			col.New(2).Add(text.New("Payout", headRight)).WithStyle(cell),
		),
	)
}

func addInvoiceLine(m core.Maroto, currency string, l StatementDocumentLine) {
	body := props.Text{Size: 8, Top: 1.5, Left: 1}
	bodyRight := body
	bodyRight.Align = align.Right
	bodyRight.Right = 1

	m.AddRows(
		row.New(6).Add(
			col.New(3).Add(text.New(l.Reference, body)),
			col.New(2).Add(text.New(l.VehicleClass, body)),
			col.New(1).Add(text.New(strconv.Itoa(l.RentalDays), bodyRight)),
			col.New(2).Add(text.New(pricing.FormatAmount(l.Split.Gross, currency), bodyRight)),
			col.New(2).Add(text.New(pricing.FormatAmount(l.Split.Commission, currency), bodyRight)),
			col.New(2).Add(text.New(pricing.FormatAmount(l.Split.Payout, currency), bodyRight)),
		),
	)
}

func addInvoiceTotals(m core.Maroto, doc StatementDocument) {
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Right: 1}
	value := props.Text{Size: 9, Align: align.Right, Right: 1}

	totalRow := func(name, amount string) core.Row {
		return row.New(6).Add(
			col.New(8).Add(text.New(name, label)),
			col.New(4).Add(text.New(amount, value)),
		)
	}

	m.AddRows(
		row.New(4),
		totalRow(fmt.Sprintf("Bookings (%d) gross", len(doc.Lines)), pricing.FormatAmount(doc.Totals.Gross, doc.Currency)),
		totalRow("Commission due", pricing.FormatAmount(doc.Totals.Commission, doc.Currency)),
		totalRow("Operator payout", pricing.FormatAmount(doc.Totals.Payout, doc.Currency)),
	)
}
