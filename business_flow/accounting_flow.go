package businessflow

import (
	"context"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/rs/zerolog/log"
)

// AccountingFlow produces commission statements for completed bookings
type AccountingFlow interface {
	CompanyStatement(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementResponse, error)
	ExportStatementExcel(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementFile, error)
	ExportStatementPDF(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementFile, error)
}

type AccountingFlowImpl struct {
	companyRepo repository.CompanyRepository
	bookingRepo repository.BookingRepository
}

func NewAccountingFlow(companyRepo repository.CompanyRepository, bookingRepo repository.BookingRepository) AccountingFlow {
	return &AccountingFlowImpl{
		companyRepo: companyRepo,
		bookingRepo: bookingRepo,
	}
}

type statement struct {
	company *models.Company
	doc     services.StatementDocument
}

func (f *AccountingFlowImpl) CompanyStatement(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementResponse, error) {
	st, err := f.buildStatement(ctx, companyUUID, req)
	if err != nil {
		return nil, err
	}
	return toStatementResponse(st), nil
}

func (f *AccountingFlowImpl) ExportStatementExcel(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementFile, error) {
	st, err := f.buildStatement(ctx, companyUUID, req)
	if err != nil {
		return nil, err
	}

	content, err := services.RenderStatementExcel(st.doc)
	if err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return &dto.StatementFile{
		Filename:    services.StatementFilename(st.company.Slug, st.doc.From, st.doc.To, "xlsx"),
		ContentType: services.XLSXContentType,
		Content:     content,
	}, nil
}

func (f *AccountingFlowImpl) ExportStatementPDF(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*dto.StatementFile, error) {
	st, err := f.buildStatement(ctx, companyUUID, req)
	if err != nil {
		return nil, err
	}

	content, err := services.RenderStatementPDF(st.doc)
	if err != nil {
		return nil, NewBusinessError("PDF_WRITE_ERROR", "Failed to write PDF invoice", err)
	}
	return &dto.StatementFile{
		Filename:    services.StatementFilename(st.company.Slug, st.doc.From, st.doc.To, "pdf"),
		ContentType: services.PDFContentType,
		Content:     content,
	}, nil
}

// buildStatement collects the bookings completed between from and to (both whole days, inclusive)
func (f *AccountingFlowImpl) buildStatement(ctx context.Context, companyUUID string, req *dto.StatementRequest) (*statement, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_DATE", "Statement period is required", ErrInvalidDate)
	}
	from, err := utils.ParseDate(req.From)
	if err != nil {
		return nil, NewBusinessErrorf("INVALID_DATE", "Invalid from date %q, expected YYYY-MM-DD", ErrInvalidDate, req.From)
	}
	to, err := utils.ParseDate(req.To)
	if err != nil {
		return nil, NewBusinessErrorf("INVALID_DATE", "Invalid to date %q, expected YYYY-MM-DD", ErrInvalidDate, req.To)
	}
	if from.After(to) {
		return nil, NewBusinessError("START_DATE_AFTER_END_DATE", "From date must not be after to date", ErrStartDateAfterEndDate)
	}

	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return nil, err
	}

	bookings, err := f.bookingRepo.ListCompletedInPeriod(ctx, company.ID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, NewBusinessError("STATEMENT_QUERY_FAILED", "Failed to load completed bookings", err)
	}

	doc := services.StatementDocument{
		CompanyName:       company.Name,
		Currency:          company.Currency,
		From:              from,
		To:                to,
		CommissionRatePct: company.CommissionRatePct,
		Lines:             make([]services.StatementDocumentLine, 0, len(bookings)),
		GeneratedAt:       utils.UTCNow(),
	}
	for _, b := range bookings {
		split := pricing.SplitCommission(b.FinalAmount, company.CommissionRatePct)
		var completedAt time.Time
		if b.CompletedAt != nil {
			completedAt = b.CompletedAt.UTC()
		}
		doc.Lines = append(doc.Lines, services.StatementDocumentLine{
			Reference:    b.Reference,
			VehicleClass: b.VehicleClass,
			CompletedAt:  completedAt,
			RentalDays:   b.RentalDays,
			Split:        split,
		})
		doc.Totals = doc.Totals.Add(split)
	}

	log.Debug().
		Str("company_uuid", company.UUID.String()).
		Str("from", req.From).
		Str("to", req.To).
		Int("bookings", len(doc.Lines)).
		Msg("statement built")

	return &statement{company: company, doc: doc}, nil
}

func toStatementResponse(st *statement) *dto.StatementResponse {
	lines := make([]dto.StatementLineDTO, 0, len(st.doc.Lines))
	for _, l := range st.doc.Lines {
		lines = append(lines, dto.StatementLineDTO{
			Reference:    l.Reference,
			VehicleClass: l.VehicleClass,
			CompletedAt:  l.CompletedAt.Format(time.RFC3339),
			RentalDays:   l.RentalDays,
			Gross:        l.Split.Gross.StringFixed(moneyDecimals),
			Commission:   l.Split.Commission.StringFixed(moneyDecimals),
			Payout:       l.Split.Payout.StringFixed(moneyDecimals),
		})
	}

	return &dto.StatementResponse{
		CompanyUUID:       st.company.UUID.String(),
		CompanyName:       st.company.Name,
		Currency:          st.company.Currency,
		From:              utils.FormatDate(st.doc.From),
		To:                utils.FormatDate(st.doc.To),
		CommissionRatePct: st.company.CommissionRatePct,
		Lines:             lines,
		Totals: dto.StatementTotalsDTO{
			Bookings:   len(lines),
			Gross:      st.doc.Totals.Gross.StringFixed(moneyDecimals),
			Commission: st.doc.Totals.Commission.StringFixed(moneyDecimals),
			Payout:     st.doc.Totals.Payout.StringFixed(moneyDecimals),
		},
	}
}
