package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
	"github.com/noah-isme/hackreg-api/pkg/export"
)

type applicantLister interface {
	List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RosterExport is a rendered roster file.
type RosterExport struct {
	Data        []byte
	FileName    string
	ContentType string
}

// AdminService serves the operator verification surface: the applicant
// list and roster exports.
type AdminService struct {
	repo   applicantLister
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(repo applicantLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *AdminService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, csv: csv, pdf: pdf, logger: logger}
}

// List returns applicants and pagination metadata.
func (s *AdminService) List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, *models.Pagination, error) {
	applicants, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applicants")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return applicants, pagination, nil
}

// exportPageSize is the page size used when walking the store for a
// roster export.
const exportPageSize = 100

// ExportRoster renders the full applicant roster as CSV or PDF. The
// store is paged through until every row is collected so the export is
// never a truncated first page.
func (s *AdminService) ExportRoster(ctx context.Context, format string) (*RosterExport, error) {
	var applicants []models.Applicant
	for page := 1; ; page++ {
		batch, total, err := s.repo.List(ctx, models.ApplicantFilter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicants")
		}
		applicants = append(applicants, batch...)
		if len(batch) == 0 || len(applicants) >= total {
			break
		}
	}

	dataset := rosterDataset(applicants)
	stamp := time.Now().UTC().Format("20060102-150405")

	switch format {
	case "csv", "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &RosterExport{Data: data, FileName: fmt.Sprintf("applicants-%s.csv", stamp), ContentType: "text/csv"}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset, "Applicant Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &RosterExport{Data: data, FileName: fmt.Sprintf("applicants-%s.pdf", stamp), ContentType: "application/pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func rosterDataset(applicants []models.Applicant) export.Dataset {
	headers := []string{"ID", "Full Name", "Email", "Phone", "Track", "Team Size", "Payment Status", "Order ID", "Registered At"}
	rows := make([]map[string]string, 0, len(applicants))
	for _, a := range applicants {
		orderID := ""
		if a.PaymentOrderID != nil {
			orderID = *a.PaymentOrderID
		}
		rows = append(rows, map[string]string{
			"ID":             a.ID,
			"Full Name":      a.FullName,
			"Email":          a.Email,
			"Phone":          a.Phone,
			"Track":          a.Track,
			"Team Size":      strconv.Itoa(a.TeamSize),
			"Payment Status": a.PaymentStatus,
			"Order ID":       orderID,
			"Registered At":  a.CreatedAt.Format(time.RFC3339),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
