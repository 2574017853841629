package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/pkg/export"
	"github.com/noah-isme/hackreg-api/pkg/jobs"
	"github.com/noah-isme/hackreg-api/pkg/storage"
)

var sheetHeaders = []string{"ID", "Full Name", "Email", "Phone", "Track", "Team Size", "Referral Code", "Registered At"}

// Appender is the append-only spreadsheet sink for new registrations.
// Rows are dispatched through a background queue so a slow or failing
// sheet can never delay or fail a registration response.
type Appender struct {
	store    *storage.LocalStorage
	csv      *export.CSVExporter
	fileName string
	queue    *jobs.Queue
	logger   *zap.Logger
}

// NewAppender builds the sink and its dispatch queue.
func NewAppender(store *storage.LocalStorage, fileName string, workers int, logger *zap.Logger) *Appender {
	if fileName == "" {
		fileName = "registrations.csv"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Appender{
		store:    store,
		csv:      export.NewCSVExporter(),
		fileName: fileName,
		logger:   logger,
	}
	a.queue = jobs.NewQueue("sheet-append", a.handle, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	return a
}

// Start launches the dispatch workers.
func (a *Appender) Start(ctx context.Context) {
	a.queue.Start(ctx)
}

// Stop drains the workers.
func (a *Appender) Stop() {
	a.queue.Stop()
}

// AppendApplicant enqueues one row. Errors are logged and dropped.
func (a *Appender) AppendApplicant(applicant models.Applicant) {
	err := a.queue.Enqueue(jobs.Job{
		ID:      applicant.ID,
		Type:    "sheet_append",
		Payload: applicant,
	})
	if err != nil {
		a.logger.Warn("sheet append enqueue failed",
			zap.String("applicant_id", applicant.ID),
			zap.Error(err))
	}
}

func (a *Appender) handle(_ context.Context, job jobs.Job) error {
	applicant, ok := job.Payload.(models.Applicant)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	referral := ""
	if applicant.ReferralCode != nil {
		referral = *applicant.ReferralCode
	}
	dataset := export.Dataset{
		Headers: sheetHeaders,
		Rows: []map[string]string{{
			"ID":            applicant.ID,
			"Full Name":     applicant.FullName,
			"Email":         applicant.Email,
			"Phone":         applicant.Phone,
			"Track":         applicant.Track,
			"Team Size":     strconv.Itoa(applicant.TeamSize),
			"Referral Code": referral,
			"Registered At": applicant.CreatedAt.Format(time.RFC3339),
		}},
	}

	if !a.store.Exists(a.fileName) {
		header, err := a.csv.Render(export.Dataset{Headers: sheetHeaders})
		if err != nil {
			return err
		}
		if err := a.store.Append(a.fileName, header); err != nil {
			return err
		}
	}

	row, err := a.csv.RenderRows(dataset)
	if err != nil {
		return err
	}
	return a.store.Append(a.fileName, row)
}
