package receipt

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"github.com/mentorsetu/mentorsetu-api/pkg/money"
	"github.com/mentorsetu/mentorsetu-api/pkg/retry"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

const contentType = "application/pdf"

// Uploader stores a rendered receipt
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Filename is the download name of a booking's receipt
func Filename(b models.Booking) string {
	return fmt.Sprintf("receipt-%s.pdf", b.ID)
}

// ObjectKey is where a booking's receipt is stored
func ObjectKey(b models.Booking) string {
	return fmt.Sprintf("receipts/%s.pdf", b.ID)
}

// Render draws a one-page A4 receipt for b
func Render(b models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("MentorSetu receipt "+b.ID, false)
	pdf.SetCreator("MentorSetu.ai", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MentorSetu.ai - Session Receipt")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}

	row("Receipt no.", b.ID)
	row("Issued", b.CreatedAt.UTC().Format(time.RFC1123))
	pdf.Ln(4)
	row("Mentor", b.MentorName)
	row("Student", b.StudentName)
	row("Email", b.Email)
	row("Date", b.Date.Time().Format("Monday, 2 January 2006"))
	row("Time", b.Time)
	if b.SessionType != "" {
		row("Session type", b.SessionType)
	}
	row("Status", string(b.Status))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Reason")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(b.Reason), "", "", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 9, "Total paid: "+money.FormatINRPlain(b.Amount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This receipt covers one mentoring session. Payments are simulated.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// Publisher renders receipts and uploads them when storage is configured
type Publisher struct {
	uploader    Uploader
	retryConfig retry.Config
}

// NewPublisher creates a publisher; a nil uploader disables uploads
func NewPublisher(uploader Uploader) *Publisher {
	return &Publisher{uploader: uploader, retryConfig: retry.ObjectStorageConfig()}
}

// WithRetryConfig overrides the upload retry policy
func (p *Publisher) WithRetryConfig(cfg retry.Config) *Publisher {
	p.retryConfig = cfg
	return p
}

// Enabled reports whether receipts are uploaded
func (p *Publisher) Enabled() bool {
	return p != nil && p.uploader != nil
}

// Publish renders and uploads the receipt for b and returns its URL.
// Errors are logged here; callers must not fail a booking because of them.
func (p *Publisher) Publish(ctx context.Context, b models.Booking) (string, error) {
	if !p.Enabled() {
		metrics.ReceiptUploads.WithLabelValues("skipped").Inc()
		return "", nil
	}

	data, err := Render(b)
	if err != nil {
		metrics.ReceiptUploads.WithLabelValues("error").Inc()
		logger.Error("Failed to render receipt", zap.String("booking_id", b.ID), zap.Error(err))
		return "", err
	}

	url, err := retry.DoWithResult(ctx, p.retryConfig, "receipt_upload", func() (string, error) {
		return p.uploader.Upload(ctx, ObjectKey(b), contentType, data)
	})
	if err != nil {
		metrics.ReceiptUploads.WithLabelValues("error").Inc()
		logger.Error("Failed to upload receipt", zap.String("booking_id", b.ID), zap.Error(err))
		return "", err
	}

	metrics.ReceiptUploads.WithLabelValues("success").Inc()
	logger.Info("Receipt uploaded", zap.String("booking_id", b.ID), zap.String("url", url))
	return url, nil
}
