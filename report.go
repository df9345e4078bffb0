package chatlens

import (
	"context"
	"time"
)

// Report is a saved analysis of one scraped conversation.
type Report struct {
	ID               string
	Source           string // URL or file path the conversation was scraped from
	Site             Site
	MessageCount     int
	ConversationHash string
	Output           string
	CreatedAt        time.Time
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "report source required")
	}
	if r.Output == "" {
		return Errorf(EINVALID, "report output required")
	}
	return nil
}

// ReportService represents a service for managing reports.
type ReportService interface {
	// CreateReport creates a new report.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report by ID.
	// Returns ENOTFOUND if report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	Site             *Site
	ConversationHash *string

	Offset int
	Limit  int
}
