package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/chatlens"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ chatlens.ReportService = (*ReportService)(nil)

// ReportService implements chatlens.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport assigns an ID and timestamp and saves the report.
func (s *ReportService) CreateReport(ctx context.Context, report *chatlens.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()
	report.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, source, site, message_count, conversation_hash, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Source, string(report.Site), report.MessageCount, report.ConversationHash,
		report.Output, formatTime(report.CreatedAt))

	return err
}

const reportColumns = "id, source, site, message_count, conversation_hash, output, created_at"

// FindReportByID retrieves a report by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*chatlens.Report, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+reportColumns+" FROM reports WHERE id = ?", id)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, chatlens.Errorf(chatlens.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter chatlens.ReportFilter) ([]*chatlens.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + reportColumns + " FROM reports WHERE 1=1")

	if filter.Site != nil {
		query.WriteString(" AND site = ?")
		args = append(args, string(*filter.Site))
	}
	if filter.ConversationHash != nil {
		query.WriteString(" AND conversation_hash = ?")
		args = append(args, *filter.ConversationHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*chatlens.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*chatlens.Report, error) {
	var report chatlens.Report
	var site, createdAt string

	if err := row.Scan(&report.ID, &report.Source, &site, &report.MessageCount,
		&report.ConversationHash, &report.Output, &createdAt); err != nil {
		return nil, err
	}
	report.Site = chatlens.Site(site)

	var err error
	if report.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &report, nil
}
