package mock

import (
	"context"

	"github.com/fwojciec/chatlens"
)

// Compile-time interface verification.
var (
	_ chatlens.SettingsService = (*SettingsService)(nil)
	_ chatlens.ReportService   = (*ReportService)(nil)
)

// SettingsService is a mock implementation of chatlens.SettingsService.
type SettingsService struct {
	FindSettingsFn   func(ctx context.Context) (*chatlens.Settings, error)
	UpdateSettingsFn func(ctx context.Context, upd chatlens.SettingsUpdate) (*chatlens.Settings, error)
}

func (s *SettingsService) FindSettings(ctx context.Context) (*chatlens.Settings, error) {
	return s.FindSettingsFn(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, upd chatlens.SettingsUpdate) (*chatlens.Settings, error) {
	return s.UpdateSettingsFn(ctx, upd)
}

// ReportService is a mock implementation of chatlens.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, report *chatlens.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*chatlens.Report, error)
	FindReportsFn    func(ctx context.Context, filter chatlens.ReportFilter) ([]*chatlens.Report, error)
}

func (s *ReportService) CreateReport(ctx context.Context, report *chatlens.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*chatlens.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter chatlens.ReportFilter) ([]*chatlens.Report, error) {
	return s.FindReportsFn(ctx, filter)
}
