package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/chatlens"
)

// Compile-time interface verification.
var _ chatlens.SettingsService = (*SettingsService)(nil)

// SettingsService implements chatlens.SettingsService using SQLite. Settings
// live in a single row; an empty table reads as the defaults.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// FindSettings returns the stored settings with defaults filled in.
func (s *SettingsService) FindSettings(ctx context.Context) (*chatlens.Settings, error) {
	var settings chatlens.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT embedding_model, llm_model FROM settings WHERE id = 1
	`).Scan(&settings.EmbeddingModel, &settings.LLMModel)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := chatlens.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}

	settings = settings.WithDefaults()
	return &settings, nil
}

// UpdateSettings applies the non-nil fields of upd. An empty string resets
// the field to its default.
func (s *SettingsService) UpdateSettings(ctx context.Context, upd chatlens.SettingsUpdate) (*chatlens.Settings, error) {
	settings, err := s.FindSettings(ctx)
	if err != nil {
		return nil, err
	}

	if v := upd.EmbeddingModel; v != nil {
		settings.EmbeddingModel = *v
	}
	if v := upd.LLMModel; v != nil {
		settings.LLMModel = *v
	}
	*settings = settings.WithDefaults()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, embedding_model, llm_model, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			embedding_model = excluded.embedding_model,
			llm_model = excluded.llm_model,
			updated_at = excluded.updated_at
	`, settings.EmbeddingModel, settings.LLMModel, formatTime(time.Now()))
	if err != nil {
		return nil, err
	}

	return settings, nil
}
