package chatlens

import "context"

// Default analysis settings.
const (
	DefaultEmbeddingModel = "nomic-embed-text:latest"
	DefaultLLMModel       = "llama3"
	DefaultOllamaURL      = "http://127.0.0.1:11434"
)

// Settings holds the user-editable analysis configuration.
type Settings struct {
	EmbeddingModel string
	LLMModel       string
}

// DefaultSettings returns settings populated with defaults.
func DefaultSettings() Settings {
	return Settings{
		EmbeddingModel: DefaultEmbeddingModel,
		LLMModel:       DefaultLLMModel,
	}
}

// WithDefaults returns a copy with empty fields replaced by defaults.
func (s Settings) WithDefaults() Settings {
	if s.EmbeddingModel == "" {
		s.EmbeddingModel = DefaultEmbeddingModel
	}
	if s.LLMModel == "" {
		s.LLMModel = DefaultLLMModel
	}
	return s
}

// Payload returns the backend configuration fields sent alongside the
// conversation. Analysis runs against a local Ollama instance.
func (s Settings) Payload() map[string]any {
	s = s.WithDefaults()
	return map[string]any{
		"embedding_model":    s.EmbeddingModel,
		"embedding_provider": "local",
		"embedding_api_key":  nil,
		"llm_type":           "ollama",
		"api_key":            nil,
		"base_url":           DefaultOllamaURL + "/v1",
		"model_name":         s.LLMModel,
		"ollama_url":         DefaultOllamaURL,
	}
}

// SettingsService persists analysis settings.
type SettingsService interface {
	// FindSettings returns the stored settings, or defaults if none are stored.
	FindSettings(ctx context.Context) (*Settings, error)

	// UpdateSettings applies non-nil fields of upd and returns the result.
	UpdateSettings(ctx context.Context, upd SettingsUpdate) (*Settings, error)
}

// SettingsUpdate represents fields to update on the stored settings.
type SettingsUpdate struct {
	EmbeddingModel *string
	LLMModel       *string
}
