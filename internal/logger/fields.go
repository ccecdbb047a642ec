package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"

	FieldJobTitle  = "job_title"
	FieldRole      = "role"
	FieldRequestID = "request_id"
	FieldPostingID = "posting_id"
	FieldSource    = "source"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AIFields returns the provider and model fields, skipping empty values.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithAIFields attaches the AI provider and model to logger.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}

// AnalysisFields describes one scoring run: the job title it targets and
// where the job description came from.
func AnalysisFields(jobTitle, source string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJobTitle, Value: jobTitle},
		StringField{Key: FieldSource, Value: source},
	)
}
