package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FieldApp names the application in every entry.
const FieldApp = "app"

// Options control the process logger.
type Options struct {
	// App is attached to every entry when set.
	App   string
	JSON  bool
	Debug bool
	// Outputs defaults to stdout.
	Outputs []string
}

func (o Options) level() zapcore.Level {
	if o.Debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func (o Options) encoding() string {
	if o.JSON {
		return "json"
	}
	return "console"
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// New builds the process logger from opts.
func New(opts Options) (*zap.Logger, error) {
	outputs := opts.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	cfg := zap.Config{
		Encoding:         opts.encoding(),
		Level:            zap.NewAtomicLevelAt(opts.level()),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig(),
	}

	var buildOpts []zap.Option
	if app := strings.TrimSpace(opts.App); app != "" {
		buildOpts = append(buildOpts, zap.Fields(zap.String(FieldApp, app)))
	}

	return cfg.Build(buildOpts...)
}

// TruncateForLog trims s and cuts it to limit runes, appending "..." when cut.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
