package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/market"
	"github.com/spigell/resume-matcher/internal/roles"
	"github.com/spigell/resume-matcher/internal/secrets"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

// newService wires the analyzer from config. The reviewer is only built when
// withReviewer is set and AI is enabled; a broken AI setup is logged and
// leaves the service without one.
func newService(ctx context.Context, config *Config, log *zap.Logger, withReviewer bool) (*analyzer.Service, error) {
	catalog, err := roles.Default().WithOverrides(config.Roles)
	if err != nil {
		return nil, fmt.Errorf("role overrides: %w", err)
	}

	opts := []analyzer.Option{
		analyzer.WithLogger(log),
		analyzer.WithCatalog(catalog),
		analyzer.WithMarket(market.NewProvider(config.Market, log.Named("market"))),
	}

	if withReviewer && config.AI != nil && config.AI.Enabled {
		reviewer, err := newReviewer(ctx, config.AI, log)
		if err != nil {
			log.Warn("ai review disabled", zap.Error(err))
		} else {
			opts = append(opts, analyzer.WithReviewer(reviewer))
		}
	}

	return analyzer.New(opts...), nil
}

func newReviewer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Reviewer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gc := cfg.Gemini
	if gc == nil {
		gc = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gc.APIKeyFile,
		Env:  geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api_key_file or %s)", err, geminiAPIKeyEnv)
	}

	genLogger := logger.WithAIFields(log, gemini.Provider, gc.Model).With(zap.Int("ai_retry_attempts", gc.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, gc.Model, gc.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewReviewer(generator, gc.MaxLogLength, log), nil
}

// readResume extracts text from a PDF, DOCX or plain-text résumé.
func readResume(path string) (string, error) {
	text, err := document.ExtractFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume %q: %w", path, err)
	}
	return text, nil
}

// jobDescription returns inline text, or the contents of file when inline is empty.
func jobDescription(inline, file string) (string, error) {
	if strings.TrimSpace(inline) != "" || strings.TrimSpace(file) == "" {
		return inline, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
