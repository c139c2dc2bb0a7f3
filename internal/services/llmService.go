package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"

	"bookmarker/internal/config"
	"bookmarker/internal/metrics"
	"bookmarker/internal/models"
)

const summaryPromptTemplate = `<s><<SYS>>You are an academic text summarizer. Your style is concise and minimal. Succinctly summarize the article.<</SYS>>
[[INST]]%s[[/INST]]
`

// DefaultInferenceParams returns the fixed sampling settings for model.
func DefaultInferenceParams(model string) models.InferenceParams {
	return models.InferenceParams{
		Model:         model,
		MaxTokens:     50000,
		RepeatPenalty: 1.1,
		TopK:          64,
		Temperature:   0.8,
		TopP:          0.9,
	}
}

// NewLLM builds the language model client selected by the configuration.
func NewLLM(ctx context.Context, cfg config.Config) (llms.Model, error) {
	switch cfg.LLMProvider {
	case config.ProviderOllama:
		llm, err := ollama.New(ollama.WithModel(cfg.LLMModel), ollama.WithServerURL(cfg.OllamaServerURL))
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama LLM: %w", err)
		}
		return llm, nil
	case config.ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, errors.New("missing api key")
		}
		llm, err := googleai.New(ctx, googleai.WithAPIKey(cfg.APIKey), googleai.WithDefaultModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to create Google AI LLM: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

type SummaryGenerator interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type summaryGenerator struct {
	llm    llms.Model
	params models.InferenceParams
}

func NewSummaryGenerator(llm llms.Model, params models.InferenceParams) SummaryGenerator {
	return &summaryGenerator{llm: llm, params: params}
}

func BuildSummaryPrompt(text string) string {
	return fmt.Sprintf(summaryPromptTemplate, text)
}

// Summarize sends text to the model and returns its output unchanged.
func (g *summaryGenerator) Summarize(ctx context.Context, text string) (string, error) {
	prompt := BuildSummaryPrompt(text)
	zerolog.Ctx(ctx).Debug().Str("model", g.params.Model).Str("prompt", prompt).Msg("Sending summary prompt")

	start := time.Now()
	summary, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithModel(g.params.Model),
		llms.WithMaxTokens(g.params.MaxTokens),
		llms.WithRepetitionPenalty(g.params.RepeatPenalty),
		llms.WithTopK(g.params.TopK),
		llms.WithTemperature(g.params.Temperature),
		llms.WithTopP(g.params.TopP),
	)
	metrics.InferenceDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferenceErrorsTotal.Inc()
		zerolog.Ctx(ctx).Error().Err(err).Str("model", g.params.Model).Msg("LLM call failed")
		return "", fmt.Errorf("%w: %w", ErrInference, err)
	}

	metrics.SummaryGeneratedTotal.Inc()
	return summary, nil
}
