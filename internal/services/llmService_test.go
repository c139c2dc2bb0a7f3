package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarker/internal/config"
)

func TestBuildSummaryPrompt(t *testing.T) {
	want := "<s><<SYS>>You are an academic text summarizer. Your style is concise and minimal. Succinctly summarize the article.<</SYS>>\n" +
		"[[INST]]Title\nBody[[/INST]]\n"
	assert.Equal(t, want, BuildSummaryPrompt("Title\nBody"))
}

func TestBuildSummaryPromptKeepsPercentSigns(t *testing.T) {
	assert.Contains(t, BuildSummaryPrompt("100% %s %d"), "[[INST]]100% %s %d[[/INST]]")
}

func TestSummarizeUsesFixedParameters(t *testing.T) {
	llm := &fakeLLM{response: "  A short summary.  "}
	g := NewSummaryGenerator(llm, DefaultInferenceParams("llama2-chat"))

	summary, err := g.Summarize(context.Background(), "A\nB")
	require.NoError(t, err)

	assert.Equal(t, "  A short summary.  ", summary, "output is returned verbatim")
	require.Len(t, llm.prompts, 1)
	assert.Equal(t, BuildSummaryPrompt("A\nB"), llm.prompts[0])

	assert.Equal(t, "llama2-chat", llm.opts.Model)
	assert.Equal(t, 50000, llm.opts.MaxTokens)
	assert.InDelta(t, 1.1, llm.opts.RepetitionPenalty, 1e-9)
	assert.Equal(t, 64, llm.opts.TopK)
	assert.InDelta(t, 0.8, llm.opts.Temperature, 1e-9)
	assert.InDelta(t, 0.9, llm.opts.TopP, 1e-9)
}

func TestSummarizePropagatesFailure(t *testing.T) {
	boom := errors.New("model unavailable")
	g := NewSummaryGenerator(&fakeLLM{err: boom}, DefaultInferenceParams("llama2-chat"))

	_, err := g.Summarize(context.Background(), "text")
	assert.ErrorIs(t, err, ErrInference)
	assert.ErrorIs(t, err, boom)
}

func TestNewLLM(t *testing.T) {
	t.Run("ollama", func(t *testing.T) {
		llm, err := NewLLM(context.Background(), config.Config{
			LLMProvider:     config.ProviderOllama,
			LLMModel:        "llama2-chat",
			OllamaServerURL: "http://localhost:11434",
		})
		require.NoError(t, err)
		assert.NotNil(t, llm)
	})

	t.Run("googleai without key", func(t *testing.T) {
		_, err := NewLLM(context.Background(), config.Config{LLMProvider: config.ProviderGoogleAI})
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewLLM(context.Background(), config.Config{LLMProvider: "spin"})
		assert.Error(t, err)
	})
}
