package services

import (
	"context"

	"github.com/rs/zerolog"

	"bookmarker/internal/metrics"
)

type SummarizePipeline interface {
	SummarizePage(ctx context.Context, url string) (string, error)
}

type summarizePipeline struct {
	fetcher   PageFetcher
	generator SummaryGenerator
}

func NewSummarizePipeline(fetcher PageFetcher, generator SummaryGenerator) SummarizePipeline {
	return &summarizePipeline{fetcher: fetcher, generator: generator}
}

// SummarizePage fetches url and summarizes its title and article text.
// A page that cannot be loaded is not sent to the model; its summary is
// FallbackSummary.
func (p *summarizePipeline) SummarizePage(ctx context.Context, url string) (string, error) {
	body, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if body == FallbackSummary {
		metrics.SummaryFallbackTotal.Inc()
		zerolog.Ctx(ctx).Info().Str("url", url).Msg("Using fallback summary")
		return FallbackSummary, nil
	}

	return p.generator.Summarize(ctx, ExtractText(body))
}
