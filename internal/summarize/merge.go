package summarize

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcAman07/research-pal/internal/llm"
)

// MergedSummary is the comprehensive structured summary synthesized from
// all chunk results. Produced once per paper, read by the analysis and
// derivative stages, never mutated after creation. Every field is always
// present: a parse failure yields the raw response clipped into Overview
// with everything else empty, so downstream consumers never need
// existence checks.
type MergedSummary struct {
	Overview         string
	ProblemStatement string
	Methodology      string
	Architecture     string
	KeyResults       string
	Implications     string
	Takeaways        []string
	FutureDirections []string
	Background       string
	MathFormulations string
}

type mergeResponse struct {
	Overview         flexString `json:"OVERVIEW"`
	ProblemStatement flexString `json:"PROBLEM_STATEMENT"`
	Methodology      flexString `json:"METHODOLOGY"`
	Architecture     flexString `json:"ARCHITECTURE"`
	KeyResults       flexString `json:"KEY_RESULTS"`
	Implications     flexString `json:"IMPLICATIONS"`
	Takeaways        flexList   `json:"TAKEAWAYS"`
	FutureDirections flexList   `json:"FUTURE_DIRECTIONS"`
	Background       flexString `json:"BACKGROUND"`
	MathFormulations flexString `json:"MATH_FORMULATIONS"`
}

// Merge synthesizes chunk summaries into one comprehensive summary with
// a single model call. Chunk order does not matter; the inputs are only
// aggregated, never positionally indexed. A transport failure here is
// fatal to the paper since every later stage consumes the result.
func (s *Summarizer) Merge(ctx context.Context, summaries []ChunkSummary, title, authors, model string) (*MergedSummary, error) {
	response, err := s.llm.Query(ctx, llm.Request{
		Prompt:      mergePrompt(summaries, title, authors),
		System:      paperSummarySystem,
		Model:       model,
		Temperature: 0.2,
		MaxTokens:   4000,
	})
	if err != nil {
		return nil, fmt.Errorf("merging chunk summaries: %w", err)
	}

	var parsed mergeResponse
	if err := extractJSONObject(response, &parsed); err != nil {
		s.logger.Warn("merge returned unparseable JSON, degrading to raw excerpt",
			zap.Error(err))
		return &MergedSummary{
			Overview:         truncateRaw(response),
			Takeaways:        []string{},
			FutureDirections: []string{},
		}, nil
	}

	merged := &MergedSummary{
		Overview:         string(parsed.Overview),
		ProblemStatement: string(parsed.ProblemStatement),
		Methodology:      string(parsed.Methodology),
		Architecture:     string(parsed.Architecture),
		KeyResults:       string(parsed.KeyResults),
		Implications:     string(parsed.Implications),
		Takeaways:        parsed.Takeaways,
		FutureDirections: parsed.FutureDirections,
		Background:       string(parsed.Background),
		MathFormulations: string(parsed.MathFormulations),
	}
	if merged.Takeaways == nil {
		merged.Takeaways = []string{}
	}
	if merged.FutureDirections == nil {
		merged.FutureDirections = []string{}
	}
	return merged, nil
}
