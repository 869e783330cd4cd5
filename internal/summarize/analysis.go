package summarize

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcAman07/research-pal/internal/llm"
)

// Analysis holds the deep-dive sections generated from the merged
// summary.
type Analysis struct {
	Takeaways             []string
	ImportantIdeas        []string
	FutureIdeas           []string
	Novelty               string
	Limitations           []string
	PracticalApplications []string
	RelatedWork           string
}

type analysisResponse struct {
	Takeaways             flexList   `json:"TAKEAWAYS"`
	ImportantIdeas        flexList   `json:"IMPORTANT_IDEAS"`
	FutureIdeas           flexList   `json:"FUTURE_IDEAS"`
	Novelty               flexString `json:"NOVELTY"`
	Limitations           flexList   `json:"LIMITATIONS"`
	PracticalApplications flexList   `json:"PRACTICAL_APPLICATIONS"`
	RelatedWork           flexString `json:"RELATED_WORK"`
}

// Analyze generates the comprehensive analysis with one model call. On a
// parse failure every list is empty and a clipped raw excerpt lands in
// Novelty, keeping the degradation policy uniform with the other stages.
func (s *Summarizer) Analyze(ctx context.Context, merged *MergedSummary, title, model string, maxTokens int) (*Analysis, error) {
	response, err := s.llm.Query(ctx, llm.Request{
		Prompt:      analysisPrompt(merged, title),
		System:      comprehensiveAnalysisSystem,
		Model:       model,
		Temperature: 0.3,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating analysis: %w", err)
	}

	var parsed analysisResponse
	if err := extractJSONObject(response, &parsed); err != nil {
		s.logger.Warn("analysis returned unparseable JSON, degrading to raw excerpt",
			zap.Error(err))
		return &Analysis{
			Takeaways:             []string{},
			ImportantIdeas:        []string{},
			FutureIdeas:           []string{},
			Novelty:               truncateRaw(response),
			Limitations:           []string{},
			PracticalApplications: []string{},
		}, nil
	}

	a := &Analysis{
		Takeaways:             parsed.Takeaways,
		ImportantIdeas:        parsed.ImportantIdeas,
		FutureIdeas:           parsed.FutureIdeas,
		Novelty:               string(parsed.Novelty),
		Limitations:           parsed.Limitations,
		PracticalApplications: parsed.PracticalApplications,
		RelatedWork:           string(parsed.RelatedWork),
	}
	for _, list := range []*[]string{
		&a.Takeaways, &a.ImportantIdeas, &a.FutureIdeas,
		&a.Limitations, &a.PracticalApplications,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
	return a, nil
}
