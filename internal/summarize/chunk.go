package summarize

import (
	"context"

	"go.uber.org/zap"

	"github.com/arcAman07/research-pal/internal/llm"
)

// ChunkSummary is the structured partial result for one chunk. Created
// by AnalyzeChunk, consumed once by Merge, then discarded.
type ChunkSummary struct {
	Section             string
	Summary             string
	KeyFindings         []string
	TechnicalDetails    string
	MathFormulations    string
	ArchitectureDetails string
	Results             string
}

// chunkResponse mirrors the JSON shape requested from the model.
type chunkResponse struct {
	Section             flexString `json:"SECTION_IDENTIFICATION"`
	Summary             flexString `json:"SUMMARY"`
	KeyFindings         flexList   `json:"KEY_FINDINGS"`
	TechnicalDetails    flexString `json:"TECHNICAL_DETAILS"`
	MathFormulations    flexString `json:"MATH_FORMULATIONS"`
	ArchitectureDetails flexString `json:"ARCHITECTURE_DETAILS"`
	Results             flexString `json:"RESULTS"`
}

// AnalyzeChunk runs the chunk-analysis stage on one chunk. A response
// that cannot be parsed as JSON degrades to a summary-only result with
// a clipped raw excerpt; only transport failures surface as errors.
func (s *Summarizer) AnalyzeChunk(ctx context.Context, chunk, title string, isFirst, isLast bool, model string) (ChunkSummary, error) {
	response, err := s.llm.Query(ctx, llm.Request{
		Prompt:      chunkAnalysisPrompt(chunk, title, isFirst, isLast),
		System:      chunkAnalysisSystem,
		Model:       model,
		Temperature: 0.0,
	})
	if err != nil {
		return ChunkSummary{}, err
	}

	var parsed chunkResponse
	if err := extractJSONObject(response, &parsed); err != nil {
		s.logger.Warn("chunk analysis returned unparseable JSON, degrading to raw excerpt",
			zap.Error(err))
		return ChunkSummary{
			Section:     "Unknown",
			Summary:     truncateRaw(response),
			KeyFindings: []string{},
		}, nil
	}

	findings := []string(parsed.KeyFindings)
	if findings == nil {
		findings = []string{}
	}

	return ChunkSummary{
		Section:             string(parsed.Section),
		Summary:             string(parsed.Summary),
		KeyFindings:         findings,
		TechnicalDetails:    string(parsed.TechnicalDetails),
		MathFormulations:    string(parsed.MathFormulations),
		ArchitectureDetails: string(parsed.ArchitectureDetails),
		Results:             string(parsed.Results),
	}, nil
}
