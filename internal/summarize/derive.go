package summarize

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/arcAman07/research-pal/internal/llm"
	"github.com/arcAman07/research-pal/internal/paper"
)

// fencedCodePattern matches fenced code blocks with an optional language
// tag.
var fencedCodePattern = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*\n(.*?)```")

// SimilarPapers asks for five related-paper recommendations. A response
// that cannot be parsed as a JSON array yields an empty list with a
// warning; recommendations are an enrichment and never fail the paper.
func (s *Summarizer) SimilarPapers(ctx context.Context, merged *MergedSummary, title, model string) ([]paper.SimilarPaper, error) {
	response, err := s.llm.Query(ctx, llm.Request{
		Prompt:      similarPapersPrompt(merged, title),
		System:      similarPapersSystem,
		Model:       model,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("recommending similar papers: %w", err)
	}

	var recommendations []paper.SimilarPaper
	if err := extractJSONArray(response, &recommendations); err != nil {
		s.logger.Warn("similar-papers response was not a JSON array, returning none",
			zap.Error(err))
		return []paper.SimilarPaper{}, nil
	}
	return recommendations, nil
}

// GenerateCode produces an implementation of the paper's architecture,
// biased toward the strongest code model when the caller names none.
// All fenced code blocks are extracted and concatenated; a response with
// no fences is returned verbatim.
func (s *Summarizer) GenerateCode(ctx context.Context, architecture, title, model string) (string, error) {
	if model == "" {
		model = llm.DefaultCodeModel
	}

	response, err := s.llm.Query(ctx, llm.Request{
		Prompt:      codePrompt(architecture, title),
		System:      codeImplementationSystem,
		Model:       model,
		Temperature: 0.2,
		MaxTokens:   8000,
	})
	if err != nil {
		return "", fmt.Errorf("generating code: %w", err)
	}

	matches := fencedCodePattern.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return response, nil
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		if block := strings.TrimSpace(m[1]); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// GenerateBlog produces a blog post from the merged summary. The raw
// response is the artifact; no extraction is applied.
func (s *Summarizer) GenerateBlog(ctx context.Context, merged *MergedSummary, title, styleSample, model string) (string, error) {
	response, err := s.llm.Query(ctx, llm.Request{
		Prompt:      blogPrompt(merged, title, styleSample),
		System:      blogGenerationSystem,
		Model:       model,
		Temperature: 0.4,
		MaxTokens:   4000,
	})
	if err != nil {
		return "", fmt.Errorf("generating blog post: %w", err)
	}
	return response, nil
}

// maxDomainLen caps the classified domain; longer answers are clipped at
// the first conjunction.
const maxDomainLen = 50

// ClassifyDomain determines the paper's research domain with one short
// model call. Any failure degrades to "Unknown".
func (s *Summarizer) ClassifyDomain(ctx context.Context, title, summary string) string {
	response, err := s.llm.Query(ctx, llm.Request{
		Prompt:      domainPrompt(title, summary),
		System:      domainClassificationSystem,
		Temperature: 0.0,
		MaxTokens:   50,
	})
	if err != nil {
		s.logger.Warn("domain classification failed", zap.Error(err))
		return "Unknown"
	}

	domain := strings.TrimSpace(response)
	domain = strings.Trim(domain, `"'`)
	if len(domain) > maxDomainLen {
		domain = strings.SplitN(domain, ",", 2)[0]
		domain = strings.SplitN(domain, " and ", 2)[0]
		domain = strings.TrimSpace(domain)
	}
	if domain == "" {
		return "Unknown"
	}
	return domain
}
