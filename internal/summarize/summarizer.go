// Package summarize orchestrates the multi-stage paper summarization
// pipeline: chunk analysis fan-out, merge, comprehensive analysis,
// domain classification, and optional derivative artifacts.
package summarize

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arcAman07/research-pal/internal/llm"
	"github.com/arcAman07/research-pal/internal/paper"
	"github.com/arcAman07/research-pal/internal/pdf"
)

// defaultConcurrency bounds the chunk-analysis fan-out. Chunks have no
// ordering dependency, so the bound exists only to limit in-flight
// provider calls.
const defaultConcurrency = 8

// DefaultOutputTokenLimit caps the analysis stage response when no
// override is given.
const DefaultOutputTokenLimit = 4096

// Querier issues one prompt to a language model. *llm.Client satisfies
// it; tests substitute fakes.
type Querier interface {
	Query(ctx context.Context, req llm.Request) (string, error)
}

// Extractor turns a PDF path into extracted, chunked text.
// *pdf.Extractor satisfies it.
type Extractor interface {
	ExtractAndChunk(path string) (*pdf.Document, error)
}

// PaperStore is the storage collaborator the pipeline writes to and the
// query operations read from. *store.Store satisfies it.
type PaperStore interface {
	Upsert(ctx context.Context, r *paper.Record) error
	Get(ctx context.Context, paperID string) (*paper.Record, error)
	Search(ctx context.Context, query string, limit int) ([]paper.Record, error)
	UpdateField(ctx context.Context, paperID, field string, value any) error
}

// Summarizer runs the summarization pipeline and mediates store access.
// Safe for concurrent use across papers; the store is the only shared
// mutable resource.
type Summarizer struct {
	llm              Querier
	store            PaperStore
	extractor        Extractor
	logger           *zap.Logger
	outputTokenLimit int
	concurrency      int
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithExtractor overrides the PDF extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Summarizer) {
		s.extractor = e
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Summarizer) {
		s.logger = logger
	}
}

// WithOutputTokenLimit sets the default analysis response cap.
func WithOutputTokenLimit(limit int) Option {
	return func(s *Summarizer) {
		if limit > 0 {
			s.outputTokenLimit = limit
		}
	}
}

// WithConcurrency bounds the chunk-analysis fan-out.
func WithConcurrency(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a Summarizer over the given model client and store.
func New(q Querier, st PaperStore, opts ...Option) *Summarizer {
	s := &Summarizer{
		llm:              q,
		store:            st,
		extractor:        pdf.NewExtractor(pdf.DefaultChunkSize, pdf.DefaultChunkOverlap),
		logger:           zap.NewNop(),
		outputTokenLimit: DefaultOutputTokenLimit,
		concurrency:      defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// DerivePaperID computes the stable ID for a paper from its filename and
// title: strip punctuation, collapse whitespace to underscores,
// lowercase, hash, and keep a fixed-width hex token. Identical
// filepath+title always yield the same ID, which is what makes
// skip-if-already-processed checks possible.
func DerivePaperID(filePath, title string) string {
	combined := filepath.Base(filePath) + "_" + title
	combined = nonWordPattern.ReplaceAllString(combined, "")
	combined = whitespacePattern.ReplaceAllString(strings.TrimSpace(combined), "_")
	combined = strings.ToLower(combined)

	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])[:10]
}

// Options control one summarization call.
type Options struct {
	GenerateCode     bool
	GenerateBlog     bool
	BlogStyleSample  string
	Model            string
	OutputTokenLimit int
}

// Summarize runs the full pipeline for one paper and writes the record
// to the store before returning it. Always re-runs and re-writes when
// invoked; callers wanting skip-if-exists semantics check
// CheckPaperExists first.
func (s *Summarizer) Summarize(ctx context.Context, filePath string, opts Options) (*paper.Record, error) {
	s.logger.Info("processing paper", zap.String("filepath", filePath))

	tokenLimit := opts.OutputTokenLimit
	if tokenLimit <= 0 {
		tokenLimit = s.outputTokenLimit
	}

	doc, err := s.extractor.ExtractAndChunk(filePath)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filePath, err)
	}
	title := doc.Metadata.Title
	s.logger.Info("extracted chunks",
		zap.String("title", title),
		zap.Int("chunks", len(doc.Chunks)))

	summaries := s.analyzeChunks(ctx, doc.Chunks, title, opts.Model)

	merged, err := s.Merge(ctx, summaries, title, doc.Metadata.Author, opts.Model)
	if err != nil {
		return nil, err
	}

	analysis, err := s.Analyze(ctx, merged, title, opts.Model, tokenLimit)
	if err != nil {
		return nil, err
	}

	domain := s.ClassifyDomain(ctx, title, merged.Overview)

	similar, err := s.SimilarPapers(ctx, merged, title, opts.Model)
	if err != nil {
		s.logger.Warn("similar-papers generation failed", zap.Error(err))
		similar = []paper.SimilarPaper{}
	}

	var code string
	if opts.GenerateCode && merged.Architecture != "" {
		code, err = s.GenerateCode(ctx, merged.Architecture, title, opts.Model)
		if err != nil {
			s.logger.Warn("code generation failed", zap.Error(err))
			code = ""
		}
	}

	var blog string
	if opts.GenerateBlog {
		blog, err = s.GenerateBlog(ctx, merged, title, opts.BlogStyleSample, opts.Model)
		if err != nil {
			s.logger.Warn("blog generation failed", zap.Error(err))
			blog = ""
		}
	}

	futureDirections := analysis.FutureIdeas
	if len(futureDirections) == 0 {
		futureDirections = merged.FutureDirections
	}
	novelty := analysis.Novelty
	if novelty == "" {
		novelty = merged.Implications
	}

	record := &paper.Record{
		PaperID:   DerivePaperID(filePath, title),
		Title:     title,
		Filepath:  filePath,
		Timestamp: time.Now().Format(time.RFC3339),
		Domain:    domain,

		Summary:          merged.Overview,
		ProblemStatement: merged.ProblemStatement,
		Methodology:      merged.Methodology,
		Architecture:     merged.Architecture,
		KeyResults:       merged.KeyResults,
		Implications:     merged.Implications,
		Background:       merged.Background,
		MathFormulations: merged.MathFormulations,
		Novelty:          novelty,
		RelatedWork:      analysis.RelatedWork,

		Takeaways:             analysis.Takeaways,
		ImportantIdeas:        analysis.ImportantIdeas,
		FutureDirections:      futureDirections,
		Limitations:           analysis.Limitations,
		PracticalApplications: analysis.PracticalApplications,

		SimilarPapers: similar,

		CodeImplementation: code,
		BlogPost:           blog,

		HighlightedText: doc.Highlighted,
		FiguresTables:   convertFigures(doc.FiguresTables),
	}
	record.Normalize()

	if err := s.store.Upsert(ctx, record); err != nil {
		// The record is still useful to the caller; losing the write is
		// reported, not fatal.
		s.logger.Error("storing paper summary failed",
			zap.String("paper_id", record.PaperID),
			zap.Error(err))
	} else {
		s.logger.Info("stored paper summary", zap.String("paper_id", record.PaperID))
	}

	return record, nil
}

func convertFigures(figures []pdf.FigureTable) []paper.FigureTable {
	out := make([]paper.FigureTable, 0, len(figures))
	for _, f := range figures {
		out = append(out, paper.FigureTable{Kind: f.Kind, Page: f.Page, Text: f.Text})
	}
	return out
}

// analyzeChunks fans chunk analysis out over a bounded worker pool. A
// failed chunk degrades to an empty summary rather than aborting its
// siblings; partial failure never kills the batch.
func (s *Summarizer) analyzeChunks(ctx context.Context, chunks []string, title, model string) []ChunkSummary {
	summaries := make([]ChunkSummary, len(chunks))

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i := range chunks {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			isFirst := idx == 0
			isLast := idx == len(chunks)-1

			summary, err := s.AnalyzeChunk(ctx, chunks[idx], title, isFirst, isLast, model)
			if err != nil {
				s.logger.Warn("chunk analysis failed, continuing with empty result",
					zap.Int("chunk", idx),
					zap.Error(err))
				summary = ChunkSummary{Section: "Unknown", KeyFindings: []string{}}
			}

			// Each goroutine writes only its own index.
			summaries[idx] = summary
		}(i)
	}

	wg.Wait()
	return summaries
}

// CheckPaperExists looks for an already-processed paper with the same
// file. It searches by filename, then compares normalized paths, falling
// back to exact filename equality. Returns the stored paper ID, or ""
// when no match is found.
func (s *Summarizer) CheckPaperExists(ctx context.Context, filePath string) (string, error) {
	normalized, err := filepath.Abs(filePath)
	if err != nil {
		normalized = filePath
	}
	filename := filepath.Base(normalized)

	candidates, err := s.store.Search(ctx, filename, 20)
	if err != nil {
		return "", fmt.Errorf("searching for existing paper: %w", err)
	}

	var filenameMatch string
	for _, c := range candidates {
		if c.Filepath == "" {
			continue
		}
		candidatePath, err := filepath.Abs(c.Filepath)
		if err != nil {
			candidatePath = c.Filepath
		}
		if candidatePath == normalized {
			return c.PaperID, nil
		}
		if filenameMatch == "" && filepath.Base(candidatePath) == filename {
			filenameMatch = c.PaperID
		}
	}
	return filenameMatch, nil
}

// GetPaper fetches a stored record by ID.
func (s *Summarizer) GetPaper(ctx context.Context, paperID string) (*paper.Record, error) {
	return s.store.Get(ctx, paperID)
}

// SearchPapers queries the store. "domain:" and "title:" prefixes select
// metadata filters; everything else is a text search.
func (s *Summarizer) SearchPapers(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	return s.store.Search(ctx, query, limit)
}

// UpdatePaperField overwrites one field of a stored record.
func (s *Summarizer) UpdatePaperField(ctx context.Context, paperID, field string, value any) error {
	return s.store.UpdateField(ctx, paperID, field, value)
}
