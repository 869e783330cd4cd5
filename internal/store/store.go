// Package store persists paper records in a single-file SQLite database
// and serves text, title, and domain searches over them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/arcAman07/research-pal/internal/embedding"
	"github.com/arcAman07/research-pal/internal/paper"
)

// ErrPaperNotFound indicates no stored record matches the requested ID.
var ErrPaperNotFound = errors.New("paper not found")

// Store wraps the papers database. Embeddings are optional; without a
// provider, text search degrades to substring matching.
type Store struct {
	db       *sql.DB
	embedder embedding.Provider
	logger   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithEmbedder enables semantic text search through the given provider.
func WithEmbedder(p embedding.Provider) Option {
	return func(s *Store) {
		s.embedder = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens or creates the database at the given path, creating parent
// directories as needed.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			paper_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			filepath TEXT,
			timestamp TEXT,
			domain TEXT,
			has_architecture INTEGER NOT NULL DEFAULT 0,
			has_math INTEGER NOT NULL DEFAULT 0,
			document TEXT NOT NULL,
			highlighted_json TEXT,
			figures_json TEXT,
			code_implementation TEXT,
			blog_post TEXT,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_domain ON papers(domain);

		CREATE TABLE IF NOT EXISTS embeddings (
			paper_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			vector TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

const paperColumns = `paper_id, title, filepath, timestamp, domain,
	document, highlighted_json, figures_json, code_implementation, blog_post`

// Upsert writes a record, fully replacing any prior row with the same ID.
// Last writer wins; there is no merging of prior state. The document
// embedding is refreshed best-effort and its failure never fails the
// write.
func (s *Store) Upsert(ctx context.Context, r *paper.Record) error {
	r.Normalize()
	doc := SerializeDocument(r)

	highlightedJSON, err := json.Marshal(r.HighlightedText)
	if err != nil {
		return fmt.Errorf("encoding highlighted text for %s: %w", r.PaperID, err)
	}
	figuresJSON, err := json.Marshal(r.FiguresTables)
	if err != nil {
		return fmt.Errorf("encoding figures for %s: %w", r.PaperID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO papers (
			paper_id, title, filepath, timestamp, domain,
			has_architecture, has_math, document,
			highlighted_json, figures_json,
			code_implementation, blog_post, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(paper_id) DO UPDATE SET
			title = excluded.title,
			filepath = excluded.filepath,
			timestamp = excluded.timestamp,
			domain = excluded.domain,
			has_architecture = excluded.has_architecture,
			has_math = excluded.has_math,
			document = excluded.document,
			highlighted_json = excluded.highlighted_json,
			figures_json = excluded.figures_json,
			code_implementation = excluded.code_implementation,
			blog_post = excluded.blog_post,
			updated_at = excluded.updated_at
	`, r.PaperID, r.Title, r.Filepath, r.Timestamp, r.Domain,
		boolInt(r.Architecture != ""), boolInt(r.MathFormulations != ""), doc,
		string(highlightedJSON), string(figuresJSON),
		r.CodeImplementation, r.BlogPost, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upserting paper %s: %w", r.PaperID, err)
	}

	s.refreshEmbedding(ctx, r.PaperID, doc)
	return nil
}

// refreshEmbedding recomputes and stores the document vector. Embedding
// is an enrichment: failures are logged and swallowed so an absent
// Ollama server never blocks a write.
func (s *Store) refreshEmbedding(ctx context.Context, paperID, doc string) {
	if s.embedder == nil || doc == "" {
		return
	}

	vec, err := s.embedder.Embed(ctx, doc)
	if err != nil {
		s.logger.Warn("embedding paper failed, semantic search will miss it",
			zap.String("paper_id", paperID),
			zap.Error(err))
		return
	}

	vecJSON, err := json.Marshal(vec)
	if err != nil {
		s.logger.Warn("encoding embedding failed", zap.String("paper_id", paperID), zap.Error(err))
		return
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO embeddings (paper_id, model, vector)
		VALUES (?, ?, ?)
		ON CONFLICT(paper_id) DO UPDATE SET
			model = excluded.model,
			vector = excluded.vector
	`, paperID, s.embedder.ModelName(), string(vecJSON))
	if err != nil {
		s.logger.Warn("storing embedding failed", zap.String("paper_id", paperID), zap.Error(err))
	}
}

// Get retrieves a record by ID, or ErrPaperNotFound.
func (s *Store) Get(ctx context.Context, paperID string) (*paper.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE paper_id = ?`, paperID)

	r, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPaperNotFound, paperID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting paper %s: %w", paperID, err)
	}
	return r, nil
}

// UpdateField overwrites one named field of a stored record and rewrites
// the whole record. Storage-level partial updates are deliberately not
// offered; read-modify-write keeps the document text and metadata columns
// consistent.
func (s *Store) UpdateField(ctx context.Context, paperID, field string, value any) error {
	r, err := s.Get(ctx, paperID)
	if err != nil {
		return err
	}
	if err := setField(r, field, value); err != nil {
		return err
	}
	return s.Upsert(ctx, r)
}

// setField assigns a value to a record field named by its serialized
// name. List fields take []string, similar_papers takes its struct
// slice, everything else takes string.
func setField(r *paper.Record, field string, value any) error {
	switch field {
	case "title", "domain", "summary", "problem_statement", "methodology",
		"architecture", "key_results", "implications", "background",
		"math_formulations", "novelty", "related_work",
		"code_implementation", "blog_post":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s takes a string, got %T", field, value)
		}
		switch field {
		case "title":
			r.Title = s
		case "domain":
			r.Domain = s
		case "summary":
			r.Summary = s
		case "problem_statement":
			r.ProblemStatement = s
		case "methodology":
			r.Methodology = s
		case "architecture":
			r.Architecture = s
		case "key_results":
			r.KeyResults = s
		case "implications":
			r.Implications = s
		case "background":
			r.Background = s
		case "math_formulations":
			r.MathFormulations = s
		case "novelty":
			r.Novelty = s
		case "related_work":
			r.RelatedWork = s
		case "code_implementation":
			r.CodeImplementation = s
		case "blog_post":
			r.BlogPost = s
		}
		return nil

	case "takeaways", "important_ideas", "future_directions", "limitations",
		"practical_applications", "highlighted_text":
		items, ok := value.([]string)
		if !ok {
			return fmt.Errorf("field %s takes a string list, got %T", field, value)
		}
		switch field {
		case "takeaways":
			r.Takeaways = items
		case "important_ideas":
			r.ImportantIdeas = items
		case "future_directions":
			r.FutureDirections = items
		case "limitations":
			r.Limitations = items
		case "practical_applications":
			r.PracticalApplications = items
		case "highlighted_text":
			r.HighlightedText = items
		}
		return nil

	case "similar_papers":
		papers, ok := value.([]paper.SimilarPaper)
		if !ok {
			return fmt.Errorf("field %s takes a similar-papers list, got %T", field, value)
		}
		r.SimilarPapers = papers
		return nil
	}

	return fmt.Errorf("unknown field: %s", field)
}

// Count returns the number of stored papers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// List returns all stored records ordered by most recently written.
func (s *Store) List(ctx context.Context, limit int) ([]paper.Record, error) {
	query := `SELECT ` + paperColumns + ` FROM papers ORDER BY updated_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(sc scanner) (*paper.Record, error) {
	var r paper.Record
	var filepath, timestamp, domain sql.NullString
	var document string
	var highlightedJSON, figuresJSON, code, blog sql.NullString

	err := sc.Scan(
		&r.PaperID, &r.Title, &filepath, &timestamp, &domain,
		&document, &highlightedJSON, &figuresJSON, &code, &blog,
	)
	if err != nil {
		return nil, err
	}

	r.Filepath = filepath.String
	r.Timestamp = timestamp.String
	r.Domain = domain.String
	r.CodeImplementation = code.String
	r.BlogPost = blog.String

	ParseDocument(document, &r)

	if highlightedJSON.Valid && highlightedJSON.String != "" {
		if err := json.Unmarshal([]byte(highlightedJSON.String), &r.HighlightedText); err != nil {
			return nil, fmt.Errorf("parsing highlighted text for %s: %w", r.PaperID, err)
		}
	}
	if figuresJSON.Valid && figuresJSON.String != "" {
		if err := json.Unmarshal([]byte(figuresJSON.String), &r.FiguresTables); err != nil {
			return nil, fmt.Errorf("parsing figures for %s: %w", r.PaperID, err)
		}
	}

	r.Normalize()
	return &r, nil
}

func scanPapers(rows *sql.Rows) ([]paper.Record, error) {
	var papers []paper.Record
	for rows.Next() {
		r, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *r)
	}
	return papers, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
