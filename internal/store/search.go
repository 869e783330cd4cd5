package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/arcAman07/research-pal/internal/embedding"
	"github.com/arcAman07/research-pal/internal/paper"
)

// DefaultSearchLimit is the result cap when a caller passes no limit.
const DefaultSearchLimit = 5

// Search dispatches a query by its prefix: "domain:" filters on the
// domain column, "title:" matches titles, anything else runs a text
// search over document content.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query = strings.TrimSpace(query)

	lower := strings.ToLower(query)
	switch {
	case strings.HasPrefix(lower, "domain:"):
		return s.SearchDomain(ctx, strings.TrimSpace(query[len("domain:"):]), limit)
	case strings.HasPrefix(lower, "title:"):
		return s.SearchTitle(ctx, strings.TrimSpace(query[len("title:"):]), limit)
	}
	return s.SearchText(ctx, query, limit)
}

// SearchDomain returns papers whose domain matches exactly.
func (s *Store) SearchDomain(ctx context.Context, domain string, limit int) ([]paper.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+paperColumns+`
		FROM papers
		WHERE domain = ?
		ORDER BY updated_at DESC
		LIMIT ?`, domain, limit)
	if err != nil {
		return nil, fmt.Errorf("searching by domain: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// SearchTitle returns papers whose title contains the query,
// case-insensitively.
func (s *Store) SearchTitle(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+paperColumns+`
		FROM papers
		WHERE title LIKE ? COLLATE NOCASE
		ORDER BY updated_at DESC
		LIMIT ?`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("searching by title: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// SearchText ranks papers by semantic similarity to the query. Without an
// embedding provider, or when embedding the query fails, it falls back to
// substring matching over document text and titles.
func (s *Store) SearchText(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	if s.embedder != nil {
		papers, err := s.searchSemantic(ctx, query, limit)
		if err == nil {
			return papers, nil
		}
		s.logger.Warn("semantic search unavailable, falling back to substring match",
			zap.String("query", query),
			zap.Error(err))
	}
	return s.searchSubstring(ctx, query, limit)
}

type scoredPaper struct {
	paperID string
	score   float32
}

func (s *Store) searchSemantic(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT paper_id, vector FROM embeddings")
	if err != nil {
		return nil, fmt.Errorf("loading embeddings: %w", err)
	}
	defer rows.Close()

	var scored []scoredPaper
	for rows.Next() {
		var paperID, vecJSON string
		if err := rows.Scan(&paperID, &vecJSON); err != nil {
			return nil, err
		}
		var vec []float32
		if err := json.Unmarshal([]byte(vecJSON), &vec); err != nil {
			s.logger.Warn("skipping undecodable embedding", zap.String("paper_id", paperID))
			continue
		}
		scored = append(scored, scoredPaper{
			paperID: paperID,
			score:   embedding.Cosine(queryVec, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("no embeddings stored")
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	papers := make([]paper.Record, 0, len(scored))
	for _, sp := range scored {
		r, err := s.Get(ctx, sp.paperID)
		if err != nil {
			// An embedding may outlive its paper row; skip it.
			continue
		}
		papers = append(papers, *r)
	}
	return papers, nil
}

func (s *Store) searchSubstring(ctx context.Context, query string, limit int) ([]paper.Record, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+paperColumns+`
		FROM papers
		WHERE document LIKE ? ESCAPE '\' COLLATE NOCASE
		   OR title LIKE ? ESCAPE '\' COLLATE NOCASE
		ORDER BY updated_at DESC
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching text: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
