package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/arcAman07/research-pal/internal/paper"
)

func testStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "papers.db"), opts...)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id string) *paper.Record {
	r := &paper.Record{
		PaperID:      id,
		Title:        "Attention Is All You Need",
		Filepath:     "/papers/attention.pdf",
		Timestamp:    "2026-08-28T10:00:00Z",
		Domain:       "NLP",
		Summary:      "Transformers replace recurrence with attention.",
		Architecture: "Encoder-decoder with multi-head attention.",
		Takeaways:    []string{"Attention scales", "Parallel training"},
		SimilarPapers: []paper.SimilarPaper{
			{Title: "BERT", Authors: "Devlin et al.", Year: "2018", Relevance: "Encoder descendant"},
		},
		HighlightedText: []string{"We propose the Transformer"},
		FiguresTables: []paper.FigureTable{
			{Kind: "figure", Page: 3, Text: "Figure 1: The Transformer architecture"},
		},
	}
	r.Normalize()
	return r
}

func TestStore_UpsertGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	orig := testRecord("abc123def0")
	if err := s.Upsert(ctx, orig); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := s.Get(ctx, "abc123def0")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	if got.Title != orig.Title {
		t.Errorf("Title = %q, want %q", got.Title, orig.Title)
	}
	if got.Summary != orig.Summary {
		t.Errorf("Summary = %q, want %q", got.Summary, orig.Summary)
	}
	if got.Timestamp != orig.Timestamp {
		t.Errorf("Timestamp = %q, want %q", got.Timestamp, orig.Timestamp)
	}
	if !reflect.DeepEqual(got.Takeaways, orig.Takeaways) {
		t.Errorf("Takeaways = %v, want %v", got.Takeaways, orig.Takeaways)
	}
	if !reflect.DeepEqual(got.SimilarPapers, orig.SimilarPapers) {
		t.Errorf("SimilarPapers = %v, want %v", got.SimilarPapers, orig.SimilarPapers)
	}
	if !reflect.DeepEqual(got.HighlightedText, orig.HighlightedText) {
		t.Errorf("HighlightedText = %v, want %v", got.HighlightedText, orig.HighlightedText)
	}
	if !reflect.DeepEqual(got.FiguresTables, orig.FiguresTables) {
		t.Errorf("FiguresTables = %v, want %v", got.FiguresTables, orig.FiguresTables)
	}
}

func TestStore_UpsertReplacesFully(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := testRecord("abc123def0")
	if err := s.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert() error: %v", err)
	}

	// The replacement drops fields the first write had; none of them
	// may survive.
	second := &paper.Record{
		PaperID: "abc123def0",
		Title:   "Replaced Title",
		Domain:  "CV",
		Summary: "A different paper entirely.",
	}
	if err := s.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error: %v", err)
	}

	got, err := s.Get(ctx, "abc123def0")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Title != "Replaced Title" {
		t.Errorf("Title = %q, want replacement", got.Title)
	}
	if got.Architecture != "" {
		t.Errorf("Architecture = %q, want empty after full replacement", got.Architecture)
	}
	if len(got.Takeaways) != 0 {
		t.Errorf("Takeaways = %v, want empty after full replacement", got.Takeaways)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "missing000")
	if !errors.Is(err, ErrPaperNotFound) {
		t.Errorf("Get() error = %v, want ErrPaperNotFound", err)
	}
}

func TestStore_UpdateField(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, testRecord("abc123def0")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	if err := s.UpdateField(ctx, "abc123def0", "domain", "Speech"); err != nil {
		t.Fatalf("UpdateField(domain) error: %v", err)
	}
	if err := s.UpdateField(ctx, "abc123def0", "takeaways", []string{"new takeaway"}); err != nil {
		t.Fatalf("UpdateField(takeaways) error: %v", err)
	}

	got, err := s.Get(ctx, "abc123def0")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Domain != "Speech" {
		t.Errorf("Domain = %q, want Speech", got.Domain)
	}
	if !reflect.DeepEqual(got.Takeaways, []string{"new takeaway"}) {
		t.Errorf("Takeaways = %v", got.Takeaways)
	}
	// Untouched fields survive the read-modify-write cycle.
	if got.Summary == "" {
		t.Error("Summary lost during field update")
	}
}

func TestStore_UpdateFieldErrors(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.UpdateField(ctx, "missing000", "domain", "NLP"); !errors.Is(err, ErrPaperNotFound) {
		t.Errorf("UpdateField on missing paper = %v, want ErrPaperNotFound", err)
	}

	if err := s.Upsert(ctx, testRecord("abc123def0")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	if err := s.UpdateField(ctx, "abc123def0", "no_such_field", "x"); err == nil {
		t.Error("UpdateField with unknown field should fail")
	}
	if err := s.UpdateField(ctx, "abc123def0", "domain", 42); err == nil {
		t.Error("UpdateField with wrong value type should fail")
	}
}

func TestStore_SearchDomain(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, domain := range []string{"NLP", "NLP", "CV"} {
		r := testRecord(fmt.Sprintf("paper%05d", i))
		r.Domain = domain
		if err := s.Upsert(ctx, r); err != nil {
			t.Fatalf("Upsert() error: %v", err)
		}
	}

	got, err := s.SearchDomain(ctx, "NLP", 10)
	if err != nil {
		t.Fatalf("SearchDomain() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(results) = %d, want 2", len(got))
	}

	// Exact match only, no substring behavior.
	got, err = s.SearchDomain(ctx, "NL", 10)
	if err != nil {
		t.Fatalf("SearchDomain() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("partial domain matched %d papers, want 0", len(got))
	}
}

func TestStore_SearchTitle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	r := testRecord("abc123def0")
	if err := s.Upsert(ctx, r); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := s.SearchTitle(ctx, "attention", 5)
	if err != nil {
		t.Fatalf("SearchTitle() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(got))
	}
	if got[0].PaperID != "abc123def0" {
		t.Errorf("PaperID = %s", got[0].PaperID)
	}
}

func TestStore_SearchTextSubstringFallback(t *testing.T) {
	// No embedder configured, so text search uses substring matching.
	s := testStore(t)
	ctx := context.Background()

	r := testRecord("abc123def0")
	if err := s.Upsert(ctx, r); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := s.SearchText(ctx, "recurrence with attention", 5)
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len(results) = %d, want 1", len(got))
	}

	got, err = s.SearchText(ctx, "no such phrase anywhere", 5)
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(results) = %d, want 0", len(got))
	}
}

func TestStore_SearchPrefixDispatch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	nlp := testRecord("paper00001")
	cv := testRecord("paper00002")
	cv.Domain = "CV"
	cv.Title = "ResNet"
	for _, r := range []*paper.Record{nlp, cv} {
		if err := s.Upsert(ctx, r); err != nil {
			t.Fatalf("Upsert() error: %v", err)
		}
	}

	got, err := s.Search(ctx, "domain: CV", 0)
	if err != nil {
		t.Fatalf("Search(domain:) error: %v", err)
	}
	if len(got) != 1 || got[0].PaperID != "paper00002" {
		t.Errorf("domain search results = %v", ids(got))
	}

	got, err = s.Search(ctx, "title: resnet", 0)
	if err != nil {
		t.Fatalf("Search(title:) error: %v", err)
	}
	if len(got) != 1 || got[0].PaperID != "paper00002" {
		t.Errorf("title search results = %v", ids(got))
	}
}

// fakeEmbedder returns a fixed vector per known text so similarity
// ordering is deterministic.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return nil, errors.New("unknown text")
}

func (f *fakeEmbedder) ModelName() string { return "fake-model" }

func TestStore_SearchTextSemanticRanking(t *testing.T) {
	near := testRecord("paper00001")
	near.Summary = "about transformers"
	far := testRecord("paper00002")
	far.Summary = "about databases"

	emb := &fakeEmbedder{vectors: map[string][]float32{
		SerializeDocument(near): {1, 0},
		SerializeDocument(far):  {0, 1},
		"transformers":          {0.9, 0.1},
	}}

	s := testStore(t, WithEmbedder(emb))
	ctx := context.Background()

	for _, r := range []*paper.Record{near, far} {
		if err := s.Upsert(ctx, r); err != nil {
			t.Fatalf("Upsert() error: %v", err)
		}
	}

	got, err := s.SearchText(ctx, "transformers", 1)
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if len(got) != 1 || got[0].PaperID != "paper00001" {
		t.Errorf("semantic search results = %v, want [paper00001]", ids(got))
	}
}

func TestStore_SearchTextEmbedFailureFallsBack(t *testing.T) {
	// The embedder knows no texts, so both upsert-time embedding and
	// query embedding fail; search still works via substring match.
	s := testStore(t, WithEmbedder(&fakeEmbedder{}))
	ctx := context.Background()

	if err := s.Upsert(ctx, testRecord("abc123def0")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := s.SearchText(ctx, "attention", 5)
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len(results) = %d, want 1", len(got))
	}
}

func ids(papers []paper.Record) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = p.PaperID
	}
	return out
}
