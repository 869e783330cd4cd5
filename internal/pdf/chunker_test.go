package pdf

import (
	"strings"
	"testing"
	"time"
)

func TestChunk_ShortTextIsSingleChunk(t *testing.T) {
	chunks, err := Chunk("  a short paper  ", 100, 10)
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "a short paper" {
		t.Errorf("chunks = %v, want single trimmed chunk", chunks)
	}
}

func TestChunk_EmptyText(t *testing.T) {
	chunks, err := Chunk("   \n\n  ", 100, 10)
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("chunks = %v, want none for whitespace-only input", chunks)
	}
}

func TestChunk_InvalidParameters(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Chunk("text", tt.size, tt.overlap); err == nil {
				t.Errorf("Chunk(size=%d, overlap=%d) should fail", tt.size, tt.overlap)
			}
		})
	}
}

func TestChunk_PrefersParagraphBoundary(t *testing.T) {
	// The paragraph break sits 20 chars before the raw cut at 100, well
	// within the lookback window.
	text := strings.Repeat("a", 80) + "\n\n" + strings.Repeat("b", 200)

	chunks, err := Chunk(text, 100, 0)
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want at least 2", len(chunks))
	}
	if chunks[0] != strings.Repeat("a", 80) {
		t.Errorf("first chunk = %q, want cut at the paragraph break", chunks[0])
	}
}

func TestChunk_FallsBackToSentenceBoundary(t *testing.T) {
	// No paragraph break anywhere, but a sentence end near the cut.
	text := strings.Repeat("a", 78) + ". " + strings.Repeat("b", 200)

	chunks, err := Chunk(text, 100, 0)
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk = %q, want it to end at the sentence boundary", chunks[0])
	}
}

func TestChunk_BoundaryBehindStartStillAdvances(t *testing.T) {
	// After the first cut lands on the paragraph break at offset 80, the
	// next window still sees that same break behind the new start. The
	// scan must skip it and keep moving instead of re-cutting in place.
	text := strings.Repeat("a", 80) + "\n\n" + strings.Repeat("b", 200)

	done := make(chan []string, 1)
	go func() {
		chunks, err := Chunk(text, 100, 0)
		if err != nil {
			t.Errorf("Chunk() error: %v", err)
		}
		done <- chunks
	}()

	var chunks []string
	select {
	case chunks = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Chunk() did not terminate")
	}

	joined := strings.Join(chunks, "")
	if strings.Count(joined, "b") < 200 {
		t.Errorf("chunks lost text past the boundary: %v", chunks)
	}
}

func TestChunk_OverlapNeverMovesStartBackward(t *testing.T) {
	// A sentence boundary right after start makes end-overlap land before
	// the current position; the next chunk must continue from the cut.
	text := strings.Repeat("a", 10) + ". " + strings.Repeat("b", 300)

	chunks, err := Chunk(text, 100, 50)
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("chunks = %v, want the scan to continue past the early boundary", chunks)
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk = %q, want cut at the sentence boundary", chunks[0])
	}
	joined := strings.Join(chunks, "")
	if strings.Count(joined, "b") < 300 {
		t.Errorf("chunks lost text after the boundary cut: %v", chunks)
	}
}

func TestChunk_OverlapCarriesTextForward(t *testing.T) {
	// Uniform text with no boundaries forces raw cuts, making the overlap
	// observable.
	text := strings.Repeat("x", 250)

	chunks, err := Chunk(text, 100, 20)
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}
	if len(chunks) < 3 {
		t.Fatalf("chunks = %d, want at least 3", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk length %d exceeds size 100", len(c))
		}
		total += len(c)
	}
	if total <= len(text) {
		t.Errorf("total chunk length %d should exceed input %d due to overlap", total, len(text))
	}
}

func TestChunk_CoversAllText(t *testing.T) {
	// Every sentence must appear in at least one chunk.
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Sentence number ")
		b.WriteString(strings.Repeat("w", i%7+1))
		b.WriteString(" ends here. ")
	}
	text := b.String()

	chunks, err := Chunk(text, 120, 30)
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}
	joined := strings.Join(chunks, " ")
	for _, sentence := range strings.SplitAfter(text, ". ") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if !strings.Contains(joined, sentence) {
			t.Fatalf("sentence %q missing from all chunks", sentence)
		}
	}
}
