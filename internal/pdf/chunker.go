package pdf

import (
	"fmt"
	"strings"
)

const (
	// DefaultChunkSize is the default chunk size in characters.
	DefaultChunkSize = 8000

	// DefaultChunkOverlap is the default overlap between consecutive chunks.
	DefaultChunkOverlap = 200

	// boundaryLookback is how far around a raw cut point we search for a
	// paragraph or sentence boundary.
	boundaryLookback = 100
)

// Chunk splits text into overlapping, boundary-aware segments of roughly
// size characters. Cut points prefer paragraph breaks, then sentence
// ends, within boundaryLookback characters of the raw cut; a forward
// boundary match can extend a chunk by up to boundaryLookback characters
// beyond size. Empty or whitespace-only segments are dropped. Chunks are
// returned in document order; text no longer than size yields a single
// trimmed chunk.
func Chunk(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got overlap=%d size=%d", overlap, size)
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + size
		if end > len(text) {
			end = len(text)
		}

		// Not at the end of input: move the cut to a natural boundary.
		// A boundary at or before start would produce an empty segment
		// and stall the scan, so only cuts past start are eligible.
		if end < len(text) {
			if p := findBoundary(text, "\n\n", end); p > start {
				end = p
			} else if p := findBoundary(text, ". ", end); p+1 > start {
				end = p + 1 // keep the period in this chunk
			}
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end < len(text) {
			// The overlap must never push the next start at or behind the
			// current one; when a boundary cut lands closer to start than
			// the overlap reaches back, continue from the cut instead.
			next := end - overlap
			if next <= start {
				next = end
			}
			start = next
		} else {
			start = len(text)
		}
	}

	return chunks, nil
}

// findBoundary looks for sep within boundaryLookback characters on either
// side of cut. Returns the index of the first occurrence, or -1.
func findBoundary(text, sep string, cut int) int {
	lo := cut - boundaryLookback
	if lo < 0 {
		lo = 0
	}
	hi := cut + boundaryLookback
	if hi > len(text) {
		hi = len(text)
	}

	idx := strings.Index(text[lo:hi], sep)
	if idx == -1 {
		return -1
	}
	return lo + idx
}
