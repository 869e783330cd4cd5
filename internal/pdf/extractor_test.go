package pdf

import (
	"errors"
	"testing"
)

func TestNewExtractor_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
		wantSize      int
		wantOverlap   int
	}{
		{"explicit values", 4000, 100, 4000, 100},
		{"zero size", 0, 100, DefaultChunkSize, 100},
		{"negative overlap", 4000, -1, 4000, DefaultChunkOverlap},
		{"overlap not below size", 4000, 4000, 4000, DefaultChunkOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(tt.size, tt.overlap)
			if e.chunkSize != tt.wantSize {
				t.Errorf("chunkSize = %d, want %d", e.chunkSize, tt.wantSize)
			}
			if e.chunkOverlap != tt.wantOverlap {
				t.Errorf("chunkOverlap = %d, want %d", e.chunkOverlap, tt.wantOverlap)
			}
		})
	}
}

func TestExtractAndChunk_MissingFile(t *testing.T) {
	e := NewExtractor(0, 0)
	_, err := e.ExtractAndChunk("/nonexistent/paper.pdf")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestExtractMetadata(t *testing.T) {
	text := `Preprint under review 2024
Attention Is All You Need for Everything
Authors: Jane Smith, Bob Jones
Abstract. We study attention mechanisms in depth and report results.
Introduction
The rest of the paper follows.`

	m := extractMetadata("/papers/attention.pdf", text)

	if m.Title != "Attention Is All You Need for Everything" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Author != "Jane Smith, Bob Jones" {
		t.Errorf("Author = %q", m.Author)
	}
	if m.Year != "2024" {
		t.Errorf("Year = %q", m.Year)
	}
	if m.Abstract == "" {
		t.Error("Abstract not captured")
	}
	if m.Filename != "attention.pdf" {
		t.Errorf("Filename = %q", m.Filename)
	}
}

func TestExtractMetadata_TitleFallsBackToFilename(t *testing.T) {
	m := extractMetadata("/papers/short_note.pdf", "tiny\nlines\nonly\n")
	if m.Title != "short_note" {
		t.Errorf("Title = %q, want filename stem", m.Title)
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Journal of Machine Learning Research", true},
		{"Volume 12, Issue 3", true},
		{"Copyright 2024 the authors", true},
		{"Preprint under review at ICLR", true},
		{"Attention Is All You Need", false},
	}

	for _, tt := range tests {
		if got := isHeaderLine(tt.line); got != tt.want {
			t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestFindCaptions(t *testing.T) {
	text := "Some prose.\nFigure 1: Model architecture overview\ntable 2. Ablation results\nNot a Figure here\n"

	got := findCaptions(text, 3)
	if len(got) != 2 {
		t.Fatalf("captions = %v, want 2", got)
	}
	if got[0].Kind != "figure" || got[0].Page != 3 {
		t.Errorf("first caption = %+v", got[0])
	}
	if got[1].Kind != "table" {
		t.Errorf("second caption = %+v", got[1])
	}
}
