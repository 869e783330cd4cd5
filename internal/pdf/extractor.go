// Package pdf handles extraction and chunking of research paper text.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrFileNotFound indicates the PDF path does not resolve to an existing file.
var ErrFileNotFound = errors.New("PDF file not found")

// Metadata holds paper-level metadata extracted from the first page.
type Metadata struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     string `json:"year"`
	Abstract string `json:"abstract"`
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
}

// FigureTable describes a detected figure or table caption.
type FigureTable struct {
	Kind string `json:"kind"` // "figure" or "table"
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Document is the result of extracting and chunking one PDF.
type Document struct {
	Metadata      Metadata
	Text          string
	Chunks        []string
	FiguresTables []FigureTable

	// Highlighted carries reader-highlighted passages. Plain-text
	// extraction exposes no color or annotation data, so this is empty
	// until a richer extractor backs it; downstream code treats it as a
	// passthrough list either way.
	Highlighted []string
}

// Extractor extracts text from PDFs and splits it into chunks.
type Extractor struct {
	chunkSize    int
	chunkOverlap int
}

// NewExtractor creates an extractor with the given chunking parameters.
// Zero or negative values fall back to the defaults.
func NewExtractor(chunkSize, chunkOverlap int) *Extractor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
	}
	return &Extractor{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// ExtractAndChunk extracts text and metadata from a PDF and chunks the text.
func (e *Extractor) ExtractAndChunk(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("checking PDF: %w", err)
	}

	text, figures, err := extractText(path)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", path, err)
	}

	chunks, err := Chunk(text, e.chunkSize, e.chunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("chunking text: %w", err)
	}

	return &Document{
		Metadata:      extractMetadata(path, text),
		Text:          text,
		Chunks:        chunks,
		FiguresTables: figures,
		Highlighted:   []string{},
	}, nil
}

// extractText pulls plain text from every page and records figure/table
// captions along the way.
func extractText(path string) (string, []FigureTable, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	var builder strings.Builder
	var figures []FigureTable

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip unreadable pages rather than failing the whole paper
		}

		figures = append(figures, findCaptions(text, i)...)

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), figures, nil
}

// captionPattern matches figure/table caption openings like "Figure 3:" or "Table 1.".
var captionPattern = regexp.MustCompile(`(?i)^(figure|table)\s+\d+[.:]\s*(.*)`)

// findCaptions scans page text for figure/table captions.
func findCaptions(text string, page int) []FigureTable {
	var found []FigureTable
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		m := captionPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		found = append(found, FigureTable{
			Kind: strings.ToLower(m[1]),
			Page: page,
			Text: line,
		})
	}
	return found
}

var (
	authorPattern = regexp.MustCompile(`(?i)(?:authors?|by)[:;]\s*([\w\s,.]+)`)
	yearPattern   = regexp.MustCompile(`(19|20)\d{2}`)
	// abstractPattern captures text between "abstract" and the next
	// section marker on the first page or two.
	abstractPattern = regexp.MustCompile(`(?is)abstract[:.\n](.*?)(?:introduction|keywords|$)`)
)

// extractMetadata derives title/author/year/abstract heuristically from the
// beginning of the extracted text.
func extractMetadata(path, text string) Metadata {
	filename := filepath.Base(path)
	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))

	firstPage := text
	if len(firstPage) > 2000 {
		firstPage = firstPage[:2000]
	}

	// Title: first line of reasonable length with at least 3 words,
	// skipping obvious headers. Fall back to the file name.
	title := baseName
	lines := strings.Split(firstPage, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 20 && len(line) < 200 && len(strings.Fields(line)) >= 3 && !isHeaderLine(line) {
			title = line
			break
		}
	}

	author := ""
	if m := authorPattern.FindStringSubmatch(firstPage); m != nil {
		author = strings.TrimSpace(m[1])
	}

	year := ""
	if m := yearPattern.FindString(firstPage); m != "" {
		year = m
	}

	abstract := ""
	head := text
	if len(head) > 5000 {
		head = head[:5000]
	}
	if m := abstractPattern.FindStringSubmatch(head); m != nil {
		abstract = strings.TrimSpace(m[1])
	}

	return Metadata{
		Title:    title,
		Author:   author,
		Year:     year,
		Abstract: abstract,
		Filename: filename,
		Filepath: path,
	}
}

// isHeaderLine checks if a line is likely a journal header or footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "preprint") && strings.Contains(lower, "review") {
		return true
	}
	return false
}
