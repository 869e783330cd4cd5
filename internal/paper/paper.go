// Package paper defines the durable paper record produced by the
// summarization pipeline.
package paper

import (
	"fmt"
	"strings"
)

// SimilarPaper is a single recommended related paper.
type SimilarPaper struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Year      string `json:"year"`
	Relevance string `json:"relevance"`
}

// FigureTable describes a detected figure or table.
type FigureTable struct {
	Kind string `json:"kind"` // "figure" or "table"
	Page int    `json:"page"`
	Text string `json:"text,omitempty"`
}

// Record is the durable unit stored per paper. All list fields are
// always non-nil; a record fresh out of the pipeline never carries a
// null sequence even when an upstream response could not be parsed.
type Record struct {
	PaperID   string `json:"paper_id"`
	Title     string `json:"title"`
	Filepath  string `json:"filepath"`
	Timestamp string `json:"timestamp"`
	Domain    string `json:"domain"`

	Summary          string `json:"summary"`
	ProblemStatement string `json:"problem_statement"`
	Methodology      string `json:"methodology"`
	Architecture     string `json:"architecture"`
	KeyResults       string `json:"key_results"`
	Implications     string `json:"implications"`
	Background       string `json:"background"`
	MathFormulations string `json:"math_formulations"`
	Novelty          string `json:"novelty"`
	RelatedWork      string `json:"related_work"`

	Takeaways             []string `json:"takeaways"`
	ImportantIdeas        []string `json:"important_ideas"`
	FutureDirections      []string `json:"future_directions"`
	Limitations           []string `json:"limitations"`
	PracticalApplications []string `json:"practical_applications"`

	SimilarPapers []SimilarPaper `json:"similar_papers"`

	// Optional derivative artifacts, present only when requested and
	// generation succeeded.
	CodeImplementation string `json:"code_implementation,omitempty"`
	BlogPost           string `json:"blog_post,omitempty"`

	// Passthrough extraction metadata, not LLM-derived.
	HighlightedText []string      `json:"highlighted_text"`
	FiguresTables   []FigureTable `json:"figures_tables"`
}

// Normalize replaces nil list fields with empty slices so that callers
// and the storage layer never see null sequences.
func (r *Record) Normalize() {
	if r.Takeaways == nil {
		r.Takeaways = []string{}
	}
	if r.ImportantIdeas == nil {
		r.ImportantIdeas = []string{}
	}
	if r.FutureDirections == nil {
		r.FutureDirections = []string{}
	}
	if r.Limitations == nil {
		r.Limitations = []string{}
	}
	if r.PracticalApplications == nil {
		r.PracticalApplications = []string{}
	}
	if r.SimilarPapers == nil {
		r.SimilarPapers = []SimilarPaper{}
	}
	if r.HighlightedText == nil {
		r.HighlightedText = []string{}
	}
	if r.FiguresTables == nil {
		r.FiguresTables = []FigureTable{}
	}
}

// markdownSection describes one rendered section of the summary.
type markdownSection struct {
	heading string
	text    string
	items   []string
}

// Markdown renders the record as a Markdown document. Only populated
// sections are emitted.
func (r *Record) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "**Domain:** %s  \n", r.Domain)
	fmt.Fprintf(&b, "**Paper ID:** %s\n", r.PaperID)

	sections := []markdownSection{
		{heading: "Summary", text: r.Summary},
		{heading: "Problem Statement", text: r.ProblemStatement},
		{heading: "Methodology", text: r.Methodology},
		{heading: "Architecture", text: r.Architecture},
		{heading: "Key Results", text: r.KeyResults},
		{heading: "Implications", text: r.Implications},
		{heading: "Takeaways", items: r.Takeaways},
		{heading: "Important Ideas", items: r.ImportantIdeas},
		{heading: "Future Directions", items: r.FutureDirections},
		{heading: "Limitations", items: r.Limitations},
		{heading: "Practical Applications", items: r.PracticalApplications},
		{heading: "Novelty", text: r.Novelty},
		{heading: "Related Work", text: r.RelatedWork},
		{heading: "Background", text: r.Background},
		{heading: "Mathematical Formulations", text: r.MathFormulations},
	}

	for _, s := range sections {
		if s.text == "" && len(s.items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", s.heading)
		if s.text != "" {
			b.WriteString(s.text)
			b.WriteString("\n")
		}
		for _, item := range s.items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	if len(r.SimilarPapers) > 0 {
		b.WriteString("\n## Similar Papers\n\n")
		for _, sp := range r.SimilarPapers {
			fmt.Fprintf(&b, "- **%s** (%s, %s): %s\n", sp.Title, sp.Authors, sp.Year, sp.Relevance)
		}
	}

	return b.String()
}
