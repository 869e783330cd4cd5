package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arcAman07/research-pal/internal/paper"
)

// listDelimiter joins list items inside the document text. Chosen to be
// distinguishable from natural prose so items re-split cleanly.
const listDelimiter = " | "

// documentFields enumerates the field prefixes recognized by the parser,
// in serialization order.
var documentFields = []string{
	"summary",
	"problem_statement",
	"methodology",
	"architecture",
	"key_results",
	"implications",
	"background",
	"math_formulations",
	"novelty",
	"related_work",
	"takeaways",
	"important_ideas",
	"future_directions",
	"limitations",
	"practical_applications",
	"similar_papers",
	"domain",
}

var listFields = map[string]bool{
	"takeaways":              true,
	"important_ideas":        true,
	"future_directions":      true,
	"limitations":            true,
	"practical_applications": true,
	"similar_papers":         true,
}

var knownField = func() map[string]bool {
	m := make(map[string]bool, len(documentFields))
	for _, f := range documentFields {
		m[f] = true
	}
	return m
}()

// similarPaperPattern matches the serialized "Title (Authors, Year):
// Relevance" form. The greedy title group leaves the last parenthesized
// group for authors and year.
var similarPaperPattern = regexp.MustCompile(`^(.+) \(([^()]*), ([^,()]*)\): (.+)$`)

// SerializeDocument renders a record as prefixed "field: value" sections.
// Empty fields are skipped; list items are joined with the list delimiter.
func SerializeDocument(r *paper.Record) string {
	values := map[string]string{
		"summary":                r.Summary,
		"problem_statement":      r.ProblemStatement,
		"methodology":            r.Methodology,
		"architecture":           r.Architecture,
		"key_results":            r.KeyResults,
		"implications":           r.Implications,
		"background":             r.Background,
		"math_formulations":      r.MathFormulations,
		"novelty":                r.Novelty,
		"related_work":           r.RelatedWork,
		"takeaways":              strings.Join(r.Takeaways, listDelimiter),
		"important_ideas":        strings.Join(r.ImportantIdeas, listDelimiter),
		"future_directions":      strings.Join(r.FutureDirections, listDelimiter),
		"limitations":            strings.Join(r.Limitations, listDelimiter),
		"practical_applications": strings.Join(r.PracticalApplications, listDelimiter),
		"similar_papers":         joinSimilarPapers(r.SimilarPapers),
		"domain":                 r.Domain,
	}

	var b strings.Builder
	for _, field := range documentFields {
		v := values[field]
		if v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", field, v)
	}
	return b.String()
}

// ParseDocument splits document text on known field prefixes and fills the
// corresponding record fields. Lines not starting a known section belong
// to the current section, so multi-line values survive the round trip.
func ParseDocument(text string, r *paper.Record) {
	sections := make(map[string]string)
	var current string
	var content []string

	flush := func() {
		if current != "" {
			sections[current] = strings.Join(content, "\n")
		}
	}

	for _, line := range strings.Split(text, "\n") {
		name, rest, ok := strings.Cut(line, ": ")
		if ok && knownField[strings.ToLower(name)] {
			flush()
			current = strings.ToLower(name)
			content = []string{rest}
			continue
		}
		if current != "" {
			content = append(content, line)
		}
	}
	flush()

	r.Summary = sections["summary"]
	r.ProblemStatement = sections["problem_statement"]
	r.Methodology = sections["methodology"]
	r.Architecture = sections["architecture"]
	r.KeyResults = sections["key_results"]
	r.Implications = sections["implications"]
	r.Background = sections["background"]
	r.MathFormulations = sections["math_formulations"]
	r.Novelty = sections["novelty"]
	r.RelatedWork = sections["related_work"]
	if d := sections["domain"]; d != "" {
		r.Domain = d
	}

	r.Takeaways = splitList(sections["takeaways"])
	r.ImportantIdeas = splitList(sections["important_ideas"])
	r.FutureDirections = splitList(sections["future_directions"])
	r.Limitations = splitList(sections["limitations"])
	r.PracticalApplications = splitList(sections["practical_applications"])
	r.SimilarPapers = parseSimilarPapers(splitList(sections["similar_papers"]))
}

// splitList re-splits a serialized list field, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, "|")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

func joinSimilarPapers(papers []paper.SimilarPaper) string {
	if len(papers) == 0 {
		return ""
	}
	items := make([]string, 0, len(papers))
	for _, p := range papers {
		items = append(items, fmt.Sprintf("%s (%s, %s): %s", p.Title, p.Authors, p.Year, p.Relevance))
	}
	return strings.Join(items, listDelimiter)
}

// parseSimilarPapers recovers structured entries from their serialized
// form. An item that does not match the pattern keeps its full text as
// the title rather than being dropped.
func parseSimilarPapers(items []string) []paper.SimilarPaper {
	papers := make([]paper.SimilarPaper, 0, len(items))
	for _, item := range items {
		if m := similarPaperPattern.FindStringSubmatch(item); m != nil {
			papers = append(papers, paper.SimilarPaper{
				Title:     m[1],
				Authors:   m[2],
				Year:      m[3],
				Relevance: m[4],
			})
			continue
		}
		papers = append(papers, paper.SimilarPaper{Title: item})
	}
	return papers
}
