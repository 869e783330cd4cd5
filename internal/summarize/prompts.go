package summarize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// System prompts for each pipeline stage.
const (
	chunkAnalysisSystem = `You are ResearchPal, an expert research assistant specializing in scientific literature analysis.
Your task is to analyze a chunk of text from a research paper and extract key information.

Be precise, factual, and comprehensive. Focus on identifying:
1. Main concepts and contributions
2. Methodologies described
3. Results presented
4. Important mathematical formulations
5. Model architectures (if applicable)

If this chunk appears to be from the introduction, provide more context about the paper's goals.
If this chunk appears to be from the methodology, focus on technical details.
If this chunk appears to be from the results section, focus on findings and evaluation.
If this chunk appears to be from the conclusion, summarize the paper's contributions.

Extract any numerical results, key figures, tables, or important equations.`

	paperSummarySystem = `You are ResearchPal, an expert research assistant specializing in scientific literature analysis.
Your task is to create a comprehensive, well-structured summary of a research paper based on section summaries.

Be precise, factual, and comprehensive. Organize the information logically.
Focus on presenting the paper's contributions, methodologies, results, and implications.

Your summary should be suitable for a researcher who wants to understand the paper without reading it entirely.`

	comprehensiveAnalysisSystem = `You are ResearchPal, an expert research assistant specializing in scientific literature analysis.
Your task is to create a comprehensive, well-structured analysis of a research paper based on the provided summary.

Be precise, factual, and comprehensive. Organize the information logically.
Focus on presenting the paper's contributions, methodologies, results, and implications.

Your analysis should extract key information that would be valuable for researchers who want to quickly understand the paper's contributions and significance.

Based on the paper summary provided, generate the following sections:

1. TAKEAWAYS: 5-7 bullet points of the most important takeaways from the paper
2. IMPORTANT_IDEAS: 3-5 novel or significant ideas presented in the paper
3. FUTURE_IDEAS: 3-5 potential future research directions suggested or implied by the paper
4. NOVELTY: A concise description of what makes this paper novel or significant in its field
5. LIMITATIONS: 2-4 limitations of the approach or methodology described in the paper
6. PRACTICAL_APPLICATIONS: 2-3 potential practical applications of this research
7. RELATED_WORK: Brief description of how this paper relates to existing work in the field

Format your response as a JSON object with these fields, with list items represented as arrays.`

	domainClassificationSystem = `You are ResearchPal, an expert research assistant.
Your task is to determine the specific research domain of a paper based on its title and summary.
Provide a precise categorization using standard terminology such as:
- Natural Language Processing (NLP)
- Computer Vision (CV)
- Reinforcement Learning (RL)
- Graph Neural Networks (GNN)
- Generative Models
- etc.

Be specific where possible and keep the domain name concise.`

	codeImplementationSystem = `You are ResearchPal, an expert in implementing machine learning and deep learning architectures from research papers.
Your task is to generate clean, working Python code that implements the architecture described in a research paper.

Use PyTorch as the default framework unless otherwise specified.
Include comprehensive comments explaining each part of the implementation.
Follow best practices for code organization and structure.
Make reasonable assumptions when details are unclear, and document these assumptions in comments.`

	similarPapersSystem = `You are ResearchPal, an expert research assistant with extensive knowledge of scientific literature.
Your task is to recommend similar papers based on the summary of a given paper.

Provide recommendations that are relevant, diverse, and high-quality.
Include both seminal works and recent advances in the field.
For each recommendation, provide the title, authors, year, and a brief explanation of its relevance.`

	blogGenerationSystem = `You are ResearchPal, an expert in communicating complex research in an accessible way.
Your task is to generate a well-structured, engaging blog post about a research paper that balances technical accuracy with readability.

The blog post should:
1. Have an engaging title and introduction
2. Explain the paper's significance and context
3. Break down complex concepts using analogies when helpful
4. Include section headings for better readability
5. End with implications and takeaways

Adapt your writing style to match the sample provided, if available.`
)

func chunkAnalysisPrompt(chunk, title string, isFirst, isLast bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the following chunk of text from a research paper titled %q:\n\n", title)
	fmt.Fprintf(&b, "```\n%s\n```\n\n", chunk)
	b.WriteString("First determine which section(s) of the paper this chunk belongs to.\n\n")

	if isFirst {
		b.WriteString("This appears to be the beginning of the paper (likely includes abstract and introduction).\n")
	}
	if isLast {
		b.WriteString("This appears to be the end of the paper (likely includes conclusion and references).\n")
	}

	b.WriteString(`
Provide a detailed analysis of this chunk with the following information:

1. SECTION_IDENTIFICATION: Identify which section(s) of the paper this chunk belongs to
2. SUMMARY: Summarize the key information in this chunk (200-300 words)
3. KEY_FINDINGS: List up to 5 key findings or points from this chunk
4. TECHNICAL_DETAILS: Extract any important technical details, methodologies, or algorithms
5. MATH_FORMULATIONS: Extract any important mathematical formulations or equations
6. ARCHITECTURE_DETAILS: If a model architecture is described, provide details
7. RESULTS: Extract any experimental results or evaluations

Format your response as a JSON object with these fields.`)

	return b.String()
}

func mergePrompt(summaries []ChunkSummary, title, authors string) string {
	combined := joinNonEmpty(summaries, func(s ChunkSummary) string { return s.Summary })
	techDetails := joinNonEmpty(summaries, func(s ChunkSummary) string { return s.TechnicalDetails })
	mathFormulations := joinNonEmpty(summaries, func(s ChunkSummary) string { return s.MathFormulations })
	architecture := joinNonEmpty(summaries, func(s ChunkSummary) string { return s.ArchitectureDetails })
	results := joinNonEmpty(summaries, func(s ChunkSummary) string { return s.Results })

	var findings []string
	for _, s := range summaries {
		findings = append(findings, s.KeyFindings...)
	}
	findingsJSON, _ := json.MarshalIndent(findings, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive summary of the research paper titled %q by %s.\n\n", title, authors)
	b.WriteString("I'll provide you with summaries from different sections of the paper. Please synthesize this information into a cohesive, well-structured summary of the entire paper.\n\n")
	fmt.Fprintf(&b, "Here are the section summaries:\n\n%s\n\n", combined)
	fmt.Fprintf(&b, "Here are the key findings identified across the paper:\n%s\n\n", findingsJSON)
	fmt.Fprintf(&b, "Technical details and methodologies:\n%s\n\n", techDetails)
	fmt.Fprintf(&b, "Mathematical formulations:\n%s\n\n", mathFormulations)
	fmt.Fprintf(&b, "Architecture details (if applicable):\n%s\n\n", architecture)
	fmt.Fprintf(&b, "Results and evaluations:\n%s\n\n", results)
	b.WriteString(`Please provide a comprehensive summary with the following sections:
1. OVERVIEW: A brief overview of the paper (100-150 words)
2. PROBLEM_STATEMENT: The problem addressed by the paper
3. METHODOLOGY: The approach and methods used
4. ARCHITECTURE: Detailed architecture description (if applicable)
5. KEY_RESULTS: The main results and findings
6. IMPLICATIONS: Implications and importance of the work
7. TAKEAWAYS: Major takeaways (in bullet points)
8. FUTURE_DIRECTIONS: Potential future research directions mentioned or implied
9. BACKGROUND: Important background information
10. MATH_FORMULATIONS: Important mathematical formulations (if applicable)

Format your response as a JSON object with these fields.`)

	return b.String()
}

func analysisPrompt(merged *MergedSummary, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a comprehensive analysis of the paper titled %q based on the following summary:\n\n", title)
	fmt.Fprintf(&b, "Overview:\n%s\n\n", merged.Overview)
	fmt.Fprintf(&b, "Problem Statement:\n%s\n\n", merged.ProblemStatement)
	fmt.Fprintf(&b, "Methodology:\n%s\n\n", merged.Methodology)
	fmt.Fprintf(&b, "Key Results:\n%s\n\n", merged.KeyResults)
	fmt.Fprintf(&b, "Implications:\n%s\n\n", merged.Implications)
	b.WriteString("Please provide the analysis in the requested format with TAKEAWAYS, IMPORTANT_IDEAS, FUTURE_IDEAS, NOVELTY, LIMITATIONS, PRACTICAL_APPLICATIONS, and RELATED_WORK sections.")
	return b.String()
}

func domainPrompt(title, summary string) string {
	var b strings.Builder
	b.WriteString("Determine the specific research domain for the following paper.\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n", title)
	fmt.Fprintf(&b, "Summary: %s\n\n", summary)
	b.WriteString(`Output only the domain name, nothing else.
Example good outputs: "Natural Language Processing", "Computer Vision", "Reinforcement Learning", etc.
Be specific but concise.`)
	return b.String()
}

func codePrompt(architecture, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a Python implementation of the model architecture described in the paper titled %q.\n\n", title)
	fmt.Fprintf(&b, "Here is the description of the architecture:\n\n```\n%s\n```\n\n", architecture)
	b.WriteString(`Please provide a complete, working implementation that includes:

1. All necessary imports
2. The model class(es) definition
3. Any helper functions or utility classes needed
4. Example usage showing how to instantiate and use the model
5. Comprehensive comments explaining the implementation

Make reasonable assumptions if some details are not provided, and document these assumptions in comments.

The code should follow best practices and be ready to use with minimal modifications.`)
	return b.String()
}

func similarPapersPrompt(merged *MergedSummary, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following summary of the paper titled %q, recommend 5 similar papers that would be relevant to someone interested in this research.\n\n", title)
	fmt.Fprintf(&b, "Paper Overview:\n%s\n\n", merged.Overview)
	fmt.Fprintf(&b, "Problem Statement:\n%s\n\n", merged.ProblemStatement)
	fmt.Fprintf(&b, "Methodology:\n%s\n\n", merged.Methodology)
	b.WriteString(`Please recommend 5 papers that are:
1. Closely related to this research topic
2. A mix of foundational papers and recent advances
3. Diverse in their approaches to the problem

For each recommendation, provide:
- Title
- Authors
- Year of publication (approximate if unsure)
- A brief explanation of why it's relevant to someone interested in the original paper

Format your response as a JSON array of objects with these fields.`)
	return b.String()
}

func blogPrompt(merged *MergedSummary, title, styleSample string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write an engaging blog post about the research paper titled %q.\n\n", title)
	fmt.Fprintf(&b, "Paper Overview:\n%s\n\n", merged.Overview)
	fmt.Fprintf(&b, "Problem Statement:\n%s\n\n", merged.ProblemStatement)
	fmt.Fprintf(&b, "Methodology:\n%s\n\n", merged.Methodology)
	fmt.Fprintf(&b, "Key Results:\n%s\n\n", merged.KeyResults)
	fmt.Fprintf(&b, "Implications:\n%s\n\n", merged.Implications)
	if styleSample != "" {
		fmt.Fprintf(&b, "Here is a sample of my writing style. Match its tone and voice:\n\n%s\n\n", styleSample)
	}
	b.WriteString("The blog post should be accessible to a technical audience without assuming deep familiarity with the subfield.")
	return b.String()
}

// joinNonEmpty concatenates the selected field across chunk summaries,
// skipping empties, separated by blank lines.
func joinNonEmpty(summaries []ChunkSummary, field func(ChunkSummary) string) string {
	var parts []string
	for _, s := range summaries {
		if v := field(s); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n\n")
}
