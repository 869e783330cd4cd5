package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcAman07/research-pal/internal/llm"
	"github.com/arcAman07/research-pal/internal/paper"
	"github.com/arcAman07/research-pal/internal/pdf"
	"github.com/arcAman07/research-pal/internal/summarize"
)

var (
	summarizeCode          bool
	summarizeBlog          bool
	summarizeBlogStyleFile string
	summarizeModel         string
	summarizeTokenLimit    int
	summarizeForce         bool
)

// SummarizeResult is the JSON output of the summarize command.
type SummarizeResult struct {
	PaperID     string `json:"paper_id"`
	Title       string `json:"title"`
	Domain      string `json:"domain"`
	Skipped     bool   `json:"skipped,omitempty"`
	SummaryFile string `json:"summary_file,omitempty"`
	CodeFile    string `json:"code_file,omitempty"`
	BlogFile    string `json:"blog_file,omitempty"`
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <pdf>",
	Short: "Summarize a research paper PDF",
	Long: `Summarize runs the full pipeline on a PDF: extraction, chunked
analysis, merge, comprehensive analysis, domain classification, and
similar-paper recommendations. The record is stored in the paper
database and a Markdown summary is written to the output directory.

Already-processed papers are skipped unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeCode, "code", false, "Generate a code implementation of the paper's architecture")
	summarizeCmd.Flags().BoolVar(&summarizeBlog, "blog", false, "Generate a blog post about the paper")
	summarizeCmd.Flags().StringVar(&summarizeBlogStyleFile, "blog-style-file", "", "File whose writing style the blog post should imitate")
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "", "Logical model name (default from config)")
	summarizeCmd.Flags().IntVar(&summarizeTokenLimit, "token-limit", 0, "Output token limit for the analysis stage")
	summarizeCmd.Flags().BoolVar(&summarizeForce, "force", false, "Re-process even if the paper was summarized before")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, err)
	}
	logger := newLogger()
	defer logger.Sync()

	st, err := openStore(cfg, logger)
	if err != nil {
		exitWithError(ExitError, err)
	}
	defer st.Close()

	s, err := newSummarizer(cfg, st, logger)
	if err != nil {
		if errors.Is(err, llm.ErrNoCredentials) {
			exitWithError(ExitConfigError, err)
		}
		exitWithError(ExitError, err)
	}

	ctx := cmd.Context()

	if !summarizeForce {
		existing, err := s.CheckPaperExists(ctx, pdfPath)
		if err != nil {
			exitWithError(ExitError, err)
		}
		if existing != "" {
			rec, err := s.GetPaper(ctx, existing)
			if err != nil {
				exitWithError(ExitDataError, err)
			}
			result := SummarizeResult{
				PaperID: rec.PaperID,
				Title:   rec.Title,
				Domain:  rec.Domain,
				Skipped: true,
			}
			if humanOutput {
				fmt.Printf("Paper already summarized as %s (%s). Use --force to re-process.\n",
					rec.PaperID, rec.Title)
				return nil
			}
			return outputJSON(result)
		}
	}

	opts := summarize.Options{
		GenerateCode:     summarizeCode,
		GenerateBlog:     summarizeBlog,
		Model:            summarizeModel,
		OutputTokenLimit: summarizeTokenLimit,
	}
	if summarizeBlog && summarizeBlogStyleFile != "" {
		sample, err := os.ReadFile(summarizeBlogStyleFile)
		if err != nil {
			exitWithError(ExitDataError, fmt.Errorf("reading blog style file: %w", err))
		}
		opts.BlogStyleSample = string(sample)
	}

	rec, err := s.Summarize(ctx, pdfPath, opts)
	if err != nil {
		if errors.Is(err, pdf.ErrFileNotFound) {
			exitWithError(ExitDataError, err)
		}
		exitWithError(ExitError, err)
	}

	result := SummarizeResult{
		PaperID: rec.PaperID,
		Title:   rec.Title,
		Domain:  rec.Domain,
	}

	result.SummaryFile, err = writeArtifact(cfg.OutputDir, rec.PaperID+"_summary.md", rec.Markdown())
	if err != nil {
		exitWithError(ExitError, err)
	}
	if rec.CodeImplementation != "" {
		result.CodeFile, err = writeArtifact(cfg.OutputDir, rec.PaperID+"_implementation.py", rec.CodeImplementation)
		if err != nil {
			exitWithError(ExitError, err)
		}
	}
	if rec.BlogPost != "" {
		result.BlogFile, err = writeArtifact(cfg.OutputDir, rec.PaperID+"_blog.md", rec.BlogPost)
		if err != nil {
			exitWithError(ExitError, err)
		}
	}

	if humanOutput {
		printSummarizeHuman(rec, result)
		return nil
	}
	return outputJSON(result)
}

// writeArtifact writes content to the output directory and returns the
// full path.
func writeArtifact(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

func printSummarizeHuman(rec *paper.Record, result SummarizeResult) {
	fmt.Printf("Summarized %q\n", rec.Title)
	fmt.Printf("  Paper ID: %s\n", rec.PaperID)
	fmt.Printf("  Domain:   %s\n", rec.Domain)
	fmt.Printf("  Summary:  %s\n", result.SummaryFile)
	if result.CodeFile != "" {
		fmt.Printf("  Code:     %s\n", result.CodeFile)
	}
	if result.BlogFile != "" {
		fmt.Printf("  Blog:     %s\n", result.BlogFile)
	}
}
