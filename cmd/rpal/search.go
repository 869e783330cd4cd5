package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcAman07/research-pal/internal/paper"
	"github.com/arcAman07/research-pal/internal/store"
)

var searchLimit int

// SearchResult is one row of the search command's JSON output.
type SearchResult struct {
	PaperID string `json:"paper_id"`
	Title   string `json:"title"`
	Domain  string `json:"domain"`
	Summary string `json:"summary,omitempty"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored papers",
	Long: `Search finds stored papers by content. Plain queries run a text
similarity search (semantic when an Ollama embedder is available,
substring otherwise). Two prefixes select metadata filters:

  rpal search "domain: Computer Vision"
  rpal search "title: attention"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", store.DefaultSearchLimit, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	records, err := st.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		exitWithError(ExitError, err)
	}

	if humanOutput {
		printRecordList(records)
		return nil
	}

	results := make([]SearchResult, 0, len(records))
	for _, r := range records {
		results = append(results, SearchResult{
			PaperID: r.PaperID,
			Title:   r.Title,
			Domain:  r.Domain,
			Summary: excerpt(r.Summary, 200),
		})
	}
	return outputJSON(results)
}

func printRecordList(records []paper.Record) {
	if len(records) == 0 {
		fmt.Println("No papers found.")
		return
	}
	for _, r := range records {
		fmt.Printf("%s  %s", r.PaperID, r.Title)
		if r.Domain != "" {
			fmt.Printf("  [%s]", r.Domain)
		}
		fmt.Println()
	}
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
