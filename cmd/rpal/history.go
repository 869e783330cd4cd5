package main

import (
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently summarized papers",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of papers to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	records, err := st.List(cmd.Context(), historyLimit)
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
		})
	}
	return outputJSON(results)
}
