package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcAman07/research-pal/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show <paper-id>",
	Short: "Display a stored paper summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	rec, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, store.ErrPaperNotFound) {
			exitWithError(ExitDataError, err)
		}
		exitWithError(ExitError, err)
	}

	if humanOutput {
		fmt.Println(rec.Markdown())
		return nil
	}
	return outputJSON(rec)
}
