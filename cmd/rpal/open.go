package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcAman07/research-pal/internal/pdf"
	"github.com/arcAman07/research-pal/internal/store"
)

var openCmd = &cobra.Command{
	Use:   "open <paper-id>",
	Short: "Open a stored paper's PDF in the configured reader",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
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
	if rec.Filepath == "" {
		exitWithError(ExitDataError, fmt.Errorf("paper %s has no stored file path", rec.PaperID))
	}

	opener := pdf.NewOpener(cfg.PDFReader)
	if err := opener.Open(rec.Filepath); err != nil {
		if errors.Is(err, pdf.ErrFileNotFound) {
			exitWithError(ExitDataError, err)
		}
		exitWithError(ExitError, err)
	}

	if humanOutput {
		fmt.Printf("Opened %s\n", rec.Filepath)
		return nil
	}
	return outputJSON(map[string]string{"opened": rec.Filepath})
}
