package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcAman07/research-pal/internal/store"
)

var updateCmd = &cobra.Command{
	Use:   "update <paper-id> <field> <value>",
	Short: "Overwrite one field of a stored paper",
	Long: `Update replaces a single field of a stored record. List fields
(takeaways, important_ideas, future_directions, limitations,
practical_applications, highlighted_text) take a "|"-separated value.`,
	Args: cobra.ExactArgs(3),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

// listUpdateFields are the record fields updated as string lists.
var listUpdateFields = map[string]bool{
	"takeaways":              true,
	"important_ideas":        true,
	"future_directions":      true,
	"limitations":            true,
	"practical_applications": true,
	"highlighted_text":       true,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	paperID, field, raw := args[0], args[1], args[2]

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

	var value any = raw
	if listUpdateFields[field] {
		parts := strings.Split(raw, "|")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				list = append(list, trimmed)
			}
		}
		value = list
	}

	if err := st.UpdateField(cmd.Context(), paperID, field, value); err != nil {
		if errors.Is(err, store.ErrPaperNotFound) {
			exitWithError(ExitDataError, err)
		}
		exitWithError(ExitError, err)
	}

	if humanOutput {
		fmt.Printf("Updated %s of %s\n", field, paperID)
		return nil
	}
	return outputJSON(map[string]string{"paper_id": paperID, "updated": field})
}
