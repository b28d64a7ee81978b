package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/extractor"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract shot events from raw match-event files",
	Long: `Read every per-match event document in the bronze events directory,
filter to shot events, and replace the silver shots dataset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract()
	},
}

func runExtract() error {
	shots, err := extractor.ExtractDir(eventsDir())
	if err != nil {
		return fmt.Errorf("extract shots: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ReplaceShots(shots); err != nil {
		return fmt.Errorf("store shots: %w", err)
	}

	log.WithFields(map[string]any{
		"shots": len(shots),
		"dir":   eventsDir(),
	}).Info("extracted shot events")
	return nil
}
