package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/features"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Derive shot geometry and label features",
	Long: `Compute distance, angle, and the goal/header/penalty labels for every
stored shot, dropping shots with missing coordinates, and replace the
shot-features dataset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFeatures()
	},
}

func runFeatures() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	shots, err := db.GetShots()
	if err != nil {
		return fmt.Errorf("load shots: %w", err)
	}
	if len(shots) == 0 {
		return fmt.Errorf("no shots stored; run 'xgmetrics extract' first")
	}

	records, dropped := features.Derive(shots)
	if err := db.ReplaceFeatures(records); err != nil {
		return fmt.Errorf("store features: %w", err)
	}

	goals := 0
	for i := range records {
		goals += records[i].IsGoal
	}
	log.WithFields(map[string]any{
		"rows":    len(records),
		"dropped": dropped,
		"goals":   goals,
	}).Info("derived shot features")
	return nil
}
