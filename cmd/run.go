package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline",
	Long: `Run extract, features, train, score, and aggregate in order. Each
stage persists its complete artifact before the next begins; the first stage
error stops the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline()
	},
}

func runPipeline() error {
	stages := []struct {
		name string
		fn   func() error
	}{
		{"extract", runExtract},
		{"features", runFeatures},
		{"train", runTrain},
		{"score", runScore},
		{"aggregate", runAggregate},
	}

	for _, stage := range stages {
		start := time.Now()
		log.WithField("stage", stage.name).Info("stage starting")
		if err := stage.fn(); err != nil {
			return fmt.Errorf("stage %s: %w", stage.name, err)
		}
		log.WithFields(map[string]any{
			"stage":    stage.name,
			"duration": time.Since(start).Round(time.Millisecond).String(),
		}).Info("stage complete")
	}

	log.Info("pipeline complete")
	return nil
}
