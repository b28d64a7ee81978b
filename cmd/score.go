package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/artifact"
	"github.com/pable/go-xg-metrics/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Attach xG probabilities to every shot",
	Long: `Load the persisted model and score the full shot-features dataset,
replacing the scored-shots dataset. Every row is scored, including rows the
model was trained on.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore()
	},
}

func runScore() error {
	m, err := artifact.ReadModel(modelPath())
	if err != nil {
		return fmt.Errorf("load model (run 'xgmetrics train' first): %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.GetFeatures()
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no feature records stored; run 'xgmetrics features' first")
	}

	scored, err := scorer.Score(records, m)
	if err != nil {
		return fmt.Errorf("score shots: %w", err)
	}
	if err := db.ReplaceScoredShots(scored); err != nil {
		return fmt.Errorf("store scored shots: %w", err)
	}

	log.WithField("rows", len(scored)).Info("scored shots")
	return nil
}
