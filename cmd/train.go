package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/artifact"
	"github.com/pable/go-xg-metrics/internal/report"
	"github.com/pable/go-xg-metrics/internal/trainer"
)

var (
	trainSeed        int64
	trainValFraction float64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the xG model and report its calibration",
	Long: `Fit a logistic model predicting goals from shot features on a
stratified 80/20 train/validation split, compute validation metrics
(log-loss, Brier score, ROC-AUC), and persist the model and its report.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrain()
	},
}

func init() {
	trainCmd.Flags().Int64Var(&trainSeed, "seed", trainer.DefaultSeed, "random seed for the train/validation split")
	trainCmd.Flags().Float64Var(&trainValFraction, "val-fraction", trainer.DefaultValFraction, "fraction of rows held out for validation")
}

func runTrain() error {
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

	m, rep, err := trainer.Train(records, trainer.Options{
		Seed:        trainSeed,
		ValFraction: trainValFraction,
	})
	if err != nil {
		return fmt.Errorf("train model: %w", err)
	}

	if err := artifact.WriteModel(modelPath(), m); err != nil {
		return fmt.Errorf("persist model: %w", err)
	}
	if err := artifact.WriteReport(reportPath(), rep); err != nil {
		return fmt.Errorf("persist metric report: %w", err)
	}

	log.WithFields(map[string]any{
		"rows_train": rep.RowsTrain,
		"rows_val":   rep.RowsVal,
		"log_loss":   rep.LogLoss,
		"roc_auc":    rep.ROCAUC,
	}).Info("trained xG model")

	report.PrintMetricReport(os.Stdout, rep)
	return nil
}
