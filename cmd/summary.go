package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/artifact"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the datasets",
	Long: `Display row counts for every pipeline layer, basic dataset facts,
and the headline metrics of the last training run.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Shots == 0 {
		fmt.Fprintln(os.Stdout, "No shots stored yet. Run 'xgmetrics extract' (or 'xgmetrics run') to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Dataset Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Shots extracted   : %d\n", ov.Shots)
	fmt.Fprintf(os.Stdout, "  Feature rows      : %d\n", ov.Features)
	fmt.Fprintf(os.Stdout, "  Scored rows       : %d\n", ov.ScoredShots)
	fmt.Fprintf(os.Stdout, "  Matches           : %d\n", ov.Matches)
	fmt.Fprintf(os.Stdout, "  Teams             : %d\n", ov.Teams)
	fmt.Fprintf(os.Stdout, "  Players           : %d\n", ov.Players)
	if ov.Features > 0 {
		fmt.Fprintf(os.Stdout, "  Goals             : %d (%.1f%%)\n",
			ov.Goals, 100.0*float64(ov.Goals)/float64(ov.Features))
	}
	fmt.Fprintf(os.Stdout, "  Aggregate rows    : %d team / %d player / %d team+player\n",
		ov.TeamRows, ov.PlayerRows, ov.TeamPlayerRows)

	rep, err := artifact.ReadReport(reportPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(os.Stdout, "\nNo model trained yet.")
	case err != nil:
		return fmt.Errorf("load metric report: %w", err)
	default:
		fmt.Fprintf(os.Stdout, "\n  Last training run : %d/%d train/val rows, log-loss %.4f, brier %.4f, roc-auc %.4f\n",
			rep.RowsTrain, rep.RowsVal, rep.LogLoss, rep.BrierScore, rep.ROCAUC)
	}
	return nil
}
