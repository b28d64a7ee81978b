package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/artifact"
	"github.com/pable/go-xg-metrics/internal/report"
)

var reportTop int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show team, player, and team+player xG tables",
	Long: `Render the aggregated metrics and the latest training report. Each
table is sorted by goal-minus-xG (overperformance first). Absent artifacts
produce a notice, not an error.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportTop, "top", 10, "rows shown per table (0 = all)")
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	teams, err := db.GetTeamMetrics()
	if err != nil {
		return fmt.Errorf("load team metrics: %w", err)
	}
	players, err := db.GetPlayerMetrics()
	if err != nil {
		return fmt.Errorf("load player metrics: %w", err)
	}
	if len(teams) == 0 && len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No aggregate metrics yet. Run 'xgmetrics aggregate' (or 'xgmetrics run') first.")
		return nil
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].GoalMinusXG > teams[j].GoalMinusXG })
	fmt.Fprintf(os.Stdout, "\n--- Teams ---\n\n")
	report.PrintTeamTable(os.Stdout, top(teams))

	sort.Slice(players, func(i, j int) bool { return players[i].GoalMinusXG > players[j].GoalMinusXG })
	fmt.Fprintf(os.Stdout, "\n--- Players ---\n\n")
	report.PrintPlayerTable(os.Stdout, top(players))

	// The team+player breakdown is optional for the display layer: absence
	// is a notice, never a failure.
	teamPlayers, err := db.GetTeamPlayerMetrics()
	if err != nil {
		return fmt.Errorf("load team+player metrics: %w", err)
	}
	if len(teamPlayers) == 0 {
		fmt.Fprintln(os.Stdout, "\nTeam+player breakdown not available. Run 'xgmetrics aggregate' to produce it.")
	} else {
		sort.Slice(teamPlayers, func(i, j int) bool {
			return teamPlayers[i].GoalMinusXG > teamPlayers[j].GoalMinusXG
		})
		fmt.Fprintf(os.Stdout, "\n--- Team + Player ---\n\n")
		report.PrintTeamPlayerTable(os.Stdout, top(teamPlayers))
	}

	rep, err := artifact.ReadReport(reportPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(os.Stdout, "\nNo training report found. Run 'xgmetrics train' to produce one.")
	case err != nil:
		return fmt.Errorf("load metric report: %w", err)
	default:
		fmt.Fprintf(os.Stdout, "\n--- Model ---\n")
		report.PrintMetricReport(os.Stdout, rep)
	}
	return nil
}

// top limits a sorted table to the --top row count.
func top[T any](rows []T) []T {
	if reportTop > 0 && len(rows) > reportTop {
		return rows[:reportTop]
	}
	return rows
}
