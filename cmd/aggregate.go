package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/aggregator"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Roll scored shots up into team and player metrics",
	Long: `Group scored shots by team, by player, and by team+player, replacing
the three aggregate metric datasets consumed by the display layer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAggregate()
	},
}

func runAggregate() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	scored, err := db.GetScoredShots()
	if err != nil {
		return fmt.Errorf("load scored shots: %w", err)
	}
	if len(scored) == 0 {
		return fmt.Errorf("no scored shots stored; run 'xgmetrics score' first")
	}

	teams, players, teamPlayers := aggregator.Aggregate(scored)

	if err := db.ReplaceTeamMetrics(teams); err != nil {
		return fmt.Errorf("store team metrics: %w", err)
	}
	if err := db.ReplacePlayerMetrics(players); err != nil {
		return fmt.Errorf("store player metrics: %w", err)
	}
	if err := db.ReplaceTeamPlayerMetrics(teamPlayers); err != nil {
		return fmt.Errorf("store team+player metrics: %w", err)
	}

	log.WithFields(map[string]any{
		"teams":        len(teams),
		"players":      len(players),
		"team_players": len(teamPlayers),
	}).Info("aggregated metrics")
	return nil
}
