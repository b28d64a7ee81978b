package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-xg-metrics/internal/artifact"
	"github.com/pable/go-xg-metrics/internal/statsbomb"
)

var (
	fetchCompetition int
	fetchSeason      int
	fetchMax         int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a StatsBomb open-data season into the bronze layer",
	Long: `Download the matches index for one competition season, then the raw
event document for each match, into <data-dir>/bronze/events/<match_id>.json.

Examples:
  # Premier League 2015/16
  xgmetrics fetch --competition 2 --season 27`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchCompetition, "competition", 2, "StatsBomb competition id")
	fetchCmd.Flags().IntVar(&fetchSeason, "season", 27, "StatsBomb season id")
	fetchCmd.Flags().IntVar(&fetchMax, "max-matches", 0, "limit number of matches downloaded (0 = all)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := statsbomb.NewClient()

	matches, err := client.ListMatches(fetchCompetition, fetchSeason)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if fetchMax > 0 && len(matches) > fetchMax {
		matches = matches[:fetchMax]
	}
	log.WithFields(map[string]any{
		"competition": fetchCompetition,
		"season":      fetchSeason,
		"matches":     len(matches),
	}).Info("downloading season")

	for i, m := range matches {
		data, err := client.GetEvents(m.MatchID)
		if err != nil {
			return fmt.Errorf("fetch events for match %d: %w", m.MatchID, err)
		}
		out := filepath.Join(eventsDir(), fmt.Sprintf("%d.json", m.MatchID))
		if err := artifact.WriteBytes(out, data); err != nil {
			return fmt.Errorf("save events for match %d: %w", m.MatchID, err)
		}
		if (i+1)%20 == 0 {
			log.WithField("downloaded", i+1).Debug("download progress")
		}
	}

	log.WithField("dir", eventsDir()).Info("season download complete")
	return nil
}
