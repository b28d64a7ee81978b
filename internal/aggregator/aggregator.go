// Package aggregator rolls scored shots up into team, player, and
// team+player performance metrics.
package aggregator

import (
	"sort"

	"github.com/pable/go-xg-metrics/internal/model"
)

// counts is the per-group accumulator: a plain (count, sum, sum) reduce, so
// row order never affects a group's result.
type counts struct {
	shots int
	goals int
	xg    float64
}

func (c *counts) add(s model.ScoredShot) {
	c.shots++
	c.goals += s.IsGoal
	c.xg += s.XG
}

// goalMinusXG is always the difference of the two summed quantities, never a
// sum of per-shot differences.
func (c *counts) goalMinusXG() float64 {
	return float64(c.goals) - c.xg
}

type teamPlayerKey struct {
	team   string
	player string
}

// Aggregate produces the three grouped views of the scored shots. Grouping
// is exact string equality on the name fields; two spellings of one player
// are two groups. Results are sorted by key for stable artifacts.
func Aggregate(shots []model.ScoredShot) ([]model.TeamMetric, []model.PlayerMetric, []model.TeamPlayerMetric) {
	byTeam := make(map[string]*counts)
	byPlayer := make(map[string]*counts)
	byTeamPlayer := make(map[teamPlayerKey]*counts)

	for _, s := range shots {
		get(byTeam, s.Team).add(s)
		get(byPlayer, s.Player).add(s)
		get(byTeamPlayer, teamPlayerKey{s.Team, s.Player}).add(s)
	}

	teams := make([]model.TeamMetric, 0, len(byTeam))
	for team, c := range byTeam {
		teams = append(teams, model.TeamMetric{
			Team:        team,
			Shots:       c.shots,
			Goals:       c.goals,
			XG:          c.xg,
			GoalMinusXG: c.goalMinusXG(),
		})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Team < teams[j].Team })

	players := make([]model.PlayerMetric, 0, len(byPlayer))
	for player, c := range byPlayer {
		players = append(players, model.PlayerMetric{
			Player:      player,
			Shots:       c.shots,
			Goals:       c.goals,
			XG:          c.xg,
			GoalMinusXG: c.goalMinusXG(),
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Player < players[j].Player })

	teamPlayers := make([]model.TeamPlayerMetric, 0, len(byTeamPlayer))
	for key, c := range byTeamPlayer {
		teamPlayers = append(teamPlayers, model.TeamPlayerMetric{
			Team:        key.team,
			Player:      key.player,
			Shots:       c.shots,
			Goals:       c.goals,
			XG:          c.xg,
			GoalMinusXG: c.goalMinusXG(),
		})
	}
	sort.Slice(teamPlayers, func(i, j int) bool {
		if teamPlayers[i].Team != teamPlayers[j].Team {
			return teamPlayers[i].Team < teamPlayers[j].Team
		}
		return teamPlayers[i].Player < teamPlayers[j].Player
	})

	return teams, players, teamPlayers
}

func get[K comparable](m map[K]*counts, k K) *counts {
	c, ok := m[k]
	if !ok {
		c = &counts{}
		m[k] = c
	}
	return c
}
