package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-xg-metrics/internal/model"
)

// replace runs DELETE + bulk INSERT for one layer inside a single
// transaction, so a layer is always either its previous complete version or
// its new complete version — never a partial write.
func (db *DB) replace(table, insertSQL string, n int, bind func(i int) []any) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(bind(i)...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	return tx.Commit()
}

// ---- shots (silver) ----

// ReplaceShots overwrites the shots layer wholesale.
func (db *DB) ReplaceShots(shots []model.ShotEvent) error {
	return db.replace("shots", `
		INSERT INTO shots(match_id, team, player, minute, second, x, y,
			outcome, body_part, technique, play_pattern)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		len(shots), func(i int) []any {
			s := shots[i]
			return []any{
				s.MatchID, s.Team, s.Player, s.Minute, s.Second,
				nullFloat(s.X), nullFloat(s.Y),
				s.Outcome, s.BodyPart, s.Technique, s.PlayPattern,
			}
		})
}

// GetShots returns all stored shot events.
func (db *DB) GetShots() ([]model.ShotEvent, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, team, player, minute, second, x, y,
			outcome, body_part, technique, play_pattern
		FROM shots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shots []model.ShotEvent
	for rows.Next() {
		var s model.ShotEvent
		var x, y sql.NullFloat64
		if err := rows.Scan(&s.MatchID, &s.Team, &s.Player, &s.Minute, &s.Second,
			&x, &y, &s.Outcome, &s.BodyPart, &s.Technique, &s.PlayPattern); err != nil {
			return nil, err
		}
		s.X = floatPtr(x)
		s.Y = floatPtr(y)
		shots = append(shots, s)
	}
	return shots, rows.Err()
}

// ---- shot features (gold) ----

// ReplaceFeatures overwrites the shot_features layer wholesale.
func (db *DB) ReplaceFeatures(records []model.FeatureRecord) error {
	return db.replace("shot_features", `
		INSERT INTO shot_features(match_id, team, player, minute, second, x, y,
			outcome, body_part, technique, play_pattern,
			is_goal, distance, angle, is_header, is_penalty)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		len(records), func(i int) []any {
			r := records[i]
			return []any{
				r.MatchID, r.Team, r.Player, r.Minute, r.Second, *r.X, *r.Y,
				r.Outcome, r.BodyPart, r.Technique, r.PlayPattern,
				r.IsGoal, r.Distance, r.Angle, r.IsHeader, r.IsPenalty,
			}
		})
}

// GetFeatures returns all stored feature records.
func (db *DB) GetFeatures() ([]model.FeatureRecord, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, team, player, minute, second, x, y,
			outcome, body_part, technique, play_pattern,
			is_goal, distance, angle, is_header, is_penalty
		FROM shot_features`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.FeatureRecord
	for rows.Next() {
		var r model.FeatureRecord
		var x, y float64
		if err := rows.Scan(&r.MatchID, &r.Team, &r.Player, &r.Minute, &r.Second,
			&x, &y, &r.Outcome, &r.BodyPart, &r.Technique, &r.PlayPattern,
			&r.IsGoal, &r.Distance, &r.Angle, &r.IsHeader, &r.IsPenalty); err != nil {
			return nil, err
		}
		r.X, r.Y = &x, &y
		records = append(records, r)
	}
	return records, rows.Err()
}

// ---- scored shots (gold) ----

// ReplaceScoredShots overwrites the shots_scored layer wholesale.
func (db *DB) ReplaceScoredShots(shots []model.ScoredShot) error {
	return db.replace("shots_scored", `
		INSERT INTO shots_scored(match_id, team, player, minute, second, x, y,
			outcome, body_part, technique, play_pattern,
			is_goal, distance, angle, is_header, is_penalty, xg)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		len(shots), func(i int) []any {
			s := shots[i]
			return []any{
				s.MatchID, s.Team, s.Player, s.Minute, s.Second, *s.X, *s.Y,
				s.Outcome, s.BodyPart, s.Technique, s.PlayPattern,
				s.IsGoal, s.Distance, s.Angle, s.IsHeader, s.IsPenalty, s.XG,
			}
		})
}

// GetScoredShots returns all stored scored shots.
func (db *DB) GetScoredShots() ([]model.ScoredShot, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, team, player, minute, second, x, y,
			outcome, body_part, technique, play_pattern,
			is_goal, distance, angle, is_header, is_penalty, xg
		FROM shots_scored`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shots []model.ScoredShot
	for rows.Next() {
		var s model.ScoredShot
		var x, y float64
		if err := rows.Scan(&s.MatchID, &s.Team, &s.Player, &s.Minute, &s.Second,
			&x, &y, &s.Outcome, &s.BodyPart, &s.Technique, &s.PlayPattern,
			&s.IsGoal, &s.Distance, &s.Angle, &s.IsHeader, &s.IsPenalty, &s.XG); err != nil {
			return nil, err
		}
		s.X, s.Y = &x, &y
		shots = append(shots, s)
	}
	return shots, rows.Err()
}

// ---- aggregate metrics (gold, display-facing) ----

// ReplaceTeamMetrics overwrites the team_metrics artifact wholesale.
func (db *DB) ReplaceTeamMetrics(metrics []model.TeamMetric) error {
	return db.replace("team_metrics", `
		INSERT INTO team_metrics(team, shots, goals, xg, goal_minus_xg)
		VALUES (?,?,?,?,?)`,
		len(metrics), func(i int) []any {
			m := metrics[i]
			return []any{m.Team, m.Shots, m.Goals, m.XG, m.GoalMinusXG}
		})
}

// GetTeamMetrics returns the team rollup ordered by team name.
func (db *DB) GetTeamMetrics() ([]model.TeamMetric, error) {
	rows, err := db.conn.Query(`
		SELECT team, shots, goals, xg, goal_minus_xg
		FROM team_metrics ORDER BY team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []model.TeamMetric
	for rows.Next() {
		var m model.TeamMetric
		if err := rows.Scan(&m.Team, &m.Shots, &m.Goals, &m.XG, &m.GoalMinusXG); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// ReplacePlayerMetrics overwrites the player_metrics artifact wholesale.
func (db *DB) ReplacePlayerMetrics(metrics []model.PlayerMetric) error {
	return db.replace("player_metrics", `
		INSERT INTO player_metrics(player, shots, goals, xg, goal_minus_xg)
		VALUES (?,?,?,?,?)`,
		len(metrics), func(i int) []any {
			m := metrics[i]
			return []any{m.Player, m.Shots, m.Goals, m.XG, m.GoalMinusXG}
		})
}

// GetPlayerMetrics returns the player rollup ordered by player name.
func (db *DB) GetPlayerMetrics() ([]model.PlayerMetric, error) {
	rows, err := db.conn.Query(`
		SELECT player, shots, goals, xg, goal_minus_xg
		FROM player_metrics ORDER BY player`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []model.PlayerMetric
	for rows.Next() {
		var m model.PlayerMetric
		if err := rows.Scan(&m.Player, &m.Shots, &m.Goals, &m.XG, &m.GoalMinusXG); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// ReplaceTeamPlayerMetrics overwrites the team_player_metrics artifact wholesale.
func (db *DB) ReplaceTeamPlayerMetrics(metrics []model.TeamPlayerMetric) error {
	return db.replace("team_player_metrics", `
		INSERT INTO team_player_metrics(team, player, shots, goals, xg, goal_minus_xg)
		VALUES (?,?,?,?,?,?)`,
		len(metrics), func(i int) []any {
			m := metrics[i]
			return []any{m.Team, m.Player, m.Shots, m.Goals, m.XG, m.GoalMinusXG}
		})
}

// GetTeamPlayerMetrics returns the team+player rollup ordered by team then player.
func (db *DB) GetTeamPlayerMetrics() ([]model.TeamPlayerMetric, error) {
	rows, err := db.conn.Query(`
		SELECT team, player, shots, goals, xg, goal_minus_xg
		FROM team_player_metrics ORDER BY team, player`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []model.TeamPlayerMetric
	for rows.Next() {
		var m model.TeamPlayerMetric
		if err := rows.Scan(&m.Team, &m.Player, &m.Shots, &m.Goals, &m.XG, &m.GoalMinusXG); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// ---- overview ----

// Overview summarizes the state of every layer for the summary command.
type Overview struct {
	Shots          int
	Features       int
	ScoredShots    int
	Matches        int
	Teams          int
	Players        int
	Goals          int
	TeamRows       int
	PlayerRows     int
	TeamPlayerRows int
}

// GetOverview returns per-layer row counts and basic dataset facts.
func (db *DB) GetOverview() (*Overview, error) {
	ov := &Overview{}
	counts := []struct {
		query string
		dst   *int
	}{
		{"SELECT COUNT(1) FROM shots", &ov.Shots},
		{"SELECT COUNT(1) FROM shot_features", &ov.Features},
		{"SELECT COUNT(1) FROM shots_scored", &ov.ScoredShots},
		{"SELECT COUNT(DISTINCT match_id) FROM shots", &ov.Matches},
		{"SELECT COUNT(DISTINCT team) FROM shots", &ov.Teams},
		{"SELECT COUNT(DISTINCT player) FROM shots", &ov.Players},
		{"SELECT COALESCE(SUM(is_goal), 0) FROM shot_features", &ov.Goals},
		{"SELECT COUNT(1) FROM team_metrics", &ov.TeamRows},
		{"SELECT COUNT(1) FROM player_metrics", &ov.PlayerRows},
		{"SELECT COUNT(1) FROM team_player_metrics", &ov.TeamPlayerRows},
	}
	for _, c := range counts {
		if err := db.conn.QueryRow(c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("overview query %q: %w", c.query, err)
		}
	}
	return ov, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
