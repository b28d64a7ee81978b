// Package report renders aggregate metrics and training reports as terminal
// tables. It only ever reads gold-layer artifacts.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-xg-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintTeamTable prints the per-team rollup.
func PrintTeamTable(w io.Writer, metrics []model.TeamMetric) {
	table := newTable(w)
	table.Header("TEAM", "SHOTS", "GOALS", "XG", "G-XG")
	for _, m := range metrics {
		table.Append(
			m.Team,
			strconv.Itoa(m.Shots),
			strconv.Itoa(m.Goals),
			fmt.Sprintf("%.2f", m.XG),
			fmt.Sprintf("%+.2f", m.GoalMinusXG),
		)
	}
	table.Render()
}

// PrintPlayerTable prints the per-player rollup.
func PrintPlayerTable(w io.Writer, metrics []model.PlayerMetric) {
	table := newTable(w)
	table.Header("PLAYER", "SHOTS", "GOALS", "XG", "G-XG")
	for _, m := range metrics {
		table.Append(
			m.Player,
			strconv.Itoa(m.Shots),
			strconv.Itoa(m.Goals),
			fmt.Sprintf("%.2f", m.XG),
			fmt.Sprintf("%+.2f", m.GoalMinusXG),
		)
	}
	table.Render()
}

// PrintTeamPlayerTable prints the per-(team, player) rollup.
func PrintTeamPlayerTable(w io.Writer, metrics []model.TeamPlayerMetric) {
	table := newTable(w)
	table.Header("TEAM", "PLAYER", "SHOTS", "GOALS", "XG", "G-XG")
	for _, m := range metrics {
		table.Append(
			m.Team,
			m.Player,
			strconv.Itoa(m.Shots),
			strconv.Itoa(m.Goals),
			fmt.Sprintf("%.2f", m.XG),
			fmt.Sprintf("%+.2f", m.GoalMinusXG),
		)
	}
	table.Render()
}

// PrintMetricReport prints the training report: split sizes, calibration
// metrics, and the fitted coefficients.
func PrintMetricReport(w io.Writer, r *model.MetricReport) {
	fmt.Fprintf(w, "\nRows: %d total  |  %d train / %d validation  |  goal rate %.3f\n\n",
		r.RowsTotal, r.RowsTrain, r.RowsVal, r.GoalRate)

	mt := newTable(w)
	mt.Header("METRIC", "VALUE")
	mt.Append("log-loss", fmt.Sprintf("%.4f", r.LogLoss))
	mt.Append("brier score", fmt.Sprintf("%.4f", r.BrierScore))
	mt.Append("roc-auc", fmt.Sprintf("%.4f", r.ROCAUC))
	mt.Render()

	fmt.Fprintln(w)
	ct := newTable(w)
	ct.Header("FEATURE", "COEFFICIENT")
	for _, name := range r.Features {
		ct.Append(name, fmt.Sprintf("%+.4f", r.Coefficients[name]))
	}
	ct.Append("(intercept)", fmt.Sprintf("%+.4f", r.Intercept))
	ct.Render()
}
