// Package main is the entry point for the xgmetrics CLI tool, which turns
// raw football match-event files into expected-goals (xG) metrics.
package main

import "github.com/pable/go-xg-metrics/cmd"

func main() {
	cmd.Execute()
}
