package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-xg-metrics/internal/artifact"
	"github.com/pable/go-xg-metrics/internal/storage"
)

var (
	dataDir string
	dbPath  string
	verbose bool
)

// log is the shared structured logger for all commands.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "xgmetrics",
	Short: "Football expected-goals (xG) pipeline",
	Long: `Turn raw match-event files into per-shot goal probabilities and
team/player performance summaries via a staged batch pipeline:
extract -> features -> train -> score -> aggregate.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogger()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "root directory for layered data artifacts")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default <data-dir>/xg.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Flags beat XG_* environment variables beat defaults.
	viper.SetEnvPrefix("XG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(summaryCmd)
}

func configureLogger() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(env)); err == nil {
			level = parsed
		} else {
			log.WithField("invalid_level", env).Warn("invalid LOG_LEVEL, using info")
		}
	}
	log.SetLevel(level)
}

// resolvedDataDir returns the effective data directory.
func resolvedDataDir() string {
	return viper.GetString("data-dir")
}

// resolvedDBPath returns the effective database path.
func resolvedDBPath() string {
	if p := viper.GetString("db"); p != "" {
		return p
	}
	return filepath.Join(resolvedDataDir(), "xg.db")
}

// eventsDir is the bronze layer: one raw event document per match.
func eventsDir() string {
	return filepath.Join(resolvedDataDir(), "bronze", "events")
}

// modelPath is the persisted-model artifact location.
func modelPath() string {
	return filepath.Join(resolvedDataDir(), artifact.ModelFile)
}

// reportPath is the metric-report artifact location.
func reportPath() string {
	return filepath.Join(resolvedDataDir(), artifact.ReportFile)
}

// openDB opens the metrics database, creating its directory if needed.
func openDB() (*storage.DB, error) {
	path := resolvedDBPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
