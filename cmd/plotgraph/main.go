// Command plotgraph analyzes plot graphs recorded from story simulations:
// it scores event logs for tellability, answers GraphQL queries over the
// result and serves live analyses of runs streamed over mangos.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/plotgraph/pkg/analysis"
	"github.com/dd0wney/plotgraph/pkg/config"
	"github.com/dd0wney/plotgraph/pkg/ingest"
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/metrics"
	"github.com/dd0wney/plotgraph/pkg/pubsub"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg    *config.Config
	logger logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "plotgraph",
	Short: "Tellability analysis of story plot graphs",
	Long: `plotgraph reads plot graph event logs written by a story simulation,
post-processes them, finds the functional units they contain and scores
their tellability.

Event logs are JSON lines, optionally snappy-compressed with a .sz suffix.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger = logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(analyzeCmd, queryCmd, unitsCmd, serveCmd, convertCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newAnalyzer builds an analyzer from the loaded configuration. reg and
// broker are optional.
func newAnalyzer(reg *metrics.Registry, broker *pubsub.Broker[*analysis.Report]) *analysis.Analyzer {
	return analysis.New(nil, analysis.Options{
		PostProcess:       cfg.PostProcessOptions(),
		IncludePrimitives: cfg.Analysis.IncludePrimitives,
		Topic:             cfg.Analysis.Topic,
		Logger:            logger,
		Metrics:           reg,
		Broker:            broker,
	})
}

// analyzeLog replays the event log at path and analyzes the result.
func analyzeLog(ctx context.Context, path string) (*analysis.Report, error) {
	rec, err := ingest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return newAnalyzer(nil, nil).AnalyzeRecorder(ctx, rec)
}
