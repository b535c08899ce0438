// Command plotgraph-tui browses the tellability analysis of one event log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/plotgraph/pkg/analysis"
	"github.com/dd0wney/plotgraph/pkg/config"
	"github.com/dd0wney/plotgraph/pkg/ingest"
	"github.com/dd0wney/plotgraph/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <event log>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	var logger logging.Logger = logging.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = logging.NewJSONLogger(f, logging.ParseLevel(cfg.Logging.Level))
	}

	report, err := load(cfg, logger, flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to analyze %s: %v", flag.Arg(0), err)
	}

	m, err := initialModel(report)
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

func load(cfg *config.Config, logger logging.Logger, path string) (*analysis.Report, error) {
	rec, err := ingest.Load(path)
	if err != nil {
		return nil, err
	}
	a := analysis.New(nil, analysis.Options{
		PostProcess:       cfg.PostProcessOptions(),
		IncludePrimitives: cfg.Analysis.IncludePrimitives,
		Logger:            logger,
	})
	return a.AnalyzeRecorder(context.Background(), rec)
}
