package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/plotgraph/pkg/analysis"
	"github.com/dd0wney/plotgraph/pkg/graphql"
	"github.com/dd0wney/plotgraph/pkg/ingest"
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/metrics"
	"github.com/dd0wney/plotgraph/pkg/pubsub"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Analyze runs streamed live from a simulation",
	Long: `Listens for event records on the configured mangos PULL endpoint.
Each run is analyzed when its end record arrives; the report is logged,
published on the PUB endpoint when one is configured, and becomes the
target of /graphql.

When metrics are enabled, metrics.addr serves /metrics, /graphql and /health.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	reg := metrics.NewRegistry()
	broker := pubsub.NewBroker[*analysis.Report](pubsub.DefaultBuffer)
	defer broker.Shutdown()

	analyzer := newAnalyzer(reg, broker)

	empty, err := graphql.NewSchema(nil)
	if err != nil {
		return err
	}
	gql := graphql.NewGraphQLHandler(empty)

	sub, err := broker.Subscribe(ctx, analyzer.Topic())
	if err != nil {
		return err
	}
	go func() {
		for report := range sub.Channel() {
			if err := gql.SetReport(report); err != nil {
				logger.Error("failed to rebuild schema", logging.RunID(report.RunID), logging.Error(err))
			}
		}
	}()

	listener, err := ingest.Listen(analyzer, ingest.ListenerOptions{
		Addr:        cfg.Ingest.Listen,
		Publish:     cfg.Ingest.Publish,
		RecvTimeout: cfg.Ingest.RecvTimeout,
		IdleTimeout: cfg.Ingest.IdleTimeout,
		MaxRuns:     cfg.Ingest.MaxRuns,
		Logger:      logger,
		Metrics:     reg,
	})
	if err != nil {
		return err
	}
	defer listener.Close()

	var server *http.Server
	if cfg.Metrics.Enabled {
		server = newHTTPServer(cfg.Metrics.Addr, reg, gql)
		go func() {
			logger.Info("http listening", logging.String("addr", cfg.Metrics.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", logging.Error(err))
				stop()
			}
		}()
		go processMetrics(ctx, reg, start)
	}

	// Close unblocks Serve on shutdown
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	err = listener.Serve(ctx, func(r *analysis.Report) {
		logger.Info("run analyzed",
			logging.RunID(r.RunID),
			logging.String("run", r.Name),
			logging.Float64("score", r.Score),
			logging.Latency(r.Duration))
	})
	if errors.Is(err, ingest.ErrClosed) || errors.Is(err, context.Canceled) {
		err = nil
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = errors.Join(err, server.Shutdown(shutdownCtx))
	}

	logger.Info("shut down", logging.Int("pending_runs", listener.Pending()))
	return err
}

func newHTTPServer(addr string, reg *metrics.Registry, gql http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	mux.Handle("/graphql", gql)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func processMetrics(ctx context.Context, reg *metrics.Registry, start time.Time) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		reg.UpdateProcessMetrics(start)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
