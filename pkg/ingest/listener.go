package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"
	"go.nanomsg.org/mangos/v3/protocol/pull"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/dd0wney/plotgraph/pkg/analysis"
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/metrics"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// ListenerOptions configures a Listener.
type ListenerOptions struct {
	// Addr is the PULL endpoint producers push records to.
	Addr string
	// Publish is an optional PUB endpoint; finished reports are sent there as
	// "<topic>:<json>".
	Publish     string
	RecvTimeout time.Duration
	// IdleTimeout evicts runs that received no record for this long.
	IdleTimeout time.Duration
	// MaxRuns caps the runs recorded at once; starting one more evicts
	// the least recently active run.
	MaxRuns int
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Listener defaults
const (
	DefaultIdleTimeout = 10 * time.Minute
	DefaultMaxRuns     = 1024
)

// pendingRun is a run whose end record has not arrived yet.
type pendingRun struct {
	rec      *plotgraph.Recorder
	records  int
	lastSeen time.Time
}

// Listener receives live records, keeps one recorder per run and analyzes a
// run when its end record arrives.
type Listener struct {
	puller    mangos.Socket
	publisher mangos.Socket
	analyzer  *analysis.Analyzer
	opts      ListenerOptions
	logger    logging.Logger

	now func() time.Time

	mu     sync.Mutex
	runs   map[string]*pendingRun
	closed bool
}

// Listen binds the PULL socket, and the PUB socket when configured.
func Listen(analyzer *analysis.Analyzer, opts ListenerOptions) (*Listener, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.RecvTimeout <= 0 {
		opts.RecvTimeout = 2 * time.Second
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.MaxRuns <= 0 {
		opts.MaxRuns = DefaultMaxRuns
	}

	puller, err := pull.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create pull socket: %w", err)
	}
	if err := puller.SetOption(mangos.OptionRecvDeadline, opts.RecvTimeout); err != nil {
		puller.Close()
		return nil, err
	}
	if err := puller.Listen(opts.Addr); err != nil {
		puller.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", opts.Addr, err)
	}

	l := &Listener{
		puller:   puller,
		analyzer: analyzer,
		opts:     opts,
		logger:   opts.Logger.With(logging.Component("ingest")),
		now:      time.Now,
		runs:     make(map[string]*pendingRun),
	}

	if opts.Publish != "" {
		publisher, err := pub.NewSocket()
		if err != nil {
			puller.Close()
			return nil, fmt.Errorf("failed to create pub socket: %w", err)
		}
		if err := publisher.Listen(opts.Publish); err != nil {
			puller.Close()
			publisher.Close()
			return nil, fmt.Errorf("failed to listen on %s: %w", opts.Publish, err)
		}
		l.publisher = publisher
	}

	l.logger.Info("ingest listening", logging.String("addr", opts.Addr), logging.String("publish", opts.Publish))
	return l, nil
}

// Serve receives records until ctx is done or the listener is closed.
// onReport, if set, is called with every finished analysis.
func (l *Listener) Serve(ctx context.Context, onReport func(*analysis.Report)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := l.puller.Recv()
		if err != nil {
			if errors.Is(err, mangos.ErrRecvTimeout) {
				l.evictIdle()
				continue
			}
			if errors.Is(err, mangos.ErrClosed) {
				return ErrClosed
			}
			return fmt.Errorf("failed to receive record: %w", err)
		}

		report, err := l.handle(ctx, msg)
		if err != nil {
			l.logger.Warn("rejected record", logging.Error(err))
			continue
		}
		if report != nil && onReport != nil {
			onReport(report)
		}
	}
}

// handle applies one message and returns a report when it ended a run.
func (l *Listener) handle(ctx context.Context, msg []byte) (*analysis.Report, error) {
	var r Record
	if err := json.Unmarshal(msg, &r); err != nil {
		l.recordIngest("invalid", err)
		return nil, err
	}
	if err := r.Validate(); err != nil {
		l.recordIngest("invalid", err)
		return nil, err
	}

	l.evictIdle()
	rec := l.recorder(r.Run)
	err := Apply(rec, &r)
	if !errors.Is(err, ErrEndOfRun) {
		l.recordIngest(r.Kind, err)
		return nil, err
	}
	l.recordIngest(r.Kind, nil)

	l.finish(r.Run)
	report, err := l.analyzer.AnalyzeRecorder(ctx, rec)
	if err != nil {
		l.runFinished("error")
		return nil, err
	}
	l.runFinished("success")
	l.publish(report)
	return report, nil
}

func (l *Listener) recorder(run string) *plotgraph.Recorder {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	p, ok := l.runs[run]
	if !ok {
		if len(l.runs) >= l.opts.MaxRuns {
			l.evictOldestLocked()
		}
		p = &pendingRun{rec: plotgraph.NewRecorder(run)}
		l.runs[run] = p
		l.logger.Debug("run started", logging.String("run", run))
		if l.opts.Metrics != nil {
			l.opts.Metrics.RunStarted()
		}
	}
	p.records++
	p.lastSeen = now
	return p.rec
}

func (l *Listener) finish(run string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.runs, run)
}

// evictIdle drops runs that have been silent for longer than IdleTimeout.
func (l *Listener) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-l.opts.IdleTimeout)
	for run, p := range l.runs {
		if p.lastSeen.Before(cutoff) {
			l.evictLocked(run, p, "idle")
		}
	}
}

func (l *Listener) evictOldestLocked() {
	var oldest string
	var victim *pendingRun
	for run, p := range l.runs {
		if victim == nil || p.lastSeen.Before(victim.lastSeen) {
			oldest, victim = run, p
		}
	}
	if victim != nil {
		l.evictLocked(oldest, victim, "capacity")
	}
}

func (l *Listener) evictLocked(run string, p *pendingRun, reason string) {
	delete(l.runs, run)
	l.logger.Warn("evicted unfinished run",
		logging.String("run", run),
		logging.String("reason", reason),
		logging.Count(p.records),
		logging.Duration("idle", l.now().Sub(p.lastSeen)),
	)
	l.runFinished("evicted")
}

// Pending returns the number of runs still being recorded.
func (l *Listener) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.runs)
}

func (l *Listener) publish(report *analysis.Report) {
	if l.publisher == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		l.logger.Error("failed to marshal report", logging.RunID(report.RunID), logging.Error(err))
		return
	}
	// Prepend topic for SUB-side filtering
	msg := append([]byte(l.analyzer.Topic()+":"), data...)
	if err := l.publisher.Send(msg); err != nil {
		l.logger.Error("failed to publish report", logging.RunID(report.RunID), logging.Error(err))
	}
}

func (l *Listener) recordIngest(kind string, err error) {
	if l.opts.Metrics != nil {
		l.opts.Metrics.RecordIngest(kind, err)
	}
}

func (l *Listener) runFinished(status string) {
	if l.opts.Metrics != nil {
		l.opts.Metrics.RunFinished(status)
	}
}

// Close closes both sockets. Serve returns ErrClosed.
func (l *Listener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	err := l.puller.Close()
	if l.publisher != nil {
		err = errors.Join(err, l.publisher.Close())
	}
	return err
}
