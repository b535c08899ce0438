package analysis

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/metrics"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
	"github.com/dd0wney/plotgraph/pkg/postprocess"
	"github.com/dd0wney/plotgraph/pkg/pubsub"
	"github.com/dd0wney/plotgraph/pkg/units"
)

func record(t *testing.T, reports ...plotgraph.Report) *plotgraph.Recorder {
	t.Helper()
	r := plotgraph.NewRecorder("little red hen")
	_, err := r.AddCharacter("hen")
	require.NoError(t, err)
	for i, rep := range reports {
		rep.Character = "hen"
		rep.Step = i + 1
		_, err := r.AddEvent(rep)
		require.NoError(t, err)
	}
	return r
}

func breadRecorder(t *testing.T) *plotgraph.Recorder {
	return record(t,
		plotgraph.Report{Label: "-has(bread)", Type: plotgraph.Percept, Emotions: []string{"distress"}},
		plotgraph.Report{Label: "!get(bread)[motivation(has(bread))]", Type: plotgraph.Intention},
		plotgraph.Report{Label: "bake(bread)[motivation(get(bread))]", Type: plotgraph.Action, Emotions: []string{"pride"}},
		plotgraph.Report{Label: "+has(bread)", Type: plotgraph.Percept, Emotions: []string{"joy"}},
	)
}

func TestAnalyze_Report(t *testing.T) {
	reg := metrics.NewRegistry()
	broker := pubsub.NewBroker[*Report](1)
	defer broker.Shutdown()

	sub, err := broker.Subscribe(context.Background(), DefaultTopic)
	require.NoError(t, err)

	var logs bytes.Buffer
	a := New(nil, Options{
		PostProcess:       postprocess.DefaultOptions(),
		IncludePrimitives: true,
		Logger:            logging.NewJSONLogger(&logs, logging.InfoLevel),
		Metrics:           reg,
		Broker:            broker,
	})

	live := breadRecorder(t).Snapshot()
	liveEdges := live.EdgeCount()

	report, err := a.Analyze(context.Background(), live)
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err, "run id should be a uuid")
	assert.Equal(t, "little red hen", report.Name)
	assert.InDelta(t, 0.9, report.Score, 1e-9)
	assert.Equal(t, 2, report.Tellability.FunctionalUnits)
	assert.Equal(t, 2, report.Connectivity.Instances)
	assert.NotNil(t, report.Graph)
	assert.Greater(t, report.Graph.EdgeCount(), liveEdges)
	assert.Equal(t, liveEdges, live.EdgeCount(), "live graph must not be modified")

	select {
	case published := <-sub.Channel():
		assert.Same(t, report, published)
	case <-time.After(time.Second):
		t.Fatal("report was not published")
	}

	var m dto.Metric
	counter, err := reg.AnalysesTotal.GetMetricWithLabelValues("success")
	require.NoError(t, err)
	require.NoError(t, counter.Write(&m))
	assert.Equal(t, 1.0, m.Counter.GetValue())

	assert.Contains(t, logs.String(), `"msg":"tellability"`)
	assert.Contains(t, logs.String(), report.RunID)
}

func TestAnalyze_RunsAreIndependent(t *testing.T) {
	a := New(units.NewCatalog(), Options{PostProcess: postprocess.DefaultOptions()})
	rec := breadRecorder(t)

	first, err := a.AnalyzeRecorder(context.Background(), rec)
	require.NoError(t, err)
	second, err := a.AnalyzeRecorder(context.Background(), rec)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Score, second.Score)
	assert.NotSame(t, first.Graph, second.Graph)
}

func TestAnalyze_Cancelled(t *testing.T) {
	reg := metrics.NewRegistry()
	a := New(nil, Options{Metrics: reg})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, breadRecorder(t).Snapshot())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_PassFailure(t *testing.T) {
	reg := metrics.NewRegistry()
	a := New(nil, Options{Metrics: reg})

	// the causality value parses inside the block but not as a label of its own
	live := record(t,
		plotgraph.Report{Label: "!eat(bread)", Type: plotgraph.Intention},
		plotgraph.Report{Label: `drop_intention(+!eat(bread))[causality(a),b("(")]`, Type: plotgraph.Intention},
	).Snapshot()
	before := live.VertexCount()

	_, err := a.Analyze(context.Background(), live)
	require.Error(t, err)
	assert.ErrorIs(t, err, plotgraph.ErrInvalidLabel)
	assert.Equal(t, before, live.VertexCount())

	var m dto.Metric
	counter, err := reg.AnalysesTotal.GetMetricWithLabelValues("error")
	require.NoError(t, err)
	require.NoError(t, counter.Write(&m))
	assert.Equal(t, 1.0, m.Counter.GetValue())
}

func TestNew_Defaults(t *testing.T) {
	a := New(nil, Options{})
	assert.Equal(t, DefaultTopic, a.Topic())
	assert.NotNil(t, a.catalog)

	a = New(nil, Options{Topic: "scores"})
	assert.Equal(t, "scores", a.Topic())
}
