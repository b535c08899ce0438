package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/dd0wney/plotgraph/pkg/config"
	"github.com/dd0wney/plotgraph/pkg/ingest"
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/units"
)

func setup(t *testing.T) {
	t.Helper()
	cfg = config.Default()
	logger = logging.Nop()
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

// writeHenLog writes a hen losing bread, planning to get it back and succeeding
func writeHenLog(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	enc, err := ingest.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	records := []*ingest.Record{
		{Kind: ingest.KindCharacter, Character: "hen"},
		{Kind: ingest.KindEvent, Character: "hen", Label: "-has(bread)", Type: "percept", Step: 1, Emotions: []string{"distress"}},
		{Kind: ingest.KindEvent, Character: "hen", Label: "!get(bread)[motivation(has(bread))]", Type: "intention", Step: 2},
		{Kind: ingest.KindEvent, Character: "hen", Label: "bake(bread)[motivation(get(bread))]", Type: "action", Step: 3, Emotions: []string{"pride"}},
		{Kind: ingest.KindEvent, Character: "hen", Label: "+has(bread)", Type: "percept", Step: 4, Emotions: []string{"joy"}},
		{Kind: ingest.KindEnd},
	}
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeCmd_Text(t *testing.T) {
	setup(t)
	path := writeHenLog(t, "hen.jsonl")
	analyzeFormat = "text"

	cmd, out := testCmd()
	if err := runAnalyze(cmd, []string{path}); err != nil {
		t.Fatalf("runAnalyze failed: %v", err)
	}

	for _, want := range []string{"Plot:", "hen", "Tellability:", "0.9000", units.SuccessBornOfAdversity, " *"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected summary to contain %q\n%s", want, out.String())
		}
	}
}

func TestAnalyzeCmd_Formats(t *testing.T) {
	setup(t)
	path := writeHenLog(t, "hen.jsonl.sz")

	analyzeFormat = "json"
	cmd, out := testCmd()
	if err := runAnalyze(cmd, []string{path}); err != nil {
		t.Fatalf("runAnalyze json failed: %v", err)
	}
	var report struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("Invalid JSON report: %v", err)
	}
	if report.Name != "hen" || report.Score < 0.89 || report.Score > 0.91 {
		t.Errorf("Unexpected report %+v", report)
	}

	analyzeFormat = "dot"
	cmd, out = testCmd()
	if err := runAnalyze(cmd, []string{path}); err != nil {
		t.Fatalf("runAnalyze dot failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), `digraph "hen"`) {
		t.Errorf("Expected DOT output, got %q", out.String())
	}

	analyzeFormat, analyzeLayout = "layout", "force"
	cmd, out = testCmd()
	if err := runAnalyze(cmd, []string{path}); err != nil {
		t.Fatalf("runAnalyze layout failed: %v", err)
	}
	if !strings.Contains(out.String(), `"position"`) {
		t.Errorf("Expected positioned nodes, got %q", out.String())
	}

	analyzeFormat = "yaml"
	cmd, _ = testCmd()
	if err := runAnalyze(cmd, []string{path}); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestAnalyzeCmd_MissingLog(t *testing.T) {
	setup(t)
	analyzeFormat = "text"
	cmd, _ := testCmd()
	if err := runAnalyze(cmd, []string{filepath.Join(t.TempDir(), "missing.jsonl")}); err == nil {
		t.Error("Expected error for missing log")
	}
}

func TestQueryCmd(t *testing.T) {
	setup(t)
	path := writeHenLog(t, "hen.jsonl")
	queryMaxDepth = 4

	cmd, out := testCmd()
	if err := runQuery(cmd, []string{path, `{ vertices(polyvalent: true) { label } }`}); err != nil {
		t.Fatalf("runQuery failed: %v", err)
	}
	if strings.Count(out.String(), `"label"`) != 2 {
		t.Errorf("Expected 2 polyvalent vertices\n%s", out.String())
	}

	cmd, _ = testCmd()
	if err := runQuery(cmd, []string{path, `{ nonexistent }`}); err == nil {
		t.Error("Expected error for invalid query")
	}
}

func TestUnitsCmd(t *testing.T) {
	setup(t)
	unitsPrimitives, unitsDOT = false, false

	cmd, out := testCmd()
	if err := runUnits(cmd, nil); err != nil {
		t.Fatalf("runUnits failed: %v", err)
	}
	catalog := units.NewCatalog()
	for _, u := range catalog.Units() {
		if !strings.Contains(out.String(), u.Name) {
			t.Errorf("Expected unit %q in listing", u.Name)
		}
	}

	unitsDOT = true
	cmd, out = testCmd()
	if err := runUnits(cmd, nil); err != nil {
		t.Fatalf("runUnits --dot failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph") {
		t.Errorf("Expected DOT output, got %q", out.String())
	}
}

func TestConvertCmd(t *testing.T) {
	setup(t)
	in := writeHenLog(t, "hen.jsonl")
	out := filepath.Join(t.TempDir(), "hen.jsonl.sz")

	cmd, _ := testCmd()
	if err := runConvert(cmd, []string{in, out}); err != nil {
		t.Fatalf("runConvert failed: %v", err)
	}

	rec, err := ingest.Load(out)
	if err != nil {
		t.Fatalf("Load of converted log failed: %v", err)
	}
	if rec.Snapshot().VertexCount() != 5 {
		t.Errorf("Expected 5 vertices after conversion, got %d", rec.Snapshot().VertexCount())
	}
}
