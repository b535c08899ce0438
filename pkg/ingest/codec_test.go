package ingest

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

func henLog() []*Record {
	return []*Record{
		{Kind: KindCharacter, Character: "hen"},
		{Kind: KindEvent, Character: "hen", Label: "-has(bread)", Type: "percept", Step: 1, Emotions: []string{"distress"}},
		{Kind: KindEvent, Character: "hen", Label: "!get(bread)[motivation(has(bread))]", Type: "intention", Step: 2},
		{Kind: KindEvent, Character: "hen", Label: "bake(bread)[motivation(get(bread))]", Type: "action", Step: 3, Emotions: []string{"pride"}},
		{Kind: KindEvent, Character: "hen", Label: "+has(bread)", Type: "percept", Step: 4, Emotions: []string{"joy"}},
		{Kind: KindEnd},
	}
}

func writeLog(t *testing.T, path string, records []*Record) {
	t.Helper()
	enc, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestCodec_FileRoundTrip(t *testing.T) {
	for _, name := range []string{"hen.jsonl", "hen.jsonl.sz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writeLog(t, path, henLog())

			dec, err := Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer dec.Close()

			var got []*Record
			for {
				r, err := dec.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("Next failed: %v", err)
				}
				got = append(got, r)
			}

			want := henLog()
			if len(got) != len(want) {
				t.Fatalf("Expected %d records, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i].Label != want[i].Label || got[i].Kind != want[i].Kind || got[i].Step != want[i].Step {
					t.Errorf("Record %d: got %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestCodec_CompressedIsSnappyFramed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hen.sz")
	writeLog(t, path, henLog())

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// stream identifier chunk of the snappy framing format
	if !strings.HasPrefix(string(data), "\xff\x06\x00\x00sNaPpY") {
		t.Errorf("Expected snappy stream header, got %q", data[:min(len(data), 10)])
	}
}

func TestDecoder_SkipsBlankLines(t *testing.T) {
	dec := NewDecoder(strings.NewReader("\n{\"kind\":\"character\",\"character\":\"hen\"}\n\n   \n{\"kind\":\"end\"}\n"))

	r, err := dec.Next()
	if err != nil || r.Character != "hen" {
		t.Fatalf("Next = %+v, %v", r, err)
	}
	if dec.Line() != 2 {
		t.Errorf("Expected line 2, got %d", dec.Line())
	}
	if r, err = dec.Next(); err != nil || r.Kind != KindEnd {
		t.Fatalf("Next = %+v, %v", r, err)
	}
	if _, err = dec.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF, got %v", err)
	}
}

func TestDecoder_RecordErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"malformed json", "{\"kind\":\"character\",\"character\":\"hen\"}\n{kind}\n", 2},
		{"invalid record", "{\"kind\":\"event\",\"character\":\"hen\"}\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(strings.NewReader(tt.input))
			var err error
			for err == nil {
				_, err = dec.Next()
			}
			var recErr *RecordError
			if !errors.As(err, &recErr) {
				t.Fatalf("Expected *RecordError, got %v", err)
			}
			if recErr.Line != tt.line {
				t.Errorf("Expected line %d, got %d", tt.line, recErr.Line)
			}
		})
	}
}

func TestEncoder_RejectsInvalid(t *testing.T) {
	var sb strings.Builder
	enc := NewEncoder(&sb)
	if err := enc.Encode(&Record{Kind: KindEvent}); err == nil {
		t.Error("Expected validation error")
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if sb.Len() != 0 {
		t.Errorf("Expected nothing written, got %q", sb.String())
	}
}

func TestReplay(t *testing.T) {
	var sb strings.Builder
	enc := NewEncoder(&sb)
	records := append(henLog(), &Record{Kind: KindEvent, Character: "hen", Label: "after(end)", Type: "action"})
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	rec := plotgraph.NewRecorder("hen")
	n, err := Replay(NewDecoder(strings.NewReader(sb.String())), rec)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Expected 5 records applied before end, got %d", n)
	}
	if got := rec.Snapshot().VertexCount(); got != 5 {
		t.Errorf("Expected 5 vertices, got %d", got)
	}
}

func TestApply_UnknownKind(t *testing.T) {
	rec := plotgraph.NewRecorder("hen")
	if err := Apply(rec, &Record{Kind: "shout"}); err == nil || errors.Is(err, ErrEndOfRun) {
		t.Errorf("Expected unknown kind error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "little_red_hen.jsonl.sz")
	writeLog(t, path, henLog())

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	g := rec.Snapshot()
	if g.Name != "little_red_hen" {
		t.Errorf("Expected graph named after the file, got %q", g.Name)
	}
	if g.VertexCount() != 5 {
		t.Errorf("Expected 5 vertices, got %d", g.VertexCount())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("Expected error for missing file")
	}
}
