package ingest

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// Replay feeds records from dec into rec until the end of the stream or an
// end record, and returns the number of records applied.
func Replay(dec *Decoder, rec *plotgraph.Recorder) (int, error) {
	n := 0
	for {
		r, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := Apply(rec, r); err != nil {
			if errors.Is(err, ErrEndOfRun) {
				return n, nil
			}
			return n, &RecordError{Line: dec.Line(), Cause: err}
		}
		n++
	}
}

// Load replays the event log at path into a new recorder named after the file.
func Load(path string) (*plotgraph.Recorder, error) {
	dec, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, CompressedExt)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	rec := plotgraph.NewRecorder(name)
	if _, err := Replay(dec, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
