package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// CompressedExt marks snappy-framed event logs.
const CompressedExt = ".sz"

// maxLineSize bounds a single record line.
const maxLineSize = 1 << 20

// Decoder reads JSON-lines records.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
	closer  io.Closer
}

// NewDecoder reads records from r. Blank lines are skipped.
func NewDecoder(r io.Reader) *Decoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{scanner: s}
}

// Open opens an event log. Files ending in .sz are read through the snappy
// framing format; anything else is memory-mapped.
func Open(path string) (*Decoder, error) {
	if filepath.Ext(path) == CompressedExt {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		d := NewDecoder(snappy.NewReader(f))
		d.closer = f
		return d, nil
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	d := NewDecoder(io.NewSectionReader(m, 0, int64(m.Len())))
	d.closer = m
	return d, nil
}

// Next returns the next valid record, or io.EOF at the end of the stream.
// Malformed or invalid records are reported as *RecordError.
func (d *Decoder) Next() (*Record, error) {
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &RecordError{Line: d.line, Cause: err}
		}
		if err := rec.Validate(); err != nil {
			return nil, &RecordError{Line: d.line, Cause: err}
		}
		return &rec, nil
	}
	if err := d.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return nil, io.EOF
}

// Line returns the line number of the last record read.
func (d *Decoder) Line() int { return d.line }

// Close releases the underlying file, if any.
func (d *Decoder) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Encoder writes JSON-lines records.
type Encoder struct {
	w      *bufio.Writer
	flush  func() error
	closer io.Closer
}

// NewEncoder writes records to w. Call Close to flush.
func NewEncoder(w io.Writer) *Encoder {
	bw := bufio.NewWriter(w)
	return &Encoder{w: bw, flush: bw.Flush}
}

// Create creates an event log at path, snappy-framed for .sz files.
func Create(path string) (*Encoder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != CompressedExt {
		e := NewEncoder(f)
		e.closer = f
		return e, nil
	}

	sw := snappy.NewBufferedWriter(f)
	e := NewEncoder(sw)
	e.flush = func() error {
		return errors.Join(e.w.Flush(), sw.Close())
	}
	e.closer = f
	return e, nil
}

// Encode validates rec and writes it as one line.
func (e *Encoder) Encode(rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

// Close flushes buffered records and closes the file, if any.
func (e *Encoder) Close() error {
	err := e.flush()
	if e.closer != nil {
		err = errors.Join(err, e.closer.Close())
	}
	return err
}
