package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/plotgraph/pkg/ingest"
	"github.com/dd0wney/plotgraph/pkg/logging"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Re-encode an event log, compressing or decompressing by suffix",
	Long: `Copies every record from one event log to another, validating each one.
A .sz suffix on either side selects snappy framing.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	dec, err := ingest.Open(args[0])
	if err != nil {
		return err
	}
	defer dec.Close()

	enc, err := ingest.Create(args[1])
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, enc.Close())
	}()

	n := 0
	for {
		r, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("record %d: %w", dec.Line(), err)
		}
		n++
	}

	logger.Info("converted event log",
		logging.String("from", args[0]),
		logging.String("to", args[1]),
		logging.Count(n))
	return nil
}
