package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/plotgraph/pkg/analysis"
	"github.com/dd0wney/plotgraph/pkg/visualization"
)

var (
	analyzeFormat string
	analyzeLayout string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <log>",
	Short: "Score the tellability of a recorded plot",
	Long: `Replays an event log, post-processes the plot graph and prints its
tellability.

Formats:
  text    summary with unit counts and polyvalent vertices
  json    the full report
  dot     the annotated plot graph in Graphviz format
  layout  positioned vertices and links as JSON (see --layout)`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format: text, json, dot or layout")
	analyzeCmd.Flags().StringVar(&analyzeLayout, "layout", visualization.LayoutPlot, "layout for --format layout: plot, circular or force")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	report, err := analyzeLog(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch analyzeFormat {
	case "text":
		return writeSummary(out, report)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "dot":
		return visualization.DOT(out, report.Graph)
	case "layout":
		layout, err := visualization.NewLayout(analyzeLayout, &visualization.LayoutConfig{
			Width:   float64(cfg.Display.Width),
			Height:  float64(cfg.Display.Height),
			Padding: float64(cfg.Display.Padding),
		})
		if err != nil {
			return err
		}
		vis, err := visualization.Visualize(report.Graph, layout)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(vis)
	default:
		return fmt.Errorf("unknown format %q", analyzeFormat)
	}
}

func writeSummary(out io.Writer, report *analysis.Report) error {
	tell := report.Tellability
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Plot:\t%s\n", report.Name)
	fmt.Fprintf(w, "Tellability:\t%.4f\n", report.Score)
	fmt.Fprintf(w, "Functional units:\t%d\n", tell.FunctionalUnits)
	fmt.Fprintf(w, "Polyvalent vertices:\t%d / %d\n", tell.PolyvalentVertices, tell.AllVertices)
	fmt.Fprintf(w, "Productive conflicts:\t%d\n", tell.ProductiveConflicts)
	fmt.Fprintf(w, "Suspense:\t%d\n", tell.Suspense)
	fmt.Fprintf(w, "Plot length:\t%d\n", tell.PlotLength)
	fmt.Fprintf(w, "Unit components:\t%d (largest %d)\n", report.Connectivity.Components, report.Connectivity.LargestComponent)

	fmt.Fprintln(w, "\nUnit\tCount")
	for _, c := range tell.UnitCounts {
		if c.Count > 0 {
			fmt.Fprintf(w, "%s\t%d\n", c.Unit, c.Count)
		}
	}

	if tell.PolyvalentVertices > 0 {
		fmt.Fprintln(w, "\nPolyvalent\tUnits")
		for _, v := range report.Graph.Vertices() {
			if v.Polyvalent() {
				fmt.Fprintf(w, "%s\t%v\n", v, v.Units())
			}
		}
	}
	return w.Flush()
}
