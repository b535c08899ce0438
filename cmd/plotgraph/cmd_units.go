package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/plotgraph/pkg/units"
	"github.com/dd0wney/plotgraph/pkg/visualization"
)

var (
	unitsPrimitives bool
	unitsDOT        bool
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the functional unit catalog",
	Args:  cobra.NoArgs,
	RunE:  runUnits,
}

func init() {
	unitsCmd.Flags().BoolVar(&unitsPrimitives, "primitives", false, "include the primitive debug units")
	unitsCmd.Flags().BoolVar(&unitsDOT, "dot", false, "print every unit pattern as one Graphviz graph")
}

func runUnits(cmd *cobra.Command, args []string) error {
	catalog := units.NewCatalog()
	out := cmd.OutOrStdout()

	if unitsDOT {
		return visualization.DOT(out, catalog.AllUnitsGraph())
	}

	list := catalog.Units()
	if unitsPrimitives {
		list = append(append([]*units.Unit{}, list...), catalog.Primitives()...)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Unit\tVertices\tEdges\tPrimitive")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%d\t%d\t%t\n", u.Name, u.Size(), u.Pattern().EdgeCount(), u.Primitive)
	}
	return w.Flush()
}
