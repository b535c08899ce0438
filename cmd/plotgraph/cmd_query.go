package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dd0wney/plotgraph/pkg/graphql"
)

var queryMaxDepth int

var queryCmd = &cobra.Command{
	Use:   "query <log> <query>",
	Short: "Run a GraphQL query against an analyzed plot",
	Long: `Analyzes the event log and evaluates a GraphQL query over the report.

Example:
  plotgraph query hen.jsonl '{ score vertices(polyvalent: true) { label units } }'`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&queryMaxDepth, "max-depth", graphql.DefaultMaxDepth, "maximum query depth")
}

func runQuery(cmd *cobra.Command, args []string) error {
	report, err := analyzeLog(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	schema, err := graphql.NewSchema(report)
	if err != nil {
		return err
	}

	result := graphql.ExecuteWithDepthLimit(schema, args[1], queryMaxDepth, nil)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errors.New(result.Errors[0].Message)
	}
	return nil
}
