package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
)

// Execute runs req against schema. Resolvers see ctx through
// graphql.ResolveParams.Context.
func Execute(ctx context.Context, schema graphql.Schema, req GraphQLRequest) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// ExecuteQuery executes a GraphQL query against a schema
func ExecuteQuery(query string, schema graphql.Schema) *graphql.Result {
	return Execute(context.Background(), schema, GraphQLRequest{Query: query})
}

// ExecuteQueryWithVariables executes a GraphQL query with variables
func ExecuteQueryWithVariables(query string, schema graphql.Schema, variables map[string]any) *graphql.Result {
	return Execute(context.Background(), schema, GraphQLRequest{Query: query, Variables: variables})
}
