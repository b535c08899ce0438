package graphql

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/dd0wney/plotgraph/pkg/analysis"
)

// GraphQLRequest represents a GraphQL HTTP request
type GraphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// GraphQLResponse represents a GraphQL HTTP response
type GraphQLResponse struct {
	Data   any            `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLHandler serves queries against the most recently set schema.
type GraphQLHandler struct {
	mu       sync.RWMutex
	schema   graphql.Schema
	maxDepth int
}

// NewGraphQLHandler creates a new GraphQL HTTP handler
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{
		schema:   schema,
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth changes the query depth limit. Zero or less disables it.
func (h *GraphQLHandler) SetMaxDepth(depth int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.maxDepth = depth
}

// SetSchema swaps the schema served to subsequent requests.
func (h *GraphQLHandler) SetSchema(schema graphql.Schema) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.schema = schema
}

// SetReport rebuilds the schema over report.
func (h *GraphQLHandler) SetReport(report *analysis.Report) error {
	schema, err := NewSchema(report)
	if err != nil {
		return err
	}
	h.SetSchema(schema)
	return nil
}

// ServeHTTP handles HTTP requests for GraphQL queries
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	// Handle preflight OPTIONS request
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.mu.RLock()
	schema, maxDepth := h.schema, h.maxDepth
	h.mu.RUnlock()

	var result *graphql.Result
	if maxDepth > 0 {
		if err := ValidateQueryDepth(req.Query, maxDepth); err != nil {
			result = &graphql.Result{Errors: []gqlerrors.FormattedError{gqlerrors.FormatError(err)}}
		}
	}
	if result == nil {
		result = Execute(r.Context(), schema, req)
	}

	response := GraphQLResponse{
		Data: result.Data,
	}
	if result.HasErrors() {
		response.Errors = make([]GraphQLError, len(result.Errors))
		for i, err := range result.Errors {
			response.Errors[i] = GraphQLError{
				Message: err.Message,
			}
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
