package graphql

import (
	"testing"
)

func TestExecuteQueryInvalidSyntax(t *testing.T) {
	schema, err := NewSchema(nil)
	if err != nil {
		t.Fatal(err)
	}

	result := ExecuteQuery(`{ score `, schema)
	if !result.HasErrors() {
		t.Error("Expected syntax error")
	}
}

func TestExecuteQueryUnknownField(t *testing.T) {
	schema, err := NewSchema(nil)
	if err != nil {
		t.Fatal(err)
	}

	result := ExecuteQuery(`{ persons { id } }`, schema)
	if !result.HasErrors() {
		t.Error("Expected validation error for unknown field")
	}
}

func TestExecuteQueryWithVariables(t *testing.T) {
	schema, err := NewSchema(breadReport(t))
	if err != nil {
		t.Fatal(err)
	}

	query := `query($poly: Boolean) { vertices(polyvalent: $poly) { id } }`
	result := ExecuteQueryWithVariables(query, schema, map[string]any{"poly": true})
	if result.HasErrors() {
		t.Fatalf("Query failed: %v", result.Errors)
	}
	vertices := result.Data.(map[string]any)["vertices"].([]any)
	if len(vertices) != 2 {
		t.Errorf("Expected 2 polyvalent vertices, got %d", len(vertices))
	}
}
