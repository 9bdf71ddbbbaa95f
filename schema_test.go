package prism

import (
	"testing"
)

// TestNewSchema tests alias bookkeeping and option parsing
func TestNewSchema(t *testing.T) {
	schema, err := NewSchema([]FieldDef{
		{Alias: "name", Identifier: "$.name", Type: TagField, Options: []string{"SEPARATOR", ","}},
		{Alias: "body", Identifier: "$.body", Type: TextField, Options: []string{"WEIGHT", "1.0"}},
		{Alias: "price", Identifier: "$.price", Type: NumericField},
		{Alias: "vec", Identifier: "$.vec", Type: VectorField,
			Options: []string{"FLAT", "6", "TYPE", "FLOAT32", "DIM", "2", "DISTANCE_METRIC", "L2"}},
	})
	if err != nil {
		t.Fatalf("NewSchema() error: %v", err)
	}

	wantOrder := []string{"name", "body", "price", "vec"}
	got := schema.Aliases()
	if len(got) != len(wantOrder) {
		t.Fatalf("Aliases() = %v, want %v", got, wantOrder)
	}
	for i := range got {
		if got[i] != wantOrder[i] {
			t.Errorf("Aliases()[%d] = %q, want %q", i, got[i], wantOrder[i])
		}
	}

	vec, ok := schema.Field("vec")
	if !ok {
		t.Fatal("Field(vec) not found")
	}
	if vec.Vector.Algorithm != "FLAT" {
		t.Errorf("vector algorithm = %q, want FLAT", vec.Vector.Algorithm)
	}
	if vec.Vector.Dim != 2 {
		t.Errorf("vector dim = %d, want 2", vec.Vector.Dim)
	}
	if vec.Vector.Elem != VectorFloat32 {
		t.Errorf("vector elem = %q, want FLOAT32", vec.Vector.Elem)
	}
	if vec.Vector.Metric != Euclidean {
		t.Errorf("vector metric = %q, want l2", vec.Vector.Metric)
	}
}

// TestNewSchemaErrors tests rejected definitions
func TestNewSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		defs []FieldDef
	}{
		{"duplicate alias", []FieldDef{
			{Alias: "a", Identifier: "a", Type: TagField},
			{Alias: "a", Identifier: "b", Type: TextField},
		}},
		{"empty alias", []FieldDef{
			{Alias: "", Identifier: "a", Type: TagField},
		}},
		{"vector without algorithm", []FieldDef{
			{Alias: "v", Identifier: "v", Type: VectorField},
		}},
		{"unsupported metric", []FieldDef{
			{Alias: "v", Identifier: "v", Type: VectorField,
				Options: []string{"FLAT", "6", "TYPE", "FLOAT32", "DIM", "2", "DISTANCE_METRIC", "COSINE"}},
		}},
		{"unsupported element type", []FieldDef{
			{Alias: "v", Identifier: "v", Type: VectorField,
				Options: []string{"FLAT", "6", "TYPE", "FLOAT64", "DIM", "2"}},
		}},
		{"bad dimension", []FieldDef{
			{Alias: "v", Identifier: "v", Type: VectorField,
				Options: []string{"FLAT", "4", "TYPE", "FLOAT32", "DIM", "zero"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSchema(tt.defs); err == nil {
				t.Error("NewSchema() accepted an invalid definition")
			}
		})
	}
}

// TestParseVectorOptionsForwardCompatibility tests that unknown keyword
// pairs are tolerated
func TestParseVectorOptionsForwardCompatibility(t *testing.T) {
	params, err := parseVectorOptions([]string{
		"HNSW", "10", "TYPE", "FLOAT16", "DIM", "4", "DISTANCE_METRIC", "L2SQ", "EF_RUNTIME", "200",
	})
	if err != nil {
		t.Fatalf("parseVectorOptions() error: %v", err)
	}
	if params.Elem != VectorFloat16 {
		t.Errorf("elem = %q, want FLOAT16", params.Elem)
	}
	if params.Dim != 4 {
		t.Errorf("dim = %d, want 4", params.Dim)
	}
	if params.Metric != L2Squared {
		t.Errorf("metric = %q, want l2_squared", params.Metric)
	}
}

// TestFieldTypeString tests the info-surface type names
func TestFieldTypeString(t *testing.T) {
	tests := []struct {
		ft   FieldType
		want string
	}{
		{TagField, "TAG"},
		{TextField, "TEXT"},
		{NumericField, "NUMERIC"},
		{VectorField, "VECTOR"},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FieldType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}
