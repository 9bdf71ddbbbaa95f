// Package prism: schema model.
//
// A schema maps query-visible field aliases to externally-resolved
// identifiers plus a field type. The alias is what appears after '@' in
// query text; the identifier is the path handed to the DocumentAccessor
// when documents are indexed.
package prism

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType enumerates the kinds of per-field indices the core supports.
type FieldType int

const (
	// TagField indexes comma-separated tag literals for exact matching.
	TagField FieldType = iota

	// TextField indexes tokenized free text for term matching.
	TextField

	// NumericField indexes a float64 value for range queries.
	NumericField

	// VectorField stores a fixed-dimension embedding for KNN queries.
	VectorField
)

// String returns the canonical attribute-type name used by the info surface.
func (t FieldType) String() string {
	switch t {
	case TagField:
		return "TAG"
	case TextField:
		return "TEXT"
	case NumericField:
		return "NUMERIC"
	case VectorField:
		return "VECTOR"
	}
	return "UNKNOWN"
}

// VectorParams captures the declared shape of a vector field.
type VectorParams struct {
	// Algorithm is the declared index algorithm (e.g. "FLAT"). The core
	// evaluates KNN by exact scan over the filtered candidate set, so the
	// algorithm is recorded for introspection only.
	Algorithm string

	// Dim is the declared dimensionality. Zero means "pin on first add".
	Dim int

	// Elem is the wire element type of stored vectors and query parameters.
	Elem VectorElem

	// Metric is the distance metric; only the L2 family is supported.
	Metric DistanceKind
}

// SchemaField describes one indexed field.
type SchemaField struct {
	// Identifier is the external path resolved by the DocumentAccessor.
	Identifier string

	// Type selects the index kind built for this field.
	Type FieldType

	// Vector holds vector parameters; meaningful only when Type is VectorField.
	Vector VectorParams
}

// FieldDef is one entry of a schema definition: alias, identifier, type,
// and the raw option tokens trailing the type in the definition command.
type FieldDef struct {
	Alias      string
	Identifier string
	Type       FieldType
	Options    []string
}

// Schema is an immutable mapping from field alias to field description.
// Definition order is preserved for introspection.
type Schema struct {
	fields map[string]SchemaField
	order  []string
}

// NewSchema builds a schema from field definitions. Aliases must be unique.
// Option tokens are parsed per field type; unknown keyword pairs are
// tolerated for forward compatibility.
func NewSchema(defs []FieldDef) (Schema, error) {
	s := Schema{fields: make(map[string]SchemaField, len(defs))}
	for _, def := range defs {
		if def.Alias == "" {
			return Schema{}, fmt.Errorf("field with identifier %q has an empty alias", def.Identifier)
		}
		if _, dup := s.fields[def.Alias]; dup {
			return Schema{}, fmt.Errorf("duplicate field alias %q", def.Alias)
		}
		field := SchemaField{Identifier: def.Identifier, Type: def.Type}
		if def.Type == VectorField {
			params, err := parseVectorOptions(def.Options)
			if err != nil {
				return Schema{}, fmt.Errorf("field %q: %w", def.Alias, err)
			}
			field.Vector = params
		}
		// TEXT (WEIGHT, SEPARATOR) and TAG (SEPARATOR) options carry no
		// information the core acts on; the tag separator is fixed to ','.
		s.fields[def.Alias] = field
		s.order = append(s.order, def.Alias)
	}
	return s, nil
}

// parseVectorOptions parses the option tokens of a VECTOR field:
// a positional algorithm name, an optional positional parameter count,
// then keyword pairs. Recognized pairs are TYPE (FLOAT32, FLOAT16),
// DIM <n> and DISTANCE_METRIC (L2, L2SQ); unknown pairs are skipped.
func parseVectorOptions(opts []string) (VectorParams, error) {
	params := VectorParams{Elem: VectorFloat32, Metric: Euclidean}
	if len(opts) == 0 {
		return VectorParams{}, fmt.Errorf("vector field requires an algorithm")
	}
	params.Algorithm = strings.ToUpper(opts[0])
	rest := opts[1:]
	if len(rest) > 0 {
		// The token after the algorithm is the argument count header.
		if _, err := strconv.Atoi(rest[0]); err == nil {
			rest = rest[1:]
		}
	}
	for i := 0; i+1 < len(rest); i += 2 {
		key, val := strings.ToUpper(rest[i]), strings.ToUpper(rest[i+1])
		switch key {
		case "TYPE":
			switch val {
			case "FLOAT32":
				params.Elem = VectorFloat32
			case "FLOAT16":
				params.Elem = VectorFloat16
			default:
				return VectorParams{}, fmt.Errorf("unsupported vector type %q", val)
			}
		case "DIM":
			dim, err := strconv.Atoi(val)
			if err != nil || dim <= 0 {
				return VectorParams{}, fmt.Errorf("invalid vector dimension %q", val)
			}
			params.Dim = dim
		case "DISTANCE_METRIC":
			switch val {
			case "L2":
				params.Metric = Euclidean
			case "L2SQ":
				params.Metric = L2Squared
			default:
				return VectorParams{}, fmt.Errorf("unsupported distance metric %q", val)
			}
		default:
			// Unknown pair: tolerated for forward compatibility.
		}
	}
	return params, nil
}

// Field returns the description of the given alias.
func (s Schema) Field(alias string) (SchemaField, bool) {
	f, ok := s.fields[alias]
	return f, ok
}

// Aliases returns the field aliases in definition order.
func (s Schema) Aliases() []string {
	return s.order
}

// FieldInfo is one entry of the info surface.
type FieldInfo struct {
	Identifier string
	Attribute  string
	Type       string
}

// IndexInfo is the introspection view of one index: its name, fields in
// definition order, and the number of live documents.
type IndexInfo struct {
	Name    string
	Fields  []FieldInfo
	NumDocs int
}
