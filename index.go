package prism

// FieldIndex is the capability shared by every per-field index. Type
// specific lookups (Matching, Range, Get) live on the concrete types; the
// evaluator downcasts based on the AST node and the field's schema type.
type FieldIndex interface {
	// Add indexes the document's value for the given identifier. Absent
	// identifiers are skipped silently; invalid values (NaN numerics,
	// malformed or mis-dimensioned vectors) are rejected with an error and
	// leave the index unchanged. Adding the same document twice is a no-op.
	Add(doc DocId, access DocumentAccessor, identifier string) error

	// Remove deletes the document's value from the index. Removing an
	// absent document is a no-op.
	Remove(doc DocId, access DocumentAccessor, identifier string)
}

// newFieldIndex builds the concrete index for a schema field.
func newFieldIndex(field SchemaField) FieldIndex {
	switch field.Type {
	case TagField:
		return NewTagIndex()
	case TextField:
		return NewTextIndex()
	case NumericField:
		return NewNumericIndex()
	case VectorField:
		return NewVectorIndex(field.Vector)
	}
	panic("unknown field type")
}
