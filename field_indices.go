// Package prism: field-indices registry.
//
// FieldIndices owns one index per schema field plus the sorted sequence of
// all live DocIds. The union of every posting list in every field index is
// always a subset of that sequence.
package prism

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// FieldIndices is the per-shard registry of field indices.
//
// Mutations and evaluations are serialized by the caller; the registry
// carries no locks. Distinct instances are fully independent, so one
// registry per shard may be driven in parallel.
type FieldIndices struct {
	schema  Schema
	indices map[string]FieldIndex

	// allIDs is the strictly ascending sequence of live documents; the
	// evaluator borrows it for match-all and negation.
	allIDs []DocId

	// live mirrors allIDs as a bitmap for O(1) membership checks.
	live *roaring.Bitmap
}

// NewFieldIndices builds a registry with one empty index per schema field.
func NewFieldIndices(schema Schema) *FieldIndices {
	fi := &FieldIndices{
		schema:  schema,
		indices: make(map[string]FieldIndex, len(schema.Aliases())),
		live:    roaring.New(),
	}
	for _, alias := range schema.Aliases() {
		field, _ := schema.Field(alias)
		fi.indices[alias] = newFieldIndex(field)
	}
	return fi
}

// Add indexes a document across every schema field and registers it in the
// live set. Adding a document that is already live is a no-op. If any
// field rejects its value the already-updated fields are rolled back and
// the document is not registered.
func (fi *FieldIndices) Add(doc DocId, access DocumentAccessor) error {
	if fi.live.Contains(doc) {
		return nil
	}
	done := make([]string, 0, len(fi.schema.Aliases()))
	for _, alias := range fi.schema.Aliases() {
		field, _ := fi.schema.Field(alias)
		if err := fi.indices[alias].Add(doc, access, field.Identifier); err != nil {
			for _, prev := range done {
				prevField, _ := fi.schema.Field(prev)
				fi.indices[prev].Remove(doc, access, prevField.Identifier)
			}
			return fmt.Errorf("field %q: %w", alias, err)
		}
		done = append(done, alias)
	}

	pos := sort.Search(len(fi.allIDs), func(i int) bool { return fi.allIDs[i] >= doc })
	fi.allIDs = append(fi.allIDs, 0)
	copy(fi.allIDs[pos+1:], fi.allIDs[pos:])
	fi.allIDs[pos] = doc
	fi.live.Add(doc)
	return nil
}

// Remove deletes a document from every field index and the live set.
// Removing a document that is not live is a caller bug and panics.
func (fi *FieldIndices) Remove(doc DocId, access DocumentAccessor) {
	if !fi.live.Contains(doc) {
		panic(fmt.Sprintf("remove of unknown document %d", doc))
	}
	for _, alias := range fi.schema.Aliases() {
		field, _ := fi.schema.Field(alias)
		fi.indices[alias].Remove(doc, access, field.Identifier)
	}
	pos := sort.Search(len(fi.allIDs), func(i int) bool { return fi.allIDs[i] >= doc })
	fi.allIDs = append(fi.allIDs[:pos], fi.allIDs[pos+1:]...)
	fi.live.Remove(doc)
}

// GetIndex returns the index registered for the alias, or nil.
func (fi *FieldIndices) GetIndex(alias string) FieldIndex {
	return fi.indices[alias]
}

// GetAllTextIndices returns the indices of every TEXT field in schema
// definition order. Unscoped term queries union their results.
func (fi *FieldIndices) GetAllTextIndices() []*TextIndex {
	var out []*TextIndex
	for _, alias := range fi.schema.Aliases() {
		field, _ := fi.schema.Field(alias)
		if field.Type != TextField {
			continue
		}
		if ix, ok := fi.indices[alias].(*TextIndex); ok {
			out = append(out, ix)
		}
	}
	return out
}

// GetAllDocs returns the ascending sequence of live DocIds. The slice is
// owned by the registry; callers must not mutate it.
func (fi *FieldIndices) GetAllDocs() []DocId {
	return fi.allIDs
}

// NumDocs returns the number of live documents.
func (fi *FieldIndices) NumDocs() int {
	return int(fi.live.GetCardinality())
}

// Schema returns the schema this registry was built from.
func (fi *FieldIndices) Schema() Schema {
	return fi.schema
}

// Info returns the introspection view of this registry under the given
// index name: field descriptions in definition order plus the live
// document count.
func (fi *FieldIndices) Info(name string) IndexInfo {
	info := IndexInfo{Name: name, NumDocs: fi.NumDocs()}
	for _, alias := range fi.schema.Aliases() {
		field, _ := fi.schema.Field(alias)
		info.Fields = append(info.Fields, FieldInfo{
			Identifier: field.Identifier,
			Attribute:  alias,
			Type:       field.Type.String(),
		})
	}
	return info
}
