// Package prism: vector index.
//
// A vector index maps DocId -> stored embedding. KNN evaluation scans an
// already-filtered candidate set exactly, so the index is a plain lookup
// table: no graph, no clustering, no quantization beyond the declared wire
// element type.
package prism

import "fmt"

// Compile-time check to ensure VectorIndex implements FieldIndex.
var _ FieldIndex = (*VectorIndex)(nil)

// VectorIndex stores one fixed-dimension vector per document.
type VectorIndex struct {
	params  VectorParams
	dim     int // pinned dimension; 0 until the first vector is added
	vectors map[DocId][]float32
	dist    Distance
}

// NewVectorIndex returns an empty vector index with the given declared
// parameters. An unsupported metric falls back to Euclidean; schema
// construction has already rejected anything outside the L2 family.
func NewVectorIndex(params VectorParams) *VectorIndex {
	dist, err := NewDistance(params.Metric)
	if err != nil {
		dist = euclideanDistanceImpl
	}
	return &VectorIndex{
		params:  params,
		dim:     params.Dim,
		vectors: make(map[DocId][]float32),
		dist:    dist,
	}
}

// Add decodes and stores the document's vector. The dimension is taken
// from the schema declaration, or pinned by the first added vector when
// the schema leaves it open; vectors of any other dimension are rejected.
// Re-adding a document is a no-op.
func (ix *VectorIndex) Add(doc DocId, access DocumentAccessor, identifier string) error {
	payload, ok := access.GetBytes(identifier)
	if !ok {
		return nil
	}
	if _, exists := ix.vectors[doc]; exists {
		return nil
	}
	vec, err := decodeVector(payload, ix.params.Elem)
	if err != nil {
		return err
	}
	if ix.dim == 0 {
		ix.dim = len(vec)
	} else if len(vec) != ix.dim {
		return fmt.Errorf("vector dimension mismatch: index holds %d-dimensional vectors, got %d", ix.dim, len(vec))
	}
	ix.vectors[doc] = vec
	return nil
}

// Remove drops the document's vector. Removing an absent document is a no-op.
func (ix *VectorIndex) Remove(doc DocId, access DocumentAccessor, identifier string) {
	delete(ix.vectors, doc)
}

// Get returns the stored vector for doc. The slice is owned by the index
// and must not be mutated.
func (ix *VectorIndex) Get(doc DocId) ([]float32, bool) {
	v, ok := ix.vectors[doc]
	return v, ok
}

// Dimensions returns the effective vector dimension, or 0 when no
// dimension has been declared or pinned yet.
func (ix *VectorIndex) Dimensions() int {
	return ix.dim
}

// Distance computes the index's metric between a query vector and the
// stored vector of doc.
func (ix *VectorIndex) Distance(query, stored []float32) float32 {
	return ix.dist.Calculate(query, stored)
}
