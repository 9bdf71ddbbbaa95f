package prism

import (
	"math"
	"testing"
)

// TestVectorIndexAddAndGet tests storage and retrieval
func TestVectorIndexAddAndGet(t *testing.T) {
	ix := NewVectorIndex(VectorParams{Elem: VectorFloat32, Metric: Euclidean, Dim: 2})
	access := MapAccessor{"vec": EncodeVectorParam([]float32{1, 2})}
	if err := ix.Add(1, access, "vec"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	vec, ok := ix.Get(1)
	if !ok {
		t.Fatal("Get(1) not found")
	}
	if vec[0] != 1 || vec[1] != 2 {
		t.Errorf("Get(1) = %v, want [1 2]", vec)
	}
	if _, ok := ix.Get(2); ok {
		t.Error("Get(2) found a vector that was never added")
	}
}

// TestVectorIndexDimensionPinning tests pin-on-first-add and mismatch
// rejection
func TestVectorIndexDimensionPinning(t *testing.T) {
	ix := NewVectorIndex(VectorParams{Elem: VectorFloat32, Metric: Euclidean})
	if err := ix.Add(1, MapAccessor{"vec": EncodeVectorParam([]float32{1, 2, 3})}, "vec"); err != nil {
		t.Fatalf("first Add() error: %v", err)
	}
	if got := ix.Dimensions(); got != 3 {
		t.Errorf("Dimensions() = %d, want 3", got)
	}
	if err := ix.Add(2, MapAccessor{"vec": EncodeVectorParam([]float32{1, 2})}, "vec"); err == nil {
		t.Error("Add() accepted a vector of the wrong dimension")
	}
	if _, ok := ix.Get(2); ok {
		t.Error("rejected vector was stored")
	}
}

// TestVectorIndexDeclaredDimension tests the schema-declared dimension
func TestVectorIndexDeclaredDimension(t *testing.T) {
	ix := NewVectorIndex(VectorParams{Elem: VectorFloat32, Metric: Euclidean, Dim: 2})
	if err := ix.Add(1, MapAccessor{"vec": EncodeVectorParam([]float32{1, 2, 3})}, "vec"); err == nil {
		t.Error("Add() accepted a vector violating the declared dimension")
	}
}

// TestVectorIndexMalformedPayload tests wire validation
func TestVectorIndexMalformedPayload(t *testing.T) {
	ix := NewVectorIndex(VectorParams{Elem: VectorFloat32, Metric: Euclidean})
	if err := ix.Add(1, MapAccessor{"vec": []byte{1, 2, 3}}, "vec"); err == nil {
		t.Error("Add() accepted a payload that is not a multiple of 4 bytes")
	}
}

// TestVectorIndexFloat16 tests half-precision decoding
func TestVectorIndexFloat16(t *testing.T) {
	ix := NewVectorIndex(VectorParams{Elem: VectorFloat16, Metric: Euclidean})
	payload := encodeVector([]float32{1.5, -2}, VectorFloat16)
	if err := ix.Add(1, MapAccessor{"vec": payload}, "vec"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	vec, ok := ix.Get(1)
	if !ok {
		t.Fatal("Get(1) not found")
	}
	if vec[0] != 1.5 || vec[1] != -2 {
		t.Errorf("Get(1) = %v, want [1.5 -2]", vec)
	}
}

// TestVectorIndexDistance tests the configured metric
func TestVectorIndexDistance(t *testing.T) {
	l2 := NewVectorIndex(VectorParams{Elem: VectorFloat32, Metric: Euclidean})
	if got := l2.Distance([]float32{0, 0}, []float32{3, 4}); math.Abs(float64(got)-5) > 1e-6 {
		t.Errorf("l2 distance = %v, want 5", got)
	}

	sq := NewVectorIndex(VectorParams{Elem: VectorFloat32, Metric: L2Squared})
	if got := sq.Distance([]float32{0, 0}, []float32{3, 4}); math.Abs(float64(got)-25) > 1e-6 {
		t.Errorf("squared distance = %v, want 25", got)
	}
}

// TestVectorIndexRemove tests removal
func TestVectorIndexRemove(t *testing.T) {
	ix := NewVectorIndex(VectorParams{Elem: VectorFloat32, Metric: Euclidean})
	if err := ix.Add(1, MapAccessor{"vec": EncodeVectorParam([]float32{1})}, "vec"); err != nil {
		t.Fatal(err)
	}
	ix.Remove(1, nil, "vec")
	if _, ok := ix.Get(1); ok {
		t.Error("vector still present after Remove")
	}
	ix.Remove(1, nil, "vec") // absent, no-op
}
