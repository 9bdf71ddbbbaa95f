package prism

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// VectorElem is the storage element type of a vector field.
type VectorElem string

const (
	// VectorFloat32 stores vectors as packed little-endian IEEE 754 single floats.
	VectorFloat32 VectorElem = "FLOAT32"

	// VectorFloat16 stores vectors as packed little-endian IEEE 754 half floats.
	// Values are widened to float32 at decode time.
	VectorFloat16 VectorElem = "FLOAT16"
)

// elemSize returns the wire size of one element in bytes.
func (e VectorElem) elemSize() int {
	if e == VectorFloat16 {
		return 2
	}
	return 4
}

// decodeVector interprets a packed little-endian byte string as a vector of
// the given element type. The byte length must be a whole multiple of the
// element size.
func decodeVector(b []byte, elem VectorElem) ([]float32, error) {
	size := elem.elemSize()
	if len(b)%size != 0 {
		return nil, fmt.Errorf("vector payload of %d bytes is not a multiple of element size %d", len(b), size)
	}
	out := make([]float32, len(b)/size)
	switch elem {
	case VectorFloat16:
		for i := range out {
			out[i] = float16.Frombits(binary.LittleEndian.Uint16(b[i*2:])).Float32()
		}
	default:
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		}
	}
	return out, nil
}

// encodeVector packs a vector into the little-endian wire form for the
// given element type. It is the inverse of decodeVector and is used by
// tests and by callers constructing query parameters.
func encodeVector(v []float32, elem VectorElem) []byte {
	size := elem.elemSize()
	out := make([]byte, len(v)*size)
	switch elem {
	case VectorFloat16:
		for i, f := range v {
			binary.LittleEndian.PutUint16(out[i*2:], float16.Fromfloat32(f).Bits())
		}
	default:
		for i, f := range v {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
		}
	}
	return out
}

// EncodeVectorParam packs a float32 vector into the byte form expected for
// a $param binding of a KNN query (packed little-endian float32).
func EncodeVectorParam(v []float32) []byte {
	return encodeVector(v, VectorFloat32)
}
