package domain

import (
	"errors"
	"math"
)

// DescriptorDim is the embedding dimensionality produced by the client-side
// face extractor. Enrollment and query descriptors must both have this length.
const DescriptorDim = 128

// Descriptor is a fixed-length face embedding. The raw vector is biometric
// data: it is stored, compared, and never echoed back over the wire.
type Descriptor []float32

var (
	errEmptyDescriptor     = errors.New("descriptor is empty")
	errDescriptorLength    = errors.New("descriptor has wrong length")
	errDescriptorNonFinite = errors.New("descriptor contains non-finite values")
)

// Validate checks the descriptor at the request boundary: exact length and
// finite values only. Arbitrary arrays must not reach the matching algorithm.
func (d Descriptor) Validate() error {
	if len(d) == 0 {
		return errEmptyDescriptor
	}
	if len(d) != DescriptorDim {
		return errDescriptorLength
	}
	for _, v := range d {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return errDescriptorNonFinite
		}
	}
	return nil
}
