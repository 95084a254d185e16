// Package facematch implements nearest-neighbor face identification over a
// set of enrolled descriptors. It is pure computation: no storage, no network.
package facematch

import (
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

// DefaultThreshold is the maximum Euclidean distance at which a candidate is
// accepted as a match. Distances equal to the threshold are rejected.
const DefaultThreshold = 0.6

var (
	// ErrNoEnrollments is returned when the population is empty.
	ErrNoEnrollments = errors.New("no enrolled descriptors")

	// ErrDimensionMismatch is returned when a candidate descriptor and the
	// query have different lengths. This signals corrupt enrollment data,
	// not an ordinary non-match, and aborts the whole scan.
	ErrDimensionMismatch = errors.New("descriptor dimension mismatch")
)

// Result is the outcome of a match scan.
type Result struct {
	Matched  bool
	UserID   uuid.UUID
	Distance float64
}

// EuclideanDistance computes the L2 distance between two descriptors.
func EuclideanDistance(a, b domain.Descriptor) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// Match scans the full population and returns the globally closest candidate,
// accepted only if its distance is strictly below threshold. The scan never
// short-circuits: every candidate is evaluated so the true minimum wins, and
// ties keep the first candidate encountered.
func Match(query domain.Descriptor, population []domain.EnrolledFace, threshold float64) (Result, error) {
	if len(population) == 0 {
		return Result{}, ErrNoEnrollments
	}

	best := Result{Distance: math.Inf(1)}
	for _, candidate := range population {
		dist, err := EuclideanDistance(query, candidate.Descriptor)
		if err != nil {
			return Result{}, err
		}
		if dist < best.Distance {
			best.UserID = candidate.UserID
			best.Distance = dist
		}
	}

	best.Matched = best.Distance < threshold
	if !best.Matched {
		// Do not leak the near-miss identity to callers.
		return Result{Matched: false, Distance: best.Distance}, nil
	}
	return best, nil
}
