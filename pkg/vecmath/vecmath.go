package vecmath

import (
	"math"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

// Dot returns the dot product of a and b.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, brainerrors.DimensionMismatch("dot product", len(a), len(b))
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Magnitude returns the Euclidean norm of v. An empty vector has magnitude 0.
func Magnitude(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns dot(a, b) / (|a| * |b|).
//
// If either vector has zero magnitude the result is 0. NaN and Inf components
// propagate through the arithmetic unchanged.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, brainerrors.DimensionMismatch("cosine similarity", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Normalize returns v scaled to unit length as a new slice.
// A zero vector (or an empty one) is returned as an unchanged copy.
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	mag := Magnitude(v)
	if mag == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = x / mag
	}
	return out
}

// EuclideanDistance returns sqrt(sum((a[i]-b[i])^2)).
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, brainerrors.DimensionMismatch("euclidean distance", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
