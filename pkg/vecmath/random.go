package vecmath

import (
	"fmt"
	"math"
	"math/rand/v2"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

// RandomVector returns a vector of the given length whose components are
// drawn independently and uniformly from [min, max). When min == max every
// component equals min.
//
// It uses the process-wide math/rand/v2 source and is safe for concurrent use.
func RandomVector(dimensions int, min, max float64) ([]float64, error) {
	return fill(rand.Float64, dimensions, min, max)
}

// Generator produces random vectors from its own source, so output can be
// reproduced from a seed. A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return NewGeneratorFrom(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewGeneratorFrom returns a Generator drawing from src.
func NewGeneratorFrom(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Vector behaves like RandomVector but draws from the Generator's source.
func (g *Generator) Vector(dimensions int, min, max float64) ([]float64, error) {
	return fill(g.rng.Float64, dimensions, min, max)
}

func fill(next func() float64, dimensions int, min, max float64) ([]float64, error) {
	if dimensions < 0 {
		return nil, brainerrors.New(brainerrors.ErrCodeInvalidRange,
			fmt.Sprintf("dimensions must be non-negative, got %d", dimensions), nil)
	}
	if !(min <= max) {
		return nil, brainerrors.New(brainerrors.ErrCodeInvalidRange,
			fmt.Sprintf("min must not exceed max (min=%g, max=%g)", min, max), nil)
	}

	out := make([]float64, dimensions)
	span := max - min
	for i := range out {
		v := min + next()*span
		// Rounding can land exactly on max for wide spans.
		if v >= max && span > 0 {
			v = math.Nextafter(max, min)
		}
		out[i] = v
	}
	return out, nil
}
