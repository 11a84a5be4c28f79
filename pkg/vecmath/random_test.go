package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

func TestRandomVector_LengthAndRange(t *testing.T) {
	tests := []struct {
		name     string
		dims     int
		min, max float64
	}{
		{"unit interval", 128, 0, 1},
		{"symmetric", 64, -1, 1},
		{"wide", 32, -1e6, 1e6},
		{"zero dims", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := RandomVector(tt.dims, tt.min, tt.max)
			require.NoError(t, err)
			require.Len(t, v, tt.dims)
			for _, x := range v {
				assert.GreaterOrEqual(t, x, tt.min)
				assert.Less(t, x, tt.max)
			}
		})
	}
}

func TestRandomVector_DegenerateRange(t *testing.T) {
	v, err := RandomVector(5, 2.5, 2.5)

	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5, 2.5}, v)
}

func TestRandomVector_InvalidArguments(t *testing.T) {
	_, err := RandomVector(-1, 0, 1)
	require.Error(t, err)
	assert.Equal(t, brainerrors.ErrCodeInvalidRange, brainerrors.GetCode(err))

	_, err = RandomVector(3, 2, 1)
	require.Error(t, err)
	assert.Equal(t, brainerrors.ErrCodeInvalidRange, brainerrors.GetCode(err))
}

func TestGenerator_Deterministic(t *testing.T) {
	// Given: two generators with the same seed
	g1 := NewGenerator(42)
	g2 := NewGenerator(42)

	// When: drawing vectors from both
	a, err := g1.Vector(10, -1, 1)
	require.NoError(t, err)
	b, err := g2.Vector(10, -1, 1)
	require.NoError(t, err)

	// Then: the output matches
	assert.Equal(t, a, b)

	c, err := NewGenerator(43).Vector(10, -1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerator_RejectsInvalidRange(t *testing.T) {
	_, err := NewGenerator(1).Vector(2, 1, 0)

	assert.Equal(t, brainerrors.ErrCodeInvalidRange, brainerrors.GetCode(err))
}
