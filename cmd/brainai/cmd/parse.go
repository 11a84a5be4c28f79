package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

// parseVector parses "0.1,0.2,0.3" (spaces allowed) into a vector.
func parseVector(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, brainerrors.ValidationError("vector must contain at least one number", nil)
	}

	v := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, brainerrors.ValidationError(fmt.Sprintf("vector element %d: %q is not a number", i, f), err)
		}
		v[i] = x
	}
	return v, nil
}

// parseMetadata turns key=value pairs into a metadata map. Values that parse
// as numbers or booleans keep that type.
func parseMetadata(pairs []string) (map[string]any, error) {
	meta := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, brainerrors.ValidationError(fmt.Sprintf("metadata %q must be key=value", pair), nil)
		}
		meta[key] = typedValue(value)
	}
	return meta, nil
}

func typedValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return strings.Join(parts, ",")
}

// jsonFloat returns x unchanged when encoding/json can represent it and its
// strconv spelling ("NaN", "+Inf", "-Inf") otherwise.
func jsonFloat(x float64) any {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return x
}

func jsonFloats(v []float64) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = jsonFloat(x)
	}
	return out
}

// invalidArg reports a bad command-line value as a validation error.
func invalidArg(err error) error {
	return brainerrors.ValidationError(err.Error(), err)
}
