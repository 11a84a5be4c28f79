// Package vecmath provides the vector helpers shared by the Brain AI client
// and CLI: cosine similarity, normalization, Euclidean distance, and random
// vector generation over []float64.
//
// All functions are pure. Inputs are never mutated and every call returns a
// freshly allocated slice, so concurrent use is safe as long as callers do not
// mutate a slice while another goroutine reads it.
//
// Operations that take two vectors require equal lengths and report
// ERR_402_DIMENSION_MISMATCH otherwise. Zero-magnitude inputs are not errors:
// cosine similarity against a zero vector is 0 and normalizing a zero vector
// returns it unchanged.
package vecmath
