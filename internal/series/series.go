// Package series folds per-year flat records into column-oriented sequences.
package series

import (
	"math"
	"slices"
)

// Transform is applied to every value as it is appended to a series.
type Transform[T any] func(T) T

// Identity returns its input unchanged.
func Identity[T any](v T) T { return v }

// Record is one year's flat set of named values.
type Record[T any] map[string]T

// Series maps a field name to its values in append order.
type Series[T any] map[string][]T

// New returns a series holding an empty sequence for every named field.
func New[T any](fields ...string) Series[T] {
	s := make(Series[T], len(fields))
	for _, f := range fields {
		s[f] = []T{}
	}
	return s
}

// Accumulate appends transform(current[field]) to acc[field] for every field in current
// and returns a fresh series covering exactly the fields of current. A nil acc or a field
// missing from acc is treated as an empty sequence. acc is never modified, so callers
// thread the returned value into the next call.
func Accumulate[T any](acc Series[T], current Record[T], transform Transform[T]) Series[T] {
	if transform == nil {
		transform = Identity[T]
	}
	out := make(Series[T], len(current))
	for field, v := range current {
		// Clip forces append to copy so the previous accumulator stays intact.
		out[field] = append(slices.Clip(acc[field]), transform(v))
	}
	return out
}

// Len returns the length shared by every field, or -1 when the fields disagree.
func (s Series[T]) Len() int {
	n := -1
	for _, values := range s {
		if n == -1 {
			n = len(values)
			continue
		}
		if len(values) != n {
			return -1
		}
	}
	if n == -1 {
		return 0
	}
	return n
}

// At returns the record stored at index i across all fields.
func (s Series[T]) At(i int) Record[T] {
	r := make(Record[T], len(s))
	for field, values := range s {
		if i >= 0 && i < len(values) {
			r[field] = values[i]
		}
	}
	return r
}

// Round returns a transform computing round(x * scale * 10^decimals) / 10^decimals.
// Halves round toward positive infinity.
func Round(decimals int, scale float64) Transform[float64] {
	factor := math.Pow(10, float64(decimals))
	return func(x float64) float64 {
		v := x * scale * factor
		// Adding 0.5 before flooring is inexact near 0.5 and above 2^52.
		t := math.Floor(v)
		if v-t >= 0.5 {
			t++
		}
		return t / factor
	}
}
