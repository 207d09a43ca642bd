package dbfader

import (
	"math"
	"slices"
)

// NegInf is the level at the very bottom of the fader travel, below the lowest increment
var NegInf = float32(math.Inf(-1))

// snapEpsilon absorbs float32 rounding in normalized*(len-1) so breakpoints map back exactly
const snapEpsilon = 1e-5

// Increments are the fader's breakpoints in ascending order. Each adjacent pair takes an equal
// share of the fader travel, no matter how far apart the two values are.
type Increments []float32

// DefaultIncrements returns the console-style dB scale used when none is configured
func DefaultIncrements() Increments {
	return Increments{-100, -50, -40, -30, -20, -10, -5, 0, 5, 10}
}

// Validate checks that there are at least two finite, strictly ascending breakpoints
func (inc Increments) Validate() error {
	if len(inc) < 2 {
		return configErrorf("increments", "need at least 2 breakpoints, got %d", len(inc))
	}
	for i, v := range inc {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return configErrorf("increments", "breakpoint %d is not finite (%v)", i, v)
		}
		if i > 0 && v <= inc[i-1] {
			return configErrorf("increments", "breakpoints must be unique and ascending (%v follows %v)", v, inc[i-1])
		}
	}
	return nil
}

// Min returns the lowest breakpoint
func (inc Increments) Min() float32 {
	return inc[0]
}

// Max returns the highest breakpoint
func (inc Increments) Max() float32 {
	return inc[len(inc)-1]
}

// Clamp limits v to [Min, Max]
func (inc Increments) Clamp(v float32) float32 {
	return min(max(v, inc.Min()), inc.Max())
}

// NormalizedFromValue maps a level onto [0, 1]. NegInf (and anything at or below the lowest
// breakpoint) maps to 0, anything at or above the highest breakpoint maps to 1.
func NormalizedFromValue(value float32, table Increments) float32 {
	if value == NegInf {
		return 0
	}
	// NaN compares below every breakpoint and lands at index 0
	idx, _ := slices.BinarySearch(table, value)
	switch idx {
	case len(table):
		return 1
	case 0:
		return 0
	}
	left, right := table[idx-1], table[idx]
	t := (value - left) / (right - left)
	return lerp(float32(idx-1), float32(idx), t) / float32(len(table)-1)
}

// ValueFromNormalized is the inverse of NormalizedFromValue. 0 and below is NegInf; 1 and above is
// the highest breakpoint.
func ValueFromNormalized(normalized float32, table Increments) float32 {
	if normalized >= 1 {
		return table.Max()
	}
	if normalized <= 0 {
		return NegInf
	}
	floatIndex := normalized * float32(len(table)-1)
	if r := float32(math.Round(float64(floatIndex))); abs32(floatIndex-r) < snapEpsilon {
		floatIndex = r
	}
	index := int(floatIndex)
	if index >= len(table)-1 {
		return table.Max()
	}
	return lerp(table[index], table[index+1], floatIndex-float32(index))
}

// PositionRange is the on-screen travel of the handle. Start is where normalized 0 sits and End is
// where normalized 1 sits; for a vertical fader Start is the larger coordinate.
type PositionRange struct {
	Start float32
	End   float32
}

// Span returns End - Start
func (r PositionRange) Span() float32 {
	return r.End - r.Start
}

// Lerp returns the position of a normalized value
func (r PositionRange) Lerp(normalized float32) float32 {
	return lerp(r.Start, r.End, normalized)
}

// RemapClamp returns the normalized value of a position, clamped to [0, 1]
func (r PositionRange) RemapClamp(position float32) float32 {
	if r.Span() == 0 {
		return 0
	}
	return min(max((position-r.Start)/r.Span(), 0), 1)
}

// ValueFromPosition converts an on-screen position into a level
func ValueFromPosition(position float32, rng PositionRange, table Increments) float32 {
	return ValueFromNormalized(rng.RemapClamp(position), table)
}

// PositionFromValue converts a level into an on-screen position
func PositionFromValue(value float32, rng PositionRange, table Increments) float32 {
	return rng.Lerp(NormalizedFromValue(value, table))
}

func lerp(a, b, t float32) float32 {
	return (1-t)*a + t*b
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
