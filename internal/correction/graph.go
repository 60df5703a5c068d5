// Package correction implements the piecewise growth curves that map an
// attribute level to a scaling multiplier.
//
// A graph is made of four contiguous ranges. Inside a range the multiplier
// moves from the left coefficient to the right one along a power curve whose
// exponent sign selects the shape:
//
//	exponent > 0:  growth = ratio^exponent            (convex)
//	exponent <= 0: growth = 1 - (1-ratio)^|exponent|  (diminishing returns)
//
// Graphs are expanded once into dense per-level tables (see Expand) so that
// calculators only do O(1) lookups.
package correction

import (
	"errors"
	"fmt"
	"math"
)

// RangeCount is the number of segments in every correction graph.
const RangeCount = 4

// DefaultMaxLevel is the upper bound of the usual attribute domain.
const DefaultMaxLevel = 150

var (
	// ErrInvalidGraph is returned by NewGraph for malformed range lists.
	ErrInvalidGraph = errors.New("invalid correction graph")
	// ErrLevelOutOfDomain is returned when a level is outside the graph domain.
	ErrLevelOutOfDomain = errors.New("level outside correction graph domain")
)

// Range is one monotone segment of a correction graph.
type Range struct {
	LeftThreshold  float64 `yaml:"left"`
	RightThreshold float64 `yaml:"right"`
	LeftCoef       float64 `yaml:"left_coef"`
	RightCoef      float64 `yaml:"right_coef"`
	Exponent       float64 `yaml:"exponent"`
}

// Graph is a validated list of exactly four contiguous ranges.
type Graph struct {
	ranges [RangeCount]Range
}

// NewGraph validates ranges and builds a Graph.
// Ranges must be contiguous (right threshold of one equals the left threshold
// of the next) and thresholds must increase monotonically.
func NewGraph(ranges []Range) (Graph, error) {
	var g Graph
	if len(ranges) != RangeCount {
		return g, fmt.Errorf("%w: got %d ranges, want %d", ErrInvalidGraph, len(ranges), RangeCount)
	}
	for i, r := range ranges {
		if r.RightThreshold < r.LeftThreshold {
			return g, fmt.Errorf("%w: range %d decreases (%g > %g)", ErrInvalidGraph, i, r.LeftThreshold, r.RightThreshold)
		}
		if i > 0 && ranges[i-1].RightThreshold != r.LeftThreshold {
			return g, fmt.Errorf("%w: range %d starts at %g, previous ends at %g",
				ErrInvalidGraph, i, r.LeftThreshold, ranges[i-1].RightThreshold)
		}
		g.ranges[i] = r
	}
	return g, nil
}

// MustGraph is NewGraph that panics on error. Intended for static tables.
func MustGraph(ranges ...Range) Graph {
	g, err := NewGraph(ranges)
	if err != nil {
		panic(err)
	}
	return g
}

// Ranges returns a copy of the graph ranges.
func (g Graph) Ranges() []Range {
	out := make([]Range, RangeCount)
	copy(out, g.ranges[:])
	return out
}

// Domain returns the inclusive level domain covered by the graph.
func (g Graph) Domain() (lo, hi float64) {
	return g.ranges[0].LeftThreshold, g.ranges[RangeCount-1].RightThreshold
}

// Evaluate returns the multiplier for level.
// Levels outside Domain are rejected with ErrLevelOutOfDomain.
func (g Graph) Evaluate(level float64) (float64, error) {
	lo, hi := g.Domain()
	if math.IsNaN(level) || level < lo || level > hi {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrLevelOutOfDomain, level, lo, hi)
	}
	for _, r := range g.ranges {
		if level <= r.RightThreshold {
			return r.evaluate(level), nil
		}
	}
	// unreachable: level <= hi == last right threshold
	return g.ranges[RangeCount-1].RightCoef, nil
}

func (r Range) evaluate(level float64) float64 {
	// Thresholds return the stored coefficient exactly.
	switch level {
	case r.LeftThreshold:
		return r.LeftCoef
	case r.RightThreshold:
		return r.RightCoef
	}

	ratio := (level - r.LeftThreshold) / (r.RightThreshold - r.LeftThreshold)

	var growth float64
	if r.Exponent > 0 {
		growth = math.Pow(ratio, r.Exponent)
	} else {
		growth = 1 - math.Pow(1-ratio, math.Abs(r.Exponent))
	}

	return r.LeftCoef + (r.RightCoef-r.LeftCoef)*growth
}

// Expand pre-computes the multiplier for every integer level in [0, maxLevel].
// Levels below the first threshold clamp to the first coefficient, levels
// past the last threshold repeat the final coefficient.
func (g Graph) Expand(maxLevel int) Table {
	maxLevel = max(maxLevel, 0)
	lo, hi := g.Domain()

	values := make([]float64, maxLevel+1)
	for level := range values {
		lvl := float64(level)
		switch {
		case lvl < lo:
			values[level] = g.ranges[0].LeftCoef
		case lvl > hi:
			values[level] = g.ranges[RangeCount-1].RightCoef
		default:
			// In domain by construction.
			v, _ := g.Evaluate(lvl)
			values[level] = v
		}
	}
	return Table{values: values}
}
