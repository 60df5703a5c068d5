// Package effect turns raw effect parameter rows into a canonical list of
// gameplay modifiers.
//
// Pipeline:
//  1. Synthesizer reads a RawRow field by field using the Registry
//     (field name → FieldDescriptor), attaches conditions, tick interval and
//     PvP value, and unions the hardcoded exception Effects.
//  2. Aggregate groups Effects that differ only by Attribute and collapses
//     known attribute sets ("Strike/Slash/Pierce/Standard Absorption" →
//     "Physical Absorption").
package effect

import (
	"encoding/binary"
	"math"
	"slices"

	"golang.org/x/crypto/blake2b"
)

// ValueModel defines how Value is applied to the base quantity.
type ValueModel string

const (
	Multiplicative ValueModel = "multiplicative"
	Additive       ValueModel = "additive"
)

// Polarity tells whether increasing the value is beneficial.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
	Neutral  Polarity = "neutral"
)

// Flip returns the opposite polarity. Neutral never flips.
func (p Polarity) Flip() Polarity {
	switch p {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return p
	}
}

// Effect is a single gameplay modifier.
type Effect struct {
	Attribute    Attribute  `json:"attribute"`
	Value        float64    `json:"value"`
	Model        ValueModel `json:"model"`
	Polarity     Polarity   `json:"type"`
	Conditions   []string   `json:"conditions,omitempty"`
	TickInterval *float64   `json:"tick_interval,omitempty"`
	ValuePvP     *float64   `json:"value_pvp,omitempty"`
}

// WithAttribute returns a deep copy of e with a different attribute.
func (e Effect) WithAttribute(attr Attribute) Effect {
	out := e
	out.Attribute = attr
	out.Conditions = slices.Clone(e.Conditions)
	if e.TickInterval != nil {
		v := *e.TickInterval
		out.TickInterval = &v
	}
	if e.ValuePvP != nil {
		v := *e.ValuePvP
		out.ValuePvP = &v
	}
	return out
}

// Key identifies an aggregation group.
type Key [blake2b.Size256]byte

// Key returns the structural hash of every field except Attribute.
// Two Effects with equal keys differ at most by attribute.
func (e Effect) Key() Key {
	buf := make([]byte, 0, 64)
	buf = appendFloat(buf, e.Value)
	buf = appendString(buf, string(e.Model))
	buf = appendString(buf, string(e.Polarity))

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(e.Conditions)))
	for _, c := range e.Conditions {
		buf = appendString(buf, c)
	}

	buf = appendOptional(buf, e.TickInterval)
	buf = appendOptional(buf, e.ValuePvP)

	return blake2b.Sum256(buf)
}

func appendFloat(buf []byte, v float64) []byte {
	// -0 and +0 hash alike.
	if v == 0 {
		v = 0
	}
	return binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
}

func appendString(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func appendOptional(buf []byte, v *float64) []byte {
	if v == nil {
		return append(buf, 0)
	}
	return appendFloat(append(buf, 1), *v)
}

// floatPtr stores v with negative zero folded to zero.
func floatPtr(v float64) *float64 {
	if v == 0 {
		v = 0
	}
	return &v
}
