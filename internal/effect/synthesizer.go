package effect

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
)

// Synthesizer converts raw rows into Effects.
// It holds the whole table so that row references can be resolved.
// Read-only after construction; safe for concurrent use.
type Synthesizer struct {
	registry *Registry
	rows     map[int]RawRow
}

// NewSynthesizer indexes rows by their Index.
func NewSynthesizer(registry *Registry, rows []RawRow) (*Synthesizer, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}
	s := &Synthesizer{
		registry: registry,
		rows:     make(map[int]RawRow, len(rows)),
	}
	for _, row := range rows {
		if _, ok := s.rows[row.Index]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRow, row.Index)
		}
		s.rows[row.Index] = row
	}
	return s, nil
}

// Row returns the row stored under index.
func (s *Synthesizer) Row(index int) (RawRow, bool) {
	row, ok := s.rows[index]
	return row, ok
}

// Indices returns every row index in ascending order.
func (s *Synthesizer) Indices() []int {
	out := make([]int, 0, len(s.rows))
	for idx := range s.rows {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// SynthesizeIndex synthesizes the row stored under index.
func (s *Synthesizer) SynthesizeIndex(index int) ([]Effect, error) {
	row, ok := s.rows[index]
	if !ok {
		return nil, fmt.Errorf("%w: row %d", ErrMissingReference, index)
	}
	return s.Synthesize(row)
}

// Synthesize returns every Effect described by row: field-derived Effects,
// exception Effects and the Effects of referenced rows, in that order.
// Any configuration or reference error aborts the row.
func (s *Synthesizer) Synthesize(row RawRow) ([]Effect, error) {
	conditions, err := rowConditions(row)
	if err != nil {
		return nil, err
	}

	effects, err := s.direct(row, conditions)
	if err != nil {
		return nil, err
	}

	refs, err := s.references(row)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		target := s.rows[ref.target]
		refEffects, err := s.direct(target, nil)
		if err != nil {
			return nil, fmt.Errorf("resolving %s of row %d: %w", ref.field, row.Index, err)
		}
		inherited := mergeConditions(conditions, ref.condition)
		for _, e := range refEffects {
			e.Conditions = slices.Clone(inherited)
			effects = append(effects, e)
		}
	}

	slog.Debug("synthesized row", "row", row.Index, "effects", len(effects), "references", len(refs))
	return effects, nil
}

// direct returns field-derived and exception Effects without following references.
func (s *Synthesizer) direct(row RawRow, conditions []string) ([]Effect, error) {
	tick, err := tickInterval(row)
	if err != nil {
		return nil, err
	}

	var effects []Effect
	for _, name := range s.registry.order {
		d := s.registry.fields[name]

		raw, ok, err := row.Float(name)
		if err != nil {
			return nil, err
		}
		if !ok || raw == d.Default {
			continue
		}

		value := d.parse(raw)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &ConfigError{Row: row.Index, Field: name, Value: row.Fields[name], Err: ErrInvalidValue}
		}

		e := Effect{
			Attribute:  d.Attribute,
			Value:      value,
			Model:      d.Model,
			Polarity:   d.polarityFor(value),
			Conditions: mergeConditions(conditions, d.Conditions...),
		}
		if tick != nil {
			e.TickInterval = floatPtr(*tick)
		}

		pvp, err := pvpValue(row, d)
		if err != nil {
			return nil, err
		}
		if pvp != nil && *pvp != value {
			e.ValuePvP = pvp
		}

		effects = append(effects, e)
	}

	exc, err := exceptionEffects(row)
	if err != nil {
		return nil, err
	}
	return append(effects, exc...), nil
}

func exceptionEffects(row RawRow) ([]Effect, error) {
	var out []Effect
	if effects, ok := LookupException(ExceptionKey{Kind: ExceptionRow, ID: row.Index}); ok {
		out = append(out, effects...)
	}
	state, ok, err := row.Int(stateInfoField)
	if err != nil {
		return nil, err
	}
	if ok && state != 0 {
		if effects, ok := LookupException(ExceptionKey{Kind: ExceptionStateInfo, ID: state}); ok {
			out = append(out, effects...)
		}
	}
	return out, nil
}

// rowConditions collects the trigger and HP threshold conditions of a row.
func rowConditions(row RawRow) ([]string, error) {
	var conditions []string

	for _, tf := range triggerFields {
		code, ok, err := row.Int(tf.field)
		if err != nil {
			return nil, err
		}
		if !ok || code == 0 || code == -1 {
			continue
		}
		// Unmapped codes are states with no player-facing condition.
		cond, known := tf.conditions[code]
		if !known {
			slog.Debug("unknown trigger value", "row", row.Index, "field", tf.field, "value", code)
			continue
		}
		conditions = append(conditions, cond)
	}

	for _, hf := range hpThresholdFields {
		v, ok, err := row.Float(hf.field)
		if err != nil {
			return nil, err
		}
		if !ok || v == hf.noValue {
			continue
		}
		conditions = append(conditions, hf.condition(v))
	}

	return mergeConditions(conditions), nil
}

func tickInterval(row RawRow) (*float64, error) {
	v, ok, err := row.Float(tickIntervalField)
	if err != nil {
		return nil, err
	}
	if !ok || v <= 0 {
		return nil, nil
	}
	return floatPtr(v), nil
}

func pvpValue(row RawRow, d FieldDescriptor) (*float64, error) {
	field, ok := pvpFields[d.Field]
	if !ok {
		return nil, nil
	}
	raw, ok, err := row.Float(field)
	if err != nil || !ok {
		return nil, err
	}
	return floatPtr(d.parse(raw)), nil
}

type resolvedReference struct {
	field     string
	target    int
	condition string
}

// references resolves every used reference slot of row.
func (s *Synthesizer) references(row RawRow) ([]resolvedReference, error) {
	var (
		refs    []resolvedReference
		offsets int
	)
	for _, rf := range referenceFields {
		target, ok, err := row.Int(rf.field)
		if err != nil {
			return nil, err
		}
		if !ok || noReference(target) {
			continue
		}

		if rf.kind == ByOffset {
			offsets++
			if offsets > 1 {
				return nil, fmt.Errorf("row %d: %w", row.Index, ErrMultipleOffsets)
			}
			target += row.Index
		}

		if _, ok := s.rows[target]; !ok {
			return nil, &ReferenceError{Row: row.Index, Field: rf.field, Target: target}
		}
		if target == row.Index {
			continue
		}
		refs = append(refs, resolvedReference{field: rf.field, target: target, condition: rf.condition})
	}
	return refs, nil
}

// mergeConditions returns the sorted, deduplicated union of base and extra.
// Empty strings are dropped. Returns nil when there is nothing left.
func mergeConditions(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	for _, c := range base {
		if c != "" {
			out = append(out, c)
		}
	}
	for _, c := range extra {
		if c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}
