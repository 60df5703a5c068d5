package effect

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidValue is wrapped by ConfigError when a field fails to parse.
	ErrInvalidValue = errors.New("invalid field value")
	// ErrMissingReference is wrapped by ReferenceError.
	ErrMissingReference = errors.New("reference outside parameter table")
	// ErrMultipleOffsets is returned when a row carries more than one offset reference.
	ErrMultipleOffsets = errors.New("row carries more than one offset reference")
	// ErrDuplicateRow is returned when two rows share an index.
	ErrDuplicateRow = errors.New("duplicate row index")
)

// RawRow is one parameter row: field name → raw string value.
type RawRow struct {
	Index  int               `yaml:"index"`
	Fields map[string]string `yaml:"fields"`
}

// Get returns a trimmed field value. Empty values count as absent.
func (r RawRow) Get(field string) (string, bool) {
	v, ok := r.Fields[field]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Float parses a field as a number. ok is false when the field is absent.
func (r RawRow) Float(field string) (value float64, ok bool, err error) {
	raw, ok := r.Get(field)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, &ConfigError{Row: r.Index, Field: field, Value: raw, Err: ErrInvalidValue}
	}
	return v, true, nil
}

// Int parses a categorical or identifier field. Values must be integral;
// "12" and "12.0" are accepted, "12.5" is a ConfigError.
func (r RawRow) Int(field string) (value int, ok bool, err error) {
	v, ok, err := r.Float(field)
	if err != nil || !ok {
		return 0, ok, err
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		raw, _ := r.Get(field)
		return 0, true, &ConfigError{Row: r.Index, Field: field, Value: raw, Err: ErrInvalidValue}
	}
	return int(v), true, nil
}

// ConfigError reports a field whose value cannot be decoded.
// It aborts generation of the whole row.
type ConfigError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("row %d: field %s=%q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ReferenceError reports a row reference pointing outside the table.
type ReferenceError struct {
	Row    int
	Field  string
	Target int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("row %d: field %s references missing row %d", e.Row, e.Field, e.Target)
}

func (e *ReferenceError) Unwrap() error {
	return ErrMissingReference
}
