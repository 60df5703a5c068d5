package data

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/EldenRingDatabase/erdb-sub000/internal/effect"
)

// effectRowsFile is the on-disk layout of an effect parameter table.
// Fields optionally override or extend the built-in field registry.
type effectRowsFile struct {
	Rows   []effect.RawRow `yaml:"rows"`
	Fields []fieldDef      `yaml:"fields"`
}

type fieldDef struct {
	Field      string   `yaml:"field"`
	Attribute  string   `yaml:"attribute"`
	Model      string   `yaml:"model"`
	Polarity   string   `yaml:"polarity"`
	Default    *float64 `yaml:"default"`
	Parser     string   `yaml:"parser"`
	Conditions []string `yaml:"conditions"`
}

// EffectTable is a loaded effect parameter table and the registry to read it with.
type EffectTable struct {
	Rows     []effect.RawRow
	Registry *effect.Registry
}

// LoadEffectRowsFile reads an effect parameter table from a YAML file.
func LoadEffectRowsFile(path string) (*EffectTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening effect rows %s: %w", path, err)
	}
	defer f.Close()

	table, err := LoadEffectRows(f)
	if err != nil {
		return nil, fmt.Errorf("loading effect rows %s: %w", path, err)
	}
	return table, nil
}

// LoadEffectRows decodes an effect parameter table from YAML.
func LoadEffectRows(r io.Reader) (*EffectTable, error) {
	var file effectRowsFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding effect rows: %w", err)
	}

	overrides := make([]effect.FieldDescriptor, 0, len(file.Fields))
	seen := make(map[string]bool, len(file.Fields))
	for _, fd := range file.Fields {
		d, err := fd.descriptor()
		if err != nil {
			return nil, err
		}
		if seen[d.Field] {
			return nil, fmt.Errorf("%w: %s", effect.ErrDuplicateField, d.Field)
		}
		seen[d.Field] = true
		overrides = append(overrides, d)
	}

	registry := effect.DefaultRegistry()
	if len(overrides) > 0 {
		registry = registry.Override(overrides...)
	}

	slog.Info("loaded effect rows", "rows", len(file.Rows), "field_overrides", len(overrides))
	return &EffectTable{Rows: file.Rows, Registry: registry}, nil
}

func (fd fieldDef) descriptor() (effect.FieldDescriptor, error) {
	d := effect.FieldDescriptor{
		Field:      fd.Field,
		Attribute:  effect.Attribute(fd.Attribute),
		Model:      effect.ValueModel(fd.Model),
		Polarity:   effect.Polarity(fd.Polarity),
		Conditions: fd.Conditions,
	}
	if d.Field == "" || d.Attribute == "" {
		return d, fmt.Errorf("field override needs field and attribute: %+v", fd)
	}

	switch d.Model {
	case effect.Multiplicative:
		d.Default = 1
	case effect.Additive:
		d.Default = 0
	default:
		return d, fmt.Errorf("field %s: unknown model %q", fd.Field, fd.Model)
	}
	switch d.Polarity {
	case effect.Positive, effect.Negative, effect.Neutral:
	case "":
		d.Polarity = effect.Positive
	default:
		return d, fmt.Errorf("field %s: unknown polarity %q", fd.Field, fd.Polarity)
	}

	if fd.Parser != "" {
		p, ok := effect.LookupParser(fd.Parser)
		if !ok {
			return d, fmt.Errorf("field %s: unknown parser %q", fd.Field, fd.Parser)
		}
		d.Parser = p
		// Parsed fields store the raw no-op value, which is 0 for every parser.
		d.Default = 0
	}
	if fd.Default != nil {
		d.Default = *fd.Default
	}
	return d, nil
}
