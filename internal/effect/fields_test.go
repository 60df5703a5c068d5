package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_UniqueFields(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, len(defaultFields), r.Len())

	for _, d := range r.Fields() {
		assert.NotEmpty(t, d.Attribute, d.Field)
		assert.Contains(t, []ValueModel{Multiplicative, Additive}, d.Model, d.Field)
		assert.Contains(t, []Polarity{Positive, Negative, Neutral}, d.Polarity, d.Field)
	}
}

func TestNewRegistry_Duplicate(t *testing.T) {
	_, err := NewRegistry(
		mul("maxHpRate", MaximumHealth, Positive),
		add("maxHpRate", Vigor, Positive),
	)
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestRegistry_Override(t *testing.T) {
	base := DefaultRegistry()
	over := base.Override(
		add("maxHpRate", Vigor, Neutral),
		add("newField", Stealth, Positive),
	)

	d, ok := over.Lookup("maxHpRate")
	require.True(t, ok)
	assert.Equal(t, Vigor, d.Attribute)
	assert.Equal(t, base.Len()+1, over.Len())

	// The base registry is untouched.
	d, ok = base.Lookup("maxHpRate")
	require.True(t, ok)
	assert.Equal(t, MaximumHealth, d.Attribute)
	_, ok = base.Lookup("newField")
	assert.False(t, ok)
}

func TestFieldDescriptor_Polarity(t *testing.T) {
	tests := []struct {
		name  string
		desc  FieldDescriptor
		value float64
		want  Polarity
	}{
		{"multiplicative above default", mul("f", MaximumHealth, Positive), 1.1, Positive},
		{"multiplicative below default", mul("f", MaximumHealth, Positive), 0.9, Negative},
		{"negative base below default", mul("f", SlashAbsorption, Negative), 0.8, Positive},
		{"additive below zero", add("f", Vigor, Positive), -5, Negative},
		{"neutral never flips", add("f", Vigor, Neutral), -5, Neutral},
		{"parsed default", mul("f", HealthPoints, Positive).withParser(InversePercentage, 0), 0.9, Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.desc.polarityFor(tt.value))
		})
	}
}
