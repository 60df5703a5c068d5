package effect

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(index int, fields map[string]string) RawRow {
	return RawRow{Index: index, Fields: fields}
}

func newTestSynthesizer(t *testing.T, rows ...RawRow) *Synthesizer {
	t.Helper()
	s, err := NewSynthesizer(DefaultRegistry(), rows)
	require.NoError(t, err)
	return s
}

func TestSynthesize_NoOpDefault(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{"changeHpRate": "0"}))
	require.NoError(t, err)
	assert.Empty(t, effects)
}

func TestSynthesize_InversePercentageHealth(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{"changeHpRate": "-10"}))
	require.NoError(t, err)
	require.Len(t, effects, 1)

	e := effects[0]
	assert.Equal(t, HealthPoints, e.Attribute)
	assert.Equal(t, Positive, e.Polarity)
	assert.Equal(t, Multiplicative, e.Model)
	assert.InDelta(t, 1.1, e.Value, 1e-12)
	assert.Nil(t, e.Conditions)
	assert.Nil(t, e.TickInterval)
	assert.Nil(t, e.ValuePvP)
}

func TestSynthesize_DrainIsNegative(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{"changeHpRate": "5", "changeHpPoint": "20"}))
	require.NoError(t, err)
	require.Len(t, effects, 2)

	for _, e := range effects {
		assert.Equal(t, HealthPoints, e.Attribute)
		assert.Equal(t, Negative, e.Polarity)
	}
	assert.InDelta(t, 0.95, effects[0].Value, 1e-12)
	assert.Equal(t, -20.0, effects[1].Value)
	assert.Equal(t, Additive, effects[1].Model)
}

func TestSynthesize_ConfigError(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(7, map[string]string{"maxHpRate": "1.1", "maxMpRate": "lots"}))
	require.Error(t, err)
	assert.Nil(t, effects)
	assert.ErrorIs(t, err, ErrInvalidValue)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 7, cfgErr.Row)
	assert.Equal(t, "maxMpRate", cfgErr.Field)
	assert.Equal(t, "lots", cfgErr.Value)
}

func TestSynthesize_EmptyValueIsAbsent(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{"maxHpRate": "  "}))
	require.NoError(t, err)
	assert.Empty(t, effects)
}

func TestSynthesize_Conditions(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{
		"maxHpRate":                        "1.1",
		"conditionHp":                      "30",
		"invocationConditionsStateChange1": "12",
		"invocationConditionsStateChange2": "12",
		"invocationConditionsStateChange3": "999",
	}))
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, []string{"HP below 30%", "On Critical Hit"}, effects[0].Conditions)
}

func TestSynthesize_FixedConditions(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{"hearingSearchEnemyRate": "1.5", "isNightOnly": "1"}))
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, []string{"At Night", "Hearing"}, effects[0].Conditions)
}

func TestSynthesize_TickInterval(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{"changeHpPoint": "-5", "motionInterval": "2"}))
	require.NoError(t, err)
	require.Len(t, effects, 1)

	e := effects[0]
	assert.Equal(t, 5.0, e.Value)
	assert.Equal(t, Positive, e.Polarity)
	require.NotNil(t, e.TickInterval)
	assert.Equal(t, 2.0, *e.TickInterval)
}

func TestSynthesize_PvPValue(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{
		"physicsAttackPowerRate":    "1.2",
		"pvpPhysicsAttackPowerRate": "1.1",
		"magicAttackPowerRate":      "1.2",
		"pvpMagicAttackPowerRate":   "1.2",
	}))
	require.NoError(t, err)
	require.Len(t, effects, 2)

	require.NotNil(t, effects[0].ValuePvP)
	assert.Equal(t, 1.1, *effects[0].ValuePvP)
	assert.Nil(t, effects[1].ValuePvP, "equal PvP value is not an alternative")
}

func TestSynthesize_PvPNegatedZero(t *testing.T) {
	s := newTestSynthesizer(t)

	effects, err := s.Synthesize(row(1, map[string]string{"changeHpPoint": "20", "pvpChangeHpPoint": "0"}))
	require.NoError(t, err)
	require.Len(t, effects, 1)
	require.NotNil(t, effects[0].ValuePvP)
	assert.False(t, math.Signbit(*effects[0].ValuePvP), "PvP value must not be negative zero")
}

func TestSynthesize_MalformedCategoricalValues(t *testing.T) {
	s := newTestSynthesizer(t, row(100, map[string]string{"maxHpRate": "1.1"}))

	tests := []struct {
		name  string
		field string
		value string
	}{
		{"non-numeric trigger", "invocationConditionsStateChange1", "abc"},
		{"fractional trigger", "invocationConditionsStateChange1", "10.5"},
		{"non-numeric boolean trigger", "isNightOnly", "yes"},
		{"fractional identifier reference", "cycleOccurrenceSpEffectId", "100.9"},
		{"fractional offset reference", "onHitEffectOffset", "0.5"},
		{"unparsable state info", "stateInfo", "4x7"},
		{"fractional state info", "stateInfo", "47.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Synthesize(row(1, map[string]string{"maxStaminaRate": "1.1", tt.field: tt.value}))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, 1, cfgErr.Row)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Equal(t, tt.value, cfgErr.Value)
		})
	}
}

func TestSynthesize_CategoricalValues(t *testing.T) {
	s := newTestSynthesizer(t, row(100, map[string]string{"maxHpRate": "1.1"}))

	tests := []struct {
		name   string
		fields map[string]string
		want   []string
	}{
		{"integral float trigger", map[string]string{"invocationConditionsStateChange1": "10.0"}, []string{"While Two-Handing"}},
		{"unmapped trigger code is ignored", map[string]string{"invocationConditionsStateChange1": "99"}, nil},
		{"unused trigger slot", map[string]string{"invocationConditionsStateChange1": "-1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fields["maxStaminaRate"] = "1.1"
			effects, err := s.Synthesize(row(1, tt.fields))
			require.NoError(t, err)
			require.Len(t, effects, 1)
			assert.Equal(t, tt.want, effects[0].Conditions)
		})
	}

	t.Run("integral float reference", func(t *testing.T) {
		effects, err := s.Synthesize(row(1, map[string]string{"cycleOccurrenceSpEffectId": "100.0"}))
		require.NoError(t, err)
		require.Len(t, effects, 1)
		assert.Equal(t, MaximumHealth, effects[0].Attribute)
	})
}

func TestSynthesize_Exceptions(t *testing.T) {
	s := newTestSynthesizer(t)

	t.Run("state info unioned with fields", func(t *testing.T) {
		effects, err := s.Synthesize(row(1, map[string]string{"maxStaminaRate": "1.1", "stateInfo": "47"}))
		require.NoError(t, err)
		require.Len(t, effects, 2)
		assert.Equal(t, MaximumStamina, effects[0].Attribute)
		assert.Equal(t, Noise, effects[1].Attribute)
	})

	t.Run("row index", func(t *testing.T) {
		effects, err := s.Synthesize(row(3350, nil))
		require.NoError(t, err)
		require.Len(t, effects, 1)
		assert.Equal(t, ItemDiscovery, effects[0].Attribute)
		assert.Equal(t, 50.0, effects[0].Value)
	})

	t.Run("lookup returns copies", func(t *testing.T) {
		a, ok := LookupException(ExceptionKey{ExceptionStateInfo, 71})
		require.True(t, ok)
		a[0].Conditions[0] = "mutated"

		b, _ := LookupException(ExceptionKey{ExceptionStateInfo, 71})
		assert.Equal(t, "On Kill", b[0].Conditions[0])
	})
}

func TestSynthesize_References(t *testing.T) {
	s := newTestSynthesizer(t,
		row(100, map[string]string{"maxHpRate": "1.05", "applyIdOnGetSoul": "200", "conditionHp": "50"}),
		row(200, map[string]string{"changeHpRate": "-2", "conditionHp": "10", "cycleOccurrenceSpEffectId": "300"}),
		row(300, map[string]string{"maxMpRate": "1.5"}),
		row(400, map[string]string{"onHitEffectOffset": "5"}),
		row(405, map[string]string{"slashAttackPowerRate": "1.1"}),
	)

	t.Run("identifier inherits referencing conditions", func(t *testing.T) {
		effects, err := s.SynthesizeIndex(100)
		require.NoError(t, err)
		require.Len(t, effects, 2, "one level of references only")

		assert.Equal(t, MaximumHealth, effects[0].Attribute)
		assert.Equal(t, []string{"HP below 50%"}, effects[0].Conditions)

		assert.Equal(t, HealthPoints, effects[1].Attribute)
		assert.Equal(t, []string{"HP below 50%", "On Kill"}, effects[1].Conditions)
	})

	t.Run("offset", func(t *testing.T) {
		effects, err := s.SynthesizeIndex(400)
		require.NoError(t, err)
		require.Len(t, effects, 1)
		assert.Equal(t, SlashAttackPower, effects[0].Attribute)
		assert.Equal(t, []string{"On Hit"}, effects[0].Conditions)
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := s.Synthesize(row(500, map[string]string{"cycleOccurrenceSpEffectId": "999"}))
		assert.ErrorIs(t, err, ErrMissingReference)

		var refErr *ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, 999, refErr.Target)
		assert.Equal(t, "cycleOccurrenceSpEffectId", refErr.Field)
	})

	t.Run("multiple offsets", func(t *testing.T) {
		_, err := s.Synthesize(row(400, map[string]string{"onHitEffectOffset": "5", "chainEffectOffset": "5"}))
		assert.ErrorIs(t, err, ErrMultipleOffsets)
	})

	t.Run("unknown index", func(t *testing.T) {
		_, err := s.SynthesizeIndex(12345)
		assert.ErrorIs(t, err, ErrMissingReference)
	})
}

func TestNewSynthesizer_DuplicateRow(t *testing.T) {
	_, err := NewSynthesizer(nil, []RawRow{row(1, nil), row(1, nil)})
	assert.ErrorIs(t, err, ErrDuplicateRow)
}

func TestSynthesizer_Indices(t *testing.T) {
	s := newTestSynthesizer(t, row(3, nil), row(1, nil), row(2, nil))
	assert.Equal(t, []int{1, 2, 3}, s.Indices())
}
