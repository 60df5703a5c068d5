package effect

import (
	"bytes"
	"cmp"
	"slices"
)

// AggregationRule collapses a full set of base attributes into one
// effective attribute.
type AggregationRule struct {
	Base      []Attribute
	Effective Attribute
}

// aggregationRules are applied in order; later rules may consume attributes
// produced by earlier ones.
var aggregationRules = []AggregationRule{
	{[]Attribute{StandardAbsorption, StrikeAbsorption, SlashAbsorption, PierceAbsorption}, PhysicalAbsorption},
	{[]Attribute{MagicAbsorption, FireAbsorption, LightningAbsorption, HolyAbsorption}, ElementalAbsorption},
	{[]Attribute{PhysicalAbsorption, ElementalAbsorption}, Absorption},

	{[]Attribute{StandardAttackPower, StrikeAttackPower, SlashAttackPower, PierceAttackPower}, PhysicalAttackPower},
	{[]Attribute{MagicAttackPower, FireAttackPower, LightningAttackPower, HolyAttackPower}, ElementalAttackPower},
	{[]Attribute{PhysicalAttackPower, ElementalAttackPower}, AttackPower},

	{[]Attribute{PoisonResistance, ScarletRotResistance}, Immunity},
	{[]Attribute{BleedResistance, FrostbiteResistance}, Robustness},
	{[]Attribute{SleepResistance, MadnessResistance}, Focus},
	{[]Attribute{DeathBlightResistance}, Vitality},
	{[]Attribute{Immunity, Robustness, Focus, Vitality}, Resistance},

	{[]Attribute{Vigor, Mind, Endurance, Strength, Dexterity, Intelligence, Faith, Arcane}, AllAttributes},

	{[]Attribute{SorceryFocusCost, IncantationFocusCost, PyromancyFocusCost}, SpellFocusCost},
	{[]Attribute{SorceryStaminaCost, IncantationStaminaCost}, SpellStaminaCost},
}

// AggregationRules returns a copy of the rules in priority order.
func AggregationRules() []AggregationRule {
	out := make([]AggregationRule, len(aggregationRules))
	for i, r := range aggregationRules {
		out[i] = AggregationRule{Base: slices.Clone(r.Base), Effective: r.Effective}
	}
	return out
}

type group struct {
	proto      Effect
	attributes map[Attribute]struct{}
}

// Aggregate groups Effects that differ only by attribute, collapses attribute
// sets with the aggregation rules and returns one Effect per surviving
// attribute. Output is sorted by attribute name, then by group key, so it
// does not depend on input order. Aggregate is idempotent.
func Aggregate(effects []Effect) []Effect {
	groups := make(map[Key]*group, len(effects))
	for _, e := range effects {
		k := e.Key()
		g, ok := groups[k]
		if !ok {
			g = &group{proto: e, attributes: make(map[Attribute]struct{}, 4)}
			if g.proto.Value == 0 {
				g.proto.Value = 0 // drop negative zero
			}
			if g.proto.ValuePvP != nil {
				g.proto.ValuePvP = floatPtr(*g.proto.ValuePvP)
			}
			if g.proto.TickInterval != nil {
				g.proto.TickInterval = floatPtr(*g.proto.TickInterval)
			}
			groups[k] = g
		}
		g.attributes[e.Attribute] = struct{}{}
	}

	out := make([]Effect, 0, len(effects))
	for _, g := range groups {
		collapse(g.attributes)
		for attr := range g.attributes {
			out = append(out, g.proto.WithAttribute(attr))
		}
	}

	slices.SortFunc(out, func(a, b Effect) int {
		if c := cmp.Compare(a.Attribute, b.Attribute); c != 0 {
			return c
		}
		ka, kb := a.Key(), b.Key()
		return bytes.Compare(ka[:], kb[:])
	})
	return out
}

// collapse applies the rules until no rule matches.
func collapse(attrs map[Attribute]struct{}) {
	for changed := true; changed; {
		changed = false
		for _, rule := range aggregationRules {
			if !containsAll(attrs, rule.Base) {
				continue
			}
			for _, a := range rule.Base {
				delete(attrs, a)
			}
			attrs[rule.Effective] = struct{}{}
			changed = true
		}
	}
}

func containsAll(attrs map[Attribute]struct{}, base []Attribute) bool {
	for _, a := range base {
		if _, ok := attrs[a]; !ok {
			return false
		}
	}
	return true
}
