package effect

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateField is returned when two descriptors share a field name.
var ErrDuplicateField = errors.New("duplicate field descriptor")

// FieldDescriptor describes how one raw field maps onto an Effect.
type FieldDescriptor struct {
	Field      string
	Attribute  Attribute
	Model      ValueModel
	Polarity   Polarity
	Default    float64 // raw no-op value, the field is skipped when equal
	Parser     Parser  // nil means Identity
	Conditions []string
}

// parse normalizes a raw value.
func (d FieldDescriptor) parse(raw float64) float64 {
	if d.Parser == nil {
		return raw
	}
	return d.Parser(raw)
}

// polarityFor returns the effective polarity for a normalized value:
// the base polarity flips once the value drops below the normalized default.
func (d FieldDescriptor) polarityFor(value float64) Polarity {
	if value < d.parse(d.Default) {
		return d.Polarity.Flip()
	}
	return d.Polarity
}

// mul declares a multiplicative field with no-op default 1.
func mul(field string, attr Attribute, polarity Polarity) FieldDescriptor {
	return FieldDescriptor{Field: field, Attribute: attr, Model: Multiplicative, Polarity: polarity, Default: 1}
}

// add declares an additive field with no-op default 0.
func add(field string, attr Attribute, polarity Polarity) FieldDescriptor {
	return FieldDescriptor{Field: field, Attribute: attr, Model: Additive, Polarity: polarity, Default: 0}
}

func (d FieldDescriptor) withParser(p Parser, rawDefault float64) FieldDescriptor {
	d.Parser = p
	d.Default = rawDefault
	return d
}

func (d FieldDescriptor) when(conditions ...string) FieldDescriptor {
	d.Conditions = conditions
	return d
}

// Registry is an ordered, read-only set of field descriptors.
type Registry struct {
	order  []string
	fields map[string]FieldDescriptor
}

// NewRegistry builds a registry preserving declaration order.
func NewRegistry(descriptors ...FieldDescriptor) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(descriptors)),
		fields: make(map[string]FieldDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, ok := r.fields[d.Field]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, d.Field)
		}
		r.order = append(r.order, d.Field)
		r.fields[d.Field] = d
	}
	return r, nil
}

// Lookup returns the descriptor for a field.
func (r *Registry) Lookup(field string) (FieldDescriptor, bool) {
	d, ok := r.fields[field]
	return d, ok
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.order)
}

// Fields returns the descriptors in declaration order.
func (r *Registry) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

// Override returns a new registry where descriptors replace existing fields
// of the same name and unknown fields are appended.
func (r *Registry) Override(descriptors ...FieldDescriptor) *Registry {
	out := &Registry{
		order:  slices.Clone(r.order),
		fields: make(map[string]FieldDescriptor, len(r.fields)+len(descriptors)),
	}
	for k, v := range r.fields {
		out.fields[k] = v
	}
	for _, d := range descriptors {
		if _, ok := out.fields[d.Field]; !ok {
			out.order = append(out.order, d.Field)
		}
		out.fields[d.Field] = d
	}
	return out
}

// DefaultRegistry returns the registry of every known effect field.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultFields...)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultFields = []FieldDescriptor{
	// Pools
	mul("maxHpRate", MaximumHealth, Positive),
	mul("maxMpRate", MaximumFocus, Positive),
	mul("maxStaminaRate", MaximumStamina, Positive),
	mul("changeHpRate", HealthPoints, Positive).withParser(InversePercentage, 0),
	add("changeHpPoint", HealthPoints, Positive).withParser(Negated, 0),
	mul("changeMpRate", FocusPoints, Positive).withParser(InversePercentage, 0),
	add("changeMpPoint", FocusPoints, Positive).withParser(Negated, 0),
	mul("changeStaminaRate", StaminaPoints, Positive).withParser(InversePercentage, 0),
	add("changeStaminaPoint", StaminaPoints, Positive).withParser(Negated, 0),
	mul("hpRecoverRate", HealthRestoration, Positive),

	// Attributes
	add("addLifeForceStatus", Vigor, Positive),
	add("addWillpowerStatus", Mind, Positive),
	add("addEndureStatus", Endurance, Positive),
	add("addStrengthStatus", Strength, Positive),
	add("addDexterityStatus", Dexterity, Positive),
	add("addMagicStatus", Intelligence, Positive),
	add("addFaithStatus", Faith, Positive),
	add("addLuckStatus", Arcane, Positive),

	// Damage taken, lower is better
	mul("neutralDamageCutRate", StandardAbsorption, Negative),
	mul("blowDamageCutRate", StrikeAbsorption, Negative),
	mul("slashDamageCutRate", SlashAbsorption, Negative),
	mul("thrustDamageCutRate", PierceAbsorption, Negative),
	mul("magicDamageCutRate", MagicAbsorption, Negative),
	mul("fireDamageCutRate", FireAbsorption, Negative),
	mul("thunderDamageCutRate", LightningAbsorption, Negative),
	mul("darkDamageCutRate", HolyAbsorption, Negative),

	// Damage dealt
	mul("physicsAttackPowerRate", PhysicalAttackPower, Positive),
	mul("neutralAttackPowerRate", StandardAttackPower, Positive),
	mul("blowAttackPowerRate", StrikeAttackPower, Positive),
	mul("slashAttackPowerRate", SlashAttackPower, Positive),
	mul("thrustAttackPowerRate", PierceAttackPower, Positive),
	mul("magicAttackPowerRate", MagicAttackPower, Positive),
	mul("fireAttackPowerRate", FireAttackPower, Positive),
	mul("thunderAttackPowerRate", LightningAttackPower, Positive),
	mul("darkAttackPowerRate", HolyAttackPower, Positive),
	mul("criticalDamageRate", CriticalDamage, Positive),

	// Status resistances
	add("registPoizonChangeRate", PoisonResistance, Positive),
	add("registDiseaseChangeRate", ScarletRotResistance, Positive),
	add("registBloodChangeRate", BleedResistance, Positive),
	add("registFreezeChangeRate", FrostbiteResistance, Positive),
	add("registSleepChangeRate", SleepResistance, Positive),
	add("registMadnessChangeRate", MadnessResistance, Positive),
	add("registCurseChangeRate", DeathBlightResistance, Positive),

	// Misc
	mul("toughnessDamageCutRate", Poise, Negative),
	mul("equipWeightChangeRate", EquipLoad, Positive).withParser(Percentage, 0),
	add("staminaRecoverChangeSpeed", StaminaRecoverySpeed, Positive),
	mul("haveSoulRate", RuneAcquisition, Positive),
	add("itemDropRate", ItemDiscovery, Positive),
	mul("fallDamageRate", FallDamage, Negative),
	mul("bowDistRate", BowRange, Positive).withParser(Percentage, 0),
	mul("guardStaminaCutRate", GuardBoost, Positive).withParser(Complement, 0),
	mul("guardDefFlickPowerRate", GuardedDamageNegation, Positive),
	mul("castingSpeedRate", CastingSpeed, Positive),
	mul("magicSubCategoryChange1", SorceryScaling, Positive),
	mul("magicSubCategoryChange2", IncantationScaling, Positive),
	mul("sightSearchEnemyRate", EnemyDetection, Positive),
	mul("hearingSearchEnemyRate", EnemyDetection, Positive).when("Hearing"),
	mul("grabityRate", Noise, Negative),
	mul("playerVisibilityRate", Visibility, Negative),
	add("stealthLevel", Stealth, Positive),
	mul("consumableDurationRate", ConsumableDuration, Positive),

	// Costs, higher is worse
	mul("magicConsumptionRate", SorceryFocusCost, Negative),
	mul("miracleConsumptionRate", IncantationFocusCost, Negative),
	mul("pyromancyConsumptionRate", PyromancyFocusCost, Negative),
	mul("artsConsumptionRate", SkillFocusCost, Negative),
	mul("artsStaminaConsumptionRate", SkillStaminaCost, Negative),
	mul("magicStaminaConsumptionRate", SorceryStaminaCost, Negative),
	mul("miracleStaminaConsumptionRate", IncantationStaminaCost, Negative),
}
