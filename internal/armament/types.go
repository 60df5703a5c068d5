package armament

import (
	"maps"
	"slices"

	"github.com/EldenRingDatabase/erdb-sub000/internal/correction"
)

// DamageType is a direct damage channel of an armament.
type DamageType string

const (
	Physical  DamageType = "physical"
	Magic     DamageType = "magic"
	Fire      DamageType = "fire"
	Lightning DamageType = "lightning"
	Holy      DamageType = "holy"
)

// DamageTypes lists damage types in output order.
var DamageTypes = []DamageType{Physical, Magic, Fire, Lightning, Holy}

// StatusType is a buildup channel dealt alongside direct damage.
type StatusType string

const (
	Poison      StatusType = "poison"
	ScarletRot  StatusType = "scarlet_rot"
	BloodLoss   StatusType = "bleed"
	Frostbite   StatusType = "frostbite"
	Sleep       StatusType = "sleep"
	Madness     StatusType = "madness"
	DeathBlight StatusType = "death_blight"
)

// StatusTypes lists status types in output order.
var StatusTypes = []StatusType{Poison, ScarletRot, BloodLoss, Frostbite, Sleep, Madness, DeathBlight}

// Attribute is a player attribute that armaments scale with.
type Attribute string

const (
	Strength     Attribute = "strength"
	Dexterity    Attribute = "dexterity"
	Intelligence Attribute = "intelligence"
	Faith        Attribute = "faith"
	Arcane       Attribute = "arcane"
)

// Attributes lists scaling attributes in evaluation order.
var Attributes = []Attribute{Strength, Dexterity, Intelligence, Faith, Arcane}

// AttributeValues is a player's attribute investment.
type AttributeValues map[Attribute]int

// Requirements are the minimum attribute values to wield an armament
// without penalty. Missing entries mean 0.
type Requirements map[Attribute]int

// AffinityProperties is the per-affinity parameter record of an armament.
type AffinityProperties struct {
	ReinforcementID        int                      `yaml:"reinforcement_id"`
	CorrectionAttackID     int                      `yaml:"correction_attack_id"`
	CorrectionCalcID       map[DamageType]int       `yaml:"correction_calc_id"`
	StatusCorrectionCalcID map[StatusType]int       `yaml:"status_correction_calc_id"`
	Damage                 map[DamageType]float64   `yaml:"damage"`
	Scaling                map[Attribute]float64    `yaml:"scaling"`
	Guard                  map[DamageType]float64   `yaml:"guard"`
	GuardBoost             float64                  `yaml:"guard_boost"`
	Resistance             map[StatusType]float64   `yaml:"resistance"`
	StatusEffects          map[StatusType]float64   `yaml:"status_effects"`
	StatusEffectOverlay    []map[StatusType]float64 `yaml:"status_effect_overlay"`
}

// Armament is one named armament with its affinities.
type Armament struct {
	Name         string                        `yaml:"name"`
	Requirements Requirements                  `yaml:"requirements"`
	Affinities   map[string]AffinityProperties `yaml:"affinities"`
}

// ReinforcementLevel holds the multipliers of one upgrade tier.
// Missing map entries default to a multiplier of 1.
type ReinforcementLevel struct {
	Damage     map[DamageType]float64 `yaml:"damage"`
	Scaling    map[Attribute]float64  `yaml:"scaling"`
	Guard      map[DamageType]float64 `yaml:"guard"`
	GuardBoost float64                `yaml:"guard_boost"`
	Resistance map[StatusType]float64 `yaml:"resistance"`
}

// CorrectionAttack tells, per damage type and attribute, whether the
// attribute scales the damage, an optional multiplier override and the
// scaling impact ratio.
type CorrectionAttack struct {
	Scaling  map[DamageType]map[Attribute]bool    `yaml:"scaling"`
	Override map[DamageType]map[Attribute]float64 `yaml:"override"`
	Ratio    map[DamageType]map[Attribute]float64 `yaml:"ratio"`
}

func (ca CorrectionAttack) scales(t DamageType, a Attribute) bool {
	return ca.Scaling[t][a]
}

func (ca CorrectionAttack) override(t DamageType, a Attribute) (float64, bool) {
	v, ok := ca.Override[t][a]
	return v, ok
}

func (ca CorrectionAttack) ratio(t DamageType, a Attribute) (float64, bool) {
	v, ok := ca.Ratio[t][a]
	return v, ok
}

// Tables bundles every read-only input a Calculator needs.
// Tables are shared between calculators and must not be mutated once in use.
type Tables struct {
	Armaments         map[string]Armament
	Reinforcements    map[int][]ReinforcementLevel
	CorrectionAttacks map[int]CorrectionAttack
	CorrectionGraphs  map[int]correction.Table
}

// Result is the computed value of one damage or status type.
type Result struct {
	Base    float64 `json:"base"`
	Scaling float64 `json:"scaling"`
	Total   int     `json:"total"`
}

// multiplier returns m[k] or 1 when absent.
func multiplier[K comparable](m map[K]float64, k K) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return 1
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
