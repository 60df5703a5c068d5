package effect

import "fmt"

// triggerField maps categorical values of a raw field to condition strings.
type triggerField struct {
	field      string
	conditions map[int]string
}

// stateChangeConditions is shared by the three invocation condition slots.
var stateChangeConditions = map[int]string{
	1:  "While Poisoned",
	2:  "While Afflicted by Scarlet Rot",
	3:  "On Blood Loss",
	4:  "On Frostbite",
	5:  "While Asleep",
	6:  "On Madness",
	10: "While Two-Handing",
	11: "While Guarding",
	12: "On Critical Hit",
	13: "On Guard Counter",
	14: "On Successful Parry",
	15: "While Mounted",
	16: "While Wielding Staff",
	17: "While Wielding Seal",
}

var triggerFields = []triggerField{
	{field: "invocationConditionsStateChange1", conditions: stateChangeConditions},
	{field: "invocationConditionsStateChange2", conditions: stateChangeConditions},
	{field: "invocationConditionsStateChange3", conditions: stateChangeConditions},
	{field: "effectTargetOpposeTarget", conditions: map[int]string{1: "Enemies Affected"}},
	{field: "effectTargetFriendlyTarget", conditions: map[int]string{1: "Allies Affected"}},
	{field: "isNightOnly", conditions: map[int]string{1: "At Night"}},
}

// hpThresholdField turns a percentage threshold into a condition.
type hpThresholdField struct {
	field   string
	format  string
	noValue float64
}

var hpThresholdFields = []hpThresholdField{
	{field: "conditionHp", format: "HP below %g%%", noValue: -1},
	{field: "conditionHpRate", format: "HP above %g%%", noValue: -1},
}

func (f hpThresholdField) condition(v float64) string {
	return fmt.Sprintf(f.format, v)
}

// tickIntervalField holds the seconds between applications of a periodic effect.
const tickIntervalField = "motionInterval"

// pvpFields pairs PvE fields with the field holding their PvP alternative.
var pvpFields = map[string]string{
	"physicsAttackPowerRate": "pvpPhysicsAttackPowerRate",
	"magicAttackPowerRate":   "pvpMagicAttackPowerRate",
	"fireAttackPowerRate":    "pvpFireAttackPowerRate",
	"thunderAttackPowerRate": "pvpThunderAttackPowerRate",
	"darkAttackPowerRate":    "pvpDarkAttackPowerRate",
	"changeHpRate":           "pvpChangeHpRate",
	"changeHpPoint":          "pvpChangeHpPoint",
	"criticalDamageRate":     "pvpCriticalDamageRate",
}

// ReferenceKind selects how a reference field value locates the target row.
type ReferenceKind int

const (
	// ByIdentifier values are absolute row indices.
	ByIdentifier ReferenceKind = iota
	// ByOffset values are added to the referencing row index.
	ByOffset
)

type referenceField struct {
	field     string
	kind      ReferenceKind
	condition string
}

var referenceFields = []referenceField{
	{field: "cycleOccurrenceSpEffectId", kind: ByIdentifier},
	{field: "applyIdOnGetSoul", kind: ByIdentifier, condition: "On Kill"},
	{field: "chainEffectOffset", kind: ByOffset},
	{field: "onHitEffectOffset", kind: ByOffset, condition: "On Hit"},
}

// noReference values mean the reference slot is unused.
func noReference(v int) bool {
	return v == 0 || v == -1
}
