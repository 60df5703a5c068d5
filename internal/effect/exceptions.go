package effect

// ExceptionKind tags how an exception entry is keyed.
type ExceptionKind int8

const (
	// ExceptionRow entries match a row by its index.
	ExceptionRow ExceptionKind = iota
	// ExceptionStateInfo entries match the secondary state type of a row.
	ExceptionStateInfo
)

// stateInfoField carries the secondary state type of a row.
const stateInfoField = "stateInfo"

// ExceptionKey identifies rows whose behavior is not expressed by declared
// fields.
type ExceptionKey struct {
	Kind ExceptionKind
	ID   int
}

// exceptions holds the Effects implemented by game logic rather than by
// parameters. They are unioned with the Effects derived from fields.
var exceptions = map[ExceptionKey][]Effect{
	// Silent footsteps
	{ExceptionStateInfo, 47}: {
		{Attribute: Noise, Value: 0.5, Model: Multiplicative, Polarity: Negative},
	},
	// Rune bonus on kill regardless of haveSoulRate
	{ExceptionStateInfo, 71}: {
		{Attribute: RuneAcquisition, Value: 1.03, Model: Multiplicative, Polarity: Positive, Conditions: []string{"On Kill"}},
	},
	// Invisibility at distance
	{ExceptionStateInfo, 275}: {
		{Attribute: Visibility, Value: 0, Model: Multiplicative, Polarity: Negative},
	},
	// Item discovery bonus from a consumable
	{ExceptionRow, 3350}: {
		{Attribute: ItemDiscovery, Value: 50, Model: Additive, Polarity: Positive},
	},
	// Sprinting stamina reduction talisman
	{ExceptionRow, 340800}: {
		{Attribute: StaminaRecoverySpeed, Value: 1.2, Model: Multiplicative, Polarity: Positive, Conditions: []string{"While Sprinting"}},
	},
	// Heal on guard counter
	{ExceptionRow, 341000}: {
		{Attribute: HealthPoints, Value: 1.05, Model: Multiplicative, Polarity: Positive, Conditions: []string{"On Guard Counter"}},
	},
}

// LookupException returns the override Effects for key, deep-copied.
func LookupException(key ExceptionKey) ([]Effect, bool) {
	effects, ok := exceptions[key]
	if !ok {
		return nil, false
	}
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = e.WithAttribute(e.Attribute)
	}
	return out, true
}
