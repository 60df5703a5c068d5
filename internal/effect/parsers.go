package effect

// Parser normalizes a raw numeric field value into the Effect value domain.
// Parsers are pure; several fields store negated or complemented quantities
// and rely on a parser to restore the gameplay meaning.
type Parser func(raw float64) float64

// Identity keeps the raw value.
func Identity(raw float64) float64 {
	return raw
}

// Percentage turns a stored percent increase into a multiplier: 10 → 1.1.
func Percentage(raw float64) float64 {
	return 1 + raw/100
}

// InversePercentage turns a stored percent loss into a multiplier of what
// remains: -10 → 1.1, 25 → 0.75. Used by fields that drain a pool per tick,
// where a negative drain is a restoration.
func InversePercentage(raw float64) float64 {
	return 1 - raw/100
}

// Negated flips the sign of fields storing a quantity as a cost: a stored
// point drain of 20 becomes -20 restored points.
func Negated(raw float64) float64 {
	return -raw
}

// Complement turns a stored reduction fraction into the retained fraction:
// 0.1 → 0.9.
func Complement(raw float64) float64 {
	return 1 - raw
}

// parsers maps parser names to implementations, used by YAML registry
// overrides and by the tests asserting the sign-flip contracts.
var parsers = map[string]Parser{
	"identity":           Identity,
	"percentage":         Percentage,
	"inverse_percentage": InversePercentage,
	"negated":            Negated,
	"complement":         Complement,
}

// LookupParser returns a named parser.
func LookupParser(name string) (Parser, bool) {
	p, ok := parsers[name]
	return p, ok
}
