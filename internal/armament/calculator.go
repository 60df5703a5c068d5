// Package armament computes attack power, status buildup, guard and
// resistance of an armament for a given affinity, reinforcement level and
// player attribute investment.
//
// Attack power per damage type:
//
//	base    = affinity.Damage[t] * reinforcement.Damage[t]
//	scaling = base * max(min(contributions), sum(contributions))
//	total   = floor(base + scaling)
//
// with one contribution per player attribute (see contribution).
package armament

import (
	"errors"
	"fmt"
	"math"

	"github.com/EldenRingDatabase/erdb-sub000/internal/correction"
)

var (
	ErrUnknownArmament         = errors.New("unknown armament")
	ErrUnknownAffinity         = errors.New("unknown affinity")
	ErrUnknownLevel            = errors.New("reinforcement level out of range")
	ErrUnknownReinforcement    = errors.New("unknown reinforcement table")
	ErrUnknownCorrectionAttack = errors.New("unknown correction attack")
	ErrUnknownGraph            = errors.New("unknown correction graph")
	ErrMissingGraph            = errors.New("scaling damage type has no correction graph")
	ErrMissingRatio            = errors.New("scaling attribute has no impact ratio")
)

// Penalty applied per unmet requirement: 0.6*(ratio-1) - 0.4.
// Empirical game constants.
const (
	unmetRatioWeight = 0.6
	unmetFlatPenalty = 0.4
)

// derived is the state rebuilt whenever name, affinity or level change.
type derived struct {
	requirements     Requirements
	props            AffinityProperties
	reinforcement    ReinforcementLevel
	correctionAttack CorrectionAttack
	graphs           map[DamageType]correction.Table
	statusGraphs     map[StatusType]correction.Table
}

// Calculator computes results for one {name, affinity, level} selection.
//
// Setters rebuild the derived state synchronously and leave the previous
// state untouched on error. A Calculator must not be used from several
// goroutines at once; distinct Calculators share only read-only Tables.
type Calculator struct {
	tables   *Tables
	name     string
	affinity string
	level    int
	cache    derived
}

// NewCalculator pins a selection and builds its derived state.
func NewCalculator(tables *Tables, name, affinity string, level int) (*Calculator, error) {
	c := &Calculator{tables: tables}
	if err := c.set(name, affinity, level); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the selected armament name.
func (c *Calculator) Name() string { return c.name }

// Affinity returns the selected affinity.
func (c *Calculator) Affinity() string { return c.affinity }

// Level returns the selected reinforcement level.
func (c *Calculator) Level() int { return c.level }

// Requirements returns the attribute requirements of the selected armament.
func (c *Calculator) Requirements() Requirements {
	out := make(Requirements, len(c.cache.requirements))
	for k, v := range c.cache.requirements {
		out[k] = v
	}
	return out
}

// SetName selects another armament.
func (c *Calculator) SetName(name string) error {
	return c.set(name, c.affinity, c.level)
}

// SetAffinity selects another affinity of the current armament.
func (c *Calculator) SetAffinity(affinity string) error {
	return c.set(c.name, affinity, c.level)
}

// SetLevel selects another reinforcement level.
func (c *Calculator) SetLevel(level int) error {
	return c.set(c.name, c.affinity, level)
}

func (c *Calculator) set(name, affinity string, level int) error {
	d, err := c.tables.derive(name, affinity, level)
	if err != nil {
		return err
	}
	c.name, c.affinity, c.level = name, affinity, level
	c.cache = d
	return nil
}

func (t *Tables) derive(name, affinity string, level int) (derived, error) {
	var d derived

	arm, ok := t.Armaments[name]
	if !ok {
		return d, fmt.Errorf("%w: %q", ErrUnknownArmament, name)
	}
	props, ok := arm.Affinities[affinity]
	if !ok {
		return d, fmt.Errorf("%w: %q has no %q affinity", ErrUnknownAffinity, name, affinity)
	}

	levels, ok := t.Reinforcements[props.ReinforcementID]
	if !ok {
		return d, fmt.Errorf("%w: %d (%s %s)", ErrUnknownReinforcement, props.ReinforcementID, affinity, name)
	}
	if level < 0 || level >= len(levels) {
		return d, fmt.Errorf("%w: %d not in [0, %d]", ErrUnknownLevel, level, len(levels)-1)
	}

	ca, ok := t.CorrectionAttacks[props.CorrectionAttackID]
	if !ok {
		return d, fmt.Errorf("%w: %d (%s %s)", ErrUnknownCorrectionAttack, props.CorrectionAttackID, affinity, name)
	}

	d.graphs = make(map[DamageType]correction.Table, len(DamageTypes))
	for _, dt := range DamageTypes {
		// Absent IDs select graph 0 when the table defines one.
		id := props.CorrectionCalcID[dt]
		if g, ok := t.CorrectionGraphs[id]; ok {
			d.graphs[dt] = g
		} else if id != 0 {
			return d, fmt.Errorf("%w: %d for %s damage", ErrUnknownGraph, id, dt)
		}
	}

	d.statusGraphs = make(map[StatusType]correction.Table, len(StatusTypes))
	for _, st := range StatusTypes {
		id := props.StatusCorrectionCalcID[st]
		if id == 0 {
			continue // no scaling
		}
		g, ok := t.CorrectionGraphs[id]
		if !ok {
			return d, fmt.Errorf("%w: %d for %s buildup", ErrUnknownGraph, id, st)
		}
		d.statusGraphs[st] = g
	}

	d.requirements = arm.Requirements
	d.props = props
	d.reinforcement = levels[level]
	d.correctionAttack = ca
	return d, nil
}

// AttackPower computes base, scaling and total attack power for every damage
// type with non-zero base damage.
func (c *Calculator) AttackPower(attrs AttributeValues) (map[DamageType]Result, error) {
	out := make(map[DamageType]Result, len(DamageTypes))

	for _, dt := range DamageTypes {
		base := c.cache.props.Damage[dt] * multiplier(c.cache.reinforcement.Damage, dt)
		if base == 0 {
			continue
		}

		var (
			sum    float64
			lowest = math.Inf(1)
		)
		for _, attr := range Attributes {
			contrib, err := c.contribution(dt, attr, attrs[attr])
			if err != nil {
				return nil, err
			}
			sum += contrib
			lowest = min(lowest, contrib)
		}

		scaling := base * max(lowest, sum)
		out[dt] = Result{
			Base:    base,
			Scaling: scaling,
			Total:   int(math.Floor(base + scaling)),
		}
	}
	return out, nil
}

// contribution returns the scaling share of one attribute for one damage type.
func (c *Calculator) contribution(dt DamageType, attr Attribute, value int) (float64, error) {
	ca := c.cache.correctionAttack
	if !ca.scales(dt, attr) {
		return 0, nil
	}

	ratio, ok := ca.ratio(dt, attr)
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", ErrMissingRatio, dt, attr)
	}

	if value < c.cache.requirements[attr] {
		return unmetRatioWeight*(ratio-1) - unmetFlatPenalty, nil
	}

	graph, ok := c.cache.graphs[dt]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingGraph, dt)
	}
	curve, err := graph.At(value)
	if err != nil {
		return 0, fmt.Errorf("%s scaling for %s: %w", attr, dt, err)
	}

	baseScaling := c.cache.props.Scaling[attr]
	if override, ok := ca.override(dt, attr); ok {
		baseScaling = override
	}
	levelScaling := multiplier(c.cache.reinforcement.Scaling, attr)

	return baseScaling*levelScaling*curve*ratio + (ratio - 1), nil
}

// StatusEffects computes buildup for every status type the affinity defines
// at the current level. Status scaling always follows arcane.
func (c *Calculator) StatusEffects(attrs AttributeValues) (map[StatusType]Result, error) {
	table := c.cache.props.StatusEffects
	if overlay := c.cache.props.StatusEffectOverlay; c.level < len(overlay) {
		table = overlay[c.level]
	}

	out := make(map[StatusType]Result, len(table))
	for _, st := range StatusTypes {
		base, ok := table[st]
		if !ok {
			continue
		}

		var scaling float64
		if graph, ok := c.cache.statusGraphs[st]; ok {
			curve, err := graph.At(attrs[Arcane])
			if err != nil {
				return nil, fmt.Errorf("arcane scaling for %s: %w", st, err)
			}
			scaling = base *
				c.cache.props.Scaling[Arcane] *
				multiplier(c.cache.reinforcement.Scaling, Arcane) *
				curve
		}

		out[st] = Result{
			Base:    base,
			Scaling: scaling,
			Total:   int(math.Floor(base + scaling)),
		}
	}
	return out, nil
}

// Active drops results whose total is not positive.
func Active[K comparable](results map[K]Result) map[K]Result {
	out := make(map[K]Result, len(results))
	for k, r := range results {
		if r.Total > 0 {
			out[k] = r
		}
	}
	return out
}

// Guard is the guarded damage negation per damage type plus guard boost,
// floored like every other displayed armament value.
type Guard struct {
	Negation map[DamageType]int `json:"negation"`
	Boost    int                `json:"boost"`
}

// Guard returns the guard values of the current selection.
func (c *Calculator) Guard() Guard {
	g := Guard{Negation: make(map[DamageType]int, len(DamageTypes))}
	for _, dt := range DamageTypes {
		v, ok := c.cache.props.Guard[dt]
		if !ok {
			continue
		}
		g.Negation[dt] = int(math.Floor(v * multiplier(c.cache.reinforcement.Guard, dt)))
	}

	boost := c.cache.props.GuardBoost
	if b := c.cache.reinforcement.GuardBoost; b != 0 {
		boost *= b
	}
	g.Boost = int(math.Floor(boost))
	return g
}

// Resistance returns the status resistances of the current selection.
func (c *Calculator) Resistance() map[StatusType]int {
	out := make(map[StatusType]int, len(StatusTypes))
	for _, st := range StatusTypes {
		v, ok := c.cache.props.Resistance[st]
		if !ok {
			continue
		}
		out[st] = int(math.Floor(v * multiplier(c.cache.reinforcement.Resistance, st)))
	}
	return out
}
