package armament

import (
	"testing"

	"github.com/EldenRingDatabase/erdb-sub000/internal/correction"
)

const (
	graphPhysical = 0
	graphArcane   = 6
)

// testTables returns a small, hand-computable data set:
//
//	Longsword/Standard: 110 physical, str 0.5 / dex 0.33, req str 10 dex 10
//	Longsword/Heavy:    dex uses override 0.5 with impact ratio 1.2
//	Longsword/Poison:   60 poison buildup scaling with arcane, overlay for +0/+1
//	Club/Standard:      100 physical, every scaling field at its default
func testTables(t testing.TB) *Tables {
	t.Helper()

	physical := correction.MustGraph(
		correction.Range{LeftThreshold: 1, RightThreshold: 18, LeftCoef: 0, RightCoef: 0.25, Exponent: 1.2},
		correction.Range{LeftThreshold: 18, RightThreshold: 60, LeftCoef: 0.25, RightCoef: 0.75, Exponent: -1.2},
		correction.Range{LeftThreshold: 60, RightThreshold: 80, LeftCoef: 0.75, RightCoef: 0.9, Exponent: 1},
		correction.Range{LeftThreshold: 80, RightThreshold: 150, LeftCoef: 0.9, RightCoef: 1, Exponent: 1},
	)
	arcane := correction.MustGraph(
		correction.Range{LeftThreshold: 1, RightThreshold: 25, LeftCoef: 0, RightCoef: 0.1, Exponent: 1},
		correction.Range{LeftThreshold: 25, RightThreshold: 45, LeftCoef: 0.1, RightCoef: 0.3, Exponent: 1},
		correction.Range{LeftThreshold: 45, RightThreshold: 60, LeftCoef: 0.3, RightCoef: 0.4, Exponent: 1},
		correction.Range{LeftThreshold: 60, RightThreshold: 150, LeftCoef: 0.4, RightCoef: 0.5, Exponent: 1},
	)

	return &Tables{
		Armaments: map[string]Armament{
			"Longsword": {
				Name:         "Longsword",
				Requirements: Requirements{Strength: 10, Dexterity: 10},
				Affinities: map[string]AffinityProperties{
					"Standard": {
						ReinforcementID:    0,
						CorrectionAttackID: 0,
						Damage:             map[DamageType]float64{Physical: 110},
						Scaling:            map[Attribute]float64{Strength: 0.5, Dexterity: 0.33},
						Guard:              map[DamageType]float64{Physical: 60, Magic: 40},
						GuardBoost:         36,
					},
					"Heavy": {
						ReinforcementID:    0,
						CorrectionAttackID: 1,
						Damage:             map[DamageType]float64{Physical: 110},
						Scaling:            map[Attribute]float64{Strength: 0.5, Dexterity: 0.33},
					},
					"Poison": {
						ReinforcementID:        0,
						CorrectionAttackID:     0,
						StatusCorrectionCalcID: map[StatusType]int{Poison: graphArcane},
						Damage:                 map[DamageType]float64{Physical: 90},
						Scaling:                map[Attribute]float64{Strength: 0.4, Dexterity: 0.25, Arcane: 0.3},
						Resistance:             map[StatusType]float64{Poison: 100},
						StatusEffects:          map[StatusType]float64{Poison: 60, BloodLoss: 0},
						StatusEffectOverlay: []map[StatusType]float64{
							{Poison: 60},
							{Poison: 66},
						},
					},
					"Broken": {
						ReinforcementID:    0,
						CorrectionAttackID: 2,
						Damage:             map[DamageType]float64{Physical: 110},
						Scaling:            map[Attribute]float64{Strength: 0.5},
					},
				},
			},
			"Club": {
				Name: "Club",
				Affinities: map[string]AffinityProperties{
					"Standard": {
						ReinforcementID:    0,
						CorrectionAttackID: 3,
						Damage:             map[DamageType]float64{Physical: 100},
					},
				},
			},
		},
		Reinforcements: map[int][]ReinforcementLevel{
			0: {
				{},
				{
					Damage:  map[DamageType]float64{Physical: 1.5, Magic: 1.5},
					Scaling: map[Attribute]float64{Strength: 1.2, Dexterity: 1.2, Arcane: 1.2},
					Guard:   map[DamageType]float64{Physical: 1.1},
				},
				{
					Damage:  map[DamageType]float64{Physical: 2},
					Scaling: map[Attribute]float64{Strength: 1.5, Dexterity: 1.5, Arcane: 1.5},
				},
			},
		},
		CorrectionAttacks: map[int]CorrectionAttack{
			0: {
				Scaling: map[DamageType]map[Attribute]bool{Physical: {Strength: true, Dexterity: true}},
				Ratio:   map[DamageType]map[Attribute]float64{Physical: {Strength: 1, Dexterity: 1}},
			},
			1: {
				Scaling:  map[DamageType]map[Attribute]bool{Physical: {Strength: true, Dexterity: true}},
				Override: map[DamageType]map[Attribute]float64{Physical: {Dexterity: 0.5}},
				Ratio:    map[DamageType]map[Attribute]float64{Physical: {Strength: 1, Dexterity: 1.2}},
			},
			2: {
				Scaling: map[DamageType]map[Attribute]bool{Physical: {Strength: true}},
			},
			3: {},
		},
		CorrectionGraphs: map[int]correction.Table{
			graphPhysical: physical.Expand(correction.DefaultMaxLevel),
			graphArcane:   arcane.Expand(correction.DefaultMaxLevel),
		},
	}
}

func attrs(str, dex, intl, fai, arc int) AttributeValues {
	return AttributeValues{Strength: str, Dexterity: dex, Intelligence: intl, Faith: fai, Arcane: arc}
}
