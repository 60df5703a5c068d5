package effect

// Attribute names the gameplay quantity an Effect modifies.
// The string value is the display name and the sort key of aggregated output.
type Attribute string

const (
	MaximumHealth  Attribute = "Maximum Health"
	MaximumFocus   Attribute = "Maximum Focus"
	MaximumStamina Attribute = "Maximum Stamina"
	HealthPoints   Attribute = "Health Points"
	FocusPoints    Attribute = "Focus Points"
	StaminaPoints  Attribute = "Stamina Points"

	Vigor         Attribute = "Vigor"
	Mind          Attribute = "Mind"
	Endurance     Attribute = "Endurance"
	Strength      Attribute = "Strength"
	Dexterity     Attribute = "Dexterity"
	Intelligence  Attribute = "Intelligence"
	Faith         Attribute = "Faith"
	Arcane        Attribute = "Arcane"
	AllAttributes Attribute = "All Attributes"

	StandardAbsorption  Attribute = "Standard Absorption"
	StrikeAbsorption    Attribute = "Strike Absorption"
	SlashAbsorption     Attribute = "Slash Absorption"
	PierceAbsorption    Attribute = "Pierce Absorption"
	PhysicalAbsorption  Attribute = "Physical Absorption"
	MagicAbsorption     Attribute = "Magic Absorption"
	FireAbsorption      Attribute = "Fire Absorption"
	LightningAbsorption Attribute = "Lightning Absorption"
	HolyAbsorption      Attribute = "Holy Absorption"
	ElementalAbsorption Attribute = "Elemental Absorption"
	Absorption          Attribute = "Absorption"

	StandardAttackPower  Attribute = "Standard Attack Power"
	StrikeAttackPower    Attribute = "Strike Attack Power"
	SlashAttackPower     Attribute = "Slash Attack Power"
	PierceAttackPower    Attribute = "Pierce Attack Power"
	PhysicalAttackPower  Attribute = "Physical Attack Power"
	MagicAttackPower     Attribute = "Magic Attack Power"
	FireAttackPower      Attribute = "Fire Attack Power"
	LightningAttackPower Attribute = "Lightning Attack Power"
	HolyAttackPower      Attribute = "Holy Attack Power"
	ElementalAttackPower Attribute = "Elemental Attack Power"
	AttackPower          Attribute = "Attack Power"

	PoisonResistance      Attribute = "Poison Resistance"
	ScarletRotResistance  Attribute = "Scarlet Rot Resistance"
	BleedResistance       Attribute = "Blood Loss Resistance"
	FrostbiteResistance   Attribute = "Frostbite Resistance"
	SleepResistance       Attribute = "Sleep Resistance"
	MadnessResistance     Attribute = "Madness Resistance"
	DeathBlightResistance Attribute = "Death Blight Resistance"
	Immunity              Attribute = "Immunity"
	Robustness            Attribute = "Robustness"
	Focus                 Attribute = "Focus"
	Vitality              Attribute = "Vitality"
	Resistance            Attribute = "Resistance"

	Poise                Attribute = "Poise"
	EquipLoad            Attribute = "Equip Load"
	StaminaRecoverySpeed Attribute = "Stamina Recovery Speed"
	RuneAcquisition      Attribute = "Rune Acquisition"
	ItemDiscovery        Attribute = "Item Discovery"
	HealthRestoration    Attribute = "Health Restoration"
	FallDamage           Attribute = "Fall Damage"

	SorceryFocusCost       Attribute = "Sorcery Focus Cost"
	IncantationFocusCost   Attribute = "Incantation Focus Cost"
	PyromancyFocusCost     Attribute = "Pyromancy Focus Cost"
	SpellFocusCost         Attribute = "Spell Focus Cost"
	SkillFocusCost         Attribute = "Skill Focus Cost"
	SkillStaminaCost       Attribute = "Skill Stamina Cost"
	SorceryStaminaCost     Attribute = "Sorcery Stamina Cost"
	IncantationStaminaCost Attribute = "Incantation Stamina Cost"
	SpellStaminaCost       Attribute = "Spell Stamina Cost"

	SorceryScaling        Attribute = "Sorcery Scaling"
	IncantationScaling    Attribute = "Incantation Scaling"
	CastingSpeed          Attribute = "Casting Speed"
	GuardBoost            Attribute = "Guard Boost"
	GuardedDamageNegation Attribute = "Guarded Damage Negation"
	CriticalDamage        Attribute = "Critical Damage"
	BowRange              Attribute = "Bow Range"
	EnemyDetection        Attribute = "Enemy Detection"
	Noise                 Attribute = "Noise"
	Visibility            Attribute = "Visibility"
	Stealth               Attribute = "Stealth"
	ConsumableDuration    Attribute = "Consumable Duration"
)
