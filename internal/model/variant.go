package model

// Variant selects an enemy's base stat block and animation cues.
// Never changes after spawn. The original design expressed variants via
// subclassing; here a variant is a tag resolving to a data table so behavior
// logic stays uniform.
type Variant string

const (
	// VariantStandard - the baseline shambler
	VariantStandard Variant = "standard"
	// VariantRunner - faster, weaker, attacks more often
	VariantRunner Variant = "runner"
)

// VariantStats is the immutable per-variant stat block, fixed at spawn after
// difficulty scaling.
type VariantStats struct {
	Health         int     `yaml:"health"`
	Speed          float64 `yaml:"speed"`           // units/sec
	AttackRate     float64 `yaml:"attack_rate"`     // board attacks/sec
	AttackDamage   int     `yaml:"attack_damage"`   // vs window boards
	PlayerDamage   int     `yaml:"player_damage"`   // vs combatants
	AttackCooldown float64 `yaml:"attack_cooldown"` // sec, vs combatants
	AttackRange    float64 `yaml:"attack_range"`    // melee reach, units
	AnimationCue   string  `yaml:"animation_cue"`
}

// DifficultyMultipliers scale a variant's stat block at spawn time.
// Supplied by the wave controller, applied exactly once.
type DifficultyMultipliers struct {
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Damage float64 `yaml:"damage"`
}

// DefaultDifficulty returns identity multipliers.
func DefaultDifficulty() DifficultyMultipliers {
	return DifficultyMultipliers{Health: 1, Speed: 1, Damage: 1}
}

// DefaultVariantStats returns the built-in stat table.
// Melee reach is 1.5 units for both variants.
func DefaultVariantStats() map[Variant]VariantStats {
	return map[Variant]VariantStats{
		VariantStandard: {
			Health:         100,
			Speed:          1.2,
			AttackRate:     1.0,
			AttackDamage:   10,
			PlayerDamage:   10,
			AttackCooldown: 1.0,
			AttackRange:    1.5,
			AnimationCue:   "zombie_walk",
		},
		VariantRunner: {
			Health:         60,
			Speed:          2.4,
			AttackRate:     1.5,
			AttackDamage:   10,
			PlayerDamage:   8,
			AttackCooldown: 0.8,
			AttackRange:    1.5,
			AnimationCue:   "zombie_run",
		},
	}
}

// Scaled returns the stat block with difficulty multipliers applied.
// Health and damage floor at 1 so a variant can never spawn inert.
func (s VariantStats) Scaled(d DifficultyMultipliers) VariantStats {
	s.Health = max(int(float64(s.Health)*d.Health), 1)
	s.Speed = s.Speed * d.Speed
	s.AttackDamage = max(int(float64(s.AttackDamage)*d.Damage), 1)
	s.PlayerDamage = max(int(float64(s.PlayerDamage)*d.Damage), 1)
	return s
}
