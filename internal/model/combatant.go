package model

// Combatant is a read-only view over a combatant — the local player or a
// remote player mirrored from the network. Enemies read position, alive flag,
// and look direction; they never mutate a combatant directly. Remote health is
// owned and reported by that player's own client instance.
type Combatant interface {
	Position() Vec3
	IsDead() bool
	Facing() Vec3
}

// PlayerRef is a plain value implementation of Combatant, used by the host
// loop to mirror remote players and by tests.
type PlayerRef struct {
	Pos  Vec3
	Dead bool
	Look Vec3
}

func (p *PlayerRef) Position() Vec3 { return p.Pos }
func (p *PlayerRef) IsDead() bool   { return p.Dead }
func (p *PlayerRef) Facing() Vec3   { return p.Look }
