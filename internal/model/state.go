package model

// EnemyState represents the behavior state of an enemy.
// Drives branching in the per-frame AI tick.
type EnemyState int32

const (
	// StateApproachWindow - enemy is walking straight toward its target window
	StateApproachWindow EnemyState = iota
	// StateAttackWindow - enemy is at the window, tearing boards off
	StateAttackWindow
	// StateEnterRoom - one-shot breach transition into the room
	StateEnterRoom
	// StateChaseOrWander - inside the room, chasing a combatant or wandering
	StateChaseOrWander
	// StateDying - death animation, falling to the ground
	StateDying
	// StateFadingOut - death animation, fading to zero opacity
	StateFadingOut
	// StateRemoved - fade complete, entity flagged for eviction
	StateRemoved
)

// String returns human-readable state name
func (s EnemyState) String() string {
	switch s {
	case StateApproachWindow:
		return "APPROACH_WINDOW"
	case StateAttackWindow:
		return "ATTACK_WINDOW"
	case StateEnterRoom:
		return "ENTER_ROOM"
	case StateChaseOrWander:
		return "CHASE_OR_WANDER"
	case StateDying:
		return "DYING"
	case StateFadingOut:
		return "FADING_OUT"
	case StateRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state belongs to the death sequence.
func (s EnemyState) Terminal() bool {
	return s == StateDying || s == StateFadingOut || s == StateRemoved
}
