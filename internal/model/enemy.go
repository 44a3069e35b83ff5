package model

import "math/rand/v2"

// Enemy is one zombie's full state: stat block, position, behavior state,
// target references, and the pending-action audit log.
//
// Single-threaded: the frame goroutine that runs Update owns all mutation,
// and damage entry points are called from that same goroutine, so no locking
// is needed. Enemies never mutate each other or their combatant targets.
type Enemy struct {
	id      string
	variant Variant
	stats   VariantStats

	health    int
	maxHealth int

	state        EnemyState
	targetWindow *Window
	insideRoom   bool

	pos    Vec3
	facing Vec3 // unit vector on the XZ plane

	isDead             bool
	deathAnimationTime float64 // seconds since death
	fallDirection      int     // ±1, chosen at death

	// Cooldown stamps on the game clock (seconds since spawn).
	lastAttackTime       float64 // vs window boards
	lastPlayerAttackTime float64 // vs combatants

	// Transient visual state. Deadline-driven reverts only touch these
	// fields, never health or behavior state.
	hitFlashRemaining float64
	lungeRemaining    float64
	fallAngle         float64 // radians, 0..π/2
	opacity           float64 // 1 → 0 during fade-out

	pending *PendingLog
}

// NewEnemy creates an enemy of the given variant targeting window, with
// difficulty multipliers applied to the base stat block exactly once.
func NewEnemy(variant Variant, base VariantStats, diff DifficultyMultipliers, window *Window) *Enemy {
	stats := base.Scaled(diff)
	e := &Enemy{
		id:           GenerateID(),
		variant:      variant,
		stats:        stats,
		health:       stats.Health,
		maxHealth:    stats.Health,
		state:        StateApproachWindow,
		targetWindow: window,
		facing:       Vec3{Z: 1},
		opacity:      1,
		pending:      NewPendingLog(),
	}
	return e
}

// ID returns the opaque unique identifier — the correlation key in all
// network messages about this enemy.
func (e *Enemy) ID() string { return e.id }

// Variant returns the variant tag.
func (e *Enemy) Variant() Variant { return e.variant }

// Stats returns the difficulty-scaled stat block.
func (e *Enemy) Stats() VariantStats { return e.stats }

// Health returns current health.
func (e *Enemy) Health() int { return e.health }

// MaxHealth returns maximum health.
func (e *Enemy) MaxHealth() int { return e.maxHealth }

// IsDead reports whether the enemy has died. One-way: never reverts.
func (e *Enemy) IsDead() bool { return e.isDead }

// State returns the current behavior state.
func (e *Enemy) State() EnemyState { return e.state }

// SetState transitions the behavior state.
func (e *Enemy) SetState(s EnemyState) { e.state = s }

// Position returns the world position.
func (e *Enemy) Position() Vec3 { return e.pos }

// SetPosition moves the enemy.
func (e *Enemy) SetPosition(p Vec3) { e.pos = p }

// Facing returns the current facing direction (unit, XZ plane).
func (e *Enemy) Facing() Vec3 { return e.facing }

// SetFacing sets the facing direction. Zero vectors are ignored so the enemy
// always keeps a valid heading.
func (e *Enemy) SetFacing(f Vec3) {
	if f.X == 0 && f.Z == 0 {
		return
	}
	e.facing = f
}

// TargetWindow returns the targeted window, nil if none.
func (e *Enemy) TargetWindow() *Window { return e.targetWindow }

// SetTargetWindow re-assigns the targeted window.
func (e *Enemy) SetTargetWindow(w *Window) { e.targetWindow = w }

// InsideRoom reports whether the enemy has breached a window.
func (e *Enemy) InsideRoom() bool { return e.insideRoom }

// SetInsideRoom marks the enemy as inside the room.
func (e *Enemy) SetInsideRoom(inside bool) { e.insideRoom = inside }

// LastAttackTime returns the game-clock stamp of the last board attack.
func (e *Enemy) LastAttackTime() float64 { return e.lastAttackTime }

// StampAttack records a board attack at game-clock now.
func (e *Enemy) StampAttack(now float64) { e.lastAttackTime = now }

// LastPlayerAttackTime returns the stamp of the last combatant attack.
func (e *Enemy) LastPlayerAttackTime() float64 { return e.lastPlayerAttackTime }

// StampPlayerAttack records a combatant attack at game-clock now.
func (e *Enemy) StampPlayerAttack(now float64) { e.lastPlayerAttackTime = now }

// FallDirection returns ±1, valid once dead.
func (e *Enemy) FallDirection() int { return e.fallDirection }

// DeathAnimationTime returns seconds elapsed since death.
func (e *Enemy) DeathAnimationTime() float64 { return e.deathAnimationTime }

// AdvanceDeathAnimation accumulates death-animation time.
func (e *Enemy) AdvanceDeathAnimation(dt float64) {
	e.deathAnimationTime += dt
}

// FallAngle returns the current fall rotation in radians.
func (e *Enemy) FallAngle() float64 { return e.fallAngle }

// SetFallAngle sets the fall rotation.
func (e *Enemy) SetFallAngle(a float64) { e.fallAngle = a }

// Opacity returns the current render opacity (1 alive, 0 fully faded).
func (e *Enemy) Opacity() float64 { return e.opacity }

// SetOpacity sets the render opacity.
func (e *Enemy) SetOpacity(o float64) { e.opacity = o }

// PendingActions returns the bounded outbound damage-action log.
func (e *Enemy) PendingActions() *PendingLog { return e.pending }

// ReduceHealth lowers health by amount, clamped to [0, maxHealth].
// Once dead, health is frozen and further calls are no-ops.
func (e *Enemy) ReduceHealth(amount int) {
	if e.isDead {
		return
	}
	e.health = min(max(e.health-amount, 0), e.maxHealth)
}

// MarkDead performs the one-way death transition. Returns true only for the
// first caller; subsequent calls are no-ops. Picks the fall direction and
// freezes health at zero.
func (e *Enemy) MarkDead() bool {
	if e.isDead {
		return false
	}
	e.isDead = true
	e.health = 0
	e.state = StateDying
	e.deathAnimationTime = 0
	e.fallDirection = 1
	if rand.IntN(2) == 0 {
		e.fallDirection = -1
	}
	return true
}

// FlashHit starts the hit-flash visual for d seconds.
// Cosmetic only; the revert is driven by TickVisuals.
func (e *Enemy) FlashHit(d float64) { e.hitFlashRemaining = d }

// HitFlashActive reports whether the hit-flash visual is showing.
func (e *Enemy) HitFlashActive() bool { return e.hitFlashRemaining > 0 }

// StartLunge starts the attack-lunge visual for d seconds.
func (e *Enemy) StartLunge(d float64) { e.lungeRemaining = d }

// LungeActive reports whether the attack-lunge visual is showing.
func (e *Enemy) LungeActive() bool { return e.lungeRemaining > 0 }

// TickVisuals advances the deadline-driven visual reverts. Touches only
// transient pose fields.
func (e *Enemy) TickVisuals(dt float64) {
	e.hitFlashRemaining = max(e.hitFlashRemaining-dt, 0)
	e.lungeRemaining = max(e.lungeRemaining-dt, 0)
}
