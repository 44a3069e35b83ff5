package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/mkoval-dev/nightraid/internal/model"
)

// AttackLocalFunc is a callback that applies melee damage to the local player.
// Injected by the spawn manager to avoid an import cycle with the player
// module. Remote combatants are never hit through this path — their health is
// reported by their own client instance.
type AttackLocalFunc func(e *model.Enemy, damage int)

// AttackCueFunc plays the attack animation/audio cue for an enemy.
// Injected by the spawn manager. If nil, cues are disabled (headless host).
type AttackCueFunc func(e *model.Enemy)

// Behavior tuning constants.
const (
	breachDistance  = 0.5  // horizontal distance at which a window is reached
	enterRoomOffset = 1.0  // how far inside the breach the enemy snaps
	wanderTurnRate  = 30   // 1/30 chance per tick to re-randomize wander facing
	lungeDuration   = 0.25 // attack lunge visual, seconds

	deathFallDuration = 1.0 // falling phase of the death animation
	fadeStartTime     = 2.0 // death-animation time at which fade-out begins
	fadeDuration      = 2.0 // fade-out length
)

// Bounds describes the playable volume the enemy is clamped to each tick.
type Bounds struct {
	FloorLevel float64
	HalfExtent float64
	Margin     float64
}

// EnemyAI drives one enemy's behavior state machine:
// approach window → attack window → enter room → chase/attack or wander,
// with the death animation (falling → fading → removed) overriding everything
// once the entity dies.
//
// Runs entirely on the frame goroutine; decisions are made from the previous
// frame's committed state.
type EnemyAI struct {
	enemy  *model.Enemy
	bounds Bounds

	// Game clock, seconds since the controller started.
	clock float64

	local   model.Combatant
	remotes []model.Combatant

	running bool

	attackLocalFunc AttackLocalFunc
	attackCueFunc   AttackCueFunc
}

// NewEnemyAI creates an AI controller for enemy within bounds.
func NewEnemyAI(enemy *model.Enemy, bounds Bounds, attackLocal AttackLocalFunc) *EnemyAI {
	return &EnemyAI{
		enemy:           enemy,
		bounds:          bounds,
		attackLocalFunc: attackLocal,
	}
}

// SetAttackCueFunc sets the attack cue callback.
func (a *EnemyAI) SetAttackCueFunc(fn AttackCueFunc) {
	a.attackCueFunc = fn
}

// SetLocalPlayer supplies the local combatant reference.
// Absent player means the enemy wanders once inside — a valid state, not an
// error.
func (a *EnemyAI) SetLocalPlayer(c model.Combatant) {
	a.local = c
}

// SetRemotePlayers supplies the current remote combatant set.
func (a *EnemyAI) SetRemotePlayers(remotes []model.Combatant) {
	a.remotes = remotes
}

// Start starts the controller.
func (a *EnemyAI) Start() {
	a.running = true

	if IsDebugEnabled() {
		slog.Debug("enemy AI started",
			"enemy", a.enemy.ID(),
			"variant", a.enemy.Variant(),
			"state", a.enemy.State())
	}
}

// Stop stops the controller.
func (a *EnemyAI) Stop() {
	a.running = false
}

// Enemy returns the controlled entity.
func (a *EnemyAI) Enemy() *model.Enemy {
	return a.enemy
}

// Clock returns the controller's game clock in seconds.
func (a *EnemyAI) Clock() float64 {
	return a.clock
}

// Tick advances the state machine by dt seconds.
func (a *EnemyAI) Tick(dt float64) {
	if !a.running || dt <= 0 {
		return
	}

	e := a.enemy
	e.TickVisuals(dt)

	// Death overrides all behavior; only animation progress remains.
	if e.IsDead() {
		a.tickDeath(dt)
		return
	}

	a.clock += dt

	switch e.State() {
	case model.StateApproachWindow:
		a.thinkApproach(dt)
	case model.StateAttackWindow:
		a.thinkAttackWindow()
	case model.StateEnterRoom:
		a.thinkEnterRoom()
	case model.StateChaseOrWander:
		a.thinkChaseOrWander(dt)
	}
}

// thinkApproach walks straight toward the window. At the breach point the
// enemy either starts tearing boards or, if none remain, enters the room.
func (a *EnemyAI) thinkApproach(dt float64) {
	e := a.enemy

	w := e.TargetWindow()
	if w == nil {
		// Window lost mid-approach: fall back to wandering.
		a.setState(model.StateChaseOrWander)
		return
	}

	target := w.Position()
	e.SetFacing(e.Position().HorizontalDirectionTo(target))

	if e.Position().HorizontalDistance(target) < breachDistance {
		if w.BoardsCount() > 0 {
			a.setState(model.StateAttackWindow)
		} else {
			a.setState(model.StateEnterRoom)
		}
		return
	}

	a.moveToward(target, dt)
}

// thinkAttackWindow hits the outermost board whenever the attack-rate
// cooldown has elapsed. When no boards remain the state flows back through
// ApproachWindow, which enters the room on the next tick.
func (a *EnemyAI) thinkAttackWindow() {
	e := a.enemy

	w := e.TargetWindow()
	if w == nil || w.BoardsCount() == 0 {
		a.setState(model.StateApproachWindow)
		return
	}

	e.SetFacing(e.Position().HorizontalDirectionTo(w.Position()))

	// A zero stamp means no attack yet; the first swing is free.
	cooldown := 1.0 / e.Stats().AttackRate
	if e.LastAttackTime() > 0 && a.clock-e.LastAttackTime() < cooldown {
		return
	}

	if w.DamageBoard(e.Stats().AttackDamage) {
		e.StampAttack(a.clock)
		e.StartLunge(lungeDuration)
		if a.attackCueFunc != nil {
			a.attackCueFunc(e)
		}
	}
}

// thinkEnterRoom is a one-shot transition: snap just inside the breach, face
// the room center or the nearest combatant if one is known, then chase.
func (a *EnemyAI) thinkEnterRoom() {
	e := a.enemy

	if w := e.TargetWindow(); w != nil {
		inward := w.Position().HorizontalDirectionTo(model.Vec3{})
		pos := w.Position().Add(inward.Scale(enterRoomOffset))
		e.SetPosition(a.clampToBounds(pos))
	}
	e.SetInsideRoom(true)

	if sel, ok := SelectTarget(e.Position(), a.local, a.remotes); ok {
		e.SetFacing(e.Position().HorizontalDirectionTo(sel.Target.Position()))
	} else {
		e.SetFacing(e.Position().HorizontalDirectionTo(model.Vec3{}))
	}

	a.setState(model.StateChaseOrWander)
}

// thinkChaseOrWander runs target selection: chase and strike the chosen
// combatant, or wander when nobody is targetable.
func (a *EnemyAI) thinkChaseOrWander(dt float64) {
	e := a.enemy

	sel, ok := SelectTarget(e.Position(), a.local, a.remotes)
	if !ok {
		a.wander(dt)
		return
	}

	target := sel.Target.Position()
	e.SetFacing(e.Position().HorizontalDirectionTo(target))

	if AttackEligible(e, sel.Target, a.clock) {
		e.StampPlayerAttack(a.clock)
		e.StartLunge(lungeDuration)
		if a.attackCueFunc != nil {
			a.attackCueFunc(e)
		}
		// Direct damage only on the local-authority path.
		if sel.IsLocal && a.attackLocalFunc != nil {
			a.attackLocalFunc(e, e.Stats().PlayerDamage)
		}

		if IsDebugEnabled() {
			slog.Debug("enemy struck combatant",
				"enemy", e.ID(),
				"local", sel.IsLocal,
				"damage", e.Stats().PlayerDamage)
		}
		return
	}

	a.moveToward(target, dt)
}

// wander walks forward, occasionally re-randomizing facing. Hitting the room
// boundary also picks a fresh heading.
func (a *EnemyAI) wander(dt float64) {
	e := a.enemy

	if rand.IntN(wanderTurnRate) == 0 {
		a.randomizeFacing()
	}

	step := e.Facing().Scale(e.Stats().Speed * dt)
	next := a.clampToBounds(e.Position().Add(step))
	if next == a.clampToBounds(e.Position()) && (step.X != 0 || step.Z != 0) {
		// Pinned against the boundary: turn instead of grinding into it.
		a.randomizeFacing()
	}
	e.SetPosition(next)
}

// moveToward advances straight toward target at full speed, floor- and
// boundary-clamped. No steering or pathfinding.
func (a *EnemyAI) moveToward(target model.Vec3, dt float64) {
	e := a.enemy
	dir := e.Position().HorizontalDirectionTo(target)
	next := e.Position().Add(dir.Scale(e.Stats().Speed * dt))
	e.SetPosition(a.clampToBounds(next))
}

// tickDeath advances the death animation: fall to the ground over the first
// second, hold, then fade out and flag for removal.
func (a *EnemyAI) tickDeath(dt float64) {
	e := a.enemy
	e.AdvanceDeathAnimation(dt)
	t := e.DeathAnimationTime()

	switch e.State() {
	case model.StateDying:
		progress := min(t/deathFallDuration, 1)
		e.SetFallAngle(progress * math.Pi / 2)
		if t >= fadeStartTime {
			a.setState(model.StateFadingOut)
		}
	case model.StateFadingOut:
		e.SetOpacity(max(1-(t-fadeStartTime)/fadeDuration, 0))
		if e.Opacity() == 0 {
			a.setState(model.StateRemoved)
		}
	}
}

func (a *EnemyAI) setState(s model.EnemyState) {
	old := a.enemy.State()
	a.enemy.SetState(s)

	if old != s && IsDebugEnabled() {
		slog.Debug("enemy AI state changed",
			"enemy", a.enemy.ID(),
			"from", old,
			"to", s)
	}
}

func (a *EnemyAI) randomizeFacing() {
	angle := rand.Float64() * 2 * math.Pi
	a.enemy.SetFacing(model.Vec3{X: math.Cos(angle), Z: math.Sin(angle)})
}

// clampToBounds forces y to floor level and keeps x/z inside the room
// half-extent minus margin.
func (a *EnemyAI) clampToBounds(p model.Vec3) model.Vec3 {
	limit := a.bounds.HalfExtent - a.bounds.Margin
	p.X = min(max(p.X, -limit), limit)
	p.Z = min(max(p.Z, -limit), limit)
	p.Y = a.bounds.FloorLevel
	return p
}
