package combat

import (
	"log/slog"
	"math"
	"time"

	"github.com/mkoval-dev/nightraid/internal/model"
	"github.com/mkoval-dev/nightraid/internal/network"
)

// hitFlashDuration is the hit-flash visual length in seconds.
// Cosmetic only; the revert never touches combat state.
const hitFlashDuration = 0.15

// HitResult describes one applied hit, for observation in tests and scoring.
type HitResult struct {
	EnemyID   string
	Damage    int
	NewHealth int
	Died      bool
}

// Reconciler applies damage to enemies and runs the optimistic-client /
// authoritative-host notification protocol.
//
// Two entry points: TakeDamage is the local-authority path (host or
// single-player); ClientTakeDamage is the optimistic path a non-host client
// uses when it lands a hit — apply locally first, then notify the host
// fire-and-forget. There is no rollback if the host's own computation later
// disagrees; the pending-action log is a diagnostic audit trail only.
type Reconciler struct {
	// isHost: the host's state is authoritative, so it never emits
	// damage notifications.
	isHost bool

	// deathFunc is called exactly once per enemy death — scoring, audio,
	// wave bookkeeping. Injected to avoid an import cycle with the spawn
	// manager.
	deathFunc func(e *model.Enemy)

	// hitObserver — callback for observing applied hits (nil in production).
	hitObserver func(HitResult)
}

// NewReconciler creates a Reconciler for a host or client session role.
func NewReconciler(isHost bool) *Reconciler {
	return &Reconciler{isHost: isHost}
}

// SetDeathFunc sets the enemy-death callback.
func (r *Reconciler) SetDeathFunc(fn func(e *model.Enemy)) {
	r.deathFunc = fn
}

// SetHitObserver sets a callback for observing applied hits (for tests).
func (r *Reconciler) SetHitObserver(fn func(HitResult)) {
	r.hitObserver = fn
}

// IsHost reports the session role.
func (r *Reconciler) IsHost() bool {
	return r.isHost
}

// TakeDamage applies amount to the enemy on the local-authority path.
// Floors amount to an integer, clamps health to [0, maxHealth], starts the
// hit-flash visual, and performs the one-way death transition when health
// reaches zero. Non-positive amounts and hits on already-dead enemies are
// silent no-ops — combat code stays real-time-safe, nothing here errors.
func (r *Reconciler) TakeDamage(e *model.Enemy, amount float64) {
	dmg := int(math.Floor(amount))
	if dmg <= 0 || e.IsDead() {
		return
	}

	e.ReduceHealth(dmg)
	e.FlashHit(hitFlashDuration)

	died := false
	if e.Health() == 0 && e.MarkDead() {
		died = true
		if r.deathFunc != nil {
			r.deathFunc(e)
		}
		slog.Debug("enemy died", "enemy", e.ID(), "variant", e.Variant())
	}

	if r.hitObserver != nil {
		r.hitObserver(HitResult{
			EnemyID:   e.ID(),
			Damage:    dmg,
			NewHealth: e.Health(),
			Died:      died,
		})
	}
}

// ClientTakeDamage is the optimistic client path for a locally landed hit.
// The damage is applied immediately — the client never waits for host
// confirmation — and, when a channel is present and this instance is not the
// host, a damageEnemy notification is sent fire-and-forget and recorded in
// the enemy's bounded pending-action log. Returns the resulting local health
// for immediate UI feedback regardless of send outcome. Non-positive amounts
// are no-ops, not errors.
func (r *Reconciler) ClientTakeDamage(e *model.Enemy, amount float64, isHeadshot bool, ch network.Channel) int {
	if math.Floor(amount) <= 0 {
		return e.Health()
	}

	originalHealth := e.Health()
	r.TakeDamage(e, amount)

	if ch == nil || r.isHost {
		return e.Health()
	}

	now := time.Now().UnixMilli()
	payload := network.DamageEnemyPayload{
		EnemyID:        e.ID(),
		Damage:         int(math.Floor(amount)),
		IsHeadshot:     isHeadshot,
		OriginalHealth: originalHealth,
		NewHealth:      e.Health(),
		IsDead:         e.IsDead(),
		Timestamp:      now,
	}

	actionID, err := ch.Send(network.ActionDamageEnemy, payload)
	if err != nil {
		// Dropped notification means the host may never learn of this
		// hit. Known limitation — not retried, not surfaced.
		slog.Warn("damage notification send failed",
			"enemy", e.ID(),
			"err", err)
	}

	e.PendingActions().Append(model.PendingAction{
		ActionID:  actionID,
		Timestamp: now,
		Damage:    payload.Damage,
		NewHealth: payload.NewHealth,
	})

	return e.Health()
}
