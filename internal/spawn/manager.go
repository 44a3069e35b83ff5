package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkoval-dev/nightraid/internal/ai"
	"github.com/mkoval-dev/nightraid/internal/config"
	"github.com/mkoval-dev/nightraid/internal/game/combat"
	"github.com/mkoval-dev/nightraid/internal/model"
)

// entry pairs an enemy with its AI controller.
type entry struct {
	enemy *model.Enemy
	ctrl  ai.Controller
}

// Manager owns the live enemy collection. It is the only component that
// constructs and destroys entities: Update ticks every live enemy once per
// frame in collection order and evicts entities whose fade-out has completed.
//
// All entity state is owned by the goroutine driving Update (Run's frame
// loop); external mutations are posted onto that goroutine via Post.
type Manager struct {
	bounds     ai.Bounds
	variants   map[model.Variant]model.VariantStats
	difficulty model.DifficultyMultipliers

	reconciler *combat.Reconciler

	entries []*entry
	byID    map[string]*entry

	local   model.Combatant
	remotes []model.Combatant

	paused bool

	attackLocalFunc ai.AttackLocalFunc
	attackCueFunc   ai.AttackCueFunc

	// ops carries closures to run on the frame goroutine before the next
	// update — the single-writer discipline for cross-goroutine calls
	// (network dispatch, spawn controls).
	ops chan func()
}

// NewManager creates an enemy manager for the given room and stat tables.
func NewManager(cfg config.Config, reconciler *combat.Reconciler) *Manager {
	return &Manager{
		bounds: ai.Bounds{
			FloorLevel: cfg.Room.FloorLevel,
			HalfExtent: cfg.Room.HalfExtent,
			Margin:     cfg.Room.Margin,
		},
		variants:   cfg.Variants,
		difficulty: cfg.Difficulty,
		reconciler: reconciler,
		byID:       make(map[string]*entry),
		ops:        make(chan func(), 64),
	}
}

// SetAttackLocalFunc sets the callback that damages the local player.
func (m *Manager) SetAttackLocalFunc(fn ai.AttackLocalFunc) {
	m.attackLocalFunc = fn
}

// SetAttackCueFunc sets the attack animation/audio cue callback.
func (m *Manager) SetAttackCueFunc(fn ai.AttackCueFunc) {
	m.attackCueFunc = fn
}

// SetPlayer supplies the local combatant reference to every enemy.
func (m *Manager) SetPlayer(c model.Combatant) {
	m.local = c
	for _, en := range m.entries {
		en.ctrl.SetLocalPlayer(c)
	}
}

// SetRemotes supplies the current remote combatant set to every enemy.
func (m *Manager) SetRemotes(remotes []model.Combatant) {
	m.remotes = remotes
	for _, en := range m.entries {
		en.ctrl.SetRemotePlayers(remotes)
	}
}

// SetDifficulty updates the multipliers applied to future spawns.
// Already-spawned enemies keep their stat block.
func (m *Manager) SetDifficulty(d model.DifficultyMultipliers) {
	m.difficulty = d
}

// SetPaused pauses or resumes entity updates.
func (m *Manager) SetPaused(paused bool) {
	m.paused = paused
}

// Spawn creates an enemy of the given variant targeting window and registers
// its AI controller. Returns the new entity.
func (m *Manager) Spawn(variant model.Variant, window *model.Window) (*model.Enemy, error) {
	base, ok := m.variants[variant]
	if !ok {
		return nil, fmt.Errorf("unknown enemy variant %q", variant)
	}

	enemy := model.NewEnemy(variant, base, m.difficulty, window)
	if window != nil {
		spawnPos := window.Position()
		// Spawn a few units outside the window, on the far side from the
		// room center.
		outward := model.Vec3{}.HorizontalDirectionTo(window.Position())
		spawnPos = spawnPos.Add(outward.Scale(3)).WithY(m.bounds.FloorLevel)
		enemy.SetPosition(spawnPos)
	}

	ctrl := ai.NewEnemyAI(enemy, m.bounds, m.attackLocalFunc)
	ctrl.SetAttackCueFunc(m.attackCueFunc)
	ctrl.SetLocalPlayer(m.local)
	ctrl.SetRemotePlayers(m.remotes)
	ctrl.Start()

	en := &entry{enemy: enemy, ctrl: ctrl}
	m.entries = append(m.entries, en)
	m.byID[enemy.ID()] = en

	slog.Info("enemy spawned",
		"enemy", enemy.ID(),
		"variant", variant,
		"health", enemy.Health())

	return enemy, nil
}

// Get returns a live enemy by ID.
func (m *Manager) Get(id string) (*model.Enemy, bool) {
	en, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return en.enemy, true
}

// Count returns the number of live entities (death animation included).
func (m *Manager) Count() int {
	return len(m.entries)
}

// Clear stops and removes every entity immediately (round reset).
func (m *Manager) Clear() {
	for _, en := range m.entries {
		en.ctrl.Stop()
		delete(m.byID, en.enemy.ID())
	}
	m.entries = m.entries[:0]

	slog.Info("enemy collection cleared")
}

// Update ticks every live entity once, in collection order, then evicts
// entities that finished fading out. No-op while paused.
func (m *Manager) Update(dt float64) {
	if m.paused {
		return
	}

	m.drainOps()

	for _, en := range m.entries {
		en.ctrl.Tick(dt)
	}

	m.evictRemoved()
}

// ApplyHostDamage applies a client-reported hit on the authoritative path.
// Called from the network dispatch goroutine, so it is posted onto the frame
// loop. The host recomputes from its own state: the client's newHealth claim
// is not trusted, only the damage amount.
func (m *Manager) ApplyHostDamage(enemyID string, damage int) {
	m.Post(func() {
		en, ok := m.byID[enemyID]
		if !ok {
			// Already evicted or never known; a stale client report is
			// not an error.
			slog.Debug("damage report for unknown enemy", "enemy", enemyID)
			return
		}
		m.reconciler.TakeDamage(en.enemy, float64(damage))
	})
}

// Post schedules fn to run on the frame goroutine before the next update.
// Drops with a warning if the queue is full — frame-loop liveness wins.
func (m *Manager) Post(fn func()) {
	select {
	case m.ops <- fn:
	default:
		slog.Warn("frame op queue full, dropping op")
	}
}

// Run drives Update from a fixed-rate ticker until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, tickRate int) error {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("enemy manager started", "tick_rate", tickRate)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("enemy manager stopping")
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			m.Update(dt)
		}
	}
}

func (m *Manager) drainOps() {
	for {
		select {
		case fn := <-m.ops:
			fn()
		default:
			return
		}
	}
}

func (m *Manager) evictRemoved() {
	kept := m.entries[:0]
	for _, en := range m.entries {
		if en.enemy.State() == model.StateRemoved {
			en.ctrl.Stop()
			delete(m.byID, en.enemy.ID())

			if ai.IsDebugEnabled() {
				slog.Debug("enemy evicted", "enemy", en.enemy.ID())
			}
			continue
		}
		kept = append(kept, en)
	}
	m.entries = kept
}
