package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/nightraid/internal/model"
)

var testBounds = Bounds{FloorLevel: 0, HalfExtent: 9, Margin: 0.5}

func newTestAI(t *testing.T, variant model.Variant, window *model.Window) (*EnemyAI, *model.Enemy) {
	t.Helper()
	stats, ok := model.DefaultVariantStats()[variant]
	require.True(t, ok)
	enemy := model.NewEnemy(variant, stats, model.DefaultDifficulty(), window)
	ctrl := NewEnemyAI(enemy, testBounds, nil)
	ctrl.Start()
	return ctrl, enemy
}

// tickUntil runs the controller until cond holds or maxTicks elapse.
func tickUntil(ctrl *EnemyAI, dt float64, maxTicks int, cond func() bool) bool {
	for range maxTicks {
		if cond() {
			return true
		}
		ctrl.Tick(dt)
	}
	return cond()
}

func TestEnemyAI_ApproachReachesWindow(t *testing.T) {
	window := model.NewWindow(model.NewVec3(0, 1, -5), 2, 30)
	ctrl, enemy := newTestAI(t, model.VariantStandard, window)
	enemy.SetPosition(model.NewVec3(0, 0, -8))

	reached := tickUntil(ctrl, 0.1, 1000, func() bool {
		return enemy.State() == model.StateAttackWindow
	})
	require.True(t, reached, "enemy must walk to the window and start attacking boards")

	// Approach is floor-clamped and straight-line.
	assert.Equal(t, 0.0, enemy.Position().Y)
	assert.Less(t, enemy.Position().HorizontalDistance(window.Position()), 0.5)
}

func TestEnemyAI_WindowAttackCooldownGating(t *testing.T) {
	window := model.NewWindow(model.NewVec3(0, 1, -5), 2, 30)
	ctrl, enemy := newTestAI(t, model.VariantStandard, window)
	// Already at the breach point.
	enemy.SetPosition(model.NewVec3(0, 0, -5.2))

	ctrl.Tick(0.1) // ApproachWindow → AttackWindow
	require.Equal(t, model.StateAttackWindow, enemy.State())

	ctrl.Tick(0.1) // first board hit
	require.Equal(t, []int{30, 20}, window.BoardHealths())

	// Two more ticks inside the 1s attack-rate window: no further hits.
	ctrl.Tick(0.1)
	ctrl.Tick(0.1)
	assert.Equal(t, []int{30, 20}, window.BoardHealths(),
		"attack rate gates board hits to one per 1/attackRate seconds")

	// Once the cooldown elapses, the next tick hits again.
	for range 10 {
		ctrl.Tick(0.1)
	}
	assert.Equal(t, []int{30, 10}, window.BoardHealths())
}

func TestEnemyAI_BreachFlow(t *testing.T) {
	window := model.NewWindow(model.NewVec3(0, 1, -5), 1, 10)
	ctrl, enemy := newTestAI(t, model.VariantStandard, window)
	enemy.SetPosition(model.NewVec3(0, 0, -5.2))

	breached := tickUntil(ctrl, 0.1, 100, func() bool {
		return enemy.State() == model.StateChaseOrWander
	})
	require.True(t, breached)

	assert.Equal(t, 0, window.BoardsCount())
	assert.True(t, enemy.InsideRoom())
	// Snapped just inside the breach, toward the room center.
	assert.Greater(t, enemy.Position().Z, window.Position().Z)
}

func TestEnemyAI_LostWindowFallsBackToWander(t *testing.T) {
	ctrl, enemy := newTestAI(t, model.VariantStandard, nil)
	enemy.SetPosition(model.NewVec3(2, 0, 2))

	ctrl.Tick(0.1)
	assert.Equal(t, model.StateChaseOrWander, enemy.State())
}

func TestEnemyAI_WandersForeverWithoutPlayers(t *testing.T) {
	ctrl, enemy := newTestAI(t, model.VariantStandard, nil)
	enemy.SetPosition(model.NewVec3(0, 0, 0))
	enemy.SetState(model.StateChaseOrWander)
	enemy.SetInsideRoom(true)

	limit := testBounds.HalfExtent - testBounds.Margin
	for range 2000 {
		ctrl.Tick(0.05)
	}

	assert.Equal(t, model.StateChaseOrWander, enemy.State(),
		"no combatant ever supplied: wander is a valid non-terminal state")
	assert.False(t, enemy.IsDead())
	assert.LessOrEqual(t, math.Abs(enemy.Position().X), limit)
	assert.LessOrEqual(t, math.Abs(enemy.Position().Z), limit)
	assert.Equal(t, 0.0, enemy.Position().Y)
}

func TestEnemyAI_ChasesAndStrikesLocalPlayer(t *testing.T) {
	var hits []int
	attackLocal := func(_ *model.Enemy, damage int) {
		hits = append(hits, damage)
	}

	stats := model.DefaultVariantStats()[model.VariantStandard]
	enemy := model.NewEnemy(model.VariantStandard, stats, model.DefaultDifficulty(), nil)
	enemy.SetPosition(model.NewVec3(-4, 0, 0))
	enemy.SetState(model.StateChaseOrWander)
	enemy.SetInsideRoom(true)

	ctrl := NewEnemyAI(enemy, testBounds, attackLocal)
	ctrl.SetLocalPlayer(&model.PlayerRef{Pos: model.NewVec3(0, 0, 0)})
	ctrl.Start()

	struck := tickUntil(ctrl, 0.1, 1000, func() bool {
		return len(hits) > 0
	})
	require.True(t, struck, "enemy must close distance and strike the local player")
	assert.Equal(t, stats.PlayerDamage, hits[0])

	// The strike is cooldown-gated: one more full cooldown for a second hit.
	ticksPerCooldown := int(stats.AttackCooldown/0.1) + 1
	for range ticksPerCooldown {
		ctrl.Tick(0.1)
	}
	assert.Equal(t, 2, len(hits))
}

func TestEnemyAI_RemoteTargetNotDirectlyDamaged(t *testing.T) {
	var localHits int
	attackLocal := func(_ *model.Enemy, _ int) { localHits++ }

	stats := model.DefaultVariantStats()[model.VariantStandard]
	enemy := model.NewEnemy(model.VariantStandard, stats, model.DefaultDifficulty(), nil)
	enemy.SetPosition(model.Vec3{})
	enemy.SetState(model.StateChaseOrWander)
	enemy.SetInsideRoom(true)

	ctrl := NewEnemyAI(enemy, testBounds, attackLocal)
	ctrl.SetLocalPlayer(&model.PlayerRef{Pos: model.NewVec3(8, 0, 0), Dead: true})
	ctrl.SetRemotePlayers([]model.Combatant{
		&model.PlayerRef{Pos: model.NewVec3(1, 0, 0)},
	})
	ctrl.Start()

	for range 50 {
		ctrl.Tick(0.1)
	}

	// The remote combatant is chased and swung at, but its health is owned
	// by its own client — no direct damage path fires.
	assert.Zero(t, localHits)
	assert.Greater(t, enemy.LastPlayerAttackTime(), 0.0,
		"enemy must still swing at the remote target")
}

func TestEnemyAI_DeathAnimationTimeline(t *testing.T) {
	ctrl, enemy := newTestAI(t, model.VariantStandard, nil)
	require.True(t, enemy.MarkDead())
	require.Equal(t, model.StateDying, enemy.State())

	// Falling phase: rotation reaches 90° within the first second and is
	// clamped there.
	for range 10 {
		ctrl.Tick(0.1)
	}
	assert.InDelta(t, math.Pi/2, enemy.FallAngle(), 1e-9)
	assert.Equal(t, model.StateDying, enemy.State())

	// At 2s the fade begins.
	for range 11 {
		ctrl.Tick(0.1)
	}
	assert.Equal(t, model.StateFadingOut, enemy.State())

	// Fade runs 2s down to zero opacity, then the entity is flagged for
	// eviction.
	for range 25 {
		ctrl.Tick(0.1)
	}
	assert.Equal(t, 0.0, enemy.Opacity())
	assert.Equal(t, model.StateRemoved, enemy.State())
}

func TestEnemyAI_DeadEnemyIgnoresBehavior(t *testing.T) {
	window := model.NewWindow(model.NewVec3(0, 1, -5), 1, 10)
	ctrl, enemy := newTestAI(t, model.VariantStandard, window)
	enemy.SetPosition(model.NewVec3(0, 0, -5.2))
	require.True(t, enemy.MarkDead())

	pos := enemy.Position()
	for range 10 {
		ctrl.Tick(0.1)
	}

	assert.Equal(t, pos, enemy.Position(), "dead enemies only animate, never move")
	assert.Equal(t, 1, window.BoardsCount())
}
