package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/nightraid/internal/config"
	"github.com/mkoval-dev/nightraid/internal/game/combat"
	"github.com/mkoval-dev/nightraid/internal/model"
)

func newTestManager(t *testing.T) (*Manager, *combat.Reconciler) {
	t.Helper()
	r := combat.NewReconciler(true)
	return NewManager(config.Default(), r), r
}

func TestManager_SpawnAndCount(t *testing.T) {
	m, _ := newTestManager(t)
	window := model.NewWindow(model.NewVec3(0, 1, -5), 2, 30)

	e, err := m.Spawn(model.VariantStandard, window)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, model.StateApproachWindow, e.State())

	got, ok := m.Get(e.ID())
	require.True(t, ok)
	assert.Same(t, e, got)

	// Spawned outside the window, on the far side from the room center.
	assert.Less(t, e.Position().Z, window.Position().Z)
	assert.Equal(t, 0.0, e.Position().Y)
}

func TestManager_UnknownVariant(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Spawn(model.Variant("crawler"), nil)
	assert.Error(t, err)
	assert.Zero(t, m.Count())
}

func TestManager_DifficultyAppliesToFutureSpawns(t *testing.T) {
	m, _ := newTestManager(t)

	before, err := m.Spawn(model.VariantStandard, nil)
	require.NoError(t, err)

	m.SetDifficulty(model.DifficultyMultipliers{Health: 3, Speed: 1, Damage: 1})
	after, err := m.Spawn(model.VariantStandard, nil)
	require.NoError(t, err)

	assert.Equal(t, 100, before.MaxHealth(), "already-spawned enemies keep their stats")
	assert.Equal(t, 300, after.MaxHealth())
}

func TestManager_UpdateEvictsRemoved(t *testing.T) {
	m, r := newTestManager(t)

	e, err := m.Spawn(model.VariantStandard, nil)
	require.NoError(t, err)

	r.TakeDamage(e, 1000)
	require.True(t, e.IsDead())

	// Run the death animation to completion: 2s fall + 2s fade.
	for range 100 {
		m.Update(0.05)
	}
	assert.Equal(t, 0, m.Count(), "faded-out enemies are evicted")
	_, ok := m.Get(e.ID())
	assert.False(t, ok)
}

func TestManager_PauseStopsUpdates(t *testing.T) {
	m, _ := newTestManager(t)
	window := model.NewWindow(model.NewVec3(0, 1, -5), 1, 30)

	e, err := m.Spawn(model.VariantStandard, window)
	require.NoError(t, err)
	pos := e.Position()

	m.SetPaused(true)
	for range 10 {
		m.Update(0.1)
	}
	assert.Equal(t, pos, e.Position(), "paused manager must not tick entities")

	m.SetPaused(false)
	m.Update(0.1)
	assert.NotEqual(t, pos, e.Position())
}

func TestManager_Clear(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Spawn(model.VariantStandard, nil)
	require.NoError(t, err)
	_, err = m.Spawn(model.VariantRunner, nil)
	require.NoError(t, err)
	require.Equal(t, 2, m.Count())

	m.Clear()
	assert.Zero(t, m.Count())
}

func TestManager_ApplyHostDamage(t *testing.T) {
	m, _ := newTestManager(t)

	e, err := m.Spawn(model.VariantStandard, nil)
	require.NoError(t, err)

	// Posted from the network goroutine; applied on the next update.
	m.ApplyHostDamage(e.ID(), 30)
	assert.Equal(t, 100, e.Health(), "host damage is deferred to the frame loop")

	m.Update(0.01)
	assert.Equal(t, 70, e.Health())

	// Unknown enemy: stale report, silently dropped.
	m.ApplyHostDamage("missing", 30)
	m.Update(0.01)
}

func TestManager_SetPlayerReachesSpawnedEnemies(t *testing.T) {
	m, _ := newTestManager(t)

	var hits int
	m.SetAttackLocalFunc(func(_ *model.Enemy, _ int) { hits++ })

	e, err := m.Spawn(model.VariantStandard, nil)
	require.NoError(t, err)
	e.SetState(model.StateChaseOrWander)
	e.SetInsideRoom(true)
	e.SetPosition(model.Vec3{})

	// Player supplied after the spawn still reaches the live enemy.
	m.SetPlayer(&model.PlayerRef{Pos: model.NewVec3(1, 0, 0)})

	m.Update(0.1)
	assert.Equal(t, 1, hits)
}
