package ai

import "github.com/mkoval-dev/nightraid/internal/model"

// Selection is the result of target selection: the chosen combatant and
// whether it is the local player. Only the local player takes damage through
// the direct path — remote health is owned by that player's own client.
type Selection struct {
	Target  model.Combatant
	IsLocal bool
}

// SelectTarget picks the attack/chase target for an enemy at pos: the closest
// alive combatant on the horizontal plane, candidate order local-first so
// distance ties resolve to the local player. Returns false when no alive
// candidate exists and the caller should wander.
//
// This is the single canonical algorithm. The original client carried a
// second, divergent fallback (first alive remote when the local player died)
// which is a bug and is deliberately not reproduced.
func SelectTarget(pos model.Vec3, local model.Combatant, remotes []model.Combatant) (Selection, bool) {
	var (
		best     Selection
		bestDist float64
		found    bool
	)

	consider := func(c model.Combatant, isLocal bool) {
		if c == nil || c.IsDead() {
			return
		}
		d := pos.HorizontalDistanceSquared(c.Position())
		if !found || d < bestDist {
			best = Selection{Target: c, IsLocal: isLocal}
			bestDist = d
			found = true
		}
	}

	consider(local, true)
	for _, r := range remotes {
		consider(r, false)
	}

	return best, found
}

// AttackEligible reports whether the enemy may strike target at game-clock
// now: inside melee reach and past the per-combatant cooldown.
func AttackEligible(e *model.Enemy, target model.Combatant, now float64) bool {
	rangeSq := e.Stats().AttackRange * e.Stats().AttackRange
	if e.Position().HorizontalDistanceSquared(target.Position()) >= rangeSq {
		return false
	}
	// A zero stamp means the enemy has not struck anyone yet.
	last := e.LastPlayerAttackTime()
	return last == 0 || now-last >= e.Stats().AttackCooldown
}
