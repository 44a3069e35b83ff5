package ai

import "github.com/mkoval-dev/nightraid/internal/model"

// Controller represents a per-enemy AI controller driven by the frame loop.
type Controller interface {
	// Start starts the controller
	Start()

	// Stop stops the controller
	Stop()

	// Tick advances the behavior state machine by dt seconds.
	// Called once per frame by the spawn manager.
	Tick(dt float64)

	// SetLocalPlayer supplies the local combatant reference
	SetLocalPlayer(c model.Combatant)

	// SetRemotePlayers supplies the current remote combatant set
	SetRemotePlayers(remotes []model.Combatant)

	// Enemy returns the controlled entity
	Enemy() *model.Enemy
}
