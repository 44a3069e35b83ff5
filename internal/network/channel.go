package network

// Action types carried in message envelopes.
const (
	// ActionDamageEnemy notifies the host of a client-inflicted hit.
	ActionDamageEnemy = "damageEnemy"
)

// Channel sends game actions to the session host. Send is fire-and-forget:
// it returns an action identifier for the local audit trail and never blocks
// on delivery. Transport failures are not retried or surfaced to combat code.
type Channel interface {
	Send(action string, payload any) (actionID string, err error)
}
