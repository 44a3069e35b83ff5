package network

import "encoding/json"

// Envelope is the wire frame for every message: action type, correlation ID,
// and the action-specific payload.
type Envelope struct {
	Type     string          `json:"type"`
	ActionID string          `json:"actionId"`
	Payload  json.RawMessage `json:"payload"`
}

// DamageEnemyPayload reports a client-predicted hit to the host. The client
// has already applied the damage locally; the host's own computation stays
// authoritative. EnemyID is the correlation key.
type DamageEnemyPayload struct {
	EnemyID        string `json:"enemyId"`
	Damage         int    `json:"damage"`
	IsHeadshot     bool   `json:"isHeadshot"`
	OriginalHealth int    `json:"originalHealth"`
	NewHealth      int    `json:"newHealth"`
	IsDead         bool   `json:"isDead"`
	Timestamp      int64  `json:"timestamp"` // UnixMilli at the sender
}
