package model

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID creates an opaque unique identifier (16 hex chars).
// Used for enemy IDs and network action IDs — the correlation keys in
// damage-reconciliation messages.
func GenerateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
