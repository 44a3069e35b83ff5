package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingLog_Bounded(t *testing.T) {
	l := NewPendingLog()

	for i := range 25 {
		l.Append(PendingAction{
			ActionID:  fmt.Sprintf("a%d", i),
			Timestamp: int64(i),
			Damage:    5,
			NewHealth: 100 - 5*i,
		})
	}

	assert.Equal(t, 10, l.Len(), "log must hold at most 10 entries")

	// The 10 most recent entries survive, oldest first.
	entries := l.Entries()
	assert.Equal(t, "a15", entries[0].ActionID)
	assert.Equal(t, "a24", entries[9].ActionID)
}

func TestPendingLog_OrderPreserved(t *testing.T) {
	l := NewPendingLog()
	l.Append(PendingAction{ActionID: "first"})
	l.Append(PendingAction{ActionID: "second"})

	entries := l.Entries()
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "first", entries[0].ActionID)
	assert.Equal(t, "second", entries[1].ActionID)
}
