package model

// PendingAction is one outbound damage notification recorded locally.
// Audit trail only — never read back to mutate combat state.
type PendingAction struct {
	ActionID  string
	Timestamp int64 // UnixMilli at send time
	Damage    int
	NewHealth int
}

// pendingLogCapacity bounds the per-enemy pending-action log.
const pendingLogCapacity = 10

// PendingLog is a bounded FIFO of outbound damage actions. When full, the
// oldest entry is evicted first.
type PendingLog struct {
	entries []PendingAction
}

// NewPendingLog creates an empty pending-action log.
func NewPendingLog() *PendingLog {
	return &PendingLog{entries: make([]PendingAction, 0, pendingLogCapacity)}
}

// Append records an action, evicting the oldest entry when the log is full.
func (l *PendingLog) Append(a PendingAction) {
	if len(l.entries) >= pendingLogCapacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, a)
}

// Len returns the number of recorded actions.
func (l *PendingLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log, oldest first.
func (l *PendingLog) Entries() []PendingAction {
	out := make([]PendingAction, len(l.entries))
	copy(out, l.entries)
	return out
}
