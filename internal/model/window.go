package model

// Window is a boarded-up window — the breach point an enemy attacks until no
// boards remain. Owned by the room; enemies hold a nilable reference to it.
// Shared single-threaded: read by many enemies, mutated only through
// DamageBoard on the frame goroutine.
type Window struct {
	pos Vec3

	// boardHealths, index 0..n — highest index is the outermost (last applied)
	// board and takes damage first.
	boardHealths []int

	// onBoardBroken fires exactly once per fully destroyed board.
	onBoardBroken func(w *Window, remaining int)
}

// NewWindow creates a window at pos with boards boards of health per board each.
func NewWindow(pos Vec3, boards, healthPerBoard int) *Window {
	healths := make([]int, 0, boards)
	for range boards {
		healths = append(healths, healthPerBoard)
	}
	return &Window{pos: pos, boardHealths: healths}
}

// SetBoardBrokenFunc sets the board-break callback (audio cue, debris).
func (w *Window) SetBoardBrokenFunc(fn func(w *Window, remaining int)) {
	w.onBoardBroken = fn
}

// Position returns the window's world position.
func (w *Window) Position() Vec3 {
	return w.pos
}

// BoardsCount returns the number of boards still attached.
func (w *Window) BoardsCount() int {
	return len(w.boardHealths)
}

// BoardHealths returns a copy of the per-board health list.
func (w *Window) BoardHealths() []int {
	out := make([]int, len(w.boardHealths))
	copy(out, w.boardHealths)
	return out
}

// DamageBoard applies amount to the outermost board. Returns whether the hit
// was applied — false only when no boards remain. Destroying a board fires the
// board-broken callback once; leftover damage does not carry to the next board.
func (w *Window) DamageBoard(amount int) bool {
	n := len(w.boardHealths)
	if n == 0 {
		return false
	}

	w.boardHealths[n-1] -= amount
	if w.boardHealths[n-1] <= 0 {
		w.boardHealths = w.boardHealths[:n-1]
		if w.onBoardBroken != nil {
			w.onBoardBroken(w, len(w.boardHealths))
		}
	}
	return true
}

// AddBoard reattaches one board at full health (repair between waves).
func (w *Window) AddBoard(health int) {
	w.boardHealths = append(w.boardHealths, health)
}
