package puzzle

// ScrewID uniquely identifies a screw within a session.
// IDs are assigned at level load and never reused during a session.
type ScrewID int

// PartID uniquely identifies a part (board) within a session.
type PartID int

// TrayID uniquely identifies a colored tray within a session.
type TrayID int

// Carousel layout constants. The carousel holds five tray slots of
// which the first two are on screen; a retired tray leaves the
// carousel entirely.
const (
	VisibleSlots  = 2
	CarouselSlots = 5
	RetiredOrder  = 99
)

// ScrewState tracks a screw through its lifecycle.
type ScrewState int

const (
	// ScrewInBoard means the screw is still mounted on its part.
	ScrewInBoard ScrewState = iota

	// ScrewAnimating means the screw has been claimed and is flying
	// toward its reserved destination.
	ScrewAnimating

	// ScrewInTray means the screw has landed in a colored tray.
	ScrewInTray

	// ScrewInBuffer means the screw sits in the overflow buffer.
	// A buffered screw mid-transfer keeps this state (with Animating
	// set) until the transfer completes.
	ScrewInBuffer
)

// String returns a human-readable name for the screw state.
func (s ScrewState) String() string {
	switch s {
	case ScrewInBoard:
		return "in-board"
	case ScrewAnimating:
		return "animating"
	case ScrewInTray:
		return "in-tray"
	case ScrewInBuffer:
		return "in-buffer"
	default:
		return "unknown"
	}
}

// Screw is a removable puzzle unit attached to a part.
type Screw struct {
	ID    ScrewID
	Color Color

	// Part is the owning part, 0 once the screw has detached.
	Part PartID

	// Mount identifies the hole the screw occupied on its part.
	Mount string

	State ScrewState

	// Target is the reserved destination, valid from the moment the
	// screw is claimed. The reservation is made synchronously with the
	// placement decision, never at animation completion.
	Target Placement

	// Animating guards the screw against being claimed twice while a
	// removal or transfer animation is running.
	Animating bool
}

// PartState tracks a part (board) through its lifecycle.
type PartState int

const (
	// PartStatic is a board with all of its screws in place.
	PartStatic PartState = iota

	// PartLoosened is a board that has lost at least one screw.
	PartLoosened

	// PartPivoting is a board swinging on its last anchor; set by the
	// external physics layer, never by the engine.
	PartPivoting

	// PartFree is a board whose last screw has been removed. The
	// transition is irreversible.
	PartFree
)

// String returns a human-readable name for the part state.
func (s PartState) String() string {
	switch s {
	case PartStatic:
		return "static"
	case PartLoosened:
		return "loosened"
	case PartPivoting:
		return "pivoting"
	case PartFree:
		return "free"
	default:
		return "unknown"
	}
}

// Part is a puzzle board holding zero or more screws.
type Part struct {
	ID    PartID
	Layer int

	// ScrewsLeft counts screws still mounted. Decremented exactly once
	// per removal, floored at zero against duplicate events.
	ScrewsLeft int

	State PartState
}

// Tray is a fixed-capacity, color-matched destination for screws.
type Tray struct {
	ID       TrayID
	Color    Color
	Capacity int

	// Count is incremented at reservation time, so it includes screws
	// still flying toward the tray. It never exceeds Capacity.
	Count int

	// DisplayOrder is the carousel slot: 0-1 visible, 2-4 hidden
	// queue, RetiredOrder once the tray has left the carousel.
	DisplayOrder int

	// Animating is the mutual-exclusion flag set while the tray takes
	// part in a hide/shift/reveal transition.
	Animating bool
}

// Visible reports whether the tray occupies an on-screen slot.
func (t *Tray) Visible() bool {
	return t.DisplayOrder < VisibleSlots
}

// Hidden reports whether the tray waits in the off-screen queue.
func (t *Tray) Hidden() bool {
	return t.DisplayOrder >= VisibleSlots && t.DisplayOrder != RetiredOrder
}

// Retired reports whether the tray has left the carousel for good.
func (t *Tray) Retired() bool {
	return t.DisplayOrder == RetiredOrder
}

// Full reports whether every slot of the tray is reserved or occupied.
func (t *Tray) Full() bool {
	return t.Count >= t.Capacity
}

// Buffer is the color-agnostic overflow holding area. Entries are
// appended at reservation time, so the FIFO order is the tap order and
// the length already accounts for screws still in flight toward it.
type Buffer struct {
	Capacity int
	fifo     []ScrewID
}

// Len returns the number of reserved buffer slots.
func (b *Buffer) Len() int {
	return len(b.fifo)
}

// Full reports whether the buffer has no free slot left, counting
// in-flight reservations.
func (b *Buffer) Full() bool {
	return len(b.fifo) >= b.Capacity
}

// Push reserves the next FIFO slot for the given screw and returns the
// slot index. Returns -1 if the buffer is full.
func (b *Buffer) Push(id ScrewID) int {
	if b.Full() {
		return -1
	}
	b.fifo = append(b.fifo, id)
	return len(b.fifo) - 1
}

// Remove deletes the given screw from the FIFO, preserving the order
// of the remaining entries. Returns false if the screw is not present.
func (b *Buffer) Remove(id ScrewID) bool {
	for i, s := range b.fifo {
		if s == id {
			b.fifo = append(b.fifo[:i], b.fifo[i+1:]...)
			return true
		}
	}
	return false
}

// Screws returns a copy of the FIFO in arrival order.
func (b *Buffer) Screws() []ScrewID {
	out := make([]ScrewID, len(b.fifo))
	copy(out, b.fifo)
	return out
}

// Clear empties the buffer. Used only by level reset.
func (b *Buffer) Clear() {
	b.fifo = b.fifo[:0]
}

// Phase is the terminal-state machine of a puzzle session. It is
// monotonic: once a session leaves PhasePlaying it never returns.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseWon
	PhaseStuck
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseStuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// WinCondition selects how the detector decides a session is won.
type WinCondition int

const (
	// WinAllScrewsRemoved wins when no screw remains in a board or in
	// the buffer. The only condition today; the type exists so level
	// files can introduce others without touching the detector's
	// callers.
	WinAllScrewsRemoved WinCondition = iota
)

// Session holds the per-level bookkeeping of a puzzle run.
type Session struct {
	Phase Phase

	// TotalScrews is fixed at load time.
	TotalScrews int

	// RemovedScrews is monotonic non-decreasing within a session.
	RemovedScrews int

	Win WinCondition
}
