package puzzle

import (
	"fmt"
	"sort"
)

// Setup describes the initial contents of a puzzle session. It is
// produced by the level loader; the engine performs no loading itself.
type Setup struct {
	TrayCapacity   int
	BufferCapacity int

	// Trays lists tray colors in carousel order; the first
	// VisibleSlots entries start on screen.
	Trays []Color

	Parts []PartSetup

	Win WinCondition
}

// PartSetup describes one board and the screws mounted on it.
type PartSetup struct {
	Layer  int
	Screws []Color
}

// State exclusively owns all entities of a session. Orchestration
// components share the same *State and must only be driven from a
// single goroutine (see Engine).
type State struct {
	setup Setup

	screws map[ScrewID]*Screw
	order  []ScrewID // creation order, survivors only
	parts  map[PartID]*Part
	trays  []*Tray // carousel order
	buffer *Buffer

	session Session
}

// NewState builds a fresh session state from a level setup.
func NewState(setup Setup) *State {
	st := &State{setup: setup}
	st.rebuild()
	return st
}

// Reset atomically rebuilds every entity, counter and queue back to
// the level-load values. Stale in-flight references from before the
// reset resolve to missing entities and no-op.
func (st *State) Reset() {
	st.rebuild()
}

func (st *State) rebuild() {
	st.screws = make(map[ScrewID]*Screw)
	st.order = st.order[:0]
	st.parts = make(map[PartID]*Part)
	st.trays = st.trays[:0]
	st.buffer = &Buffer{Capacity: st.setup.BufferCapacity}

	for i, color := range st.setup.Trays {
		st.trays = append(st.trays, &Tray{
			ID:           TrayID(i + 1),
			Color:        color,
			Capacity:     st.setup.TrayCapacity,
			DisplayOrder: i,
		})
	}

	total := 0
	nextScrew := ScrewID(1)
	for i, ps := range st.setup.Parts {
		partID := PartID(i + 1)
		st.parts[partID] = &Part{
			ID:         partID,
			Layer:      ps.Layer,
			ScrewsLeft: len(ps.Screws),
		}
		for m, color := range ps.Screws {
			s := &Screw{
				ID:    nextScrew,
				Color: color,
				Part:  partID,
				Mount: fmt.Sprintf("p%d-m%d", partID, m),
				State: ScrewInBoard,
			}
			st.screws[s.ID] = s
			st.order = append(st.order, s.ID)
			nextScrew++
			total++
		}
	}

	st.session = Session{
		Phase:       PhasePlaying,
		TotalScrews: total,
		Win:         st.setup.Win,
	}
}

// Setup returns the level setup the state was built from.
func (st *State) Setup() Setup {
	return st.setup
}

// Session returns the mutable session bookkeeping.
func (st *State) Session() *Session {
	return &st.session
}

// Buffer returns the overflow buffer.
func (st *State) Buffer() *Buffer {
	return st.buffer
}

// Screw looks up a screw by ID; nil if it no longer exists.
func (st *State) Screw(id ScrewID) *Screw {
	return st.screws[id]
}

// Part looks up a part by ID; nil if it no longer exists.
func (st *State) Part(id PartID) *Part {
	return st.parts[id]
}

// Tray looks up a tray by ID; nil if it no longer exists.
func (st *State) Tray(id TrayID) *Tray {
	for _, t := range st.trays {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Trays returns all trays in carousel-construction order.
func (st *State) Trays() []*Tray {
	return st.trays
}

// Parts returns all parts sorted by ID for deterministic iteration.
func (st *State) Parts() []*Part {
	out := make([]*Part, 0, len(st.parts))
	for _, p := range st.parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Screws returns surviving screws in creation order.
func (st *State) Screws() []*Screw {
	out := make([]*Screw, 0, len(st.order))
	for _, id := range st.order {
		if s := st.screws[id]; s != nil {
			out = append(out, s)
		}
	}
	return out
}

// VisibleTrays returns on-screen trays sorted by display order.
func (st *State) VisibleTrays() []*Tray {
	var out []*Tray
	for _, t := range st.trays {
		if t.Visible() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// HiddenTrays returns queued off-screen trays sorted by display order.
func (st *State) HiddenTrays() []*Tray {
	var out []*Tray
	for _, t := range st.trays {
		if t.Hidden() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// AnyTrayAnimating reports whether any tray takes part in a carousel
// transition right now.
func (st *State) AnyTrayAnimating() bool {
	for _, t := range st.trays {
		if t.Animating {
			return true
		}
	}
	return false
}

// AnyScrewAnimating reports whether any screw is mid-flight.
func (st *State) AnyScrewAnimating() bool {
	for _, s := range st.screws {
		if s.Animating {
			return true
		}
	}
	return false
}

// InFlightToward counts screws that have reserved a slot in the given
// tray but have not landed yet. This is the derived predicate behind
// the "full but still receiving" retirement guard.
func (st *State) InFlightToward(tray TrayID) int {
	n := 0
	for _, s := range st.screws {
		if s.Animating && s.Target.Kind == TargetColored && s.Target.Tray == tray {
			n++
		}
	}
	return n
}

// InBoardCount counts screws still mounted on a part.
func (st *State) InBoardCount() int {
	n := 0
	for _, s := range st.screws {
		if s.State == ScrewInBoard {
			n++
		}
	}
	return n
}

// InBufferCount counts screws held by the buffer, including one
// mid-transfer out of it.
func (st *State) InBufferCount() int {
	n := 0
	for _, s := range st.screws {
		if s.State == ScrewInBuffer {
			n++
		}
	}
	return n
}

// AllScrewsInTray reports whether every surviving screw has landed in
// a colored tray.
func (st *State) AllScrewsInTray() bool {
	for _, s := range st.screws {
		if s.State != ScrewInTray {
			return false
		}
	}
	return true
}

// ScrewsInTray returns the screws that have landed in the given tray.
func (st *State) ScrewsInTray(tray TrayID) []*Screw {
	var out []*Screw
	for _, id := range st.order {
		s := st.screws[id]
		if s != nil && s.State == ScrewInTray && s.Target.Tray == tray {
			out = append(out, s)
		}
	}
	return out
}

// RemoveScrew destroys a screw entity. Used when its tray retires.
func (st *State) RemoveScrew(id ScrewID) {
	if _, ok := st.screws[id]; !ok {
		return
	}
	delete(st.screws, id)
	for i, o := range st.order {
		if o == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
}
