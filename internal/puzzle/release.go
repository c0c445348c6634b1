package puzzle

// ReleaseCoordinator watches per-board screw counts and flags a board
// free when its last screw leaves. The actual free-fall or pivot is
// the physics layer's business; the coordinator only hands off via the
// PartFreed event, exactly once per part.
type ReleaseCoordinator struct {
	state *State
	bus   *Bus
}

// NewReleaseCoordinator wires the coordinator to the session bus.
func NewReleaseCoordinator(state *State, bus *Bus) *ReleaseCoordinator {
	c := &ReleaseCoordinator{state: state, bus: bus}

	bus.Subscribe(PhaseUpdate, func(e Event) {
		if ev, ok := e.(RemovalCompleted); ok {
			c.onRemoval(ev.Part)
		}
	})
	return c
}

// onRemoval decrements the owning part's screw count. Every guard here
// exists for duplicate or stale deliveries: a missing part no-ops, the
// count floors at zero, and a part that is already free stays free.
func (c *ReleaseCoordinator) onRemoval(id PartID) {
	p := c.state.Part(id)
	if p == nil {
		return
	}
	if p.State == PartFree {
		return
	}

	if p.ScrewsLeft > 0 {
		p.ScrewsLeft--
	}
	if p.ScrewsLeft == 0 {
		p.State = PartFree
		c.bus.Publish(PartFreed{Part: p.ID})
		return
	}
	if p.State == PartStatic {
		p.State = PartLoosened
	}
}
