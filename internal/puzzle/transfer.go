package puzzle

// TransferCoordinator drains the buffer into colored trays as capacity
// and visibility permit. At most one transfer is active at any
// instant; FIFO fairness means the earliest-arrived buffered screw
// that has a destination moves first.
//
// All of its re-checks run in the react phase, so sibling update
// handlers of the same event (the carousel noticing a tray just became
// full) set their busy flags before the coordinator looks at them.
type TransferCoordinator struct {
	state    *State
	bus      *Bus
	anim     Animator
	carousel carouselStatus

	inFlight ScrewID // 0 when no transfer is active
}

// NewTransferCoordinator wires the coordinator to the session bus.
func NewTransferCoordinator(state *State, bus *Bus, anim Animator, carousel carouselStatus) *TransferCoordinator {
	c := &TransferCoordinator{state: state, bus: bus, anim: anim, carousel: carousel}

	bus.Subscribe(PhaseUpdate, func(e Event) {
		if ev, ok := e.(TransferCompleted); ok && ev.Screw == c.inFlight {
			c.inFlight = 0
		}
	})
	bus.Subscribe(PhaseReact, func(e Event) {
		switch e.(type) {
		case RemovalCompleted, TransferCompleted, CarouselAdvanced:
			c.Check()
		}
	})
	return c
}

// InFlight reports whether a transfer animation is currently running.
func (c *TransferCoordinator) InFlight() bool {
	return c.inFlight != 0
}

// Reset clears the in-flight marker on level restart.
func (c *TransferCoordinator) Reset() {
	c.inFlight = 0
}

// Check starts at most one transfer if the system is quiet enough:
// no transfer already active, no tray animating, carousel idle with an
// empty queue. Scans the buffer in arrival order and moves the first
// non-animating screw whose color has a visible tray with room.
func (c *TransferCoordinator) Check() {
	if c.inFlight != 0 {
		return
	}
	if c.state.AnyTrayAnimating() || c.carousel.Busy() {
		return
	}

	for _, id := range c.state.Buffer().Screws() {
		s := c.state.Screw(id)
		if s == nil || s.Animating {
			continue
		}
		tray := c.matchingTray(s.Color)
		if tray == nil {
			continue
		}

		slot := tray.Count
		tray.Count++
		c.state.Buffer().Remove(id)
		s.Animating = true
		s.Target = Placement{Kind: TargetColored, Tray: tray.ID, Slot: slot}

		c.inFlight = id
		c.anim.StartTransfer(id, tray.ID, slot)
		c.bus.Publish(TransferStarted{Screw: id, Tray: tray.ID, Slot: slot})
		return
	}
}

func (c *TransferCoordinator) matchingTray(color Color) *Tray {
	for _, t := range c.state.VisibleTrays() {
		if t.Color == color && !t.Full() {
			return t
		}
	}
	return nil
}
