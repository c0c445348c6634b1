package puzzle

// Detector evaluates the terminal conditions of a session after every
// state-changing event. Both outcomes are terminal: once the phase
// leaves PhasePlaying it never changes again.
type Detector struct {
	state    *State
	bus      *Bus
	resolver *Resolver
	transfer *TransferCoordinator
	carousel *Carousel
}

// NewDetector wires the detector to the session bus. It runs in the
// react phase so it always observes the busy flags and reservations
// its sibling handlers made for the same event.
func NewDetector(state *State, bus *Bus, resolver *Resolver, transfer *TransferCoordinator, carousel *Carousel) *Detector {
	d := &Detector{state: state, bus: bus, resolver: resolver, transfer: transfer, carousel: carousel}

	bus.Subscribe(PhaseReact, func(e Event) {
		switch e.(type) {
		case RemovalCompleted:
			d.onRemoval()
		case TransferCompleted:
			d.onTransfer()
		case CarouselAdvanced:
			d.evalStuck()
		}
	})
	return d
}

func (d *Detector) onRemoval() {
	sess := d.state.Session()
	if sess.Phase != PhasePlaying {
		return
	}
	sess.RemovedScrews++

	if d.evalWin() {
		return
	}
	d.evalStuck()
}

// onTransfer re-checks both outcomes. Stuck is the one spec-mandated
// re-check; win matters too because the final board screw can drain
// through the buffer, in which case the last removal event fires while
// the screw is still buffered and only the transfer completion can
// observe the finished session.
func (d *Detector) onTransfer() {
	if d.state.Session().Phase != PhasePlaying {
		return
	}
	if d.evalWin() {
		return
	}
	d.evalStuck()
}

// evalWin flips the session to PhaseWon when the win condition holds.
// The default condition requires every surviving screw to sit in a
// colored tray: screws still in boards, in the buffer, or mid-flight
// all block the win.
func (d *Detector) evalWin() bool {
	sess := d.state.Session()

	won := false
	switch sess.Win {
	case WinAllScrewsRemoved:
		won = d.state.AllScrewsInTray()
	}
	if !won {
		return false
	}

	sess.Phase = PhaseWon
	d.bus.Publish(GameWon{})
	return true
}

// evalStuck flips the session to PhaseStuck when no screw still in a
// board has a legal destination. The check only runs while the system
// is quiescent: an active transfer, a running or queued carousel
// transition, or any screw mid-flight guarantees a follow-up event
// that re-runs the check, and any of them could still open a move.
func (d *Detector) evalStuck() {
	sess := d.state.Session()
	if sess.Phase != PhasePlaying {
		return
	}
	if d.transfer.InFlight() || d.carousel.Busy() || d.state.AnyScrewAnimating() {
		return
	}
	if d.state.InBoardCount() == 0 {
		return
	}
	if d.resolver.HasValidMoves() {
		return
	}

	sess.Phase = PhaseStuck
	d.bus.Publish(GameStuck{})
}
