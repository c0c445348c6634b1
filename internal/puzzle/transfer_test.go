package puzzle

import "testing"

// bufferedState builds a session state with the given screws already
// sitting in the overflow buffer, the way they end up after overflow
// removals complete.
func bufferedState(setup Setup, buffered ...ScrewID) *State {
	st := NewState(setup)
	for _, id := range buffered {
		s := st.Screw(id)
		s.State = ScrewInBuffer
		s.Part = 0
		s.Target = Placement{Kind: TargetBuffer, Slot: st.Buffer().Push(id)}
	}
	return st
}

func TestTransferOneAtATime(t *testing.T) {
	fa := &fakeAnimator{}
	bus := NewBus()
	st := bufferedState(Setup{
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed, ColorBlue},
		Parts:          []PartSetup{{Screws: []Color{ColorRed, ColorRed}}},
	}, 1, 2)
	tc := NewTransferCoordinator(st, bus, fa, &stubCarousel{})

	tc.Check()
	if len(fa.pending) != 1 || fa.pending[0].kind != "transfer" || fa.pending[0].screw != 1 {
		t.Fatalf("pending after first check = %+v, want one transfer of screw 1", fa.pending)
	}
	if !tc.InFlight() {
		t.Fatal("coordinator idle after starting a transfer, want in flight")
	}
	if got := st.Tray(1).Count; got != 1 {
		t.Errorf("tray count at transfer start = %d, want 1 (slot reserved up front)", got)
	}

	// Re-checks must not start a second transfer while one is active,
	// even though the tray has room and the buffer has a candidate.
	tc.Check()
	if len(fa.pending) != 1 {
		t.Fatalf("pending after re-check = %d commands, want still 1", len(fa.pending))
	}

	// Complete the first transfer the way the engine ingress does; the
	// coordinator reacts by moving the next buffered screw.
	s1 := st.Screw(1)
	s1.Animating = false
	s1.State = ScrewInTray
	bus.Publish(TransferCompleted{Screw: 1, Tray: s1.Target.Tray, Slot: s1.Target.Slot})

	if len(fa.pending) != 2 || fa.pending[1].screw != 2 || fa.pending[1].slot != 1 {
		t.Fatalf("pending after completion = %+v, want transfer of screw 2 into slot 1", fa.pending)
	}
}

func TestTransferFIFOSkipsBlockedHead(t *testing.T) {
	fa := &fakeAnimator{}
	bus := NewBus()
	st := bufferedState(Setup{
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed, ColorBlue},
		Parts:          []PartSetup{{Screws: []Color{ColorGreen, ColorRed}}},
	}, 1, 2)
	tc := NewTransferCoordinator(st, bus, fa, &stubCarousel{})

	// Screw 1 (green) arrived first but has no visible tray; the later
	// red screw moves and the green one keeps its place in line.
	tc.Check()
	if len(fa.pending) != 1 || fa.pending[0].screw != 2 {
		t.Fatalf("pending = %+v, want transfer of screw 2", fa.pending)
	}
	if got := st.Buffer().Screws(); len(got) != 1 || got[0] != 1 {
		t.Errorf("buffer after transfer start = %v, want [1]", got)
	}
}

func TestTransferWaitsForQuietCarousel(t *testing.T) {
	fa := &fakeAnimator{}
	bus := NewBus()
	car := &stubCarousel{busy: true}
	st := bufferedState(Setup{
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed, ColorBlue},
		Parts:          []PartSetup{{Screws: []Color{ColorRed}}},
	}, 1)
	tc := NewTransferCoordinator(st, bus, fa, car)

	tc.Check()
	if len(fa.pending) != 0 {
		t.Fatalf("transfer started while carousel busy, pending = %+v", fa.pending)
	}

	car.busy = false
	st.Tray(2).Animating = true
	tc.Check()
	if len(fa.pending) != 0 {
		t.Fatalf("transfer started while a tray animates, pending = %+v", fa.pending)
	}

	st.Tray(2).Animating = false
	tc.Check()
	if len(fa.pending) != 1 {
		t.Fatalf("pending after carousel quieted = %d commands, want 1", len(fa.pending))
	}
}

func TestTransferAfterCarouselAdvance(t *testing.T) {
	fa := &fakeAnimator{}
	e := NewEngine(Setup{
		TrayCapacity:   2,
		BufferCapacity: 5,
		Trays:          []Color{ColorBlue, ColorRed},
		Parts:          []PartSetup{{Screws: []Color{ColorBlue, ColorBlue, ColorRed}}},
	}, fa)

	// Fill and land into the blue tray; its retirement makes the
	// carousel busy.
	e.Tap(1)
	e.Tap(2)
	fa.step(e)
	fa.step(e)
	if !e.carousel.Busy() {
		t.Fatal("carousel idle after blue tray filled, want busy")
	}

	// The red screw overflows while the carousel is busy, even though
	// the red tray has room.
	target, ok := e.Tap(3)
	if !ok || target.Kind != TargetBuffer {
		t.Fatalf("Tap(3) during transition = %+v ok=%v, want buffer placement", target, ok)
	}
	fa.drain(e)

	// Draining completed the transition; the advance re-check moved the
	// buffered screw into the red tray.
	if got := e.State().Screw(3).State; got != ScrewInTray {
		t.Errorf("screw 3 state = %v, want in-tray", got)
	}
	if got := e.State().Buffer().Len(); got != 0 {
		t.Errorf("buffer length = %d, want 0", got)
	}
	if got := e.Phase(); got != PhaseWon {
		t.Errorf("phase after final transfer = %v, want won", got)
	}
}
