package puzzle

import "testing"

func TestReleaseLifecycle(t *testing.T) {
	st := NewState(Setup{
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed},
		Parts:          []PartSetup{{Screws: []Color{ColorRed, ColorRed, ColorRed}}},
	})
	bus := NewBus()
	NewReleaseCoordinator(st, bus)

	freed := 0
	bus.Subscribe(PhaseReact, func(e Event) {
		if _, ok := e.(PartFreed); ok {
			freed++
		}
	})

	removal := RemovalCompleted{Part: 1, Color: ColorRed}

	bus.Publish(removal)
	if p := st.Part(1); p.ScrewsLeft != 2 || p.State != PartLoosened {
		t.Fatalf("after first removal: left=%d state=%v, want 2 loosened", p.ScrewsLeft, p.State)
	}

	bus.Publish(removal)
	if p := st.Part(1); p.ScrewsLeft != 1 || p.State != PartLoosened {
		t.Fatalf("after second removal: left=%d state=%v, want 1 loosened", p.ScrewsLeft, p.State)
	}
	if freed != 0 {
		t.Fatalf("PartFreed published with screws remaining")
	}

	bus.Publish(removal)
	if p := st.Part(1); p.ScrewsLeft != 0 || p.State != PartFree {
		t.Fatalf("after last removal: left=%d state=%v, want 0 free", p.ScrewsLeft, p.State)
	}
	if freed != 1 {
		t.Fatalf("PartFreed published %d times, want 1", freed)
	}

	// A stale duplicate after the part is free changes nothing.
	bus.Publish(removal)
	if p := st.Part(1); p.ScrewsLeft != 0 || p.State != PartFree {
		t.Errorf("after duplicate removal: left=%d state=%v, want 0 free", p.ScrewsLeft, p.State)
	}
	if freed != 1 {
		t.Errorf("PartFreed republished for a free part")
	}
}

func TestReleasePreservesPivoting(t *testing.T) {
	st := NewState(Setup{
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed},
		Parts:          []PartSetup{{Screws: []Color{ColorRed, ColorRed}}},
	})
	bus := NewBus()
	NewReleaseCoordinator(st, bus)

	bus.Publish(RemovalCompleted{Part: 1})
	st.Part(1).State = PartPivoting

	// Intermediate removals must not knock a pivoting part back to
	// loosened.
	bus.Publish(RemovalCompleted{Part: 1})
	if got := st.Part(1).State; got != PartFree {
		t.Errorf("pivoting part after last removal = %v, want free", got)
	}
}

func TestReleaseIgnoresDetachedRemovals(t *testing.T) {
	st := NewState(Setup{
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed},
		Parts:          []PartSetup{{Screws: []Color{ColorRed}}},
	})
	bus := NewBus()
	NewReleaseCoordinator(st, bus)

	// Part 0 is the detached marker; unknown IDs are equally inert.
	bus.Publish(RemovalCompleted{Part: 0})
	bus.Publish(RemovalCompleted{Part: 42})

	if p := st.Part(1); p.ScrewsLeft != 1 || p.State != PartStatic {
		t.Errorf("part touched by unrelated removals: left=%d state=%v", p.ScrewsLeft, p.State)
	}
}
