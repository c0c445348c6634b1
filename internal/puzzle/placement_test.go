package puzzle

import "testing"

type stubCarousel struct{ busy bool }

func (s *stubCarousel) Busy() bool { return s.busy }

func TestFindTargetPriority(t *testing.T) {
	base := Setup{
		TrayCapacity:   3,
		BufferCapacity: 2,
		Trays:          []Color{ColorRed, ColorBlue, ColorGreen},
		Parts:          []PartSetup{{Screws: []Color{ColorRed}}},
	}

	tests := []struct {
		name     string
		color    Color
		mutate   func(*State, *stubCarousel)
		wantKind TargetKind
		wantTray TrayID
		wantOK   bool
	}{
		{
			name:     "visible matching tray wins over buffer",
			color:    ColorRed,
			mutate:   func(*State, *stubCarousel) {},
			wantKind: TargetColored,
			wantTray: 1,
			wantOK:   true,
		},
		{
			name:     "hidden matching tray does not count",
			color:    ColorGreen,
			mutate:   func(*State, *stubCarousel) {},
			wantKind: TargetBuffer,
			wantOK:   true,
		},
		{
			name:  "full tray falls through to buffer",
			color: ColorRed,
			mutate: func(st *State, _ *stubCarousel) {
				st.Tray(1).Count = 3
			},
			wantKind: TargetBuffer,
			wantOK:   true,
		},
		{
			name:  "carousel busy disables colored placement",
			color: ColorRed,
			mutate: func(_ *State, c *stubCarousel) {
				c.busy = true
			},
			wantKind: TargetBuffer,
			wantOK:   true,
		},
		{
			name:  "animating tray disables colored placement",
			color: ColorRed,
			mutate: func(st *State, _ *stubCarousel) {
				st.Tray(2).Animating = true
			},
			wantKind: TargetBuffer,
			wantOK:   true,
		},
		{
			name:  "no tray and full buffer means no move",
			color: ColorGreen,
			mutate: func(st *State, _ *stubCarousel) {
				st.Buffer().Push(90)
				st.Buffer().Push(91)
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState(base)
			car := &stubCarousel{}
			tt.mutate(st, car)

			r := NewResolver(st, car)
			target, ok := r.FindTarget(tt.color)
			if ok != tt.wantOK {
				t.Fatalf("FindTarget(%v) ok = %v, want %v", tt.color, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if target.Kind != tt.wantKind {
				t.Errorf("FindTarget(%v) kind = %v, want %v", tt.color, target.Kind, tt.wantKind)
			}
			if tt.wantKind == TargetColored && target.Tray != tt.wantTray {
				t.Errorf("FindTarget(%v) tray = %d, want %d", tt.color, target.Tray, tt.wantTray)
			}
		})
	}
}

func TestClaimReservesAtDecisionTime(t *testing.T) {
	st := NewState(Setup{
		TrayCapacity:   2,
		BufferCapacity: 2,
		Trays:          []Color{ColorRed, ColorBlue},
		Parts:          []PartSetup{{Screws: []Color{ColorRed, ColorRed, ColorRed, ColorRed, ColorRed}}},
	})
	r := NewResolver(st, &stubCarousel{})

	// Back-to-back claims must each get their own slot even though no
	// screw has landed yet.
	wantSlots := []struct {
		kind TargetKind
		slot int
	}{
		{TargetColored, 0},
		{TargetColored, 1},
		{TargetBuffer, 0},
		{TargetBuffer, 1},
	}
	for i, want := range wantSlots {
		s := st.Screw(ScrewID(i + 1))
		target, ok := r.Claim(s)
		if !ok {
			t.Fatalf("Claim #%d rejected, want accepted", i+1)
		}
		if target.Kind != want.kind || target.Slot != want.slot {
			t.Errorf("Claim #%d = %v slot %d, want %v slot %d",
				i+1, target.Kind, target.Slot, want.kind, want.slot)
		}
		if s.State != ScrewAnimating || !s.Animating {
			t.Errorf("Claim #%d left screw in state %v animating=%v", i+1, s.State, s.Animating)
		}
	}

	if _, ok := r.Claim(st.Screw(5)); ok {
		t.Error("Claim with tray and buffer full accepted, want rejected")
	}
	if got := st.Tray(1).Count; got != 2 {
		t.Errorf("tray count = %d, want 2", got)
	}
	if got := st.Buffer().Len(); got != 2 {
		t.Errorf("buffer length = %d, want 2", got)
	}
}

func TestHasValidMoves(t *testing.T) {
	st := NewState(Setup{
		TrayCapacity:   1,
		BufferCapacity: 1,
		Trays:          []Color{ColorRed, ColorBlue},
		Parts:          []PartSetup{{Screws: []Color{ColorGreen, ColorGreen}}},
	})
	r := NewResolver(st, &stubCarousel{})

	if !r.HasValidMoves() {
		t.Fatal("buffer open, want valid moves")
	}

	st.Buffer().Push(99)
	if r.HasValidMoves() {
		t.Error("no tray match and buffer full, want no valid moves")
	}

	// A mid-flight screw is not a valid move even if a slot opens.
	st.Buffer().Clear()
	st.Screw(1).Animating = true
	st.Screw(2).State = ScrewInBuffer
	if r.HasValidMoves() {
		t.Error("only animating or buffered screws left, want no valid moves")
	}
}
