package puzzle

import (
	"reflect"
	"testing"
)

func TestCarouselRetirementSequence(t *testing.T) {
	fa := &fakeAnimator{}
	e := NewEngine(Setup{
		TrayCapacity:   1,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed, ColorBlue, ColorGreen},
		Parts:          []PartSetup{{Screws: []Color{ColorRed}}},
	}, fa)

	var advances []CarouselAdvanced
	e.Observe(func(ev Event) {
		if adv, ok := ev.(CarouselAdvanced); ok {
			advances = append(advances, adv)
		}
	})

	e.Tap(1)
	fa.step(e) // land: red tray full, hide begins

	if want := []string{"hide"}; !reflect.DeepEqual(fa.pendingKinds(), want) {
		t.Fatalf("pending after landing = %v, want %v", fa.pendingKinds(), want)
	}
	if !e.carousel.Busy() || !e.State().Tray(1).Animating {
		t.Fatal("retiring tray not marked busy/animating")
	}

	// Hide completes: the blue tray slides forward and the green tray
	// is revealed, in parallel.
	fa.step(e)
	if want := []string{"shift", "reveal"}; !reflect.DeepEqual(fa.pendingKinds(), want) {
		t.Fatalf("pending after hide = %v, want %v", fa.pendingKinds(), want)
	}
	if fa.pending[0].tray != 2 || fa.pending[0].from != 1 || fa.pending[0].to != 0 {
		t.Errorf("shift command = %+v, want blue tray 1 -> 0", fa.pending[0])
	}
	if fa.pending[1].tray != 3 {
		t.Errorf("reveal command = %+v, want green tray", fa.pending[1])
	}
	if len(advances) != 0 {
		t.Fatal("carousel advanced before shift and reveal completed")
	}

	fa.drain(e)

	if len(advances) != 1 {
		t.Fatalf("advances = %d, want 1", len(advances))
	}
	if advances[0].Retired != 1 || advances[0].Promoted != 3 {
		t.Errorf("advance = %+v, want retired 1 promoted 3", advances[0])
	}
	if !e.State().Tray(1).Retired() {
		t.Error("red tray not retired")
	}
	if e.State().Screw(1) != nil {
		t.Error("screw in retired tray survived, want destroyed")
	}
	if got := e.State().Tray(2).DisplayOrder; got != 0 {
		t.Errorf("blue tray order = %d, want 0", got)
	}
	if got := e.State().Tray(3).DisplayOrder; got != 1 {
		t.Errorf("green tray order = %d, want 1", got)
	}
	if e.carousel.Busy() || e.State().AnyTrayAnimating() {
		t.Error("carousel still busy after transition finalized")
	}
}

func TestCarouselQueuesSecondRetirement(t *testing.T) {
	fa := &fakeAnimator{}
	e := NewEngine(Setup{
		TrayCapacity:   1,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow},
		Parts:          []PartSetup{{Screws: []Color{ColorRed, ColorBlue}}},
	}, fa)

	var advances []CarouselAdvanced
	e.Observe(func(ev Event) {
		if adv, ok := ev.(CarouselAdvanced); ok {
			advances = append(advances, adv)
		}
	})

	e.Tap(1)
	e.Tap(2)
	fa.step(e) // red lands, retirement begins
	fa.step(e) // blue lands mid-transition

	if got := e.carousel.QueueLen(); got != 1 {
		t.Fatalf("queue length = %d, want 1 (blue tray waiting)", got)
	}

	// Requeuing the same tray must not duplicate the entry.
	e.carousel.retire(2)
	if got := e.carousel.QueueLen(); got != 1 {
		t.Fatalf("queue length after duplicate retire = %d, want 1", got)
	}

	fa.drain(e)

	if len(advances) != 2 {
		t.Fatalf("advances = %d, want 2", len(advances))
	}
	if advances[0].Retired != 1 || advances[1].Retired != 2 {
		t.Errorf("retirement order = %d then %d, want 1 then 2",
			advances[0].Retired, advances[1].Retired)
	}
	if got := e.State().Tray(3).DisplayOrder; got != 0 {
		t.Errorf("green tray order = %d, want 0", got)
	}
	if got := e.State().Tray(4).DisplayOrder; got != 1 {
		t.Errorf("yellow tray order = %d, want 1", got)
	}
	if e.carousel.Busy() {
		t.Error("carousel still busy after both transitions")
	}
}

func TestCarouselWaitsForInFlightScrews(t *testing.T) {
	fa := &fakeAnimator{}
	e := NewEngine(Setup{
		TrayCapacity:   2,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed, ColorBlue},
		Parts:          []PartSetup{{Screws: []Color{ColorRed, ColorRed}}},
	}, fa)

	e.Tap(1)
	e.Tap(2)
	fa.step(e) // first screw lands; tray is full but still receiving

	if e.carousel.Busy() {
		t.Fatal("retirement started with a screw still in flight")
	}

	fa.step(e) // second screw lands
	if !e.carousel.Busy() {
		t.Fatal("retirement did not start after last screw landed")
	}
}

func TestCarouselPromotionAvoidsVisibleColor(t *testing.T) {
	tests := []struct {
		name     string
		trays    []Color
		promoted TrayID
	}{
		{
			name: "skips hidden tray matching a visible color",
			// Visible: red, blue. Hidden: blue (collides), green.
			trays:    []Color{ColorRed, ColorBlue, ColorBlue, ColorGreen},
			promoted: 4,
		},
		{
			name: "falls back to first hidden when all collide",
			// Visible: red, blue. Hidden: blue only.
			trays:    []Color{ColorRed, ColorBlue, ColorBlue},
			promoted: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &fakeAnimator{}
			e := NewEngine(Setup{
				TrayCapacity:   1,
				BufferCapacity: 5,
				Trays:          tt.trays,
				Parts:          []PartSetup{{Screws: []Color{ColorRed}}},
			}, fa)

			var advance CarouselAdvanced
			e.Observe(func(ev Event) {
				if adv, ok := ev.(CarouselAdvanced); ok {
					advance = adv
				}
			})

			e.Tap(1)
			fa.drain(e)

			if advance.Promoted != tt.promoted {
				t.Errorf("promoted tray = %d, want %d", advance.Promoted, tt.promoted)
			}
			if got := e.State().Tray(tt.promoted).DisplayOrder; got != 1 {
				t.Errorf("promoted tray order = %d, want 1", got)
			}
		})
	}
}

func TestCarouselRetireWithoutHiddenTrays(t *testing.T) {
	fa := &fakeAnimator{}
	e := NewEngine(Setup{
		TrayCapacity:   1,
		BufferCapacity: 5,
		Trays:          []Color{ColorRed, ColorBlue},
		Parts:          []PartSetup{{Screws: []Color{ColorRed}}},
	}, fa)

	var advance CarouselAdvanced
	e.Observe(func(ev Event) {
		if adv, ok := ev.(CarouselAdvanced); ok {
			advance = adv
		}
	})

	e.Tap(1)
	fa.drain(e)

	if advance.Retired != 1 || advance.Promoted != 0 {
		t.Errorf("advance = %+v, want retired 1 with no promotion", advance)
	}
	if got := e.State().Tray(2).DisplayOrder; got != 0 {
		t.Errorf("blue tray order = %d, want 0", got)
	}
	if got := len(e.State().VisibleTrays()); got != 1 {
		t.Errorf("visible trays = %d, want 1", got)
	}
}
