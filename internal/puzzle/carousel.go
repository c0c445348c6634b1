package puzzle

// carouselStage tracks where a retirement transition currently stands.
type carouselStage int

const (
	stageIdle carouselStage = iota
	stageHiding
	stageRevealing
)

// Carousel orchestrates the five-slot tray carousel: when a visible
// tray fills up it is hidden, trays behind it slide forward, and the
// next hidden tray is revealed. The carousel never animates anything
// itself; it issues commands and sequences their completions so that
// at most one retirement transition is in motion at a time. Trays that
// fill up mid-transition are queued, never dropped, and never queued
// twice.
type Carousel struct {
	state *State
	bus   *Bus
	anim  Animator

	transitioning bool
	stage         carouselStage
	retiring      TrayID
	promoted      TrayID
	queue         []TrayID
	expect        map[TrayID]bool
}

// NewCarousel wires the orchestrator to the session bus.
func NewCarousel(state *State, bus *Bus, anim Animator) *Carousel {
	c := &Carousel{state: state, bus: bus, anim: anim}

	bus.Subscribe(PhaseUpdate, func(e Event) {
		switch ev := e.(type) {
		case RemovalCompleted:
			if ev.Target.Kind == TargetColored {
				c.onLanded(ev.Target.Tray)
			}
		case TransferCompleted:
			c.onLanded(ev.Tray)
		case HideCompleted:
			c.onHidden(ev.Tray)
		case ShiftCompleted:
			c.onMoved(ev.Tray)
		case RevealCompleted:
			c.onMoved(ev.Tray)
		}
	})
	return c
}

// Busy reports whether a transition is running or queued. The resolver
// and transfer coordinator both refuse colored placements while this
// holds.
func (c *Carousel) Busy() bool {
	return c.transitioning || len(c.queue) > 0
}

// QueueLen returns the number of trays waiting to retire.
func (c *Carousel) QueueLen() int {
	return len(c.queue)
}

// Reset drops all transition state on level restart.
func (c *Carousel) Reset() {
	c.transitioning = false
	c.stage = stageIdle
	c.retiring = 0
	c.promoted = 0
	c.queue = c.queue[:0]
	c.expect = nil
}

// onLanded runs after every screw lands in a colored tray. A tray
// retires only once it is full and nothing is still flying toward it;
// a full-but-still-receiving tray waits for its last screw.
func (c *Carousel) onLanded(id TrayID) {
	t := c.state.Tray(id)
	if t == nil || t.Retired() {
		return
	}
	if !t.Full() || c.state.InFlightToward(id) > 0 {
		return
	}
	c.retire(id)
}

func (c *Carousel) retire(id TrayID) {
	if c.retiring == id {
		return
	}
	for _, q := range c.queue {
		if q == id {
			return
		}
	}

	t := c.state.Tray(id)
	t.Animating = true
	if c.transitioning {
		c.queue = append(c.queue, id)
		return
	}
	c.begin(id)
}

func (c *Carousel) begin(id TrayID) {
	t := c.state.Tray(id)
	if t == nil {
		c.next()
		return
	}
	c.transitioning = true
	c.stage = stageHiding
	c.retiring = id
	t.Animating = true
	c.anim.HideTray(id)
}

// onHidden fires the second half of the transition: shifts for every
// visible tray behind the retiring one and the reveal of the promoted
// tray, all in parallel with each other.
func (c *Carousel) onHidden(id TrayID) {
	if c.stage != stageHiding || id != c.retiring {
		return
	}
	rt := c.state.Tray(id)
	if rt == nil {
		// Tray vanished mid-transition (level teardown); unwind.
		c.finalize()
		return
	}

	c.stage = stageRevealing
	c.expect = make(map[TrayID]bool)

	for _, t := range c.state.VisibleTrays() {
		if t.ID == rt.ID || t.DisplayOrder <= rt.DisplayOrder {
			continue
		}
		from := t.DisplayOrder
		t.DisplayOrder--
		t.Animating = true
		c.expect[t.ID] = true
		c.anim.ShiftTray(t.ID, from, from-1)
	}

	if p := c.pickPromotion(rt); p != nil {
		p.DisplayOrder = 1
		p.Animating = true
		c.promoted = p.ID
		c.expect[p.ID] = true
		c.anim.RevealTray(p.ID)
	}

	if len(c.expect) == 0 {
		c.finalize()
	}
}

// pickPromotion chooses the hidden tray to reveal: the first (by
// display order) whose color is not already on screen, so no two
// visible trays ever share a color. If every hidden tray collides the
// first one is promoted anyway rather than stalling the carousel.
func (c *Carousel) pickPromotion(retiring *Tray) *Tray {
	hidden := c.state.HiddenTrays()
	if len(hidden) == 0 {
		return nil
	}

	visible := make(map[Color]bool)
	for _, t := range c.state.VisibleTrays() {
		if t.ID != retiring.ID {
			visible[t.Color] = true
		}
	}

	for _, t := range hidden {
		if !visible[t.Color] {
			return t
		}
	}
	return hidden[0]
}

// onMoved consumes shift and reveal completions; the transition
// finalizes once the last expected one arrives.
func (c *Carousel) onMoved(id TrayID) {
	if c.stage != stageRevealing || !c.expect[id] {
		return
	}
	delete(c.expect, id)
	if len(c.expect) == 0 {
		c.finalize()
	}
}

// finalize retires the hidden tray for good, destroys the screws it
// carried, clears every animation flag, announces the advance, and
// immediately starts the next queued transition if any.
func (c *Carousel) finalize() {
	retired := c.retiring
	promoted := c.promoted

	if rt := c.state.Tray(retired); rt != nil {
		for _, s := range c.state.ScrewsInTray(rt.ID) {
			c.state.RemoveScrew(s.ID)
		}
		rt.DisplayOrder = RetiredOrder
	}
	for _, t := range c.state.Trays() {
		t.Animating = false
	}

	c.transitioning = false
	c.stage = stageIdle
	c.retiring = 0
	c.promoted = 0
	c.expect = nil

	c.bus.Publish(CarouselAdvanced{Retired: retired, Promoted: promoted})
	c.next()
}

func (c *Carousel) next() {
	if len(c.queue) == 0 {
		return
	}
	id := c.queue[0]
	c.queue = c.queue[1:]
	c.begin(id)
}
