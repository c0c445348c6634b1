package puzzle

// DispatchPhase selects when a subscriber runs within an emission.
// Update handlers mutate state and set busy flags; react handlers make
// decisions that depend on those flags. Running all updates before any
// reaction replaces the original "defer to the next microtask"
// ordering hack with a structural contract: a reactive re-check always
// observes the busy flags its sibling handlers set for the same event.
type DispatchPhase int

const (
	PhaseUpdate DispatchPhase = iota
	PhaseReact
)

// Handler receives every published event; implementations type-switch
// on the kinds they care about and ignore the rest.
type Handler func(Event)

// Bus is the in-process pub/sub channel for a single session. It is
// synchronous and single-goroutine: Publish dispatches to every
// handler at most once per emission, update phase first, then react,
// each in registration order. Events published from inside a handler
// are queued and dispatched after the current event has fully fanned
// out, which models the cooperative task queue of a UI thread.
type Bus struct {
	update []Handler
	react  []Handler

	queue       []Event
	dispatching bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for the given dispatch phase.
// Handlers cannot be removed; a session builds its bus once.
func (b *Bus) Subscribe(phase DispatchPhase, h Handler) {
	if phase == PhaseUpdate {
		b.update = append(b.update, h)
		return
	}
	b.react = append(b.react, h)
}

// Publish delivers the event to all subscribers. Nested publishes are
// deferred until the current event has been seen by every handler, so
// the relative order of cause and effect stays observable.
func (b *Bus) Publish(e Event) {
	b.queue = append(b.queue, e)
	if b.dispatching {
		return
	}
	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		for _, h := range b.update {
			h(next)
		}
		for _, h := range b.react {
			h(next)
		}
	}
}

// Reset drops any queued events. Called on level restart so stale
// completions from the previous session never reach the new one.
func (b *Bus) Reset() {
	b.queue = b.queue[:0]
}
