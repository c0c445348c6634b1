// Package puzzle implements the screw-puzzle rules engine: placement
// of removed screws into color-matched trays or the overflow buffer,
// buffer draining, the tray carousel, part release, and win/soft-lock
// detection. The engine sequences asynchronous animated moves but does
// not animate, render, or read input; those layers are external and
// talk to the engine through commands and completion callbacks.
//
// The engine is single-threaded by contract: all entry points must be
// called from one goroutine, which models the cooperative UI-thread
// scheduling the rules were designed for. No entry point blocks.
package puzzle

import "github.com/charmbracelet/log"

// Engine is the session context: it owns the state, the bus, and all
// orchestration components for one level run. Create one per level
// and Reset it on restart.
type Engine struct {
	state  *State
	bus    *Bus
	anim   Animator
	logger *log.Logger

	resolver *Resolver
	release  *ReleaseCoordinator
	carousel *Carousel
	transfer *TransferCoordinator
	detector *Detector
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger; the engine logs every bus
// event at debug level. Silent by default.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds a session from a level setup and an animation
// layer. Registration order fixes the dispatch order within each bus
// phase: part release and the carousel update state first, then the
// transfer coordinator and the detector react to what they set.
func NewEngine(setup Setup, anim Animator, opts ...Option) *Engine {
	e := &Engine{
		state: NewState(setup),
		bus:   NewBus(),
		anim:  anim,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.release = NewReleaseCoordinator(e.state, e.bus)
	e.carousel = NewCarousel(e.state, e.bus, anim)
	e.transfer = NewTransferCoordinator(e.state, e.bus, anim, e.carousel)
	e.resolver = NewResolver(e.state, e.carousel)
	e.detector = NewDetector(e.state, e.bus, e.resolver, e.transfer, e.carousel)

	if e.logger != nil {
		e.bus.Subscribe(PhaseReact, func(ev Event) {
			e.logger.Debug("event", "kind", eventName(ev))
		})
	}
	return e
}

// Reset atomically restores the level-load state: all entities,
// counters, queues and flags. Must complete before any new tap is
// accepted; completions for moves from before the reset resolve to
// stale state and no-op.
func (e *Engine) Reset() {
	e.bus.Reset()
	e.state.Reset()
	e.carousel.Reset()
	e.transfer.Reset()
}

// Tap is the single entry point for initiating a move: the input layer
// reports a screw was tapped. The destination is decided and reserved
// synchronously; the animated flight is handed to the animation layer.
// Returns false, leaving the screw untouched, when the session is not
// playing, the screw cannot move, or no destination exists.
func (e *Engine) Tap(id ScrewID) (Placement, bool) {
	if e.state.Session().Phase != PhasePlaying {
		return Placement{}, false
	}
	s := e.state.Screw(id)
	if s == nil || s.State != ScrewInBoard || s.Animating {
		return Placement{}, false
	}

	target, ok := e.resolver.Claim(s)
	if !ok {
		return Placement{}, false
	}

	e.anim.StartRemoval(id, target)
	return target, true
}

// RemovalDone is called by the animation layer when a screw's flight
// from its board finishes. Duplicate or stale deliveries no-op.
func (e *Engine) RemovalDone(id ScrewID) {
	s := e.state.Screw(id)
	if s == nil || s.State != ScrewAnimating || !s.Animating {
		return
	}

	part := s.Part
	s.Part = 0
	s.Animating = false
	switch s.Target.Kind {
	case TargetColored:
		s.State = ScrewInTray
	case TargetBuffer:
		s.State = ScrewInBuffer
	}

	e.bus.Publish(RemovalCompleted{Screw: id, Color: s.Color, Part: part, Target: s.Target})
}

// TransferDone is called by the animation layer when a buffer-to-tray
// flight finishes. Duplicate or stale deliveries no-op.
func (e *Engine) TransferDone(id ScrewID) {
	s := e.state.Screw(id)
	if s == nil || s.State != ScrewInBuffer || !s.Animating || s.Target.Kind != TargetColored {
		return
	}

	s.Animating = false
	s.State = ScrewInTray

	e.bus.Publish(TransferCompleted{Screw: id, Tray: s.Target.Tray, Slot: s.Target.Slot})
}

// HideDone is called when a retiring tray's hide animation finishes.
func (e *Engine) HideDone(id TrayID) {
	e.bus.Publish(HideCompleted{Tray: id})
}

// ShiftDone is called when a visible tray's slide animation finishes.
func (e *Engine) ShiftDone(id TrayID) {
	e.bus.Publish(ShiftCompleted{Tray: id})
}

// RevealDone is called when a promoted tray's reveal animation
// finishes.
func (e *Engine) RevealDone(id TrayID) {
	e.bus.Publish(RevealCompleted{Tray: id})
}

// MarkPartPivoting is the physics layer's handoff for a board that
// starts swinging on its last anchor. Only a loosened part can pivot;
// a free part stays free.
func (e *Engine) MarkPartPivoting(id PartID) bool {
	p := e.state.Part(id)
	if p == nil || p.State != PartLoosened {
		return false
	}
	p.State = PartPivoting
	return true
}

// Observe registers a read-only subscriber for every bus event, after
// all core components. Observers must never mutate session state.
func (e *Engine) Observe(h Handler) {
	e.bus.Subscribe(PhaseReact, h)
}

// HasValidMoves reports whether any screw still in a board has a legal
// destination.
func (e *Engine) HasValidMoves() bool {
	return e.resolver.HasValidMoves()
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.state.Session().Phase
}

// State exposes the underlying session state for the simulator and
// tests. External layers should prefer Snapshot.
func (e *Engine) State() *State {
	return e.state
}

// eventName maps an event to a stable name for logging.
func eventName(e Event) string {
	switch e.(type) {
	case RemovalCompleted:
		return "removal-completed"
	case TransferStarted:
		return "transfer-started"
	case TransferCompleted:
		return "transfer-completed"
	case HideCompleted:
		return "hide-completed"
	case ShiftCompleted:
		return "shift-completed"
	case RevealCompleted:
		return "reveal-completed"
	case CarouselAdvanced:
		return "carousel-advanced"
	case PartFreed:
		return "part-freed"
	case GameWon:
		return "game-won"
	case GameStuck:
		return "game-stuck"
	default:
		return "unknown"
	}
}
