package puzzle

// TargetKind distinguishes the two legal destinations for a screw.
type TargetKind int

const (
	// TargetColored is a slot in a visible color-matched tray.
	TargetColored TargetKind = iota

	// TargetBuffer is the next free FIFO slot of the overflow buffer.
	TargetBuffer
)

// String returns a human-readable name for the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetColored:
		return "colored"
	case TargetBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Placement is a resolved destination for a screw. Tray is zero for
// buffer targets.
type Placement struct {
	Kind TargetKind
	Tray TrayID
	Slot int
}

// carouselStatus is the narrow view of the visibility orchestrator the
// resolver needs: colored placements are off the table while a
// transition runs or is queued.
type carouselStatus interface {
	Busy() bool
}

// Resolver decides where a screw may go. The decision and the slot
// reservation happen in the same synchronous call, which is the
// mutual-exclusion primitive that keeps two back-to-back taps from
// claiming the same slot.
type Resolver struct {
	state    *State
	carousel carouselStatus
}

// NewResolver creates a resolver over the given session state.
func NewResolver(state *State, carousel carouselStatus) *Resolver {
	return &Resolver{state: state, carousel: carousel}
}

// FindTarget returns the legal destination for a screw of the given
// color, in strict priority order: a visible matching colored tray
// first (lowest display order wins), the buffer second. The ok result
// is false when neither applies; the caller must leave the screw
// untouched, which is the soft-lock signal path.
func (r *Resolver) FindTarget(color Color) (Placement, bool) {
	if !r.state.AnyTrayAnimating() && !r.carousel.Busy() {
		for _, t := range r.state.VisibleTrays() {
			if t.Color == color && !t.Full() {
				return Placement{Kind: TargetColored, Tray: t.ID, Slot: t.Count}, true
			}
		}
	}

	if !r.state.Buffer().Full() {
		return Placement{Kind: TargetBuffer, Slot: r.state.Buffer().Len()}, true
	}

	return Placement{}, false
}

// Claim finds a destination for the screw and reserves it atomically
// with the decision: the tray counter is bumped or the buffer slot
// appended before control returns. Returns false and leaves the screw
// untouched when no destination exists.
func (r *Resolver) Claim(s *Screw) (Placement, bool) {
	target, ok := r.FindTarget(s.Color)
	if !ok {
		return Placement{}, false
	}

	switch target.Kind {
	case TargetColored:
		tray := r.state.Tray(target.Tray)
		tray.Count++
	case TargetBuffer:
		target.Slot = r.state.Buffer().Push(s.ID)
	}

	s.State = ScrewAnimating
	s.Animating = true
	s.Target = target
	return target, true
}

// HasValidMoves reports whether at least one screw still mounted on a
// board (and not mid-animation) has a legal destination.
func (r *Resolver) HasValidMoves() bool {
	for _, s := range r.state.Screws() {
		if s.State != ScrewInBoard || s.Animating {
			continue
		}
		if _, ok := r.FindTarget(s.Color); ok {
			return true
		}
	}
	return false
}
