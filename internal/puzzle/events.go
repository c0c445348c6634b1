package puzzle

// Event is the closed union of everything published on the session
// bus. Handlers type-switch over the concrete kinds; the unexported
// marker method keeps the union closed to this package.
type Event interface {
	puzzleEvent()
}

// RemovalCompleted reports that a screw finished its flight from a
// board into its reserved destination. Part carries the owner at tap
// time, since the screw detaches when it lands.
type RemovalCompleted struct {
	Screw  ScrewID
	Color  Color
	Part   PartID
	Target Placement
}

func (RemovalCompleted) puzzleEvent() {}

// TransferCompleted reports that a buffered screw finished its flight
// into a colored tray.
type TransferCompleted struct {
	Screw ScrewID
	Tray  TrayID
	Slot  int
}

func (TransferCompleted) puzzleEvent() {}

// TransferStarted reports that the auto-transfer coordinator claimed a
// tray slot and handed the move to the animation layer. Published for
// observers; no core component reacts to it.
type TransferStarted struct {
	Screw ScrewID
	Tray  TrayID
	Slot  int
}

func (TransferStarted) puzzleEvent() {}

// HideCompleted reports that the hide animation of a retiring tray
// finished.
type HideCompleted struct {
	Tray TrayID
}

func (HideCompleted) puzzleEvent() {}

// ShiftCompleted reports that a visible tray finished sliding one slot
// toward the front.
type ShiftCompleted struct {
	Tray TrayID
}

func (ShiftCompleted) puzzleEvent() {}

// RevealCompleted reports that a promoted tray finished its reveal
// animation.
type RevealCompleted struct {
	Tray TrayID
}

func (RevealCompleted) puzzleEvent() {}

// CarouselAdvanced is published when a tray-retirement transition
// finalizes. Promoted is 0 when no hidden tray was left to reveal; the
// event fires regardless so the transfer coordinator re-checks.
type CarouselAdvanced struct {
	Retired  TrayID
	Promoted TrayID
}

func (CarouselAdvanced) puzzleEvent() {}

// PartFreed is published exactly once when a board loses its last
// screw. The physics layer consumes it; the core never looks back.
type PartFreed struct {
	Part PartID
}

func (PartFreed) puzzleEvent() {}

// GameWon is published once when the session phase becomes PhaseWon.
type GameWon struct{}

func (GameWon) puzzleEvent() {}

// GameStuck is published once when no legal move remains for any
// screw still in a board.
type GameStuck struct{}

func (GameStuck) puzzleEvent() {}
