package puzzle

// Animator is the external animation layer. The engine only sequences:
// it issues one command per move and expects exactly one matching
// completion call (RemovalDone, TransferDone, HideDone, ShiftDone,
// RevealDone) later, even on degenerate input. Commands are never
// retried.
//
// Implementations must not call back into the engine from inside a
// command method; completions have to arrive on a later turn of the
// driving loop.
type Animator interface {
	// StartRemoval animates a screw from its board to the reserved
	// target (colored tray slot or buffer slot).
	StartRemoval(screw ScrewID, target Placement)

	// StartTransfer animates a buffered screw into a colored tray.
	StartTransfer(screw ScrewID, tray TrayID, slot int)

	// HideTray animates a full tray off screen.
	HideTray(tray TrayID)

	// ShiftTray slides a visible tray from one slot to another.
	ShiftTray(tray TrayID, from, to int)

	// RevealTray animates a promoted tray into view.
	RevealTray(tray TrayID)
}
