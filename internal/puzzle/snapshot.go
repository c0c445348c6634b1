package puzzle

// Snapshot captures the externally visible session state in one value,
// for rendering, determinism tests and replay. It copies everything it
// reports; mutating a snapshot never touches the live session.
type Snapshot struct {
	Phase         Phase
	TotalScrews   int
	RemovedScrews int

	InBoard  int
	InBuffer int

	Visible []TraySnapshot
	Hidden  []TraySnapshot
	Buffer  []ScrewID
	Parts   []PartSnapshot

	CarouselBusy  bool
	CarouselQueue int
	TransferBusy  bool
}

// TraySnapshot is the render-facing view of one tray.
type TraySnapshot struct {
	ID           TrayID
	Color        Color
	DisplayOrder int
	Capacity     int
	Count        int
	Animating    bool
	Screws       []ScrewID // landed screws in slot order
}

// PartSnapshot is the render-facing view of one board.
type PartSnapshot struct {
	ID         PartID
	Layer      int
	State      PartState
	ScrewsLeft int
}

// Snapshot returns the current session snapshot.
func (e *Engine) Snapshot() Snapshot {
	st := e.state
	sess := st.Session()

	snap := Snapshot{
		Phase:         sess.Phase,
		TotalScrews:   sess.TotalScrews,
		RemovedScrews: sess.RemovedScrews,
		InBoard:       st.InBoardCount(),
		InBuffer:      st.InBufferCount(),
		Buffer:        st.Buffer().Screws(),
		CarouselBusy:  e.carousel.Busy(),
		CarouselQueue: e.carousel.QueueLen(),
		TransferBusy:  e.transfer.InFlight(),
	}

	for _, t := range st.VisibleTrays() {
		snap.Visible = append(snap.Visible, traySnapshot(st, t))
	}
	for _, t := range st.HiddenTrays() {
		snap.Hidden = append(snap.Hidden, traySnapshot(st, t))
	}
	for _, p := range st.Parts() {
		snap.Parts = append(snap.Parts, PartSnapshot{
			ID:         p.ID,
			Layer:      p.Layer,
			State:      p.State,
			ScrewsLeft: p.ScrewsLeft,
		})
	}
	return snap
}

func traySnapshot(st *State, t *Tray) TraySnapshot {
	ts := TraySnapshot{
		ID:           t.ID,
		Color:        t.Color,
		DisplayOrder: t.DisplayOrder,
		Capacity:     t.Capacity,
		Count:        t.Count,
		Animating:    t.Animating,
	}
	for _, s := range st.ScrewsInTray(t.ID) {
		ts.Screws = append(ts.Screws, s.ID)
	}
	return ts
}
