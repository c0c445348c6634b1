// Package sim drives the puzzle engine without a terminal: a tick
// clock stands in for the animation layer, an autoplay strategy stands
// in for the player, and a recorder captures the event stream. The
// watch TUI reuses the same driver so that interactive and headless
// runs behave identically.
package sim

import (
	"github.com/vforge/screwsort/internal/config"
	"github.com/vforge/screwsort/internal/puzzle"
)

type moveKind int

const (
	moveRemoval moveKind = iota
	moveTransfer
	moveHide
	moveShift
	moveReveal
)

type pendingMove struct {
	kind  moveKind
	due   uint64
	screw puzzle.ScrewID
	tray  puzzle.TrayID
}

// Driver implements puzzle.Animator on a tick clock: every command is
// queued with a fixed latency and its completion is delivered back to
// the engine when the clock reaches the due tick. Commands never
// complete on the tick they were issued, honoring the no-synchronous-
// callback contract.
type Driver struct {
	cfg    config.AnimationConfig
	engine *puzzle.Engine
	tick   uint64
	queue  []pendingMove
}

// NewDriver creates a driver with the given latencies. Latencies below
// one tick are raised to one so a completion never lands on the tick
// of its command.
func NewDriver(cfg config.AnimationConfig) *Driver {
	if cfg.RemovalTicks < 1 {
		cfg.RemovalTicks = 1
	}
	if cfg.TransferTicks < 1 {
		cfg.TransferTicks = 1
	}
	if cfg.HideTicks < 1 {
		cfg.HideTicks = 1
	}
	if cfg.ShiftTicks < 1 {
		cfg.ShiftTicks = 1
	}
	if cfg.RevealTicks < 1 {
		cfg.RevealTicks = 1
	}
	return &Driver{cfg: cfg}
}

// Bind attaches the engine the driver delivers completions to. The
// engine needs the animator at construction, so binding is a second
// step.
func (d *Driver) Bind(e *puzzle.Engine) {
	d.engine = e
}

// Tick returns the current clock value.
func (d *Driver) Tick() uint64 {
	return d.tick
}

// Idle reports whether no animation is pending.
func (d *Driver) Idle() bool {
	return len(d.queue) == 0
}

// Reset drops all pending animations and rewinds the clock, for level
// restarts.
func (d *Driver) Reset() {
	d.tick = 0
	d.queue = d.queue[:0]
}

// Step advances the clock one tick and delivers every completion that
// came due, in command order. Completions may enqueue follow-up
// commands; those get a later due tick and wait for a future step.
func (d *Driver) Step() {
	d.tick++

	var due []pendingMove
	rest := d.queue[:0]
	for _, m := range d.queue {
		if m.due <= d.tick {
			due = append(due, m)
		} else {
			rest = append(rest, m)
		}
	}
	d.queue = rest

	for _, m := range due {
		switch m.kind {
		case moveRemoval:
			d.engine.RemovalDone(m.screw)
		case moveTransfer:
			d.engine.TransferDone(m.screw)
		case moveHide:
			d.engine.HideDone(m.tray)
		case moveShift:
			d.engine.ShiftDone(m.tray)
		case moveReveal:
			d.engine.RevealDone(m.tray)
		}
	}
}

func (d *Driver) enqueue(kind moveKind, latency int, screw puzzle.ScrewID, tray puzzle.TrayID) {
	d.queue = append(d.queue, pendingMove{
		kind:  kind,
		due:   d.tick + uint64(latency),
		screw: screw,
		tray:  tray,
	})
}

func (d *Driver) StartRemoval(screw puzzle.ScrewID, target puzzle.Placement) {
	d.enqueue(moveRemoval, d.cfg.RemovalTicks, screw, target.Tray)
}

func (d *Driver) StartTransfer(screw puzzle.ScrewID, tray puzzle.TrayID, slot int) {
	d.enqueue(moveTransfer, d.cfg.TransferTicks, screw, tray)
}

func (d *Driver) HideTray(tray puzzle.TrayID) {
	d.enqueue(moveHide, d.cfg.HideTicks, 0, tray)
}

func (d *Driver) ShiftTray(tray puzzle.TrayID, from, to int) {
	d.enqueue(moveShift, d.cfg.ShiftTicks, 0, tray)
}

func (d *Driver) RevealTray(tray puzzle.TrayID) {
	d.enqueue(moveReveal, d.cfg.RevealTicks, 0, tray)
}
