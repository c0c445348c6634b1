package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vforge/screwsort/internal/puzzle"
)

// colorStyles maps puzzle colors to terminal styles.
var colorStyles = map[puzzle.Color]lipgloss.Style{
	puzzle.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	puzzle.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	puzzle.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	puzzle.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	puzzle.ColorPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	puzzle.ColorOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	stuckStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))

	trayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	busyTrayBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("226")).
				Padding(0, 1)
)

// styleFor returns the style for a puzzle color, falling back to the
// dim style for unknown values.
func styleFor(c puzzle.Color) lipgloss.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return dimStyle
}

// renderTray renders one visible tray as a bordered box with a colored
// slot row. Trays taking part in a carousel transition get a highlighted
// border.
func renderTray(ts puzzle.TraySnapshot) string {
	style := styleFor(ts.Color)

	var slots strings.Builder
	for i := 0; i < ts.Capacity; i++ {
		if i > 0 {
			slots.WriteByte(' ')
		}
		if i < ts.Count {
			slots.WriteString(style.Render(string(ts.Color.Char())))
		} else {
			slots.WriteString(dimStyle.Render("."))
		}
	}

	title := style.Render(ts.Color.String())
	content := title + "\n" + slots.String()

	box := trayBoxStyle
	if ts.Animating {
		box = busyTrayBoxStyle
	}
	return box.Render(content)
}

// renderBuffer renders the overflow FIFO as a single row of cells, oldest
// first. Empty slots render as dim dots.
func renderBuffer(e *puzzle.Engine, snap puzzle.Snapshot) string {
	capacity := e.State().Buffer().Capacity

	cells := make([]string, 0, capacity)
	for _, id := range snap.Buffer {
		screw := e.State().Screw(id)
		if screw == nil {
			continue
		}
		cells = append(cells, styleFor(screw.Color).Render(string(screw.Color.Char())))
	}
	for len(cells) < capacity {
		cells = append(cells, dimStyle.Render("."))
	}

	return labelStyle.Render("buffer  ") + "[" + strings.Join(cells, " ") + "]"
}

// renderParts renders the board stack, top layer first. Freed boards
// are dimmed out.
func renderParts(snap puzzle.Snapshot) string {
	var b strings.Builder
	for i, p := range snap.Parts {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := fmt.Sprintf("board %d  layer %d  %-8s  %d screws left", p.ID, p.Layer, p.State, p.ScrewsLeft)
		if p.State == puzzle.PartFree {
			b.WriteString(dimStyle.Render(line))
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}

// RenderSession renders the full session view for the watch screen.
func RenderSession(e *puzzle.Engine, width int) string {
	snap := e.Snapshot()

	var b strings.Builder

	// Progress line.
	b.WriteString(labelStyle.Render(fmt.Sprintf("screws  %d/%d removed, %d on boards, %d buffered",
		snap.RemovedScrews, snap.TotalScrews, snap.InBoard, snap.InBuffer)))
	b.WriteString("\n\n")

	// Visible trays.
	trays := make([]string, 0, len(snap.Visible))
	for _, ts := range snap.Visible {
		trays = append(trays, renderTray(ts))
	}
	if len(trays) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, trays...))
		b.WriteByte('\n')
	}

	queued := fmt.Sprintf("%d trays queued", len(snap.Hidden))
	if snap.CarouselBusy {
		queued += ", carousel advancing"
		if snap.CarouselQueue > 0 {
			queued += fmt.Sprintf(" (%d more pending)", snap.CarouselQueue)
		}
	}
	b.WriteString(dimStyle.Render(queued))
	b.WriteString("\n\n")

	b.WriteString(renderBuffer(e, snap))
	if snap.TransferBusy {
		b.WriteString(dimStyle.Render("  transferring..."))
	}
	b.WriteString("\n\n")

	b.WriteString(renderParts(snap))
	b.WriteByte('\n')

	return b.String()
}

// renderPhaseBanner returns the banner line for a finished session, or
// an empty string while still playing.
func renderPhaseBanner(phase puzzle.Phase, width int) string {
	switch phase {
	case puzzle.PhaseWon:
		return centerText(wonStyle.Render("LEVEL CLEARED"), width)
	case puzzle.PhaseStuck:
		return centerText(stuckStyle.Render("STUCK - no valid moves left"), width)
	default:
		return ""
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
