// Package layout partitions tasks into the three board columns and
// computes panel widths for the two display arrangements.
package layout

import (
	"github.com/hylla/tavla/internal/domain"
)

// Mode is the board display arrangement. Vertical renders the three
// columns side by side at a shared narrow width; horizontal stacks
// full-width panels.
type Mode string

const (
	ModeVertical   Mode = "vertical"
	ModeHorizontal Mode = "horizontal"
)

// Toggle flips between the two modes.
func (m Mode) Toggle() Mode {
	if m == ModeVertical {
		return ModeHorizontal
	}
	return ModeVertical
}

// Valid reports whether the mode is one of the two known arrangements.
func (m Mode) Valid() bool {
	return m == ModeVertical || m == ModeHorizontal
}

// Partition groups tasks into the three columns, preserving relative
// order within each bucket. Tasks with an unknown status are silently
// dropped; display simply omits them.
type Partition struct {
	Todo       []domain.Task
	InProgress []domain.Task
	Done       []domain.Task
}

// PartitionTasks buckets the input sequence by canonical status.
func PartitionTasks(tasks []domain.Task) Partition {
	var p Partition
	for _, task := range tasks {
		switch task.Status {
		case domain.StatusTodo:
			p.Todo = append(p.Todo, task)
		case domain.StatusInProgress:
			p.InProgress = append(p.InProgress, task)
		case domain.StatusDone:
			p.Done = append(p.Done, task)
		}
	}
	return p
}

// Bucket returns the column slice for a canonical status.
func (p Partition) Bucket(status domain.Status) []domain.Task {
	switch status {
	case domain.StatusTodo:
		return p.Todo
	case domain.StatusInProgress:
		return p.InProgress
	case domain.StatusDone:
		return p.Done
	default:
		return nil
	}
}

// minColumnWidth is the floor for the shared vertical column width.
const minColumnWidth = 25

// VerticalColumnWidth computes the shared panel width for the three
// side-by-side columns: a third of the terminal minus border overhead,
// clamped to [25, max(35, width/3)].
func VerticalColumnWidth(terminalWidth int) int {
	maxWidth := max(35, terminalWidth/3)
	target := max(minColumnWidth, terminalWidth/3-3)
	return min(maxWidth, target)
}

// HorizontalColumnWidth computes the uniform panel width for stacked
// full-width columns.
func HorizontalColumnWidth(terminalWidth int) int {
	return terminalWidth - 4
}

// ColumnWidth dispatches on the layout mode.
func ColumnWidth(mode Mode, terminalWidth int) int {
	if mode == ModeHorizontal {
		return HorizontalColumnWidth(terminalWidth)
	}
	return VerticalColumnWidth(terminalWidth)
}
