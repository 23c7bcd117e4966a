package engine

import (
	"slices"
	"time"
)

// ChangeOp identifies one kind of board mutation.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpEdit   ChangeOp = "edit"
	OpDelete ChangeOp = "delete"
	OpMove   ChangeOp = "move"
	OpSort   ChangeOp = "sort"
)

// changeLogMaxEvents caps in-memory retention; older events are dropped.
const changeLogMaxEvents = 200

// ChangeEvent records one mutation for the in-app activity view.
type ChangeEvent struct {
	ID      string
	At      time.Time
	Op      ChangeOp
	TaskID  int
	Summary string
}

// record appends a change event, trimming the log to its cap.
func (b *Board) record(op ChangeOp, taskID int, summary string) {
	b.events = append(b.events, ChangeEvent{
		ID:      b.idGen(),
		At:      b.clock(),
		Op:      op,
		TaskID:  taskID,
		Summary: summary,
	})
	if overflow := len(b.events) - changeLogMaxEvents; overflow > 0 {
		b.events = slices.Delete(b.events, 0, overflow)
	}
}

// Events returns the recorded change events, oldest first.
func (b *Board) Events() []ChangeEvent {
	return slices.Clone(b.events)
}
