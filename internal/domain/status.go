package domain

import (
	"slices"
	"strings"
)

// Status is one of the three fixed workflow columns a task occupies.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

var validStatuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// statusAliases maps input conveniences onto canonical statuses. The
// canonical values themselves also parse; everything else is invalid.
var statusAliases = map[string]Status{
	"todo": StatusTodo,
	"t":    StatusTodo,
	"now":  StatusInProgress,
	"n":    StatusInProgress,
	"done": StatusDone,
	"d":    StatusDone,
}

// ParseStatus normalizes user input into a canonical status.
func ParseStatus(input string) (Status, error) {
	trimmed := strings.TrimSpace(input)
	if status, ok := statusAliases[strings.ToLower(trimmed)]; ok {
		return status, nil
	}
	status := Status(trimmed)
	if slices.Contains(validStatuses, status) {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether the status is one of the three canonical values.
func (s Status) Valid() bool {
	return slices.Contains(validStatuses, s)
}

// Label returns the column header shown for this status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Statuses returns the three canonical statuses in column order.
func Statuses() []Status {
	return slices.Clone(validStatuses)
}
