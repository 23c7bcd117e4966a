// Package engine owns the authoritative in-memory task collection and
// every validated mutation and query over it.
package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/palette"
)

var (
	ErrNotFound       = errors.New("task not found")
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// IDGenerator returns unique identifiers for change events.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// FilterKind selects which task field a filter inspects.
type FilterKind string

const (
	FilterStatus   FilterKind = "status"
	FilterCategory FilterKind = "category"
)

// SortKey selects the field an in-place sort orders by.
type SortKey string

const (
	SortByID       SortKey = "id"
	SortByTitle    SortKey = "title"
	SortByCategory SortKey = "category"
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(input string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(input))); key {
	case SortByID, SortByTitle, SortByCategory:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, input)
	}
}

// MoveOutcome distinguishes an applied move from the non-fatal no-op
// of moving a task to the status it already has.
type MoveOutcome int

const (
	MoveApplied MoveOutcome = iota
	MoveUnchanged
)

// TaskInput carries the user-editable fields for Create and Edit.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Status      domain.Status
}

// SearchResult is the outcome of a substring search.
type SearchResult struct {
	Tasks      []domain.Task
	MatchCount int
	Query      string
}

// Board owns the ordered task collection for the process lifetime.
// Insertion order is preserved unless a sort is explicitly invoked,
// which reorders the collection in place.
type Board struct {
	tasks  []domain.Task
	colors *palette.Registry
	idGen  IDGenerator
	clock  Clock
	events []ChangeEvent
}

// NewBoard constructs a board around tasks loaded from storage and a
// color registry. Categories referenced by loaded tasks are backfilled
// into the registry; tasks with an empty category are tolerated as
// loaded but never produced by the validated path.
func NewBoard(tasks []domain.Task, colors *palette.Registry, idGen IDGenerator, clock Clock) *Board {
	if colors == nil {
		colors = palette.NewRegistry(nil)
	}
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	b := &Board{
		tasks:  slices.Clone(tasks),
		colors: colors,
		idGen:  idGen,
		clock:  clock,
	}
	for _, task := range b.tasks {
		if task.Category != "" {
			colors.Ensure(task.Category)
		}
	}
	return b
}

// Tasks returns a copy of the collection in its current order.
func (b *Board) Tasks() []domain.Task {
	return slices.Clone(b.tasks)
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Colors returns the board's category-color registry.
func (b *Board) Colors() *palette.Registry {
	return b.colors
}

// Get returns the task with the given id.
func (b *Board) Get(id int) (domain.Task, bool) {
	if idx := b.indexOf(id); idx >= 0 {
		return b.tasks[idx], true
	}
	return domain.Task{}, false
}

// Create validates the input, appends a new task with a freshly
// allocated id (max existing + 1, never reused), and ensures the
// category has a color entry.
func (b *Board) Create(in TaskInput) (domain.Task, error) {
	task, err := domain.NewTask(domain.TaskInput{
		ID:          b.nextID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      in.Status,
	})
	if err != nil {
		return domain.Task{}, err
	}
	b.tasks = append(b.tasks, task)
	b.colors.Ensure(task.Category)
	b.record(OpCreate, task.ID, fmt.Sprintf("created %q", task.Title))
	return task, nil
}

// Edit mutates the task with the given id in place. The color-ensure
// side effect matches Create.
func (b *Board) Edit(id int, in TaskInput) (domain.Task, error) {
	idx := b.indexOf(id)
	if idx < 0 {
		return domain.Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	task := b.tasks[idx]
	if err := task.UpdateDetails(in.Title, in.Description, in.Category, in.Status); err != nil {
		return domain.Task{}, err
	}
	b.tasks[idx] = task
	b.colors.Ensure(task.Category)
	b.record(OpEdit, task.ID, fmt.Sprintf("edited %q", task.Title))
	return task, nil
}

// Delete removes the task with the given id and reports whether it
// existed. A repeat delete is a no-op reporting false; the caller
// decides severity.
func (b *Board) Delete(id int) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	title := b.tasks[idx].Title
	b.tasks = slices.Delete(b.tasks, idx, idx+1)
	b.record(OpDelete, id, fmt.Sprintf("deleted %q", title))
	return true
}

// Move normalizes statusInput through the alias table and changes the
// task's status. Moving a task to its current status is a non-fatal
// no-op reported as MoveUnchanged.
func (b *Board) Move(id int, statusInput string) (MoveOutcome, error) {
	status, err := domain.ParseStatus(statusInput)
	if err != nil {
		return 0, err
	}
	idx := b.indexOf(id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if b.tasks[idx].Status == status {
		return MoveUnchanged, nil
	}
	if err := b.tasks[idx].SetStatus(status); err != nil {
		return 0, err
	}
	b.record(OpMove, id, fmt.Sprintf("moved %q to %s", b.tasks[idx].Title, status.Label()))
	return MoveApplied, nil
}

// Search matches the query case-insensitively as a substring of title
// or description, preserving relative order. An empty query matches
// every task; rejecting empty input is the interaction layer's policy.
func (b *Board) Search(query string) SearchResult {
	needle := strings.ToLower(query)
	matches := make([]domain.Task, 0)
	for _, task := range b.tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			matches = append(matches, task)
		}
	}
	return SearchResult{Tasks: matches, MatchCount: len(matches), Query: query}
}

// Filter returns the subsequence of tasks matching the criterion. A
// status value that fails to normalize yields an empty result, never
// an error. Category filtering is a case-insensitive substring match.
func (b *Board) Filter(kind FilterKind, value string) []domain.Task {
	out := make([]domain.Task, 0)
	switch kind {
	case FilterStatus:
		status, err := domain.ParseStatus(value)
		if err != nil {
			return out
		}
		for _, task := range b.tasks {
			if task.Status == status {
				out = append(out, task)
			}
		}
	case FilterCategory:
		needle := strings.ToLower(value)
		for _, task := range b.tasks {
			if strings.Contains(strings.ToLower(task.Category), needle) {
				out = append(out, task)
			}
		}
	}
	return out
}

// Sort stably reorders the owned collection in place. IDs sort
// descending; title and category sort ascending, case-insensitively.
// The asymmetry is deliberate long-standing behavior.
func (b *Board) Sort(key SortKey) error {
	switch key {
	case SortByID:
		slices.SortStableFunc(b.tasks, func(a, c domain.Task) int {
			return c.ID - a.ID
		})
	case SortByTitle:
		slices.SortStableFunc(b.tasks, func(a, c domain.Task) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(c.Title))
		})
	case SortByCategory:
		slices.SortStableFunc(b.tasks, func(a, c domain.Task) int {
			return strings.Compare(strings.ToLower(a.Category), strings.ToLower(c.Category))
		})
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
	}
	b.record(OpSort, 0, fmt.Sprintf("sorted by %s", key))
	return nil
}

// nextID allocates max(existing ids, 0) + 1. Deleted ids are never
// reused unless the maximum itself was deleted.
func (b *Board) nextID() int {
	next := 1
	for _, task := range b.tasks {
		if task.ID >= next {
			next = task.ID + 1
		}
	}
	return next
}

func (b *Board) indexOf(id int) int {
	return slices.IndexFunc(b.tasks, func(t domain.Task) bool {
		return t.ID == id
	})
}
