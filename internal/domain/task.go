package domain

import "strings"

// Task is a unit of work on the board.
type Task struct {
	ID          int
	Title       string
	Description string
	Category    string
	Status      Status
}

// TaskInput carries the fields for constructing a task. The engine
// allocates the ID; callers never pick one.
type TaskInput struct {
	ID          int
	Title       string
	Description string
	Category    string
	Status      Status
}

// NewTask validates and constructs a task. Title and category must be
// non-empty after trimming; the status must be canonical.
func NewTask(in TaskInput) (Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	if in.ID <= 0 {
		return Task{}, ErrInvalidID
	}
	if in.Title == "" {
		return Task{}, ErrInvalidTitle
	}
	if in.Category == "" {
		return Task{}, ErrInvalidCategory
	}
	if !in.Status.Valid() {
		return Task{}, ErrInvalidStatus
	}

	return Task{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      in.Status,
	}, nil
}

// UpdateDetails mutates the task in place with the same validation as
// NewTask, except the ID is fixed.
func (t *Task) UpdateDetails(title, description, category string, status Status) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	if title == "" {
		return ErrInvalidTitle
	}
	if category == "" {
		return ErrInvalidCategory
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	t.Title = title
	t.Description = description
	t.Category = category
	t.Status = status
	return nil
}

// SetStatus moves the task to a new canonical status.
func (t *Task) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	t.Status = status
	return nil
}
