// Package csvfile persists board snapshots as a CSV task file plus a
// JSON category-color file. Every save is a full rewrite.
package csvfile

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hylla/tavla/internal/domain"
)

// taskHeader is the fixed CSV header row; one record per task follows.
var taskHeader = []string{"id", "title", "description", "category", "status"}

// Store reads and writes the two snapshot files.
type Store struct {
	tasksPath  string
	colorsPath string
}

// New constructs a store over the given file paths. Parent directories
// are created on first save.
func New(tasksPath, colorsPath string) (*Store, error) {
	if tasksPath == "" || colorsPath == "" {
		return nil, errors.New("csvfile store paths are required")
	}
	return &Store{tasksPath: tasksPath, colorsPath: colorsPath}, nil
}

// LoadTasks reads the task file, in stored order. A missing file is
// not an error; it loads as an empty collection.
func (s *Store) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.tasksPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("open tasks file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tasks csv: %w", err)
	}
	if len(records) == 0 {
		return []domain.Task{}, nil
	}

	tasks := make([]domain.Task, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(taskHeader) {
			return nil, fmt.Errorf("tasks csv row %d: %d fields, want %d", i+2, len(record), len(taskHeader))
		}
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("tasks csv row %d: parse id %q: %w", i+2, record[0], err)
		}
		tasks = append(tasks, domain.Task{
			ID:          id,
			Title:       record[1],
			Description: record[2],
			Category:    record[3],
			Status:      domain.Status(record[4]),
		})
	}
	return tasks, nil
}

// SaveTasks overwrites the task file with a header row and one record
// per task, preserving collection order.
func (s *Store) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.tasksPath), 0o755); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}
	f, err := os.Create(s.tasksPath)
	if err != nil {
		return fmt.Errorf("create tasks file: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(taskHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("write tasks header: %w", err)
	}
	for _, task := range tasks {
		record := []string{
			strconv.Itoa(task.ID),
			task.Title,
			task.Description,
			task.Category,
			string(task.Status),
		}
		if err := writer.Write(record); err != nil {
			_ = f.Close()
			return fmt.Errorf("write task %d: %w", task.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush tasks csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close tasks file: %w", err)
	}
	return nil
}

// LoadColors reads the category-color mapping. Absent or corrupt files
// load as an empty mapping, never an error.
func (s *Store) LoadColors(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(s.colorsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read colors file: %w", err)
	}
	colors := map[string]string{}
	if err := json.Unmarshal(content, &colors); err != nil {
		return map[string]string{}, nil
	}
	return colors, nil
}

// SaveColors overwrites the color file with the full mapping.
func (s *Store) SaveColors(ctx context.Context, colors map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.colorsPath), 0o755); err != nil {
		return fmt.Errorf("create colors dir: %w", err)
	}
	encoded, err := json.MarshalIndent(colors, "", "  ")
	if err != nil {
		return fmt.Errorf("encode colors json: %w", err)
	}
	encoded = append(encoded, '\n')
	if err := os.WriteFile(s.colorsPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write colors file: %w", err)
	}
	return nil
}

// Close satisfies the store interface; file handles are not held open.
func (s *Store) Close() error {
	return nil
}
