// Package sqlite is the alternative snapshot backend, selected by
// storage.backend = "sqlite". It keeps the same full-rewrite contract
// as the file store, inside a transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hylla/tavla/internal/domain"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Store persists board snapshots in a single sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS category_colors (
			category TEXT PRIMARY KEY,
			color TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// LoadTasks returns all tasks in stored collection order.
func (s *Store) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, category, status FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		var status string
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Category, &status); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Status = domain.Status(status)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// SaveTasks replaces the whole task table with the given collection,
// recording its order in the position column.
func (s *Store) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tasks tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for position, task := range tasks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, position, title, description, category, status) VALUES (?, ?, ?, ?, ?, ?)`,
			task.ID, position, task.Title, task.Description, task.Category, string(task.Status),
		)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", task.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tasks tx: %w", err)
	}
	return nil
}

// LoadColors returns the full category-color mapping.
func (s *Store) LoadColors(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, color FROM category_colors`)
	if err != nil {
		return nil, fmt.Errorf("query colors: %w", err)
	}
	defer rows.Close()

	colors := map[string]string{}
	for rows.Next() {
		var category, color string
		if err := rows.Scan(&category, &color); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		colors[category] = color
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate colors: %w", err)
	}
	return colors, nil
}

// SaveColors replaces the whole mapping.
func (s *Store) SaveColors(ctx context.Context, colors map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin colors tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_colors`); err != nil {
		return fmt.Errorf("clear colors: %w", err)
	}
	for category, color := range colors {
		if _, err := tx.ExecContext(ctx, `INSERT INTO category_colors (category, color) VALUES (?, ?)`, category, color); err != nil {
			return fmt.Errorf("insert color %q: %w", category, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit colors tx: %w", err)
	}
	return nil
}
