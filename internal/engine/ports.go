package engine

import (
	"context"

	"github.com/hylla/tavla/internal/domain"
)

// Store is the persistence gateway for board snapshots. Load never
// fails on a missing backing store (it returns empty); every Save is
// a full rewrite in collection order.
type Store interface {
	LoadTasks(ctx context.Context) ([]domain.Task, error)
	SaveTasks(ctx context.Context, tasks []domain.Task) error
	LoadColors(ctx context.Context) (map[string]string, error)
	SaveColors(ctx context.Context, colors map[string]string) error
	Close() error
}
