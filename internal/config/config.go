package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hylla/tavla/internal/layout"
)

// Backend selects the snapshot storage adapter.
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Board   BoardConfig   `toml:"board"`
	Logging LoggingConfig `toml:"logging"`
}

type StorageConfig struct {
	Backend    Backend `toml:"backend"`
	TasksPath  string  `toml:"tasks_path"`
	ColorsPath string  `toml:"colors_path"`
	DBPath     string  `toml:"db_path"`
}

type BoardConfig struct {
	Layout          string `toml:"layout"` // vertical | horizontal
	DefaultCategory string `toml:"default_category"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func Default(tasksPath, colorsPath, dbPath string) Config {
	return Config{
		Storage: StorageConfig{
			Backend:    BackendCSV,
			TasksPath:  tasksPath,
			ColorsPath: colorsPath,
			DBPath:     dbPath,
		},
		Board: BoardConfig{
			Layout:          string(layout.ModeVertical),
			DefaultCategory: "general",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     "",
			},
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendCSV:
		if strings.TrimSpace(c.Storage.TasksPath) == "" {
			return errors.New("storage.tasks_path is required for the csv backend")
		}
		if strings.TrimSpace(c.Storage.ColorsPath) == "" {
			return errors.New("storage.colors_path is required for the csv backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.DBPath) == "" {
			return errors.New("storage.db_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	if !layout.Mode(strings.TrimSpace(strings.ToLower(c.Board.Layout))).Valid() {
		return fmt.Errorf("invalid board.layout: %q", c.Board.Layout)
	}
	if strings.TrimSpace(c.Board.DefaultCategory) == "" {
		return errors.New("board.default_category must not be blank")
	}

	levels := []string{"debug", "info", "warn", "error", "fatal"}
	if !slices.Contains(levels, strings.TrimSpace(strings.ToLower(c.Logging.Level))) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

// LayoutMode returns the configured default layout arrangement.
func (c Config) LayoutMode() layout.Mode {
	return layout.Mode(strings.TrimSpace(strings.ToLower(c.Board.Layout)))
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
