package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hylla/tavla/internal/adapters/storage/csvfile"
	"github.com/hylla/tavla/internal/adapters/storage/sqlite"
	"github.com/hylla/tavla/internal/config"
	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/engine"
	"github.com/hylla/tavla/internal/palette"
	"github.com/hylla/tavla/internal/platform"
	"github.com/hylla/tavla/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("tavla", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		backend    string
		dbPath     string
		appName    string
		devMode    bool
		showVer    bool
	)
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("TAVLA_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("TAVLA_APP_NAME")); envApp != "" {
		appName = envApp
	} else {
		appName = "tavla"
	}
	fs.StringVar(&configPath, "config", "", "path to config TOML")
	fs.StringVar(&backend, "backend", "", "storage backend override (csv or sqlite)")
	fs.StringVar(&dbPath, "db", "", "path to sqlite database")
	fs.StringVar(&appName, "app", appName, "application name for config/data path resolution")
	fs.BoolVar(&devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")
	fs.BoolVar(&showVer, "version", false, "show version")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVer {
		_, _ = fmt.Fprintf(stdout, "tavla %s\n", version)
		return nil
	}

	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: appName,
		DevMode: devMode,
	})
	if err != nil {
		return err
	}

	command := firstArg(fs.Args())
	switch command {
	case "paths":
		_, _ = fmt.Fprintf(stdout, "app: %s\n", appName)
		_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", devMode)
		_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
		_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
		_, _ = fmt.Fprintf(stdout, "tasks: %s\n", paths.TasksPath)
		_, _ = fmt.Fprintf(stdout, "colors: %s\n", paths.ColorsPath)
		_, _ = fmt.Fprintf(stdout, "db: %s\n", paths.DBPath)
		return nil
	case "", "export", "import":
		// Continue.
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TAVLA_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(paths.TasksPath, paths.ColorsPath, paths.DBPath))
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}
	if backend != "" {
		cfg.Storage.Backend = config.Backend(strings.ToLower(strings.TrimSpace(backend)))
	}
	if strings.TrimSpace(dbPath) != "" {
		cfg.Storage.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logger, err := newRuntimeLogger(stderr, appName, devMode, cfg.Logging, paths.DataDir)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	if command == "" {
		// Keep TUI rendering clean: runtime logs stay in the dev-file
		// sink while the board is active.
		logger.SetConsoleEnabled(false)
	}
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", appName, "dev_mode", devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir)
	logger.Info("configuration loaded", "backend", cfg.Storage.Backend, "layout", cfg.Board.Layout, "log_level", cfg.Logging.Level)

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("open storage failed", "backend", cfg.Storage.Backend, "err", err)
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("storage close failed", "err", closeErr)
		}
	}()

	switch command {
	case "export":
		logger.Info("command flow start", "command", "export")
		if err := runExport(ctx, store, fs.Args()[1:], stdout); err != nil {
			logger.Error("command flow failed", "command", "export", "err", err)
			return fmt.Errorf("run export command: %w", err)
		}
		logger.Info("command flow complete", "command", "export")
		return nil
	case "import":
		logger.Info("command flow start", "command", "import")
		if err := runImport(ctx, store, fs.Args()[1:]); err != nil {
			logger.Error("command flow failed", "command", "import", "err", err)
			return fmt.Errorf("run import command: %w", err)
		}
		logger.Info("command flow complete", "command", "import")
		return nil
	}

	tasks, err := store.LoadTasks(ctx)
	if err != nil {
		logger.Error("load tasks failed", "err", err)
		return fmt.Errorf("load tasks: %w", err)
	}
	colors, err := store.LoadColors(ctx)
	if err != nil {
		logger.Error("load colors failed", "err", err)
		return fmt.Errorf("load colors: %w", err)
	}
	board := engine.NewBoard(tasks, palette.NewRegistry(colors), uuid.NewString, time.Now)
	logger.Info("board loaded", "tasks", board.Len(), "categories", board.Colors().Len())

	m := tui.NewModel(
		board,
		tui.WithLayoutMode(cfg.LayoutMode()),
		tui.WithDefaultCategory(cfg.Board.DefaultCategory),
		tui.WithSaveFunc(func(saveCtx context.Context, tasks []domain.Task, colors map[string]string) error {
			if err := store.SaveTasks(saveCtx, tasks); err != nil {
				logger.Error("save tasks failed", "err", err)
				return err
			}
			if err := store.SaveColors(saveCtx, colors); err != nil {
				logger.Error("save colors failed", "err", err)
				return err
			}
			logger.Info("snapshot saved", "tasks", len(tasks), "categories", len(colors))
			return nil
		}),
	)
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		emergencySave(ctx, store, board, logger)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// emergencySave writes one best-effort snapshot after an unexpected
// failure so in-memory progress is not lost. A second failure during
// the save is logged and otherwise dropped.
func emergencySave(ctx context.Context, store engine.Store, board *engine.Board, logger *runtimeLogger) {
	if err := store.SaveTasks(ctx, board.Tasks()); err != nil {
		logger.Error("emergency task save failed", "err", err)
		return
	}
	if err := store.SaveColors(ctx, board.Colors().Snapshot()); err != nil {
		logger.Error("emergency color save failed", "err", err)
		return
	}
	logger.Info("emergency snapshot saved", "tasks", board.Len())
}

// openStore constructs the configured snapshot backend.
func openStore(cfg config.Config) (engine.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.Open(cfg.Storage.DBPath)
	default:
		return csvfile.New(cfg.Storage.TasksPath, cfg.Storage.ColorsPath)
	}
}

// snapshot is the export/import wire format.
type snapshot struct {
	Tasks  []snapshotTask    `json:"tasks"`
	Colors map[string]string `json:"colors"`
}

// snapshotTask mirrors one task record in the snapshot file.
type snapshotTask struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

// runExport runs the requested command flow.
func runExport(ctx context.Context, store engine.Store, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tavla export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var outPath string
	fs.StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse export flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected export arguments: %v", fs.Args())
	}

	tasks, err := store.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	colors, err := store.LoadColors(ctx)
	if err != nil {
		return fmt.Errorf("load colors: %w", err)
	}

	snap := snapshot{Tasks: make([]snapshotTask, 0, len(tasks)), Colors: colors}
	for _, task := range tasks {
		snap.Tasks = append(snap.Tasks, snapshotTask{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
			Status:      string(task.Status),
		})
	}
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot json: %w", err)
	}
	encoded = append(encoded, '\n')

	if outPath == "-" {
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write snapshot to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// runImport runs the requested command flow.
func runImport(ctx context.Context, store engine.Store, args []string) error {
	fs := flag.NewFlagSet("tavla import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var inPath string
	fs.StringVar(&inPath, "in", "", "input snapshot JSON file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse import flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected import arguments: %v", fs.Args())
	}
	if inPath == "" {
		return fmt.Errorf("--in is required")
	}

	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return fmt.Errorf("decode snapshot json: %w", err)
	}

	tasks := make([]domain.Task, 0, len(snap.Tasks))
	for idx, record := range snap.Tasks {
		status, err := domain.ParseStatus(record.Status)
		if err != nil {
			return fmt.Errorf("task %d: %w", idx+1, err)
		}
		tasks = append(tasks, domain.Task{
			ID:          record.ID,
			Title:       record.Title,
			Description: record.Description,
			Category:    record.Category,
			Status:      status,
		})
	}
	if err := store.SaveTasks(ctx, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := store.SaveColors(ctx, snap.Colors); err != nil {
		return fmt.Errorf("save colors: %w", err)
	}
	return nil
}

// firstArg handles first arg.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// runtimeLogger fans log events to a styled console sink and an
// optional dev-file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	devLog         string
}

// newRuntimeLogger configures runtime log sinks from CLI/config state.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig, dataDir string) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})

	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
	}
	if !devMode || !cfg.DevFile.Enabled {
		return logger, nil
	}

	logDir := strings.TrimSpace(cfg.DevFile.Dir)
	if logDir == "" {
		logDir = filepath.Join(dataDir, "log")
	}
	devLogPath := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", appName, time.Now().UTC().Format("20060102")))
	if err := os.MkdirAll(filepath.Dir(devLogPath), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	logFile, err := os.OpenFile(devLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}

	// Keep file output parseable and unstyled while preserving styled
	// console logs.
	fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	logger.sinks = append(logger.sinks, fileLogger)
	logger.closeFile = logFile.Close
	logger.devLog = devLogPath
	return logger, nil
}

// DevLogPath returns the active dev log file path.
func (l *runtimeLogger) DevLogPath() string {
	if l == nil {
		return ""
	}
	return l.devLog
}

// Close closes the optional dev-file sink.
func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled toggles whether the console sink receives runtime
// events.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

// shouldLogToSink reports whether one sink should receive runtime
// output.
func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil || sink == nil {
		return false
	}
	if sink == l.consoleSink && !l.consoleEnabled {
		return false
	}
	return true
}

// Debug logs a debug event to all configured sinks.
func (l *runtimeLogger) Debug(msg string, keyvals ...any) {
	l.log(func(sink *charmLog.Logger) { sink.Debug(msg, keyvals...) })
}

// Info logs an informational event to all configured sinks.
func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	l.log(func(sink *charmLog.Logger) { sink.Info(msg, keyvals...) })
}

// Warn logs a warning event to all configured sinks.
func (l *runtimeLogger) Warn(msg string, keyvals ...any) {
	l.log(func(sink *charmLog.Logger) { sink.Warn(msg, keyvals...) })
}

// Error logs an error event to all configured sinks.
func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	l.log(func(sink *charmLog.Logger) { sink.Error(msg, keyvals...) })
}

// log fans one event out to every enabled sink.
func (l *runtimeLogger) log(emit func(*charmLog.Logger)) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		emit(sink)
	}
}
