package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/engine"
	"github.com/hylla/tavla/internal/layout"
	"github.com/hylla/tavla/internal/palette"
)

func newTestBoard(tasks []domain.Task, colors map[string]string) *engine.Board {
	seq := 0
	idGen := func() string {
		seq++
		return fmt.Sprintf("event-%d", seq)
	}
	clock := func() time.Time {
		return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	}
	return engine.NewBoard(tasks, palette.NewRegistry(colors), idGen, clock)
}

func newTestModel(t *testing.T, board *engine.Board, opts ...Option) Model {
	t.Helper()
	m := NewModel(board, opts...)
	return applyMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func seedTasks() []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Write report", Description: "quarterly numbers", Category: "Work", Status: domain.StatusTodo},
		{ID: 2, Title: "Beta review", Category: "Work", Status: domain.StatusTodo},
		{ID: 3, Title: "Water plants", Category: "Home", Status: domain.StatusInProgress},
		{ID: 4, Title: "File taxes", Category: "Home", Status: domain.StatusDone},
	}
}

func TestModelNavigation(t *testing.T) {
	m := newTestModel(t, newTestBoard(seedTasks(), nil))

	m = applyMsg(t, m, keyRune('l'))
	if m.selectedColumn != 1 {
		t.Fatalf("expected selectedColumn=1, got %d", m.selectedColumn)
	}
	m = applyMsg(t, m, keyRune('h'))
	if m.selectedColumn != 0 {
		t.Fatalf("expected selectedColumn=0, got %d", m.selectedColumn)
	}
	m = applyMsg(t, m, keyRune('j'))
	if m.selectedTask != 1 {
		t.Fatalf("expected selectedTask=1, got %d", m.selectedTask)
	}
	m = applyMsg(t, m, keyRune('k'))
	if m.selectedTask != 0 {
		t.Fatalf("expected selectedTask=0, got %d", m.selectedTask)
	}

	// Cursor does not run past the last column or task.
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('l'))
	if m.selectedColumn != 2 {
		t.Fatalf("expected selectedColumn clamped to 2, got %d", m.selectedColumn)
	}
}

func TestModelAddTaskFlow(t *testing.T) {
	board := newTestBoard(seedTasks(), nil)
	m := newTestModel(t, board, WithDefaultCategory("inbox"))

	m = applyMsg(t, m, keyRune('a'))
	if m.mode != modeAddTask {
		t.Fatalf("expected add mode, got %v", m.mode)
	}
	m = typeString(t, m, "Ship it [final pass]")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.formFocus != formFieldCategory {
		t.Fatalf("expected category focus, got %d", m.formFocus)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if board.Len() != 5 {
		t.Fatalf("expected 5 tasks after add, got %d", board.Len())
	}
	task, ok := board.Get(5)
	if !ok {
		t.Fatal("expected new task with id 5")
	}
	if task.Title != "Ship it" || task.Description != "final pass" {
		t.Fatalf("unexpected composite parse: %+v", task)
	}
	if task.Category != "inbox" || task.Status != domain.StatusTodo {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if !strings.Contains(m.status, "created #5") {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !m.dirty {
		t.Fatal("expected dirty after add")
	}
}

func TestModelAddRejectsEmptyTitle(t *testing.T) {
	m := newTestModel(t, newTestBoard(nil, nil))
	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeAddTask {
		t.Fatalf("expected form to stay open, got mode %v", m.mode)
	}
	if !strings.Contains(m.status, "title required") {
		t.Fatalf("unexpected status %q", m.status)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected modeNone after escape, got %v", m.mode)
	}
}

func TestModelEditTaskFlow(t *testing.T) {
	board := newTestBoard(seedTasks(), nil)
	m := newTestModel(t, board)

	m = applyMsg(t, m, keyRune('e'))
	if m.mode != modeEditTask || m.editingTaskID != 1 {
		t.Fatalf("expected edit mode for #1, got mode=%v id=%d", m.mode, m.editingTaskID)
	}
	if got := m.formInputs[formFieldTitle].Value(); got != "Write report [quarterly numbers]" {
		t.Fatalf("unexpected title prefill %q", got)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(m.status, "edited #1") {
		t.Fatalf("unexpected status %q", m.status)
	}
	task, _ := board.Get(1)
	if task.Title != "Write report" || task.Description != "quarterly numbers" {
		t.Fatalf("expected round-tripped fields, got %+v", task)
	}
}

func TestModelMoveFlow(t *testing.T) {
	board := newTestBoard([]domain.Task{
		{ID: 1, Title: "Solo", Category: "Work", Status: domain.StatusTodo},
	}, nil)
	m := newTestModel(t, board)

	m = applyMsg(t, m, keyRune('m'))
	m = typeString(t, m, "now")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	task, _ := board.Get(1)
	if task.Status != domain.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", task.Status)
	}

	// Moving to the current status is a reported no-op.
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('m'))
	m = typeString(t, m, "n")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(m.status, "already in In Progress") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = applyMsg(t, m, keyRune('m'))
	m = typeString(t, m, "later")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(m.status, "move failed") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelDeleteConfirm(t *testing.T) {
	board := newTestBoard(seedTasks(), nil)
	m := newTestModel(t, board)

	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if board.Len() != 4 || !strings.Contains(m.status, "cancelled") {
		t.Fatalf("expected cancel to keep tasks, got %d %q", board.Len(), m.status)
	}

	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if board.Len() != 3 {
		t.Fatalf("expected 3 tasks after delete, got %d", board.Len())
	}
	if _, ok := board.Get(1); ok {
		t.Fatal("expected #1 removed")
	}
}

func TestModelSearchAndReset(t *testing.T) {
	m := newTestModel(t, newTestBoard(seedTasks(), nil))

	m = applyMsg(t, m, keyRune('/'))
	m = typeString(t, m, "beta")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.viewActive || len(m.visibleTasks()) != 1 {
		t.Fatalf("expected one visible match, got %d", len(m.visibleTasks()))
	}
	if !strings.Contains(m.status, "1 matches") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = applyMsg(t, m, keyRune('r'))
	if m.viewActive || len(m.visibleTasks()) != 4 {
		t.Fatalf("expected reset to full board, got %d", len(m.visibleTasks()))
	}
}

func TestModelSearchRejectsEmptyQuery(t *testing.T) {
	m := newTestModel(t, newTestBoard(seedTasks(), nil))
	m = applyMsg(t, m, keyRune('/'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeSearch {
		t.Fatalf("expected to stay in search mode, got %v", m.mode)
	}
	if !strings.Contains(m.status, "search query required") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelFilterFlows(t *testing.T) {
	m := newTestModel(t, newTestBoard(seedTasks(), nil))

	m = applyMsg(t, m, keyRune('f'))
	m = typeString(t, m, "category home")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(m.visibleTasks()) != 2 {
		t.Fatalf("expected 2 Home tasks, got %d", len(m.visibleTasks()))
	}

	// Bogus status filters to a silent empty view, never an error.
	m = applyMsg(t, m, keyRune('f'))
	m = typeString(t, m, "status bogus")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.viewActive || len(m.visibleTasks()) != 0 {
		t.Fatalf("expected empty view, got %d", len(m.visibleTasks()))
	}
	if !strings.Contains(m.status, "0 tasks match") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = applyMsg(t, m, keyRune('r'))
	m = applyMsg(t, m, keyRune('f'))
	m = typeString(t, m, "everything")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeFilter || !strings.Contains(m.status, "filter syntax") {
		t.Fatalf("expected syntax complaint, got mode=%v status=%q", m.mode, m.status)
	}
}

func TestModelSortPrompt(t *testing.T) {
	board := newTestBoard(seedTasks(), nil)
	m := newTestModel(t, board)

	m = applyMsg(t, m, keyRune('s'))
	m = typeString(t, m, "id")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	tasks := board.Tasks()
	for i := 1; i < len(tasks); i++ {
		if tasks[i-1].ID < tasks[i].ID {
			t.Fatalf("expected descending ids, got %v then %v", tasks[i-1].ID, tasks[i].ID)
		}
	}

	m = applyMsg(t, m, keyRune('s'))
	m = typeString(t, m, "size")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeSort || !strings.Contains(m.status, "sort key") {
		t.Fatalf("expected invalid key complaint, got mode=%v status=%q", m.mode, m.status)
	}
}

func TestModelRecolorFlow(t *testing.T) {
	board := newTestBoard(seedTasks(), nil)
	m := newTestModel(t, board)

	m = applyMsg(t, m, keyRune('c'))
	m = typeString(t, m, "blue")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := board.Colors().Get("Work"); got != "blue" {
		t.Fatalf("expected Work recolored to blue, got %q", got)
	}

	m = applyMsg(t, m, keyRune('c'))
	m = typeString(t, m, "mauve")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(m.status, "recolor failed") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelYankCopiesSelectedTask(t *testing.T) {
	var copied string
	m := newTestModel(t, newTestBoard(seedTasks(), nil), WithClipboardFunc(func(text string) error {
		copied = text
		return nil
	}))

	m = applyMsg(t, m, keyRune('y'))
	if !strings.Contains(copied, "#1 Write report") || !strings.Contains(copied, "Work/To Do") {
		t.Fatalf("unexpected clipboard text %q", copied)
	}
	if !strings.Contains(m.status, "copied #1") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelSaveAndQuit(t *testing.T) {
	saves := 0
	var savedTasks []domain.Task
	var savedColors map[string]string
	save := func(_ context.Context, tasks []domain.Task, colors map[string]string) error {
		saves++
		savedTasks = tasks
		savedColors = colors
		return nil
	}

	board := newTestBoard(seedTasks(), map[string]string{"Work": "green"})
	m := newTestModel(t, board, WithSaveFunc(save))

	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if !m.dirty {
		t.Fatal("expected dirty after delete")
	}
	m = applyMsg(t, m, keyRune('w'))
	if saves != 1 || m.dirty {
		t.Fatalf("expected one save clearing dirty, saves=%d dirty=%t", saves, m.dirty)
	}
	if len(savedTasks) != 3 || savedColors["Work"] != "green" {
		t.Fatalf("unexpected snapshot: %d tasks, colors %v", len(savedTasks), savedColors)
	}

	updated, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if saves != 2 {
		t.Fatalf("expected save-and-quit to save, saves=%d", saves)
	}
	if _, ok := updated.(Model); !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
}

func TestModelForceQuitSkipsSave(t *testing.T) {
	saves := 0
	m := newTestModel(t, newTestBoard(nil, nil), WithSaveFunc(func(context.Context, []domain.Task, map[string]string) error {
		saves++
		return nil
	}))
	_, cmd := m.Update(keyRune('Q'))
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if saves != 0 {
		t.Fatalf("expected no save on force quit, saves=%d", saves)
	}
}

func TestModelLayoutToggle(t *testing.T) {
	m := newTestModel(t, newTestBoard(seedTasks(), nil), WithLayoutMode(layout.ModeVertical))
	m = applyMsg(t, m, keyRune('v'))
	if m.layoutMode != layout.ModeHorizontal {
		t.Fatalf("expected horizontal, got %s", m.layoutMode)
	}
	m = applyMsg(t, m, keyRune('v'))
	if m.layoutMode != layout.ModeVertical {
		t.Fatalf("expected vertical, got %s", m.layoutMode)
	}
}

func TestModelOverlays(t *testing.T) {
	m := newTestModel(t, newTestBoard(seedTasks(), nil))

	m = applyMsg(t, m, keyRune('?'))
	if m.mode != modeHelp {
		t.Fatalf("expected help mode, got %v", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected modeNone after escape, got %v", m.mode)
	}

	m = applyMsg(t, m, keyRune('g'))
	if m.mode != modeActivity {
		t.Fatalf("expected activity mode, got %v", m.mode)
	}
	m = applyMsg(t, m, keyRune('g'))
	if m.mode != modeNone {
		t.Fatalf("expected modeNone after toggle, got %v", m.mode)
	}
}

func TestModelViewStates(t *testing.T) {
	m := NewModel(newTestBoard(seedTasks(), nil))
	v := m.View()
	if v.Content == nil || !v.AltScreen {
		t.Fatal("expected loading view on alt screen")
	}

	m = applyMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	v = m.View()
	if v.Content == nil {
		t.Fatal("expected board view content")
	}
}

func TestSplitTitleInput(t *testing.T) {
	cases := []struct {
		raw, title, description string
	}{
		{"Ship it [final pass]", "Ship it", "final pass"},
		{"Plain title", "Plain title", ""},
		{"  padded  ", "padded", ""},
		{"Mixed [a] middle", "Mixed [a] middle", ""},
		{"Trailing [only last [wins]", "Trailing [only last", "wins"},
	}
	for _, tc := range cases {
		title, description := splitTitleInput(tc.raw)
		if title != tc.title || description != tc.description {
			t.Fatalf("splitTitleInput(%q) = %q, %q", tc.raw, title, description)
		}
	}
}

func TestSplitFilterInput(t *testing.T) {
	if kind, value, ok := splitFilterInput("status done"); !ok || kind != engine.FilterStatus || value != "done" {
		t.Fatalf("unexpected parse: %v %q %t", kind, value, ok)
	}
	if kind, value, ok := splitFilterInput("category  Work "); !ok || kind != engine.FilterCategory || value != "Work" {
		t.Fatalf("unexpected parse: %v %q %t", kind, value, ok)
	}
	if _, _, ok := splitFilterInput("priority high"); ok {
		t.Fatal("expected unknown kind rejected")
	}
	if _, _, ok := splitFilterInput("status"); ok {
		t.Fatal("expected missing value rejected")
	}
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		if msg == nil {
			break
		}
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = applyMsg(t, m, keyRune(r))
	}
	return m
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
