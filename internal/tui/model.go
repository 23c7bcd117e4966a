// Package tui renders the interactive board and translates key input
// into engine operations.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/engine"
	"github.com/hylla/tavla/internal/layout"
	"github.com/hylla/tavla/internal/palette"
)

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeAddTask
	modeEditTask
	modeMoveTask
	modeConfirmDelete
	modeRecolor
	modeFilter
	modeSort
	modeSearch
	modeHelp
	modeActivity
)

// task-form field indexes used by focus cycling.
const (
	formFieldTitle = iota
	formFieldCategory
	formFieldStatus
)

// activityViewWindow caps the rows shown in the activity overlay.
const activityViewWindow = 14

// ansiColorCodes maps palette color names to terminal color codes.
var ansiColorCodes = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

// columnBorderColors fixes each column's frame color.
var columnBorderColors = map[domain.Status]string{
	domain.StatusTodo:       "3",
	domain.StatusInProgress: "1",
	domain.StatusDone:       "2",
}

// helpText is the markdown source for the help overlay.
const helpText = `# tavla keys

| Key | Action |
|-----|--------|
| a | add task (title [description], category, status) |
| e | edit selected task |
| m | move selected task (todo/t, now/n, done/d) |
| d | delete selected task (asks to confirm) |
| c | recolor the selected task's category |
| / | search title and description |
| f | filter (` + "`status <value>`" + ` or ` + "`category <value>`" + `) |
| s | sort (id, title, category) |
| r | reset view to the full board |
| v | toggle vertical / horizontal layout |
| y | copy selected task to the clipboard |
| g | activity log |
| w | save |
| q | save and quit |
| Q | quit without saving |
`

// Model is the bubbletea model for the board.
type Model struct {
	board *engine.Board

	ready  bool
	width  int
	height int
	err    error

	status string

	help     help.Model
	keys     keyMap
	markdown markdownRenderer

	layoutMode      layout.Mode
	defaultCategory string

	// filtered holds the current search/filter view; mutations reset
	// the view to the full board.
	filtered   []domain.Task
	viewActive bool
	viewLabel  string

	selectedColumn int
	selectedTask   int

	mode            inputMode
	formInputs      []textinput.Model
	formFocus       int
	editingTaskID   int
	promptInput     textinput.Model
	pendingDeleteID int
	recolorCategory string

	dirty          bool
	saveFunc       SaveFunc
	clipboardWrite func(string) error
}

// NewModel constructs a board model around an engine board.
func NewModel(board *engine.Board, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		board:           board,
		status:          "ready",
		help:            h,
		keys:            newKeyMap(),
		layoutMode:      layout.ModeVertical,
		defaultCategory: "general",
		clipboardWrite:  defaultClipboardWrite,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	default:
		return m, nil
	}
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.doSave()
		return m, tea.Quit
	case key.Matches(msg, m.keys.forceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.mode = modeHelp
		m.status = "help"
		return m, nil
	case key.Matches(msg, m.keys.activityLog):
		m.mode = modeActivity
		m.status = "activity log"
		return m, nil
	case key.Matches(msg, m.keys.moveLeft):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			m.selectedTask = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		if m.selectedColumn < len(domain.Statuses())-1 {
			m.selectedColumn++
			m.selectedTask = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		if tasks := m.currentColumnTasks(); m.selectedTask < len(tasks)-1 {
			m.selectedTask++
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		if m.selectedTask > 0 {
			m.selectedTask--
		}
		return m, nil
	case key.Matches(msg, m.keys.addTask):
		return m, m.startTaskForm(nil)
	case key.Matches(msg, m.keys.editTask):
		task, ok := m.selectedTaskInColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.startTaskForm(&task)
	case key.Matches(msg, m.keys.deleteTask):
		task, ok := m.selectedTaskInColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendingDeleteID = task.ID
		m.status = fmt.Sprintf("delete #%d %q? (y/n)", task.ID, truncate(task.Title, 32))
		return m, nil
	case key.Matches(msg, m.keys.moveTask):
		task, ok := m.selectedTaskInColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.mode = modeMoveTask
		m.promptInput = newPromptInput("status: ", "todo / now / done", "", 24)
		m.status = fmt.Sprintf("move #%d", task.ID)
		return m, m.promptInput.Focus()
	case key.Matches(msg, m.keys.recolor):
		task, ok := m.selectedTaskInColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		if task.Category == "" {
			m.status = "selected task has no category"
			return m, nil
		}
		m.mode = modeRecolor
		m.recolorCategory = task.Category
		m.promptInput = newPromptInput("color: ", strings.Join(paletteNames(), " "), "", 16)
		m.status = fmt.Sprintf("recolor %q", task.Category)
		return m, m.promptInput.Focus()
	case key.Matches(msg, m.keys.sortTasks):
		m.mode = modeSort
		m.promptInput = newPromptInput("sort by: ", "id / title / category", "", 16)
		m.status = "sort"
		return m, m.promptInput.Focus()
	case key.Matches(msg, m.keys.filterTasks):
		m.mode = modeFilter
		m.promptInput = newPromptInput("filter: ", "status <value> or category <value>", "", 64)
		m.status = "filter"
		return m, m.promptInput.Focus()
	case key.Matches(msg, m.keys.search):
		m.mode = modeSearch
		m.promptInput = newPromptInput("search: ", "title or description substring", "", 120)
		m.status = "search"
		return m, m.promptInput.Focus()
	case key.Matches(msg, m.keys.resetView):
		m.clearView()
		m.status = "full board"
		return m, nil
	case key.Matches(msg, m.keys.toggleLayout):
		m.layoutMode = m.layoutMode.Toggle()
		m.status = string(m.layoutMode) + " layout"
		return m, nil
	case key.Matches(msg, m.keys.save):
		m.doSave()
		return m, nil
	case key.Matches(msg, m.keys.yank):
		task, ok := m.selectedTaskInColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		if err := m.clipboardWrite(formatTaskClipboard(task)); err != nil {
			m.status = "clipboard copy failed: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("copied #%d to clipboard", task.ID)
		return m, nil
	case msg.String() == "esc":
		if m.viewActive {
			m.clearView()
			m.status = "full board"
		}
		return m, nil
	default:
		return m, nil
	}
}

// handleInputModeKey handles input mode key.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeHelp:
		switch msg.String() {
		case "esc", "?", "q":
			m.mode = modeNone
			m.status = "ready"
		}
		return m, nil

	case modeActivity:
		switch msg.String() {
		case "esc", "g", "q":
			m.mode = modeNone
			m.status = "ready"
		}
		return m, nil

	case modeConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			id := m.pendingDeleteID
			m.mode = modeNone
			m.pendingDeleteID = 0
			if m.board.Delete(id) {
				m.dirty = true
				m.clearView()
				m.status = fmt.Sprintf("deleted #%d", id)
			} else {
				m.status = fmt.Sprintf("task #%d not found", id)
			}
			m.clampSelection()
		case "n", "esc":
			m.mode = modeNone
			m.pendingDeleteID = 0
			m.status = "delete cancelled"
		}
		return m, nil

	case modeAddTask, modeEditTask:
		switch msg.String() {
		case "esc":
			m.mode = modeNone
			m.status = "cancelled"
			return m, nil
		case "enter":
			return m.submitTaskForm()
		case "tab", "down":
			return m, m.focusFormField((m.formFocus + 1) % len(m.formInputs))
		case "shift+tab", "up":
			return m, m.focusFormField((m.formFocus + len(m.formInputs) - 1) % len(m.formInputs))
		}
		var cmd tea.Cmd
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
		return m, cmd

	case modeMoveTask, modeRecolor, modeFilter, modeSort, modeSearch:
		switch msg.String() {
		case "esc":
			m.mode = modeNone
			m.status = "cancelled"
			return m, nil
		case "enter":
			return m.submitPrompt()
		}
		var cmd tea.Cmd
		m.promptInput, cmd = m.promptInput.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// startTaskForm opens the add or edit form. A nil task starts a blank
// add form seeded with the default category.
func (m *Model) startTaskForm(task *domain.Task) tea.Cmd {
	title := ""
	category := m.defaultCategory
	status := "todo"
	if task != nil {
		title = formatTitleInput(task.Title, task.Description)
		category = task.Category
		status = string(task.Status)
		m.mode = modeEditTask
		m.editingTaskID = task.ID
		m.status = fmt.Sprintf("edit #%d", task.ID)
	} else {
		m.mode = modeAddTask
		m.editingTaskID = 0
		m.status = "add task"
	}
	m.formInputs = []textinput.Model{
		newPromptInput("", "title [description]", title, 160),
		newPromptInput("", "category", category, 64),
		newPromptInput("", "todo / now / done", status, 24),
	}
	m.formFocus = formFieldTitle
	return m.formInputs[formFieldTitle].Focus()
}

// focusFormField moves form focus to the requested field.
func (m *Model) focusFormField(idx int) tea.Cmd {
	m.formInputs[m.formFocus].Blur()
	m.formFocus = idx
	return m.formInputs[idx].Focus()
}

// submitTaskForm validates the form and applies Create or Edit.
func (m Model) submitTaskForm() (tea.Model, tea.Cmd) {
	title, description := splitTitleInput(m.formInputs[formFieldTitle].Value())
	if strings.TrimSpace(title) == "" {
		m.status = "title required"
		return m, nil
	}
	status, err := domain.ParseStatus(m.formInputs[formFieldStatus].Value())
	if err != nil {
		m.status = "invalid status: " + strings.TrimSpace(m.formInputs[formFieldStatus].Value())
		return m, nil
	}
	in := engine.TaskInput{
		Title:       title,
		Description: description,
		Category:    strings.TrimSpace(m.formInputs[formFieldCategory].Value()),
		Status:      status,
	}
	if in.Category == "" {
		in.Category = m.defaultCategory
	}

	if m.mode == modeEditTask {
		task, err := m.board.Edit(m.editingTaskID, in)
		if err != nil {
			m.status = "edit failed: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("edited #%d %q", task.ID, truncate(task.Title, 32))
	} else {
		task, err := m.board.Create(in)
		if err != nil {
			m.status = "create failed: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("created #%d %q", task.ID, truncate(task.Title, 32))
	}
	m.mode = modeNone
	m.dirty = true
	m.clearView()
	m.clampSelection()
	return m, nil
}

// submitPrompt applies the single-input prompt for the current mode.
func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.promptInput.Value())
	switch m.mode {
	case modeMoveTask:
		task, ok := m.selectedTaskInColumn()
		if !ok {
			m.mode = modeNone
			m.status = "no task selected"
			return m, nil
		}
		outcome, err := m.board.Move(task.ID, value)
		m.mode = modeNone
		switch {
		case err != nil:
			m.status = "move failed: " + err.Error()
		case outcome == engine.MoveUnchanged:
			m.status = fmt.Sprintf("#%d already in %s", task.ID, task.Status.Label())
		default:
			m.dirty = true
			m.clearView()
			m.status = fmt.Sprintf("moved #%d", task.ID)
		}
		m.clampSelection()
		return m, nil

	case modeRecolor:
		m.mode = modeNone
		if err := m.board.Colors().Recolor(m.recolorCategory, value); err != nil {
			m.status = "recolor failed: " + err.Error()
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("%q is now %s", m.recolorCategory, value)
		return m, nil

	case modeSort:
		sortKey, err := engine.ParseSortKey(value)
		if err != nil {
			m.status = "sort key must be id, title, or category"
			return m, nil
		}
		m.mode = modeNone
		if err := m.board.Sort(sortKey); err != nil {
			m.status = "sort failed: " + err.Error()
			return m, nil
		}
		m.dirty = true
		m.clearView()
		m.selectedTask = 0
		m.status = "sorted by " + string(sortKey)
		return m, nil

	case modeFilter:
		kind, filterValue, ok := splitFilterInput(value)
		if !ok {
			m.status = "filter syntax: status <value> or category <value>"
			return m, nil
		}
		m.mode = modeNone
		m.filtered = m.board.Filter(kind, filterValue)
		m.viewActive = true
		m.viewLabel = fmt.Sprintf("filter %s %q", kind, filterValue)
		m.selectedTask = 0
		m.status = fmt.Sprintf("%d tasks match", len(m.filtered))
		return m, nil

	case modeSearch:
		if value == "" {
			m.status = "search query required"
			return m, nil
		}
		m.mode = modeNone
		result := m.board.Search(value)
		m.filtered = result.Tasks
		m.viewActive = true
		m.viewLabel = fmt.Sprintf("search %q", result.Query)
		m.selectedTask = 0
		m.status = fmt.Sprintf("%d matches", result.MatchCount)
		return m, nil

	default:
		return m, nil
	}
}

// doSave writes one full snapshot through the configured save callback.
func (m *Model) doSave() {
	if m.saveFunc == nil {
		m.status = "no save target configured"
		return
	}
	if err := m.saveFunc(context.Background(), m.board.Tasks(), m.board.Colors().Snapshot()); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.dirty = false
	m.status = "saved"
}

// visibleTasks returns the active search/filter view, or the full
// collection when no view is applied.
func (m Model) visibleTasks() []domain.Task {
	if m.viewActive {
		return m.filtered
	}
	return m.board.Tasks()
}

// clearView drops any active search/filter view.
func (m *Model) clearView() {
	m.viewActive = false
	m.filtered = nil
	m.viewLabel = ""
}

// currentColumnTasks returns the visible bucket for the selected column.
func (m Model) currentColumnTasks() []domain.Task {
	partition := layout.PartitionTasks(m.visibleTasks())
	statuses := domain.Statuses()
	idx := clamp(m.selectedColumn, 0, len(statuses)-1)
	return partition.Bucket(statuses[idx])
}

// selectedTaskInColumn returns the currently highlighted task.
func (m Model) selectedTaskInColumn() (domain.Task, bool) {
	tasks := m.currentColumnTasks()
	if len(tasks) == 0 {
		return domain.Task{}, false
	}
	return tasks[clamp(m.selectedTask, 0, len(tasks)-1)], true
}

// clampSelection keeps the cursor inside the visible partition.
func (m *Model) clampSelection() {
	m.selectedColumn = clamp(m.selectedColumn, 0, len(domain.Statuses())-1)
	tasks := m.currentColumnTasks()
	m.selectedTask = clamp(m.selectedTask, 0, max(0, len(tasks)-1))
}

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress Q to quit\n")
		v.AltScreen = true
		return v
	}
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	header := titleStyle.Render("tavla") + statusStyle.Render("  ["+string(m.layoutMode)+"]")
	if m.viewActive {
		header += statusStyle.Render("  " + m.viewLabel)
	}
	if m.dirty {
		header += statusStyle.Render("  *unsaved")
	}

	var body string
	switch m.mode {
	case modeHelp:
		body = m.markdown.render(helpText, max(24, m.width-8))
	case modeActivity:
		body = m.renderActivityLog(muted)
	default:
		body = m.renderBoard(dim)
	}

	sections := []string{header, "", body}
	if prompt := m.renderPrompt(muted); prompt != "" {
		sections = append(sections, prompt)
	}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	content := strings.Join(sections, "\n")
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}

	v := tea.NewView(content + "\n" + helpLine)
	v.AltScreen = true
	return v
}

// renderBoard paints the three columns in the active layout mode.
func (m Model) renderBoard(dim color.Color) string {
	partition := layout.PartitionTasks(m.visibleTasks())
	colWidth := layout.ColumnWidth(m.layoutMode, m.width)

	panels := make([]string, 0, 3)
	for idx, status := range domain.Statuses() {
		panels = append(panels, m.renderColumn(idx, status, partition.Bucket(status), colWidth, dim))
	}
	if m.layoutMode == layout.ModeHorizontal {
		return strings.Join(panels, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

// renderColumn paints one bordered status column.
func (m Model) renderColumn(colIdx int, status domain.Status, tasks []domain.Task, colWidth int, dim color.Color) string {
	borderColor := lipgloss.Color(columnBorderColors[status])
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(colWidth)
	if colIdx == m.selectedColumn {
		frame = frame.Bold(true)
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	subStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	emptyStyle := lipgloss.NewStyle().Foreground(dim)

	lines := []string{headerStyle.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks)))}
	if len(tasks) == 0 {
		lines = append(lines, emptyStyle.Render("(empty)"))
	}
	for taskIdx, task := range tasks {
		selected := colIdx == m.selectedColumn && taskIdx == clamp(m.selectedTask, 0, len(tasks)-1)
		prefix := "  "
		if selected {
			prefix = "> "
		}
		colorName := m.board.Colors().Get(task.Category)
		taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorCodes[colorName]))
		if selected {
			taskStyle = taskStyle.Bold(true)
		}
		title := fmt.Sprintf("#%d %s", task.ID, task.Title)
		lines = append(lines, taskStyle.Render(prefix+truncate(title, max(1, colWidth-4))))

		sub := task.Category
		if task.Description != "" {
			sub += " · " + task.Description
		}
		if sub != "" {
			lines = append(lines, subStyle.Render("  "+truncate(sub, max(1, colWidth-4))))
		}
	}
	return frame.Render(strings.Join(lines, "\n"))
}

// renderActivityLog paints the newest change events, newest first.
func (m Model) renderActivityLog(muted color.Color) string {
	events := m.board.Events()
	headerStyle := lipgloss.NewStyle().Bold(true)
	entryStyle := lipgloss.NewStyle().Foreground(muted)

	lines := []string{headerStyle.Render("activity"), ""}
	if len(events) == 0 {
		lines = append(lines, entryStyle.Render("(no changes yet)"))
	}
	shown := 0
	for idx := len(events) - 1; idx >= 0 && shown < activityViewWindow; idx-- {
		event := events[idx]
		lines = append(lines, entryStyle.Render(fmt.Sprintf("%s  %-6s %s",
			event.At.Format("15:04:05"), event.Op, event.Summary)))
		shown++
	}
	lines = append(lines, "", entryStyle.Render("esc to close"))
	return strings.Join(lines, "\n")
}

// renderPrompt paints the active form or single-line prompt.
func (m Model) renderPrompt(muted color.Color) string {
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	switch m.mode {
	case modeAddTask, modeEditTask:
		labels := []string{"title", "category", "status"}
		lines := make([]string, 0, len(m.formInputs)+1)
		for idx, input := range m.formInputs {
			marker := "  "
			if idx == m.formFocus {
				marker = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%-9s %s", marker, labels[idx]+":", input.View()))
		}
		lines = append(lines, hintStyle.Render("enter apply • tab next field • esc cancel"))
		return strings.Join(lines, "\n")
	case modeMoveTask, modeRecolor, modeFilter, modeSort, modeSearch:
		return m.promptInput.View() + "\n" + hintStyle.Render("enter apply • esc cancel")
	default:
		return ""
	}
}

// newPromptInput builds one modal text input.
func newPromptInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
		in.CursorEnd()
	}
	return in
}

// splitTitleInput parses the composite "title [description]" input; a
// trailing bracketed suffix becomes the description.
func splitTitleInput(raw string) (title, description string) {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "]") {
		if idx := strings.LastIndex(raw, "["); idx >= 0 {
			return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1 : len(raw)-1])
		}
	}
	return raw, ""
}

// formatTitleInput is the inverse of splitTitleInput for edit prefill.
func formatTitleInput(title, description string) string {
	if description == "" {
		return title
	}
	return title + " [" + description + "]"
}

// splitFilterInput parses "status <value>" / "category <value>".
func splitFilterInput(raw string) (engine.FilterKind, string, bool) {
	kindWord, value, found := strings.Cut(strings.TrimSpace(raw), " ")
	value = strings.TrimSpace(value)
	if !found || value == "" {
		return "", "", false
	}
	switch strings.ToLower(kindWord) {
	case "status":
		return engine.FilterStatus, value, true
	case "category":
		return engine.FilterCategory, value, true
	default:
		return "", "", false
	}
}

// paletteNames lists the palette for the recolor prompt placeholder.
func paletteNames() []string {
	return palette.Colors
}

// formatTaskClipboard renders one task as a single clipboard line.
func formatTaskClipboard(task domain.Task) string {
	out := fmt.Sprintf("#%d %s", task.ID, task.Title)
	if task.Description != "" {
		out += " — " + task.Description
	}
	return fmt.Sprintf("%s (%s/%s)", out, task.Category, task.Status.Label())
}

// clamp bounds v to [minV, maxV].
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// truncate truncates the requested operation.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(rs[:maxLen])
	}
	return string(rs[:maxLen-1]) + "…"
}
