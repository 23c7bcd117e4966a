package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the normal-mode key bindings for the board.
type keyMap struct {
	quit         key.Binding
	forceQuit    key.Binding
	toggleHelp   key.Binding
	moveLeft     key.Binding
	moveRight    key.Binding
	moveUp       key.Binding
	moveDown     key.Binding
	addTask      key.Binding
	editTask     key.Binding
	deleteTask   key.Binding
	moveTask     key.Binding
	recolor      key.Binding
	sortTasks    key.Binding
	filterTasks  key.Binding
	search       key.Binding
	resetView    key.Binding
	toggleLayout key.Binding
	save         key.Binding
	yank         key.Binding
	activityLog  key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "save & quit")),
		forceQuit:    key.NewBinding(key.WithKeys("Q", "ctrl+c"), key.WithHelp("Q", "quit without saving")),
		toggleHelp:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		moveLeft:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		addTask:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		editTask:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		deleteTask:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		moveTask:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move task")),
		recolor:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "recolor category")),
		sortTasks:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		filterTasks:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		resetView:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
		toggleLayout: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle layout")),
		save:         key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		yank:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank task")),
		activityLog:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "activity log")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addTask, k.editTask, k.moveTask, k.deleteTask, k.search, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addTask, k.editTask, k.moveTask, k.deleteTask, k.recolor, k.yank},
		{k.search, k.filterTasks, k.sortTasks, k.resetView, k.activityLog},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.toggleLayout},
		{k.save, k.toggleHelp, k.quit, k.forceQuit},
	}
}
