package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flowtask/internal/di"
	"flowtask/internal/model"
)

// mode selects which input surface owns keystrokes
type mode int

const (
	modeList mode = iota
	modeFilter
	modeForm
)

// Model represents the TUI state
type Model struct {
	container *di.Container

	mode        mode
	cursor      int
	filterInput textinput.Model
	form        *form

	unread  int
	errText string

	width  int
	height int

	changed chan struct{}
}

// NewModel creates a new TUI model
func NewModel(container *di.Container) Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "search tasks..."
	filterInput.CharLimit = model.MaxTitleLength

	// Bridge mutation notifications into the bubbletea message loop. The
	// registry callback must not block, so drop the signal when one is
	// already pending.
	changed := make(chan struct{}, 1)
	container.Changes.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	return Model{
		container:   container,
		filterInput: filterInput,
		changed:     changed,
	}
}

// Messages

// tasksLoadedMsg is sent when a task list fetch finishes
type tasksLoadedMsg struct {
	err error
}

// actionDoneMsg is sent when a toggle, delete, or submit finishes
type actionDoneMsg struct {
	err error
}

// badgeMsg carries a fresh unread notification count
type badgeMsg struct {
	count int
	err   error
}

// changedMsg is sent when any mutation went through the API client
type changedMsg struct{}

// tickMsg drives the periodic badge refresh
type tickMsg time.Time

func doTick() tea.Cmd {
	return tea.Tick(time.Second*30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTasks(),
		m.fetchBadge(),
		m.waitForChange(),
		doTick(),
	)
}

// loadTasks fetches the current page through the view-model cache
func (m Model) loadTasks() tea.Cmd {
	vm := m.container.Tasks
	return func() tea.Msg {
		return tasksLoadedMsg{err: vm.Load(context.Background())}
	}
}

// refreshTasks bypasses the cache
func (m Model) refreshTasks() tea.Cmd {
	vm := m.container.Tasks
	return func() tea.Msg {
		return tasksLoadedMsg{err: vm.Refresh(context.Background())}
	}
}

// fetchBadge fetches the unread notification count
func (m Model) fetchBadge() tea.Cmd {
	client := m.container.API
	return func() tea.Msg {
		count, err := client.UnreadCount(context.Background())
		return badgeMsg{count: count, err: err}
	}
}

// waitForChange blocks until the next mutation notification
func (m Model) waitForChange() tea.Cmd {
	changed := m.changed
	return func() tea.Msg {
		<-changed
		return changedMsg{}
	}
}

// currentTask returns the task under the cursor
func (m Model) currentTask() *model.Task {
	tasks := m.container.Tasks.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	return &tasks[m.cursor]
}

// clampCursor ensures the cursor is within valid bounds
func (m *Model) clampCursor() {
	count := len(m.container.Tasks.Tasks())
	if count == 0 {
		m.cursor = 0
	} else if m.cursor >= count {
		m.cursor = count - 1
	}
}
