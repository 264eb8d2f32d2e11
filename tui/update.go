package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flowtask/internal/tasklist"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
		}
		m.clampCursor()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		if m.mode == modeForm {
			// Submission went through; the view-model already closed the
			// form and refreshed the list.
			m.mode = modeList
			m.form = nil
		}
		m.clampCursor()
		return m, nil

	case badgeMsg:
		if msg.err == nil {
			m.unread = msg.count
		}
		return m, nil

	case changedMsg:
		return m, tea.Batch(m.fetchBadge(), m.waitForChange())

	case tickMsg:
		return m, tea.Batch(m.fetchBadge(), doTick())

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

// updateList handles keystrokes while the task list owns input
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.container.Tasks.Tasks())-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Toggle):
		if task := m.currentTask(); task != nil {
			return m, m.toggleTask(task.ID)
		}

	case key.Matches(msg, keys.Delete):
		if task := m.currentTask(); task != nil {
			return m, m.deleteTask(task.ID)
		}

	case key.Matches(msg, keys.Add):
		m.container.Tasks.OpenForm()
		m.form = newForm(tasklist.NewDraft())
		m.mode = modeForm

	case key.Matches(msg, keys.Edit):
		if task := m.currentTask(); task != nil {
			m.container.Tasks.Edit(*task)
			m.form = newForm(tasklist.DraftFromTask(*task))
			m.mode = modeForm
		}

	case key.Matches(msg, keys.Filter):
		m.filterInput.SetValue(m.container.Tasks.Filters().Search)
		m.filterInput.Focus()
		m.mode = modeFilter

	case key.Matches(msg, keys.Clear):
		m.filterInput.SetValue("")
		return m, m.clearFilters()
	}

	return m, nil
}

// updateFilter handles keystrokes while the search prompt owns input
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeList
		m.filterInput.Blur()
		return m, m.setSearch(m.filterInput.Value())

	case tea.KeyEsc:
		m.mode = modeList
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// updateForm handles keystrokes while the task editor owns input
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.container.Tasks.Cancel()
		m.mode = modeList
		m.form = nil
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.form.nextField()
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.form.prevField()
		return m, nil

	case tea.KeyEnter:
		// On the tag field enter commits the typed tag; an empty input
		// falls through to save.
		if m.form.focus == fieldTags && m.form.pendingTag() != "" {
			m.form.addPendingTag()
			return m, nil
		}
		return m, m.submitForm()
	}

	if m.form.focus == fieldPriority {
		switch msg.String() {
		case "left", "h", "right", "l", " ":
			m.form.cyclePriority()
			return m, nil
		}
	}

	// With nothing typed, the tag field edits the committed tag list.
	if m.form.focus == fieldTags && m.form.tagInput.Value() == "" {
		switch msg.Type {
		case tea.KeyLeft:
			m.form.moveTagSel(-1)
			return m, nil
		case tea.KeyRight:
			m.form.moveTagSel(1)
			return m, nil
		case tea.KeyBackspace, tea.KeyDelete:
			m.form.removeSelectedTag()
			return m, nil
		}
	}

	return m, m.form.update(msg)
}

// toggleTask flips a task's completed flag and refreshes
func (m Model) toggleTask(id int64) tea.Cmd {
	vm := m.container.Tasks
	return func() tea.Msg {
		return actionDoneMsg{err: vm.Toggle(context.Background(), id)}
	}
}

// deleteTask removes a task and refreshes
func (m Model) deleteTask(id int64) tea.Cmd {
	vm := m.container.Tasks
	return func() tea.Msg {
		return actionDoneMsg{err: vm.Delete(context.Background(), id)}
	}
}

// setSearch applies the search filter
func (m Model) setSearch(search string) tea.Cmd {
	vm := m.container.Tasks
	return func() tea.Msg {
		return tasksLoadedMsg{err: vm.SetSearch(context.Background(), search)}
	}
}

// clearFilters resets every filter and re-queries once
func (m Model) clearFilters() tea.Cmd {
	vm := m.container.Tasks
	return func() tea.Msg {
		return tasksLoadedMsg{err: vm.ClearFilters(context.Background())}
	}
}

// submitForm validates the draft and sends it to the backend. Validation
// failures and API errors both keep the form open with the draft intact.
func (m Model) submitForm() tea.Cmd {
	form := m.form
	form.syncDraft()
	vm := m.container.Tasks
	client := m.container.API
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := form.draft.Submit(ctx, client); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{err: vm.HandleSuccess(ctx)}
	}
}
