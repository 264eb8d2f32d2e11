package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"flowtask/internal/model"
	"flowtask/tui/style"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderStats(),
		"",
	}

	if m.mode == modeForm && m.form != nil {
		sections = append(sections, m.renderForm())
	} else {
		if m.mode == modeFilter {
			sections = append(sections, "/ "+m.filterInput.View(), "")
		}
		sections = append(sections, m.renderTasks())
	}

	if m.errText != "" {
		sections = append(sections, style.ErrorStyle.Render(m.errText))
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar with the notification badge
func (m Model) renderHeader() string {
	title := style.HeaderStyle.Render("FlowTask")
	if m.unread == 0 {
		return title
	}
	badge := style.BadgeStyle.Render(fmt.Sprintf(" %d unread ", m.unread))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)
}

// renderStats renders the counts line for the displayed tasks
func (m Model) renderStats() string {
	counts := m.container.Tasks.Counts()
	stats := fmt.Sprintf("%d total  %d active  %d done", counts.Total, counts.Active, counts.Completed)

	filters := m.container.Tasks.Filters()
	var active []string
	if filters.Search != "" {
		active = append(active, fmt.Sprintf("search:%q", filters.Search))
	}
	if filters.Priority != "" {
		active = append(active, "priority:"+string(filters.Priority))
	}
	if filters.Completed != nil {
		if *filters.Completed {
			active = append(active, "done")
		} else {
			active = append(active, "active")
		}
	}
	if len(filters.Tags) > 0 {
		active = append(active, "tags:"+model.JoinTags(filters.Tags))
	}
	if len(active) > 0 {
		stats += "  [" + strings.Join(active, " ") + "]"
	}

	return style.StatsStyle.Render(stats)
}

// renderTasks renders the visible slice of the task list
func (m Model) renderTasks() string {
	tasks := m.container.Tasks.Tasks()
	if len(tasks) == 0 {
		return style.TaskStyle.Italic(true).Render("(no tasks)")
	}

	// Height left for task rows after header, stats, spacing, and help
	viewport := m.height - 7
	if viewport < 1 {
		viewport = 1
	}

	start := 0
	if m.cursor >= viewport {
		start = m.cursor - viewport + 1
	}
	end := start + viewport
	if end > len(tasks) {
		end = len(tasks)
	}

	var rows []string
	if start > 0 {
		rows = append(rows, style.StatsStyle.Render(fmt.Sprintf("▲ %d more", start)))
	}
	for i := start; i < end; i++ {
		rows = append(rows, m.renderTaskRow(tasks[i], i == m.cursor))
	}
	if end < len(tasks) {
		rows = append(rows, style.StatsStyle.Render(fmt.Sprintf("▼ %d more", len(tasks)-end)))
	}

	return strings.Join(rows, "\n")
}

// renderTaskRow renders a single task line
func (m Model) renderTaskRow(task model.Task, selected bool) string {
	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	priority := lipgloss.NewStyle().
		Foreground(style.PriorityColor(task.Priority)).
		Render(string(task.Priority))

	line := fmt.Sprintf("%s %s  %s", checkbox, task.Title, priority)
	if len(task.Tags) > 0 {
		line += "  " + style.TagStyle.Render("#"+strings.Join(task.Tags, " #"))
	}
	if m.container.Tasks.IsBusy(task.ID) {
		line += "  …"
	}

	switch {
	case selected:
		return style.SelectedTaskStyle.Width(m.width).Render(line)
	case task.Completed:
		return style.DoneTaskStyle.Render(line)
	default:
		return style.TaskStyle.Render(line)
	}
}

// renderForm renders the task editor
func (m Model) renderForm() string {
	f := m.form

	heading := "New Task"
	if f.draft.IsEditing() {
		heading = "Edit Task"
	}

	priority := string(f.draft.Priority)
	if f.focus == fieldPriority {
		priority = "< " + priority + " >"
	}

	rows := []string{
		style.HeaderStyle.Render(heading),
		"",
		formLabel("Title", f.focus == fieldTitle) + f.title.View(),
		formLabel("Description", f.focus == fieldDescription) + f.description.View(),
		formLabel("Priority", f.focus == fieldPriority) + lipgloss.NewStyle().
			Foreground(style.PriorityColor(f.draft.Priority)).
			Render(priority),
		formLabel("Tags", f.focus == fieldTags) + m.renderFormTags(),
		"",
		style.HelpStyle.Render("tab: next field  •  enter: save  •  esc: cancel"),
	}

	return style.FormStyle.Width(min(m.width-4, 72)).Render(strings.Join(rows, "\n"))
}

// renderFormTags renders the committed tags ahead of the tag input. Left and
// right select a tag, backspace removes it, enter commits the typed one.
func (m Model) renderFormTags() string {
	f := m.form
	selecting := f.focus == fieldTags && f.tagInput.Value() == ""

	var parts []string
	for i, tag := range f.draft.Tags() {
		chip := style.TagStyle.Render("#" + tag)
		if selecting && i == f.tagSel {
			chip = style.SelectedTaskStyle.Render("#" + tag)
		}
		parts = append(parts, chip)
	}
	parts = append(parts, f.tagInput.View())
	return strings.Join(parts, " ")
}

func formLabel(name string, focused bool) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	return marker + name + ": "
}

// renderHelp renders the help text at the bottom
func (m Model) renderHelp() string {
	bindings := []string{
		helpEntry(keys.Up) + "/" + helpEntry(keys.Down) + " move",
		helpEntry(keys.Toggle) + " toggle",
		helpEntry(keys.Add) + " add",
		helpEntry(keys.Edit) + " edit",
		helpEntry(keys.Delete) + " delete",
		helpEntry(keys.Filter) + " filter",
		helpEntry(keys.Clear) + " clear",
		helpEntry(keys.Quit) + " quit",
	}
	return style.HelpStyle.Render(strings.Join(bindings, "  •  "))
}

func helpEntry(b key.Binding) string {
	return b.Help().Key
}
