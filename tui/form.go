package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flowtask/internal/model"
	"flowtask/internal/tasklist"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldTags
	fieldCount
)

// form is the inline task editor, backed by a draft that survives failed
// submissions. Tags live on the draft as a list; the tag input only holds the
// one being typed.
type form struct {
	draft *tasklist.Draft

	title       textinput.Model
	description textinput.Model
	tagInput    textinput.Model
	tagSel      int
	focus       int

	errText string
}

// newForm builds the editor around an existing draft
func newForm(draft *tasklist.Draft) *form {
	title := textinput.New()
	title.Placeholder = "task title"
	title.CharLimit = model.MaxTitleLength
	title.SetValue(draft.Title)
	title.Focus()

	description := textinput.New()
	description.Placeholder = "description (optional)"
	description.CharLimit = model.MaxDescriptionLength
	description.SetValue(draft.Description)

	tagInput := textinput.New()
	tagInput.Placeholder = "add tag"

	return &form{
		draft:       draft,
		title:       title,
		description: description,
		tagInput:    tagInput,
		tagSel:      len(draft.Tags()) - 1,
	}
}

// update routes keystrokes to the focused field
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldTags:
		f.tagInput, cmd = f.tagInput.Update(msg)
	}
	return cmd
}

// pendingTag returns the tag being typed, trimmed.
func (f *form) pendingTag() string {
	return strings.TrimSpace(f.tagInput.Value())
}

// addPendingTag commits the typed tag to the draft and selects it. The draft
// handles trimming and duplicates.
func (f *form) addPendingTag() {
	tag := f.pendingTag()
	if tag == "" {
		return
	}
	f.draft.AddTag(tag)
	f.tagInput.SetValue("")
	for i, t := range f.draft.Tags() {
		if t == tag {
			f.tagSel = i
		}
	}
}

// moveTagSel shifts the tag selection, clamping at either end
func (f *form) moveTagSel(delta int) {
	n := len(f.draft.Tags())
	if n == 0 {
		return
	}
	f.tagSel += delta
	if f.tagSel < 0 {
		f.tagSel = 0
	}
	if f.tagSel >= n {
		f.tagSel = n - 1
	}
}

// removeSelectedTag deletes the selected tag from the draft
func (f *form) removeSelectedTag() {
	tags := f.draft.Tags()
	if len(tags) == 0 {
		return
	}
	if f.tagSel < 0 || f.tagSel >= len(tags) {
		f.tagSel = len(tags) - 1
	}
	f.draft.RemoveTag(tags[f.tagSel])
	if f.tagSel >= len(f.draft.Tags()) {
		f.tagSel = len(f.draft.Tags()) - 1
	}
}

// nextField moves focus down, wrapping around
func (f *form) nextField() {
	f.setFocus((f.focus + 1) % fieldCount)
}

// prevField moves focus up, wrapping around
func (f *form) prevField() {
	f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *form) setFocus(focus int) {
	f.focus = focus
	f.title.Blur()
	f.description.Blur()
	f.tagInput.Blur()
	switch focus {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldTags:
		f.tagInput.Focus()
	}
}

// cyclePriority advances the draft priority low -> medium -> high -> low
func (f *form) cyclePriority() {
	switch f.draft.Priority {
	case model.PriorityLow:
		f.draft.Priority = model.PriorityMedium
	case model.PriorityMedium:
		f.draft.Priority = model.PriorityHigh
	default:
		f.draft.Priority = model.PriorityLow
	}
}

// syncDraft copies the input fields back into the draft. A typed but
// uncommitted tag counts as entered so it is not silently dropped on save.
func (f *form) syncDraft() {
	f.draft.Title = f.title.Value()
	f.draft.Description = f.description.Value()
	f.addPendingTag()
}
