package tasklist

import (
	"context"
	"strings"

	"flowtask/internal/model"
)

// SubmitAPI is the slice of the backend client a draft needs to submit.
type SubmitAPI interface {
	CreateTask(ctx context.Context, req model.TaskCreate) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, req model.TaskUpdate) (*model.Task, error)
}

// Draft is the local draft state for one task form, covering both creation
// and editing. A failed submit leaves the draft intact so the user can retry.
type Draft struct {
	Title       string
	Description string
	Priority    model.Priority

	taskID    int64 // 0 while creating
	completed bool  // carried through on full update
	tags      []string
}

// NewDraft returns an empty draft with the default priority.
func NewDraft() *Draft {
	return &Draft{Priority: model.DefaultPriority}
}

// DraftFromTask loads an existing task into a draft for editing.
func DraftFromTask(t model.Task) *Draft {
	d := &Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		taskID:      t.ID,
		completed:   t.Completed,
	}
	d.tags = append(d.tags, t.Tags...)
	return d
}

// IsEditing reports whether the draft updates an existing task.
func (d *Draft) IsEditing() bool {
	return d.taskID != 0
}

// Tags returns a copy of the draft's tag set.
func (d *Draft) Tags() []string {
	out := make([]string, len(d.tags))
	copy(out, d.tags)
	return out
}

// AddTag adds a trimmed tag to the set. Empty input and duplicates are
// silently ignored; it reports whether the set changed.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, existing := range d.tags {
		if existing == tag {
			return false
		}
	}
	d.tags = append(d.tags, tag)
	return true
}

// RemoveTag removes a tag from the set; removing an absent tag is a no-op.
func (d *Draft) RemoveTag(tag string) bool {
	for i, existing := range d.tags {
		if existing == tag {
			d.tags = append(d.tags[:i], d.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Validate checks the draft client-side. It runs before any network call.
func (d *Draft) Validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.ErrEmptyTitle
	}
	if len(title) > model.MaxTitleLength {
		return model.ErrTitleTooLong
	}
	if len(strings.TrimSpace(d.Description)) > model.MaxDescriptionLength {
		return model.ErrDescriptionTooLong
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		return model.ErrInvalidPriority
	}
	return nil
}

// Submit validates and sends the draft: a full update when editing
// (preserving the task's current completed flag), a create otherwise. On
// success the draft resets to empty defaults; on failure it is preserved.
func (d *Draft) Submit(ctx context.Context, api SubmitAPI) (*model.Task, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(d.Title)
	description := strings.TrimSpace(d.Description)
	priority := d.Priority
	if priority == "" {
		priority = model.DefaultPriority
	}

	var (
		task *model.Task
		err  error
	)
	if d.IsEditing() {
		task, err = api.UpdateTask(ctx, d.taskID, model.TaskUpdate{
			Title:       title,
			Description: description,
			Priority:    priority,
			Tags:        d.Tags(),
			Completed:   d.completed,
		})
	} else {
		task, err = api.CreateTask(ctx, model.TaskCreate{
			Title:       title,
			Description: description,
			Priority:    priority,
			Tags:        d.Tags(),
		})
	}
	if err != nil {
		return nil, err
	}

	d.Reset()
	return task, nil
}

// Reset clears the draft back to empty defaults.
func (d *Draft) Reset() {
	*d = Draft{Priority: model.DefaultPriority}
}
