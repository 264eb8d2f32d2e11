package model

import (
	"strings"
	"time"
)

// Limits enforced by the backend and mirrored client-side so drafts can be
// rejected before a round trip.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Task represents a task as returned by the backend. The backend is the sole
// writer of ID and timestamps; the client never assigns or mutates them.
type Task struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Completed    bool      `json:"completed"`
	Priority     Priority  `json:"priority"`
	Tags         []string  `json:"tags"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Present only when the backend serves the rich schema variant.
	Subtasks    []Subtask     `json:"subtasks,omitempty"`
	Notes       []Note        `json:"notes,omitempty"`
	Attachments []Attachment  `json:"attachments,omitempty"`
	Activity    []ActivityLog `json:"activity_logs,omitempty"`
}

// Subtask is a checklist entry owned by a task.
type Subtask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// Note is a free-form note attached to a task.
type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attachment is a file attached to a task.
type Attachment struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	OCRText  string `json:"ocr_text,omitempty"`
}

// ActivityLog records a single change made to a task.
type ActivityLog struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Field     string    `json:"field,omitempty"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Template is a reusable task blueprint.
type Template struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags"`
}

// TaskCreate is the payload for creating a task. The server assigns ID,
// timestamps, and defaults for omitted fields.
type TaskCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TaskUpdate is the full-update payload. Every field is sent; callers editing
// a task carry its current Completed value through unchanged.
type TaskUpdate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags"`
	Completed   bool     `json:"completed"`
}

// TaskPatch is the partial-update payload; nil fields are omitted.
type TaskPatch struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Priority     *Priority `json:"priority,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Completed    *bool     `json:"completed,omitempty"`
	DisplayOrder *int      `json:"display_order,omitempty"`
}

// TaskListResponse is the paginated list envelope returned by GET /tasks.
type TaskListResponse struct {
	Tasks  []Task `json:"tasks"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// JoinTags renders a tag list as the comma-joined form used by the list
// filter query parameter. Tags are canonically a []string everywhere else.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags parses the comma-joined form back into a tag list, dropping
// empty entries.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
