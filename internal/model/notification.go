package model

import "time"

// Notification is a backend-generated notification entry.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCountResponse is returned by GET /notifications/unread-count.
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// MarkAllReadResponse is returned by POST /notifications/mark-all-read.
type MarkAllReadResponse struct {
	Success      bool   `json:"success"`
	UpdatedCount int    `json:"updated_count"`
	Message      string `json:"message"`
}

// NotificationFilters narrows GET /notifications.
type NotificationFilters struct {
	IsRead *bool
	Type   string
	Limit  int
	Offset int
}
