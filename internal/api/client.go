// Package api provides the HTTP client for the FlowTask backend. It wraps
// every REST operation, normalizes error bodies into a single error shape,
// and announces successful task mutations through a change registry.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"flowtask/internal/model"
)

const defaultTimeout = 10 * time.Second

// Client is a client for the FlowTask REST API. The session cookie lives in
// the client's cookie jar; callers never handle tokens directly.
type Client struct {
	http    *resty.Client
	changes *ChangeRegistry
}

// New creates a Client against baseURL (including the /api/v1 prefix).
// Mutating task calls notify changes after each successful response.
func New(baseURL string, timeout time.Duration, changes *ChangeRegistry) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, _ := cookiejar.New(nil)

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:    httpClient,
		changes: changes,
	}
}

// Changes exposes the registry so observers can subscribe.
func (c *Client) Changes() *ChangeRegistry {
	return c.changes
}

// do executes one request. A nil out skips decoding; 204 responses never
// decode. All failures come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, params map[string]string) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &Error{Message: err.Error()}
	}

	if resp.IsError() {
		return &Error{
			Status:  resp.StatusCode(),
			Body:    resp.Body(),
			Message: normalizeDetail(resp.StatusCode(), resp.Body()),
		}
	}

	if out == nil || resp.StatusCode() == http.StatusNoContent || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &Error{
			Status:  resp.StatusCode(),
			Body:    resp.Body(),
			Message: fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return nil
}

// Task operations

// ListTasks fetches tasks matching the filter tuple.
func (c *Client) ListTasks(ctx context.Context, filters model.TaskFilters) (*model.TaskListResponse, error) {
	var out model.TaskListResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out, filters.QueryParams()); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask creates a task from a draft without ID or timestamps; the server
// assigns both.
func (c *Client) CreateTask(ctx context.Context, req model.TaskCreate) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &out, nil); err != nil {
		return nil, err
	}
	c.changes.Notify()
	return &out, nil
}

// UpdateTask replaces every editable field of a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, req model.TaskUpdate) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), req, &out, nil); err != nil {
		return nil, err
	}
	c.changes.Notify()
	return &out, nil
}

// PatchTask updates only the fields set in req.
func (c *Client) PatchTask(ctx context.Context, id int64, req model.TaskPatch) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), req, &out, nil); err != nil {
		return nil, err
	}
	c.changes.Notify()
	return &out, nil
}

// DeleteTask removes a task. The backend answers 204 on success.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil); err != nil {
		return err
	}
	c.changes.Notify()
	return nil
}

// ToggleTask flips a task's completed flag via the dedicated endpoint.
func (c *Client) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPost, taskPath(id)+"/toggle", nil, &out, nil); err != nil {
		return nil, err
	}
	c.changes.Notify()
	return &out, nil
}

// Auth operations

// Me returns the current user, or an error when no session is active.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login posts credentials; the session cookie is captured by the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var out model.LoginResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out, nil); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Register creates a new account. It does not authenticate; the account must
// verify its email first.
func (c *Client) Register(ctx context.Context, email, password, fullName string) error {
	req := model.RegisterRequest{Email: email, Password: password, FullName: fullName}
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil, nil)
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// GitHubCallback completes the OAuth flow with the provider code.
func (c *Client) GitHubCallback(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/auth/github/callback", model.OAuthCallbackRequest{Code: code}, nil, nil)
}

// Notification operations

// ListNotifications fetches notifications, optionally narrowed by filters.
func (c *Client) ListNotifications(ctx context.Context, filters model.NotificationFilters) ([]model.Notification, error) {
	params := make(map[string]string)
	if filters.IsRead != nil {
		params["is_read"] = strconv.FormatBool(*filters.IsRead)
	}
	if filters.Type != "" {
		params["type"] = filters.Type
	}
	if filters.Limit > 0 {
		params["limit"] = strconv.Itoa(filters.Limit)
	}
	if filters.Offset > 0 {
		params["offset"] = strconv.Itoa(filters.Offset)
	}

	var out []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out, params); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out model.UnreadCountResponse
	if err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil, &out, nil); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) (*model.Notification, error) {
	var out model.Notification
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/notifications/%d", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (*model.MarkAllReadResponse, error) {
	var out model.MarkAllReadResponse
	if err := c.do(ctx, http.MethodPost, "/notifications/mark-all-read", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notifications/%d", id), nil, nil, nil)
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Service string `json:"service"`
}

// Health checks backend availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func taskPath(id int64) string {
	return fmt.Sprintf("/tasks/%d", id)
}
