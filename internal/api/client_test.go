package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowtask/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *ChangeRegistry) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	changes := NewChangeRegistry()
	return New(server.URL, 5*time.Second, changes), changes
}

func TestListTasksQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/tasks", r.URL.Path)
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(model.TaskListResponse{
			Tasks: []model.Task{{ID: 1, Title: "first"}},
			Total: 1, Limit: 50,
		})
	}))

	completed := false
	filters := model.TaskFilters{
		Search:    "report",
		Priority:  model.PriorityHigh,
		Completed: &completed,
		Tags:      []string{"work", "urgent"},
		Sort:      model.SortPriority,
		Order:     model.OrderAsc,
		Limit:     25,
		Offset:    50,
	}

	resp, err := client.ListTasks(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "first", resp.Tasks[0].Title)

	assert.Equal(t, "report", gotQuery["search"][0])
	assert.Equal(t, "high", gotQuery["priority"][0])
	assert.Equal(t, "false", gotQuery["completed"][0])
	assert.Equal(t, "work,urgent", gotQuery["tags"][0], "tags are comma-joined in the query only")
	assert.Equal(t, "priority", gotQuery["sort"][0])
	assert.Equal(t, "asc", gotQuery["order"][0])
	assert.Equal(t, "25", gotQuery["limit"][0])
	assert.Equal(t, "50", gotQuery["offset"][0])
}

func TestListTasksOmitsUnsetFilters(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(model.TaskListResponse{})
	}))

	_, err := client.ListTasks(context.Background(), model.TaskFilters{})
	require.NoError(t, err)

	for _, key := range []string{"search", "priority", "completed", "tags", "offset"} {
		assert.NotContains(t, gotQuery, key)
	}
}

func TestMutationsNotifyChangeRegistry(t *testing.T) {
	client, changes := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/tasks" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(model.TaskListResponse{})
		default:
			json.NewEncoder(w).Encode(model.Task{ID: 1, Title: "task"})
		}
	}))

	var notified int
	changes.Subscribe(func() { notified++ })
	ctx := context.Background()

	_, err := client.CreateTask(ctx, model.TaskCreate{Title: "task"})
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	_, err = client.ToggleTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, notified)

	_, err = client.UpdateTask(ctx, 1, model.TaskUpdate{Title: "task"})
	require.NoError(t, err)
	assert.Equal(t, 3, notified)

	require.NoError(t, client.DeleteTask(ctx, 1))
	assert.Equal(t, 4, notified)

	// Reads never notify.
	_, err = client.ListTasks(ctx, model.DefaultFilters())
	require.NoError(t, err)
	_, err = client.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, notified)
}

func TestFailedMutationDoesNotNotify(t *testing.T) {
	client, changes := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"msg":"title too long"}]}`))
	}))

	var notified int
	changes.Subscribe(func() { notified++ })

	_, err := client.CreateTask(context.Background(), model.TaskCreate{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, 0, notified)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "title too long", apiErr.Message)
}

func TestDeleteTaskNoContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/tasks/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.DeleteTask(context.Background(), 7))
}

func TestToggleTaskEndpoint(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tasks/3/toggle", r.URL.Path)
		json.NewEncoder(w).Encode(model.Task{ID: 3, Completed: true})
	}))

	task, err := client.ToggleTask(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, task.Completed)
}

func TestSessionCookieRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req model.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "me@example.com", req.Email)
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
			json.NewEncoder(w).Encode(model.LoginResponse{
				User: model.User{ID: 1, Email: req.Email, IsVerified: true},
			})
		case "/auth/me":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "abc123" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Not authenticated"}`))
				return
			}
			json.NewEncoder(w).Encode(model.User{ID: 1, Email: "me@example.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	// Unauthenticated who-am-i fails with the normalized message.
	_, err := client.Me(ctx)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	user, err := client.Login(ctx, "me@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)

	// The jar carries the cookie on the next call.
	user, err = client.Me(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)
}

func TestUnreadCount(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notifications/unread-count", r.URL.Path)
		json.NewEncoder(w).Encode(model.UnreadCountResponse{UnreadCount: 4})
	}))

	count, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNetworkFailure(t *testing.T) {
	changes := NewChangeRegistry()
	client := New("http://127.0.0.1:1", time.Second, changes)

	_, err := client.ListTasks(context.Background(), model.DefaultFilters())
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status, "network failures carry no HTTP status")
}
