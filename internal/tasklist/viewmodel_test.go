package tasklist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowtask/internal/model"
)

// fakeListAPI serves a scripted task list and records every call.
type fakeListAPI struct {
	mu        sync.Mutex
	tasks     []model.Task
	listCalls []model.TaskFilters
	toggled   []int64
	deleted   []int64
	listErr   error
	block     chan struct{} // when set, ToggleTask blocks until closed
}

func (f *fakeListAPI) ListTasks(ctx context.Context, filters model.TaskFilters) (*model.TaskListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filters)
	if f.listErr != nil {
		return nil, f.listErr
	}
	tasks := make([]model.Task, len(f.tasks))
	copy(tasks, f.tasks)
	return &model.TaskListResponse{Tasks: tasks, Total: len(tasks), Limit: filters.Limit}, nil
}

func (f *fakeListAPI) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggled = append(f.toggled, id)
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			t := f.tasks[i]
			return &t, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeListAPI) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeListAPI) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

func threeTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "write report", Priority: model.PriorityHigh},
		{ID: 2, Title: "review PR", Priority: model.PriorityMedium, Completed: true},
		{ID: 3, Title: "buy milk", Priority: model.PriorityLow},
	}
}

func TestLoadCachesByFilterTuple(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()

	require.NoError(t, vm.Load(ctx))
	require.NoError(t, vm.Load(ctx))
	assert.Equal(t, 1, api.listCallCount(), "repeat of the same tuple is served from cache")

	require.NoError(t, vm.SetSearch(ctx, "report"))
	assert.Equal(t, 2, api.listCallCount())

	// Returning to a previously seen tuple hits the cache again.
	require.NoError(t, vm.SetSearch(ctx, ""))
	assert.Equal(t, 2, api.listCallCount())
}

func TestRefreshBypassesCache(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()

	require.NoError(t, vm.Load(ctx))
	require.NoError(t, vm.Refresh(ctx))
	assert.Equal(t, 2, api.listCallCount())
}

func TestClearFiltersTriggersExactlyOneQuery(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()

	completed := false
	require.NoError(t, vm.SetSearch(ctx, "report"))
	require.NoError(t, vm.SetPriority(ctx, model.PriorityHigh))
	require.NoError(t, vm.SetCompleted(ctx, &completed))
	before := api.listCallCount()

	require.NoError(t, vm.ClearFilters(ctx))

	assert.Equal(t, before+1, api.listCallCount(), "reset must re-query exactly once")
	assert.Equal(t, model.DefaultFilters(), vm.Filters())
}

func TestFilterChangeResetsOffset(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()

	require.NoError(t, vm.SetOffset(ctx, 100))
	assert.Equal(t, 100, vm.Filters().Offset)

	require.NoError(t, vm.SetSearch(ctx, "milk"))
	assert.Equal(t, 0, vm.Filters().Offset, "changing a filter restarts pagination")
}

func TestCountsDeriveFromDisplayedList(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)

	assert.Equal(t, Counts{}, vm.Counts(), "empty before the first load")

	require.NoError(t, vm.Load(context.Background()))

	assert.Equal(t, Counts{Total: 3, Active: 2, Completed: 1}, vm.Counts())
}

func TestToggleRoundTrip(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))

	require.NoError(t, vm.Toggle(ctx, 1))
	assert.True(t, vm.Tasks()[0].Completed)

	require.NoError(t, vm.Toggle(ctx, 1))
	assert.False(t, vm.Tasks()[0].Completed, "toggling twice restores the original state")

	assert.Equal(t, []int64{1, 1}, api.toggled)
}

func TestToggleRefreshesAfterMutation(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))
	before := api.listCallCount()

	require.NoError(t, vm.Toggle(ctx, 2))

	assert.Equal(t, before+1, api.listCallCount(), "mutations re-run the list query")
}

func TestMutationInvalidatesEveryCachedTuple(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()

	// Populate the cache for a second tuple, then return to the default one.
	require.NoError(t, vm.SetSearch(ctx, "write"))
	require.NoError(t, vm.SetSearch(ctx, ""))

	require.NoError(t, vm.Toggle(ctx, 1))

	before := api.listCallCount()
	require.NoError(t, vm.SetSearch(ctx, "write"))
	assert.Equal(t, before+1, api.listCallCount(), "the old tuple must re-query after a mutation")
	assert.True(t, vm.Tasks()[0].Completed, "the re-fetched tuple reflects the server state")
}

func TestBusyGuardRejectsConcurrentActions(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks(), block: make(chan struct{})}
	vm := NewViewModel(api)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))

	done := make(chan error, 1)
	go func() { done <- vm.Toggle(ctx, 1) }()

	// Wait until the first toggle is in flight.
	require.Eventually(t, func() bool { return vm.IsBusy(1) }, time.Second, 5*time.Millisecond)

	// The second action on the same item is dropped, not queued.
	require.NoError(t, vm.Toggle(ctx, 1))

	close(api.block)
	require.NoError(t, <-done)

	assert.Equal(t, []int64{1}, api.toggled, "only the first toggle reached the API")
	assert.False(t, vm.IsBusy(1))
}

func TestDeleteRemovesAndRefreshes(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))

	require.NoError(t, vm.Delete(ctx, 2))

	assert.Equal(t, []int64{2}, api.deleted)
	assert.Len(t, vm.Tasks(), 2)
}

func TestListErrorLeavesCurrentList(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))

	api.mu.Lock()
	api.listErr = errors.New("backend down")
	api.mu.Unlock()

	assert.Error(t, vm.Refresh(ctx))
	assert.Len(t, vm.Tasks(), 3, "the last good list stays on screen")
}

func TestFormState(t *testing.T) {
	vm := NewViewModel(&fakeListAPI{})

	t.Run("create mode", func(t *testing.T) {
		vm.OpenForm()
		assert.True(t, vm.FormOpen())
		assert.Nil(t, vm.Editing())
	})

	t.Run("edit mode", func(t *testing.T) {
		task := model.Task{ID: 5, Title: "edit me"}
		vm.Edit(task)
		assert.True(t, vm.FormOpen())
		require.NotNil(t, vm.Editing())
		assert.EqualValues(t, 5, vm.Editing().ID)
	})

	t.Run("cancel clears both", func(t *testing.T) {
		vm.Cancel()
		assert.False(t, vm.FormOpen())
		assert.Nil(t, vm.Editing())
	})
}

func TestHandleSuccessClosesFormAndRefreshes(t *testing.T) {
	api := &fakeListAPI{tasks: threeTasks()}
	vm := NewViewModel(api)
	ctx := context.Background()
	require.NoError(t, vm.Load(ctx))
	before := api.listCallCount()

	vm.OpenForm()
	require.NoError(t, vm.HandleSuccess(ctx))

	assert.False(t, vm.FormOpen())
	assert.Equal(t, before+1, api.listCallCount())
}
