// Package tasklist is where filter state, the fetched task list, and pending
// mutations meet. The displayed list is only ever replaced by re-running the
// full list query after an action completes; there is no partial merge.
package tasklist

import (
	"context"
	"sync"

	"flowtask/internal/model"
)

// API is the slice of the backend client the view-model needs.
type API interface {
	ListTasks(ctx context.Context, filters model.TaskFilters) (*model.TaskListResponse, error)
	ToggleTask(ctx context.Context, id int64) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Counts summarizes the currently displayed (filtered) list.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

// ViewModel holds the list query state for the root task view.
type ViewModel struct {
	api API

	mu      sync.Mutex
	filters model.TaskFilters
	cache   map[string]*model.TaskListResponse
	current *model.TaskListResponse
	editing *model.Task
	isOpen  bool
	busy    map[int64]bool
}

// NewViewModel creates a ViewModel with all filters cleared.
func NewViewModel(api API) *ViewModel {
	return &ViewModel{
		api:     api,
		filters: model.DefaultFilters(),
		cache:   make(map[string]*model.TaskListResponse),
		busy:    make(map[int64]bool),
	}
}

// Filters returns the current filter tuple.
func (vm *ViewModel) Filters() model.TaskFilters {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.filters
}

// Tasks returns the currently displayed list.
func (vm *ViewModel) Tasks() []model.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.current == nil {
		return nil
	}
	return vm.current.Tasks
}

// ServerTotal returns the backend's total for the current query, used for
// pagination. Display counts come from Counts instead.
func (vm *ViewModel) ServerTotal() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.current == nil {
		return 0
	}
	return vm.current.Total
}

// Counts derives total/active/completed from the displayed filtered list,
// not from an unfiltered global count.
func (vm *ViewModel) Counts() Counts {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	var c Counts
	if vm.current == nil {
		return c
	}
	for _, t := range vm.current.Tasks {
		c.Total++
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// Load runs the list query for the current filters, serving repeats of the
// same filter tuple from cache.
func (vm *ViewModel) Load(ctx context.Context) error {
	vm.mu.Lock()
	filters := vm.filters
	if cached, ok := vm.cache[filters.Key()]; ok {
		vm.current = cached
		vm.mu.Unlock()
		return nil
	}
	vm.mu.Unlock()

	return vm.fetch(ctx, filters)
}

// Refresh re-runs the list query unconditionally, replacing any cached result
// for the current filter tuple.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	vm.mu.Lock()
	filters := vm.filters
	vm.mu.Unlock()

	return vm.fetch(ctx, filters)
}

func (vm *ViewModel) fetch(ctx context.Context, filters model.TaskFilters) error {
	resp, err := vm.api.ListTasks(ctx, filters)
	if err != nil {
		return err
	}

	vm.mu.Lock()
	vm.cache[filters.Key()] = resp
	if vm.filters.Key() == filters.Key() {
		vm.current = resp
	}
	vm.mu.Unlock()
	return nil
}

// invalidate drops every cached tuple. A mutation changes what any filter
// combination would return, so only the re-fetched result stays trustworthy.
func (vm *ViewModel) invalidate() {
	vm.mu.Lock()
	vm.cache = make(map[string]*model.TaskListResponse)
	vm.mu.Unlock()
}

func (vm *ViewModel) setAndLoad(ctx context.Context, mutate func(*model.TaskFilters)) error {
	vm.mu.Lock()
	mutate(&vm.filters)
	vm.filters.Offset = 0 // filter changes restart pagination
	vm.mu.Unlock()
	return vm.Load(ctx)
}

// SetSearch updates the free-text search and re-issues the query.
func (vm *ViewModel) SetSearch(ctx context.Context, search string) error {
	return vm.setAndLoad(ctx, func(f *model.TaskFilters) { f.Search = search })
}

// SetPriority updates the priority filter ("" = all) and re-issues the query.
func (vm *ViewModel) SetPriority(ctx context.Context, p model.Priority) error {
	return vm.setAndLoad(ctx, func(f *model.TaskFilters) { f.Priority = p })
}

// SetCompleted updates the tri-state completion filter (nil = all) and
// re-issues the query.
func (vm *ViewModel) SetCompleted(ctx context.Context, completed *bool) error {
	return vm.setAndLoad(ctx, func(f *model.TaskFilters) { f.Completed = completed })
}

// SetTags updates the tag filter and re-issues the query.
func (vm *ViewModel) SetTags(ctx context.Context, tags []string) error {
	return vm.setAndLoad(ctx, func(f *model.TaskFilters) { f.Tags = tags })
}

// SetSort updates the sort field and order and re-issues the query.
func (vm *ViewModel) SetSort(ctx context.Context, field model.SortField, order model.SortOrder) error {
	return vm.setAndLoad(ctx, func(f *model.TaskFilters) {
		f.Sort = field
		f.Order = order
	})
}

// SetOffset moves to another page and re-issues the query.
func (vm *ViewModel) SetOffset(ctx context.Context, offset int) error {
	vm.mu.Lock()
	vm.filters.Offset = offset
	vm.mu.Unlock()
	return vm.Load(ctx)
}

// ClearFilters resets every filter field to its default and triggers exactly
// one re-query, bypassing the cache.
func (vm *ViewModel) ClearFilters(ctx context.Context) error {
	vm.mu.Lock()
	vm.filters = model.DefaultFilters()
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// Edit loads a task into the form in edit mode.
func (vm *ViewModel) Edit(task model.Task) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	t := task
	vm.editing = &t
	vm.isOpen = true
}

// OpenForm opens the form in create mode.
func (vm *ViewModel) OpenForm() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.editing = nil
	vm.isOpen = true
}

// Cancel discards the in-progress edit or create.
func (vm *ViewModel) Cancel() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.editing = nil
	vm.isOpen = false
}

// Editing returns the task loaded into the form, or nil in create mode.
func (vm *ViewModel) Editing() *model.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.editing
}

// FormOpen reports whether the form is showing.
func (vm *ViewModel) FormOpen() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.isOpen
}

// HandleSuccess re-runs the list query and closes the form. It runs after a
// draft submits successfully.
func (vm *ViewModel) HandleSuccess(ctx context.Context) error {
	vm.Cancel()
	vm.invalidate()
	return vm.Refresh(ctx)
}

// IsBusy reports whether a per-item action for id is in flight; the item's
// controls stay disabled while it is.
func (vm *ViewModel) IsBusy(id int64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.busy[id]
}

func (vm *ViewModel) setBusy(id int64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.busy[id] {
		return false
	}
	vm.busy[id] = true
	return true
}

func (vm *ViewModel) clearBusy(id int64) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	delete(vm.busy, id)
}

// Toggle flips a task's completed flag and re-runs the list query. No
// speculative local update is applied; the server confirms first.
func (vm *ViewModel) Toggle(ctx context.Context, id int64) error {
	if !vm.setBusy(id) {
		return nil
	}
	defer vm.clearBusy(id)

	if _, err := vm.api.ToggleTask(ctx, id); err != nil {
		return err
	}
	vm.invalidate()
	return vm.Refresh(ctx)
}

// Delete removes a task and re-runs the list query.
func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	if !vm.setBusy(id) {
		return nil
	}
	defer vm.clearBusy(id)

	if err := vm.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	vm.invalidate()
	return vm.Refresh(ctx)
}
