package model

import (
	"fmt"
	"strconv"
)

// SortField is a task list sort key.
type SortField string

const (
	SortCreatedAt    SortField = "created_at"
	SortUpdatedAt    SortField = "updated_at"
	SortPriority     SortField = "priority"
	SortTitle        SortField = "title"
	SortDisplayOrder SortField = "display_order"
)

// SortOrder is a sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Pagination defaults applied by the backend.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// IsValid reports whether the sort field is one the backend accepts.
func (f SortField) IsValid() bool {
	switch f {
	case SortCreatedAt, SortUpdatedAt, SortPriority, SortTitle, SortDisplayOrder:
		return true
	}
	return false
}

// IsValid reports whether the order is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == OrderAsc || o == OrderDesc
}

// ParseSortField validates a sort field string from user input.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !f.IsValid() {
		return "", ErrInvalidSortField
	}
	return f, nil
}

// ParseSortOrder validates a sort order string from user input.
func ParseSortOrder(s string) (SortOrder, error) {
	o := SortOrder(s)
	if !o.IsValid() {
		return "", ErrInvalidSortOrder
	}
	return o, nil
}

// TaskFilters holds the full filter/sort/search tuple for a task list query.
// The zero value of each field means "not filtering on this"; DefaultFilters
// is the documented all-filters-cleared state.
type TaskFilters struct {
	Search    string
	Priority  Priority
	Completed *bool // nil = all, true = completed, false = active
	Tags      []string
	Sort      SortField
	Order     SortOrder
	Limit     int
	Offset    int
}

// DefaultFilters returns the all-filters-cleared state: no search, all
// priorities, all completion states, no tags, newest first.
func DefaultFilters() TaskFilters {
	return TaskFilters{
		Sort:  SortCreatedAt,
		Order: OrderDesc,
		Limit: DefaultLimit,
	}
}

// QueryParams serializes the filters into query-string parameters, omitting
// unset fields. Tags are comma-joined here and nowhere else.
func (f TaskFilters) QueryParams() map[string]string {
	params := make(map[string]string)
	if f.Search != "" {
		params["search"] = f.Search
	}
	if f.Priority != "" {
		params["priority"] = f.Priority.String()
	}
	if f.Completed != nil {
		params["completed"] = strconv.FormatBool(*f.Completed)
	}
	if len(f.Tags) > 0 {
		params["tags"] = JoinTags(f.Tags)
	}
	if f.Sort != "" {
		params["sort"] = string(f.Sort)
	}
	if f.Order != "" {
		params["order"] = string(f.Order)
	}
	if f.Limit > 0 {
		params["limit"] = strconv.Itoa(f.Limit)
	}
	if f.Offset > 0 {
		params["offset"] = strconv.Itoa(f.Offset)
	}
	return params
}

// Key returns a cache key covering the full filter tuple, so distinct filter
// combinations cache independently.
func (f TaskFilters) Key() string {
	completed := "all"
	if f.Completed != nil {
		completed = strconv.FormatBool(*f.Completed)
	}
	return fmt.Sprintf("search=%s|priority=%s|completed=%s|tags=%s|sort=%s|order=%s|limit=%d|offset=%d",
		f.Search, f.Priority, completed, JoinTags(f.Tags), f.Sort, f.Order, f.Limit, f.Offset)
}
