package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilters(t *testing.T) {
	f := DefaultFilters()
	assert.Empty(t, f.Search)
	assert.Empty(t, f.Priority)
	assert.Nil(t, f.Completed)
	assert.Empty(t, f.Tags)
	assert.Equal(t, SortCreatedAt, f.Sort)
	assert.Equal(t, OrderDesc, f.Order)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Zero(t, f.Offset)
}

func TestQueryParams(t *testing.T) {
	t.Run("omits unset fields", func(t *testing.T) {
		params := DefaultFilters().QueryParams()
		assert.Equal(t, map[string]string{
			"sort":  "created_at",
			"order": "desc",
			"limit": "50",
		}, params)
	})

	t.Run("serializes the full tuple", func(t *testing.T) {
		completed := true
		f := TaskFilters{
			Search:    "report",
			Priority:  PriorityHigh,
			Completed: &completed,
			Tags:      []string{"work", "urgent"},
			Sort:      SortPriority,
			Order:     OrderAsc,
			Limit:     25,
			Offset:    75,
		}
		assert.Equal(t, map[string]string{
			"search":    "report",
			"priority":  "high",
			"completed": "true",
			"tags":      "work,urgent",
			"sort":      "priority",
			"order":     "asc",
			"limit":     "25",
			"offset":    "75",
		}, f.QueryParams())
	})

	t.Run("false completed is still sent", func(t *testing.T) {
		completed := false
		f := TaskFilters{Completed: &completed}
		assert.Equal(t, "false", f.QueryParams()["completed"])
	})
}

func TestFilterKey(t *testing.T) {
	t.Run("identical tuples share a key", func(t *testing.T) {
		assert.Equal(t, DefaultFilters().Key(), DefaultFilters().Key())
	})

	t.Run("distinct tuples get distinct keys", func(t *testing.T) {
		a := DefaultFilters()
		b := DefaultFilters()
		b.Search = "report"
		assert.NotEqual(t, a.Key(), b.Key())
	})

	t.Run("nil and false completed differ", func(t *testing.T) {
		completed := false
		a := TaskFilters{}
		b := TaskFilters{Completed: &completed}
		assert.NotEqual(t, a.Key(), b.Key())
	})

	t.Run("offset is part of the key", func(t *testing.T) {
		a := DefaultFilters()
		b := DefaultFilters()
		b.Offset = 50
		assert.NotEqual(t, a.Key(), b.Key())
	})
}

func TestParseSortField(t *testing.T) {
	for _, valid := range []string{"created_at", "updated_at", "priority", "title", "display_order"} {
		f, err := ParseSortField(valid)
		assert.NoError(t, err)
		assert.EqualValues(t, valid, f)
	}

	_, err := ParseSortField("due_date")
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestParseSortOrder(t *testing.T) {
	_, err := ParseSortOrder("asc")
	assert.NoError(t, err)
	_, err = ParseSortOrder("descending")
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}
