package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "work,urgent", []string{"work", "urgent"}},
		{"whitespace trimmed", " work , urgent ", []string{"work", "urgent"}},
		{"empty entries dropped", "work,,urgent,", []string{"work", "urgent"}},
		{"empty string", "", nil},
		{"only separators", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.input))
		})
	}
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "work,urgent", JoinTags([]string{"work", "urgent"}))
	assert.Equal(t, "", JoinTags(nil))
}

func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high"} {
		p, err := ParsePriority(valid)
		assert.NoError(t, err)
		assert.EqualValues(t, valid, p)
	}

	_, err := ParsePriority("critical")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestPriorityIsValid(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("").IsValid())
	assert.False(t, Priority("urgent").IsValid())
}
