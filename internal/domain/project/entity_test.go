package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskCounts_Progress(t *testing.T) {
	tests := []struct {
		counts TaskCounts
		want   int
	}{
		{TaskCounts{}, 0},
		{TaskCounts{Total: 4, Completed: 1}, 25},
		{TaskCounts{Total: 3, Completed: 2}, 67},
		{TaskCounts{Total: 3, Completed: 1}, 33},
		{TaskCounts{Total: 5, Completed: 5}, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.counts.Progress(), "counts %+v", tt.counts)
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusOnHold.Valid())
	assert.True(t, Status("To-Do").Valid())
	assert.False(t, Status("Done").Valid())
}
