package project

import (
	"math"
	"time"
)

type Status string

const (
	StatusToDo       Status = "To-Do"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusPending    Status = "Pending"
	StatusDelayed    Status = "Delayed"
	StatusOnHold     Status = "On Hold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted, StatusPending, StatusDelayed, StatusOnHold:
		return true
	}
	return false
}

type Project struct {
	ID           string
	Title        string
	Description  *string
	Category     string
	DateAssigned time.Time
	DueDate      time.Time
	Status       Status
	ManagerID    *string
	Team         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	ManagerName *string
}

// TaskCounts is the task tally of one project.
type TaskCounts struct {
	Total     int
	Completed int
}

// Progress is the rounded percentage of completed tasks, 0 without tasks.
func (c TaskCounts) Progress() int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Completed) / float64(c.Total) * 100))
}
