package task

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"slices"
	"time"
)

// CompletedSectionID is the board section holding finished tasks.
const CompletedSectionID = "504"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityUrgent Priority = "Urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityUrgent:
		return true
	}
	return false
}

type Attachment struct {
	ID           string `json:"id"`
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
}

// Attachments is stored as a JSONB array.
type Attachments []Attachment

// Value implements driver.Valuer for database storage
func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Attachment(a))
}

// Scan implements sql.Scanner for database retrieval
func (a *Attachments) Scan(value interface{}) error {
	if value == nil {
		*a = Attachments{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan Attachments: invalid type")
	}

	var list []Attachment
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	*a = list
	return nil
}

// Without returns the list minus the attachment with id, and the removed entry.
func (a Attachments) Without(id string) (Attachments, *Attachment) {
	idx := slices.IndexFunc(a, func(att Attachment) bool { return att.ID == id })
	if idx < 0 {
		return a, nil
	}
	removed := a[idx]
	return slices.Delete(slices.Clone(a), idx, idx+1), &removed
}

type Task struct {
	ID           string
	Title        string
	Description  *string
	DateAssigned time.Time
	DateDue      *time.Time
	SectionID    string
	Team         []string
	ProjectID    string
	Priority     Priority
	Attachments  Attachments
	Comments     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCompleted reports whether the task sits in the completed section.
func (t *Task) IsCompleted() bool {
	return t.SectionID == CompletedSectionID
}
