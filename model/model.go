package model

import (
	"time"
)

// Status of a task as shown in the grid.
type Status string

const (
	StatusOpen  Status = "open"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Statuses returns every status a task may carry, in display order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusDoing, StatusDone}
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusDoing, StatusDone:
		return true
	}

	return false
}

type Task struct {
	ID        string
	Title     string
	Status    Status
	Priority  int
	CreatedAt time.Time
}

// RowID implements grid.RowItem so tasks can resolve per-row button links.
func (t Task) RowID() string {
	return t.ID
}

type StatusCount struct {
	Status Status
	Count  int
}
