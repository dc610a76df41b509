package model

import "time"

// Priority classifies how important a test case is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is an execution status, used both for a case's authoring status
// and for the independently tracked status of a case inside a batch.
type Status string

const (
	StatusPending Status = "pending"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusLocked  Status = "locked"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPassed, StatusFailed, StatusLocked:
		return true
	}
	return false
}

// Terminal reports whether s marks a case as executed or withheld
// (anything other than pending, including locked).
func (s Status) Terminal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusLocked
}

// Group is a named container of test cases.
// CaseCount is denormalized: it must equal the number of cases whose
// GroupID references this group after every membership-changing operation.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CaseCount   int       `json:"caseCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TestCase is an authored test case. The multi-line text fields
// (Precondition, Steps, ExpectedResult) encode individual lines with the
// literal two-character `\n` marker.
type TestCase struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Precondition   string    `json:"precondition,omitempty"`
	Steps          string    `json:"steps"`
	ExpectedResult string    `json:"expectedResult"`
	Priority       Priority  `json:"priority"`
	Status         Status    `json:"status"` // authoring status, not execution
	GroupID        string    `json:"groupId,omitempty"`
	GroupName      string    `json:"groupName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Step is one materialized execution step inside a batch case.
type Step struct {
	Action      string `json:"action"`
	Description string `json:"description"`
}

// BatchCase is a deep copy of a test case frozen into a batch at creation
// time. Only Status and ExecutedAt change after creation; everything else
// is immutable and fully decoupled from the source case.
type BatchCase struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Precondition   string     `json:"precondition,omitempty"`
	Steps          []Step     `json:"steps"`
	ExpectedResult string     `json:"expectedResult"`
	Priority       Priority   `json:"priority"`
	Status         Status     `json:"status"`
	GroupID        string     `json:"groupId,omitempty"`
	GroupName      string     `json:"groupName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExecutedAt     *time.Time `json:"executedAt,omitempty"`
}

// Batch is an execution batch: an immutable-membership snapshot of selected
// cases. IDs are integers assigned sequentially at creation and never
// reused after a delete.
//
// The stored Status stays "pending"; the displayed lifecycle label is always
// derived from the member case statuses (see tcm.Completion).
type Batch struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	GroupID   string      `json:"groupId,omitempty"`
	Cases     []BatchCase `json:"cases"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Settings holds the persisted application settings.
type Settings struct {
	DefaultGroup string `json:"defaultGroup"`
	BatchSize    int    `json:"batchSize"`
	AutoSave     bool   `json:"autoSave"`
}

// ImportedCase is the record shape produced by the outline importer and
// consumed by bulk import. Multi-line fields use the `\n` marker.
type ImportedCase struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Precondition   string   `json:"precondition"`
	Steps          string   `json:"steps"`
	ExpectedResult string   `json:"expectedResult"`
	Priority       Priority `json:"priority"`
	Status         Status   `json:"status"`
}
