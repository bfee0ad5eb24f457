package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Priority ranks a task. Values are ordered low < medium < high in storage,
// so sorting by priority descending surfaces high-priority tasks first.
type Priority string

// Valid priorities
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// MaxTitleLength bounds task titles.
const MaxTitleLength = 255

// Task validation errors
var (
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTitleTooLong    = errors.New("task title is too long")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrEmptyOwner      = errors.New("task owner cannot be empty")
)

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority converts s into a Priority, rejecting unknown values.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	return p, nil
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64      `json:"id"                     db:"id"`
	OwnerID     int64      `json:"owner_id"               db:"owner_id"`
	Title       string     `json:"title"                  db:"title"`
	Description string     `json:"description"            db:"description"`
	Priority    Priority   `json:"priority"               db:"priority"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at"             db:"created_at"`
	Completed   bool       `json:"completed"              db:"completed"`
}

// NewTask builds a task for ownerID that has not yet been persisted. New
// tasks always start uncompleted.
func NewTask(
	ownerID int64,
	title, description string,
	priority Priority,
	scheduledAt *time.Time,
) (*Task, error) {
	task := &Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Priority:    priority,
		ScheduledAt: normalizeTime(scheduledAt),
		CreatedAt:   time.Now().UTC(),
		Completed:   false,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the invariants every persisted task must satisfy.
func (t *Task) Validate() error {
	if t.OwnerID <= 0 {
		return NewValidationError("owner_id", "is required", ErrEmptyOwner)
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return NewValidationError("title", "is too long", ErrTitleTooLong)
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	return nil
}

func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
