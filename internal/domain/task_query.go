package domain

import (
	"strings"
	"time"
)

// Pagination bounds for task listings.
const (
	DefaultTaskLimit = 20
	MaxTaskLimit     = 50
)

// TaskSort selects the ordering of a task listing.
type TaskSort string

// Supported orderings. SortDefault orders by priority descending, then
// scheduled time ascending, then uncompleted before completed.
const (
	SortDefault     TaskSort = "default"
	SortTitle       TaskSort = "title"
	SortDescription TaskSort = "description"
)

// ParseTaskSort maps a caller-supplied sort key to a TaskSort. Unknown and
// empty keys fall back to SortDefault.
func ParseTaskSort(s string) TaskSort {
	switch TaskSort(strings.ToLower(strings.TrimSpace(s))) {
	case SortTitle:
		return SortTitle
	case SortDescription:
		return SortDescription
	default:
		return SortDefault
	}
}

// TaskQuery holds the optional criteria for listing a user's tasks. The owner
// is not part of the criteria; it is always passed separately.
type TaskQuery struct {
	Priority      *Priority
	Date          *time.Time
	TitleContains string
	Sort          TaskSort
	Limit         int
	Offset        int
}

// Normalize returns a copy with defaults applied and pagination clamped:
// limit falls back to DefaultTaskLimit when not positive and never exceeds
// MaxTaskLimit; a negative offset becomes zero.
func (q TaskQuery) Normalize() TaskQuery {
	out := q
	out.TitleContains = strings.TrimSpace(q.TitleContains)
	if out.Sort == "" {
		out.Sort = SortDefault
	}
	if out.Limit <= 0 {
		out.Limit = DefaultTaskLimit
	}
	if out.Limit > MaxTaskLimit {
		out.Limit = MaxTaskLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}

// Validate rejects criteria that cannot be executed.
func (q TaskQuery) Validate() error {
	if q.Priority != nil && !q.Priority.Valid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	return nil
}

// DayRange returns the half-open interval [start, start+1 day) covering the
// calendar day of d in d's location.
func DayRange(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return start, start.AddDate(0, 0, 1)
}
