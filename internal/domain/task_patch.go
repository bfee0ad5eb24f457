package domain

import (
	"strings"
	"time"
)

// TaskPatch is a sparse update. A nil field means "keep the current value".
// ClearScheduledAt removes the schedule and takes precedence over
// ScheduledAt.
type TaskPatch struct {
	Title            *string
	Description      *string
	Priority         *Priority
	ScheduledAt      *time.Time
	ClearScheduledAt bool
	Completed        *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.ScheduledAt == nil &&
		!p.ClearScheduledAt &&
		p.Completed == nil
}

// Apply returns a copy of snapshot with the patch's fields laid over it. The
// snapshot is not modified. ID, OwnerID and CreatedAt are never touched.
// The result is not validated; callers run Validate on it.
func (p TaskPatch) Apply(snapshot Task) Task {
	merged := snapshot
	if snapshot.ScheduledAt != nil {
		at := *snapshot.ScheduledAt
		merged.ScheduledAt = &at
	}

	if p.Title != nil {
		merged.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.Priority != nil {
		merged.Priority = *p.Priority
	}
	switch {
	case p.ClearScheduledAt:
		merged.ScheduledAt = nil
	case p.ScheduledAt != nil:
		merged.ScheduledAt = normalizeTime(p.ScheduledAt)
	}
	if p.Completed != nil {
		merged.Completed = *p.Completed
	}

	return merged
}

// Merge combines two patches; fields set in next win over p.
func (p TaskPatch) Merge(next TaskPatch) TaskPatch {
	out := p
	if next.Title != nil {
		out.Title = next.Title
	}
	if next.Description != nil {
		out.Description = next.Description
	}
	if next.Priority != nil {
		out.Priority = next.Priority
	}
	if next.ClearScheduledAt {
		out.ClearScheduledAt = true
		out.ScheduledAt = nil
	} else if next.ScheduledAt != nil {
		out.ScheduledAt = next.ScheduledAt
		out.ClearScheduledAt = false
	}
	if next.Completed != nil {
		out.Completed = next.Completed
	}
	return out
}
