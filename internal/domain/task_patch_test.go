package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string          { return &s }
func boolPtr(b bool) *bool             { return &b }
func priorityPtr(p Priority) *Priority { return &p }

func baseTask() Task {
	at := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
	return Task{
		ID:          42,
		OwnerID:     7,
		Title:       "Buy milk",
		Description: "semi-skimmed",
		Priority:    PriorityHigh,
		ScheduledAt: &at,
		CreatedAt:   time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestTaskPatch_Apply(t *testing.T) {
	t.Parallel()

	t.Run("unspecified fields are retained", func(t *testing.T) {
		snapshot := baseTask()
		merged := TaskPatch{Priority: priorityPtr(PriorityLow)}.Apply(snapshot)

		assert.Equal(t, PriorityLow, merged.Priority)
		assert.Equal(t, "Buy milk", merged.Title)
		assert.Equal(t, "semi-skimmed", merged.Description)
		assert.Equal(t, snapshot.ScheduledAt, merged.ScheduledAt)
		assert.False(t, merged.Completed)
	})

	t.Run("snapshot is not modified", func(t *testing.T) {
		snapshot := baseTask()
		later := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
		merged := TaskPatch{
			Title:       strPtr("Buy oat milk"),
			ScheduledAt: &later,
			Completed:   boolPtr(true),
		}.Apply(snapshot)

		assert.Equal(t, "Buy milk", snapshot.Title)
		assert.False(t, snapshot.Completed)
		assert.Equal(t, 2030, snapshot.ScheduledAt.Year())

		assert.Equal(t, "Buy oat milk", merged.Title)
		assert.True(t, merged.Completed)
		assert.Equal(t, 2031, merged.ScheduledAt.Year())
	})

	t.Run("identity fields are immutable", func(t *testing.T) {
		snapshot := baseTask()
		merged := TaskPatch{Title: strPtr("x")}.Apply(snapshot)
		assert.Equal(t, snapshot.ID, merged.ID)
		assert.Equal(t, snapshot.OwnerID, merged.OwnerID)
		assert.Equal(t, snapshot.CreatedAt, merged.CreatedAt)
	})

	t.Run("clear schedule", func(t *testing.T) {
		merged := TaskPatch{ClearScheduledAt: true}.Apply(baseTask())
		assert.Nil(t, merged.ScheduledAt)
	})

	t.Run("merged result can violate invariants", func(t *testing.T) {
		merged := TaskPatch{Title: strPtr("   ")}.Apply(baseTask())
		assert.ErrorIs(t, merged.Validate(), ErrEmptyTitle)
	})
}

func TestTaskPatch_MergeLaw(t *testing.T) {
	t.Parallel()

	p1 := TaskPatch{Title: strPtr("Buy bread"), Completed: boolPtr(true)}
	p2 := TaskPatch{Priority: priorityPtr(PriorityMedium), Description: strPtr("wholegrain")}

	sequential := p2.Apply(p1.Apply(baseTask()))
	combined := p1.Merge(p2).Apply(baseTask())

	assert.Equal(t, sequential, combined)
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, TaskPatch{Completed: boolPtr(false)}.IsEmpty())
	assert.False(t, TaskPatch{ClearScheduledAt: true}.IsEmpty())
	require.True(t, TaskPatch{}.Merge(TaskPatch{}).IsEmpty())
}
