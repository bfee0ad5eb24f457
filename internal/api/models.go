package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/phrazzld/tasker-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse describes a registered user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the JWT used in the Authorization header
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"        validate:"required,max=255"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"     validate:"required"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// OptionalTime distinguishes a JSON field that is absent from one that is
// explicitly null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the field is
// present, so Set records presence.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// UpdateTaskRequest defines the sparse payload for updating a task. Absent
// fields keep their stored value; "scheduled_at": null clears the schedule.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Priority    *string      `json:"priority"`
	ScheduledAt OptionalTime `json:"scheduled_at"`
	Completed   *bool        `json:"completed"`
}

// ToPatch converts the request into a domain.TaskPatch.
func (req UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	if req.Priority != nil {
		p, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Priority = &p
	}

	if req.ScheduledAt.Set {
		if req.ScheduledAt.Value == nil {
			patch.ClearScheduledAt = true
		} else {
			patch.ScheduledAt = req.ScheduledAt.Value
		}
	}

	return patch, nil
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	Completed   bool       `json:"completed"`
}

// DeleteCompletedResponse reports how many tasks a bulk delete removed.
type DeleteCompletedResponse struct {
	Count int64 `json:"count"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		ScheduledAt: task.ScheduledAt,
		CreatedAt:   task.CreatedAt,
		Completed:   task.Completed,
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskToResponse(&tasks[i]))
	}
	return out
}
