package model

import "github.com/google/uuid"

// Sort keys and directions accepted by TaskFilter.
const (
	SortByDueDate   = "due_date"
	SortByCreatedAt = "created_at"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// TaskFilter represents optional filters for listing tasks.
// Nil pointers / zero values mean the filter is not applied.
// Search is a case-insensitive substring match over title and description.
// This struct lives in model for reuse by repository/service/handler layers.
type TaskFilter struct {
	Status     *TaskStatus
	Priority   *TaskPriority
	AssigneeID *uuid.UUID
	Tag        string
	Search     string
	SortBy     string
	SortOrder  string
}
