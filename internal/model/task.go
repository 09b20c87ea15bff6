package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TaskStatus represents the state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// TaskPriority represents the priority of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"not null"`
	Description string         `gorm:"not null"`
	Status      TaskStatus     `gorm:"not null;check:status IN ('TODO', 'IN_PROGRESS', 'DONE')"`
	AssigneeID  *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID      `gorm:"type:uuid;not null"`
	Priority    TaskPriority   `gorm:"not null;check:priority IN ('LOW', 'MEDIUM', 'HIGH')"`
	DueDate     *time.Time
	Tags        pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time

	Assignee *User `gorm:"foreignKey:AssigneeID"`
	Creator  User  `gorm:"foreignKey:CreatedBy"`
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known task priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
