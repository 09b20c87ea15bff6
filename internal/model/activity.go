package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType identifies the kind of state change an activity records.
type ActivityType string

const (
	ActivityTaskCreated        ActivityType = "TASK_CREATED"
	ActivityTaskAssigned       ActivityType = "TASK_ASSIGNED"
	ActivityTaskStatusChanged  ActivityType = "TASK_STATUS_CHANGED"
	ActivityTaskPriorityChanged ActivityType = "TASK_PRIORITY_CHANGED"
	ActivityTaskDueDateChanged ActivityType = "TASK_DUE_DATE_CHANGED"
	ActivityTaskTagsChanged    ActivityType = "TASK_TAGS_CHANGED"
	ActivityTimerStarted       ActivityType = "TIMER_STARTED"
	ActivityTimerStopped       ActivityType = "TIMER_STOPPED"
	ActivityCommentAdded       ActivityType = "COMMENT_ADDED"
)

// Activity is an append-only audit record, generated as a side effect of
// state-changing operations. Never written directly by end users.
type Activity struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type      ActivityType `gorm:"not null"`
	Message   string       `gorm:"not null"`
	ActorID   uuid.UUID    `gorm:"type:uuid;not null"`
	CreatedAt time.Time    `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	Task  Task `gorm:"foreignKey:TaskID"`
	Actor User `gorm:"foreignKey:ActorID"`
}
