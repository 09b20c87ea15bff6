package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry records time tracked by a user against a task. An entry is
// active while EndTime and DurationSeconds are both nil; stopping it sets
// both together, exactly once.
type TimeEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID          uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	StartTime       time.Time `gorm:"not null"`
	EndTime         *time.Time
	DurationSeconds *int64
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time

	Task Task `gorm:"foreignKey:TaskID"`
	User User `gorm:"foreignKey:UserID"`
}

// Active reports whether the entry is still running.
func (e *TimeEntry) Active() bool {
	return e.EndTime == nil && e.DurationSeconds == nil
}
