package model

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the application-wide role of a user.
type Role string

const (
	RoleAdmin  Role = "ADMIN"  // may manage any task
	RoleMember Role = "MEMBER" // may act only on assigned tasks
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	DisplayName    string    `gorm:"not null"`
	Role           Role      `gorm:"not null;check:role IN ('ADMIN', 'MEMBER')"`
	StreakCount    *int
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time
}
