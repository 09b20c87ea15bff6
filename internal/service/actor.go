package service

import (
	"github.com/google/uuid"

	"timetrack/internal/apperr"
	"timetrack/internal/model"
)

// Actor identifies the authenticated caller of a service operation. The
// services trust the pair as supplied; credential verification happens at
// the boundary.
type Actor struct {
	ID   uuid.UUID
	Role model.Role
}

// Admin reports whether the actor carries the ADMIN role.
func (a Actor) Admin() bool { return a.Role == model.RoleAdmin }

// requireTaskAccess gates read access to a task and everything hanging off
// it. Admins always pass; members must be the assignee.
func requireTaskAccess(task *model.Task, actor Actor) error {
	if actor.Admin() {
		return nil
	}
	if task.AssigneeID == nil || *task.AssigneeID != actor.ID {
		return apperr.Forbidden("You don't have access to this task")
	}
	return nil
}
