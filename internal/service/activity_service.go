package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"timetrack/internal/apperr"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

// ActivityService appends and lists the per-task audit log. Record and
// Apply are internal APIs driven by the other services; only List is
// reachable by end users.
type ActivityService struct {
	activities repository.ActivityRepositoryInterface
	tasks      repository.TaskRepositoryInterface
	clock      Clock
}

var _ ActivityRecorder = (*ActivityService)(nil)

func NewActivityService(
	activities repository.ActivityRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	clock Clock,
) *ActivityService {
	return &ActivityService{activities: activities, tasks: tasks, clock: clock}
}

// Record appends a single activity. No RBAC: callers are other services.
func (s *ActivityService) Record(ctx context.Context, taskID uuid.UUID, typ model.ActivityType, message string, actorID uuid.UUID) (*model.Activity, error) {
	now := s.clock.Now()
	activity := &model.Activity{
		ID:        uuid.New(),
		TaskID:    taskID,
		Type:      typ,
		Message:   message,
		ActorID:   actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// Apply appends every effect, logging and skipping failures. Activity
// logging is best-effort: a lost record never rolls back the state change
// that produced it.
func (s *ActivityService) Apply(ctx context.Context, effects []Effect) {
	for _, e := range effects {
		if _, err := s.Record(ctx, e.TaskID, e.Type, e.Message, e.ActorID); err != nil {
			log.Printf("⚠️  Failed to record %s activity for task %s: %v", e.Type, e.TaskID, err)
		}
	}
}

// List returns a task's activities, newest first. Admins see any task;
// members only their assigned ones.
func (s *ActivityService) List(ctx context.Context, actor Actor, taskID uuid.UUID) ([]model.Activity, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("Task not found")
	}
	if err := requireTaskAccess(task, actor); err != nil {
		return nil, err
	}
	return s.activities.ListByTask(ctx, taskID)
}
