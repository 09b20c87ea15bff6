package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"timetrack/internal/apperr"
	"timetrack/internal/model"
	"timetrack/internal/repository"
	"timetrack/internal/validate"
)

// TaskService owns the task lifecycle: creation, admin-side mutation,
// member-side status changes and filtered listing. Every state change
// produces activity effects applied after the primary write.
type TaskService struct {
	tasks    repository.TaskRepositoryInterface
	entries  repository.TimeEntryRepositoryInterface
	users    repository.UserRepositoryInterface
	recorder ActivityRecorder
	clock    Clock
}

func NewTaskService(
	tasks repository.TaskRepositoryInterface,
	entries repository.TimeEntryRepositoryInterface,
	users repository.UserRepositoryInterface,
	recorder ActivityRecorder,
	clock Clock,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		entries:  entries,
		users:    users,
		recorder: recorder,
		clock:    clock,
	}
}

// CreateTaskInput carries the fields accepted on task creation. Priority
// defaults to MEDIUM when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeID  *uuid.UUID
	Priority    model.TaskPriority
	DueDate     *time.Time
	Tags        []string
}

// TaskPatch is a partial update for admin-side task mutation. Nil pointers
// leave the field unchanged; the Set flags distinguish "clear this nullable
// field" from "leave it alone".
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	AssigneeID  *uuid.UUID
	AssigneeSet bool
	DueDate     *time.Time
	DueDateSet  bool
	Tags        []string
	TagsSet     bool
}

// Create creates a task. Admins may assign anyone; members always get the
// task assigned to themselves.
func (s *TaskService) Create(ctx context.Context, actor Actor, in CreateTaskInput) (*model.Task, error) {
	if err := validate.TaskTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validate.TaskDescription(in.Description); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, apperr.Validation("Invalid priority")
	}

	assigneeID := in.AssigneeID
	if !actor.Admin() {
		// Members can only create tasks for themselves.
		self := actor.ID
		assigneeID = &self
	}

	now := s.clock.Now()
	task := &model.Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      model.StatusTodo,
		AssigneeID:  assigneeID,
		CreatedBy:   actor.ID,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	effects := []Effect{{
		TaskID:  task.ID,
		Type:    model.ActivityTaskCreated,
		Message: fmt.Sprintf("Created task %q", task.Title),
		ActorID: actor.ID,
	}}
	if task.AssigneeID != nil {
		effects = append(effects, Effect{
			TaskID:  task.ID,
			Type:    model.ActivityTaskAssigned,
			Message: s.assignMessage(ctx, task.AssigneeID),
			ActorID: actor.ID,
		})
	}
	s.recorder.Apply(ctx, effects)

	return task, nil
}

// UpdateAsAdmin applies a partial patch to a task. Returns nil when the
// task does not exist. For every field whose value actually changed a
// matching activity is emitted.
func (s *TaskService) UpdateAsAdmin(ctx context.Context, taskID uuid.UUID, patch TaskPatch, actorID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	updated := *task
	var effects []Effect

	if patch.Title != nil {
		if err := validate.TaskTitle(*patch.Title); err != nil {
			return nil, err
		}
		updated.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		if err := validate.TaskDescription(*patch.Description); err != nil {
			return nil, err
		}
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if !model.ValidStatus(*patch.Status) {
			return nil, apperr.Validation("Invalid status")
		}
		if *patch.Status != task.Status {
			updated.Status = *patch.Status
			effects = append(effects, Effect{
				TaskID:  task.ID,
				Type:    model.ActivityTaskStatusChanged,
				Message: fmt.Sprintf("Status changed to %s", updated.Status),
				ActorID: actorID,
			})
		}
	}
	if patch.Priority != nil {
		if !model.ValidPriority(*patch.Priority) {
			return nil, apperr.Validation("Invalid priority")
		}
		if *patch.Priority != task.Priority {
			updated.Priority = *patch.Priority
			effects = append(effects, Effect{
				TaskID:  task.ID,
				Type:    model.ActivityTaskPriorityChanged,
				Message: fmt.Sprintf("Priority changed to %s", updated.Priority),
				ActorID: actorID,
			})
		}
	}
	if patch.AssigneeSet && !uuidPtrEqual(patch.AssigneeID, task.AssigneeID) {
		updated.AssigneeID = patch.AssigneeID
		effects = append(effects, Effect{
			TaskID:  task.ID,
			Type:    model.ActivityTaskAssigned,
			Message: s.assignMessage(ctx, updated.AssigneeID),
			ActorID: actorID,
		})
	}
	if patch.DueDateSet && !timePtrEqual(patch.DueDate, task.DueDate) {
		updated.DueDate = patch.DueDate
		effects = append(effects, Effect{
			TaskID:  task.ID,
			Type:    model.ActivityTaskDueDateChanged,
			Message: dueDateMessage(updated.DueDate),
			ActorID: actorID,
		})
	}
	if patch.TagsSet && !tagsEqual(patch.Tags, task.Tags) {
		// Order-sensitive comparison: a reordering counts as a change.
		updated.Tags = patch.Tags
		effects = append(effects, Effect{
			TaskID:  task.ID,
			Type:    model.ActivityTaskTagsChanged,
			Message: "Tags updated",
			ActorID: actorID,
		})
	}

	updated.UpdatedAt = s.clock.Now()
	if err := s.tasks.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.recorder.Apply(ctx, effects)

	return &updated, nil
}

// Assign sets or clears the assignee. Returns nil when the task does not
// exist. An activity is emitted even when the assignee did not change.
func (s *TaskService) Assign(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID, actorID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	updated := *task
	updated.AssigneeID = assigneeID
	updated.UpdatedAt = s.clock.Now()
	if err := s.tasks.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.recorder.Apply(ctx, []Effect{{
		TaskID:  task.ID,
		Type:    model.ActivityTaskAssigned,
		Message: s.assignMessage(ctx, assigneeID),
		ActorID: actorID,
	}})

	return &updated, nil
}

// UpdateStatusAsMember changes a task's status on behalf of its assignee.
// Returns nil only when the task does not exist; a member touching someone
// else's task (or an unassigned one) gets ForbiddenError.
func (s *TaskService) UpdateStatusAsMember(ctx context.Context, taskID, memberID uuid.UUID, status model.TaskStatus) (*model.Task, error) {
	if !model.ValidStatus(status) {
		return nil, apperr.Validation("Invalid status")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}
	if task.AssigneeID == nil || *task.AssigneeID != memberID {
		return nil, apperr.Forbidden("You can only update tasks assigned to you")
	}

	updated := *task
	updated.Status = status
	updated.UpdatedAt = s.clock.Now()
	if err := s.tasks.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.recorder.Apply(ctx, []Effect{{
		TaskID:  task.ID,
		Type:    model.ActivityTaskStatusChanged,
		Message: fmt.Sprintf("Status changed to %s", status),
		ActorID: memberID,
	}})

	return &updated, nil
}

// Complete marks an assigned task DONE. If the member's active time entry
// tracks this task it is stopped first; the stopped entry is returned
// alongside the task (nil when there was none).
func (s *TaskService) Complete(ctx context.Context, taskID, memberID uuid.UUID) (*model.Task, *model.TimeEntry, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, apperr.NotFound("Task not found")
	}
	if task.AssigneeID == nil || *task.AssigneeID != memberID {
		return nil, nil, apperr.Forbidden("You can only complete tasks assigned to you")
	}

	now := s.clock.Now()

	var stopped *model.TimeEntry
	active, err := s.entries.FindActiveByUser(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}
	if active != nil && active.TaskID == taskID {
		seconds, err := validate.DurationSeconds(active.StartTime, now)
		if err != nil {
			return nil, nil, err
		}
		end := now
		entry := *active
		entry.EndTime = &end
		entry.DurationSeconds = &seconds
		entry.UpdatedAt = now
		if err := s.entries.Update(ctx, &entry); err != nil {
			return nil, nil, err
		}
		stopped = &entry
	}

	s.bumpStreak(ctx, memberID, now)

	updated := *task
	updated.Status = model.StatusDone
	updated.UpdatedAt = now
	if err := s.tasks.Update(ctx, &updated); err != nil {
		return nil, stopped, err
	}

	s.recorder.Apply(ctx, []Effect{{
		TaskID:  task.ID,
		Type:    model.ActivityTaskStatusChanged,
		Message: "Task completed",
		ActorID: memberID,
	}})

	return &updated, stopped, nil
}

// Get returns a task, gated the same way as its comments and activities.
// Returns nil when absent.
func (s *TaskService) Get(ctx context.Context, actor Actor, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}
	if err := requireTaskAccess(task, actor); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns tasks matching the filter. Admin-only surface: no implicit
// scoping.
func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	if err := normalizeFilter(&filter); err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, filter)
}

// ListForMember returns tasks matching the filter, always intersected with
// the member's own assignment regardless of the caller-supplied filter.
func (s *TaskService) ListForMember(ctx context.Context, memberID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	if err := normalizeFilter(&filter); err != nil {
		return nil, err
	}
	filter.AssigneeID = &memberID
	return s.tasks.List(ctx, filter)
}

// bumpStreak increments the member's streak counter on the first completion
// of a local day. Best-effort: failures are logged, never propagated.
func (s *TaskService) bumpStreak(ctx context.Context, memberID uuid.UUID, now time.Time) {
	count, err := s.tasks.CountDoneByAssigneeUpdatedBetween(ctx, memberID, startOfDay(now), now)
	if err != nil {
		log.Printf("⚠️  Failed to check completions for streak of user %s: %v", memberID, err)
		return
	}
	if count > 0 {
		return
	}
	user, err := s.users.GetByID(ctx, memberID)
	if err != nil || user == nil {
		log.Printf("⚠️  Failed to load user %s for streak update: %v", memberID, err)
		return
	}
	streak := 1
	if user.StreakCount != nil {
		streak = *user.StreakCount + 1
	}
	user.StreakCount = &streak
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		log.Printf("⚠️  Failed to update streak for user %s: %v", memberID, err)
	}
}

// assignMessage renders the TASK_ASSIGNED activity message, preferring the
// assignee's display name over the raw id.
func (s *TaskService) assignMessage(ctx context.Context, assigneeID *uuid.UUID) string {
	if assigneeID == nil {
		return "Unassigned"
	}
	if user, err := s.users.GetByID(ctx, *assigneeID); err == nil && user != nil {
		return fmt.Sprintf("Assigned to %s", user.DisplayName)
	}
	return fmt.Sprintf("Assigned to %s", assigneeID)
}

func dueDateMessage(due *time.Time) string {
	if due == nil {
		return "Due date cleared"
	}
	return fmt.Sprintf("Due date set to %s", due.Format("2006-01-02"))
}

func normalizeFilter(filter *model.TaskFilter) error {
	if filter.Status != nil && !model.ValidStatus(*filter.Status) {
		return apperr.Validation("Invalid status filter")
	}
	if filter.Priority != nil && !model.ValidPriority(*filter.Priority) {
		return apperr.Validation("Invalid priority filter")
	}
	switch filter.SortBy {
	case "", model.SortByDueDate, model.SortByCreatedAt:
	default:
		return apperr.Validation("Invalid sort key")
	}
	switch filter.SortOrder {
	case "", model.SortAsc, model.SortDesc:
	default:
		return apperr.Validation("Invalid sort order")
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
