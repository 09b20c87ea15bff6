package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"timetrack/internal/apperr"
	"timetrack/internal/model"
	"timetrack/internal/repository"
	"timetrack/internal/validate"
)

// TimeEntryService drives the timer state machine: an entry is created
// active and stopped exactly once, with the duration computed on the server
// clock. At most one active entry per user, enforced by a read-then-write
// check (see Start).
type TimeEntryService struct {
	entries  repository.TimeEntryRepositoryInterface
	tasks    repository.TaskRepositoryInterface
	recorder ActivityRecorder
	clock    Clock
}

func NewTimeEntryService(
	entries repository.TimeEntryRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	recorder ActivityRecorder,
	clock Clock,
) *TimeEntryService {
	return &TimeEntryService{
		entries:  entries,
		tasks:    tasks,
		recorder: recorder,
		clock:    clock,
	}
}

// TodaySummary aggregates a user's tracked time since local midnight.
type TodaySummary struct {
	TotalTodaySeconds        int64
	PerTaskTodaySeconds      map[uuid.UUID]int64
	CompletedTasksTodayCount int64
}

// Start begins tracking time against a task. Checked in order: the task
// must exist, the caller must be its assignee, and the caller must have no
// other active entry.
//
// The no-active-entry check is read-then-write without a transactional
// guarantee; two concurrent starts for the same user can race past it.
func (s *TimeEntryService) Start(ctx context.Context, userID, taskID uuid.UUID) (*model.TimeEntry, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("Task not found")
	}
	if task.AssigneeID == nil || *task.AssigneeID != userID {
		return nil, apperr.Forbidden("You can only track time on tasks assigned to you")
	}

	active, err := s.entries.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, apperr.Conflict("You already have an active time entry. Stop it before starting a new one.")
	}

	now := s.clock.Now()
	entry := &model.TimeEntry{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    userID,
		StartTime: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.recorder.Apply(ctx, []Effect{{
		TaskID:  taskID,
		Type:    model.ActivityTimerStarted,
		Message: "Timer started",
		ActorID: userID,
	}})

	return entry, nil
}

// Stop ends an active entry, setting end time and duration together.
// Returns nil when the entry id is unknown: the missing direct subject of a
// lookup-and-mutate is not an error here.
func (s *TimeEntryService) Stop(ctx context.Context, userID, entryID uuid.UUID) (*model.TimeEntry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	if entry.UserID != userID {
		return nil, apperr.Forbidden("You can only stop your own time entries")
	}
	if !entry.Active() {
		return nil, apperr.Conflict("Time entry is already stopped")
	}

	now := s.clock.Now()
	seconds, err := validate.DurationSeconds(entry.StartTime, now)
	if err != nil {
		return nil, err
	}

	end := now
	updated := *entry
	updated.EndTime = &end
	updated.DurationSeconds = &seconds
	updated.UpdatedAt = now
	if err := s.entries.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.recorder.Apply(ctx, []Effect{{
		TaskID:  entry.TaskID,
		Type:    model.ActivityTimerStopped,
		Message: fmt.Sprintf("Timer stopped (%s)", validate.FormatDuration(seconds)),
		ActorID: userID,
	}})

	return &updated, nil
}

// Active returns the user's running entry, or nil. Pure lookup.
func (s *TimeEntryService) Active(ctx context.Context, userID uuid.UUID) (*model.TimeEntry, error) {
	return s.entries.FindActiveByUser(ctx, userID)
}

// Summary aggregates today's stopped entries with positive duration, plus a
// count of the user's tasks finished today. "Finished today" is inferred
// from status DONE and an update inside the window, since tasks carry no
// completion timestamp.
func (s *TimeEntryService) Summary(ctx context.Context, userID uuid.UUID) (*TodaySummary, error) {
	now := s.clock.Now()
	midnight := startOfDay(now)

	entries, err := s.entries.ListByUserStartedBetween(ctx, userID, midnight, now)
	if err != nil {
		return nil, err
	}

	summary := &TodaySummary{PerTaskTodaySeconds: make(map[uuid.UUID]int64)}
	for _, entry := range entries {
		if entry.DurationSeconds == nil || *entry.DurationSeconds <= 0 {
			continue
		}
		summary.TotalTodaySeconds += *entry.DurationSeconds
		summary.PerTaskTodaySeconds[entry.TaskID] += *entry.DurationSeconds
	}

	completed, err := s.tasks.CountDoneByAssigneeUpdatedBetween(ctx, userID, midnight, now)
	if err != nil {
		return nil, err
	}
	summary.CompletedTasksTodayCount = completed

	return summary, nil
}
