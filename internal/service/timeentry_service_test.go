package service_test

import (
	"context"
	"testing"
	"time"

	"timetrack/internal/apperr"
	"timetrack/internal/model"
	"timetrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimeEntryEnv(now time.Time) (*service.TimeEntryService, *fakeTaskRepo, *fakeTimeEntryRepo, *recorderSpy, *fixedClock) {
	tasks := &fakeTaskRepo{}
	entries := &fakeTimeEntryRepo{}
	recorder := &recorderSpy{}
	clock := &fixedClock{now: now}
	svc := service.NewTimeEntryService(entries, tasks, recorder, clock)
	return svc, tasks, entries, recorder, clock
}

func seedTask(tasks *fakeTaskRepo, assignee *uuid.UUID, now time.Time) *model.Task {
	task := &model.Task{
		ID:          uuid.New(),
		Title:       "Write report",
		Description: "Quarterly numbers",
		Status:      model.StatusTodo,
		AssigneeID:  assignee,
		CreatedBy:   uuid.New(),
		Priority:    model.PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_ = tasks.Create(context.Background(), task)
	return task
}

func TestStart_CreatesActiveEntry(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, tasks, _, recorder, _ := newTimeEntryEnv(now)

	userID := uuid.New()
	task := seedTask(tasks, &userID, now)

	entry, err := svc.Start(context.Background(), userID, task.ID)

	require.NoError(t, err)
	assert.Equal(t, task.ID, entry.TaskID)
	assert.Equal(t, userID, entry.UserID)
	assert.Equal(t, now, entry.StartTime)
	assert.Nil(t, entry.EndTime)
	assert.Nil(t, entry.DurationSeconds)
	assert.True(t, entry.Active())

	started := recorder.ofType(model.ActivityTimerStarted)
	require.Len(t, started, 1)
	assert.Equal(t, task.ID, started[0].TaskID)
	assert.Equal(t, userID, started[0].ActorID)
}

func TestStart_TaskMissing(t *testing.T) {
	svc, _, _, _, _ := newTimeEntryEnv(time.Now())

	_, err := svc.Start(context.Background(), uuid.New(), uuid.New())

	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Task not found", notFound.Msg)
}

func TestStart_NotAssignee(t *testing.T) {
	now := time.Now()
	svc, tasks, _, _, _ := newTimeEntryEnv(now)

	other := uuid.New()
	task := seedTask(tasks, &other, now)

	_, err := svc.Start(context.Background(), uuid.New(), task.ID)

	var forbidden *apperr.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestStart_UnassignedTask(t *testing.T) {
	now := time.Now()
	svc, tasks, _, _, _ := newTimeEntryEnv(now)

	task := seedTask(tasks, nil, now)

	_, err := svc.Start(context.Background(), uuid.New(), task.ID)

	var forbidden *apperr.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestStart_SecondTimerConflicts(t *testing.T) {
	now := time.Now()
	svc, tasks, _, _, _ := newTimeEntryEnv(now)

	userID := uuid.New()
	first := seedTask(tasks, &userID, now)
	second := seedTask(tasks, &userID, now)

	_, err := svc.Start(context.Background(), userID, first.ID)
	require.NoError(t, err)

	// A second start without an intervening stop must conflict, even on a
	// different task.
	_, err = svc.Start(context.Background(), userID, second.ID)

	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Msg, "active time entry")
}

func TestStop_ComputesFlooredDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, tasks, _, recorder, clock := newTimeEntryEnv(start)

	userID := uuid.New()
	task := seedTask(tasks, &userID, start)

	entry, err := svc.Start(context.Background(), userID, task.ID)
	require.NoError(t, err)

	clock.Advance(90*time.Second + 700*time.Millisecond)

	stopped, err := svc.Stop(context.Background(), userID, entry.ID)

	require.NoError(t, err)
	require.NotNil(t, stopped.EndTime)
	require.NotNil(t, stopped.DurationSeconds)
	assert.Equal(t, int64(90), *stopped.DurationSeconds)
	assert.False(t, stopped.Active())

	stoppedEffects := recorder.ofType(model.ActivityTimerStopped)
	require.Len(t, stoppedEffects, 1)
	assert.Contains(t, stoppedEffects[0].Message, "1m 30s")
}

func TestStop_UnknownEntryReturnsNil(t *testing.T) {
	svc, _, _, _, _ := newTimeEntryEnv(time.Now())

	entry, err := svc.Stop(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStop_WrongOwner(t *testing.T) {
	now := time.Now()
	svc, tasks, _, _, clock := newTimeEntryEnv(now)

	owner := uuid.New()
	task := seedTask(tasks, &owner, now)
	entry, err := svc.Start(context.Background(), owner, task.ID)
	require.NoError(t, err)

	clock.Advance(time.Minute)

	_, err = svc.Stop(context.Background(), uuid.New(), entry.ID)

	var forbidden *apperr.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestStop_AlreadyStopped(t *testing.T) {
	now := time.Now()
	svc, tasks, _, _, clock := newTimeEntryEnv(now)

	userID := uuid.New()
	task := seedTask(tasks, &userID, now)
	entry, err := svc.Start(context.Background(), userID, task.ID)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.Stop(context.Background(), userID, entry.ID)
	require.NoError(t, err)

	_, err = svc.Stop(context.Background(), userID, entry.ID)

	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Time entry is already stopped", conflict.Msg)
}

func TestStop_ClockBeforeStartFailsValidation(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, tasks, _, _, clock := newTimeEntryEnv(now)

	userID := uuid.New()
	task := seedTask(tasks, &userID, now)
	entry, err := svc.Start(context.Background(), userID, task.ID)
	require.NoError(t, err)

	// A mocked clock can run backwards; the guard must trip.
	clock.Advance(-time.Minute)

	_, err = svc.Stop(context.Background(), userID, entry.ID)

	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Start time must be before end time", validation.Msg)
}

func TestActive_Lookup(t *testing.T) {
	now := time.Now()
	svc, tasks, _, _, _ := newTimeEntryEnv(now)

	userID := uuid.New()
	task := seedTask(tasks, &userID, now)

	active, err := svc.Active(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, active)

	entry, err := svc.Start(context.Background(), userID, task.ID)
	require.NoError(t, err)

	active, err = svc.Active(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, entry.ID, active.ID)
}

func TestSummary_AggregatesTodayOnly(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local)
	svc, tasks, entries, _, _ := newTimeEntryEnv(now)

	userID := uuid.New()
	taskA := seedTask(tasks, &userID, now)
	taskB := seedTask(tasks, &userID, now)

	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	seconds := func(v int64) *int64 { return &v }
	endAt := func(t time.Time) *time.Time { return &t }

	// Two stopped entries today, one per task.
	entries.entries = append(entries.entries,
		model.TimeEntry{
			ID: uuid.New(), TaskID: taskA.ID, UserID: userID,
			StartTime: midnight.Add(9 * time.Hour), EndTime: endAt(midnight.Add(10 * time.Hour)),
			DurationSeconds: seconds(3600),
		},
		model.TimeEntry{
			ID: uuid.New(), TaskID: taskB.ID, UserID: userID,
			StartTime: midnight.Add(11 * time.Hour), EndTime: endAt(midnight.Add(11*time.Hour + 30*time.Minute)),
			DurationSeconds: seconds(1800),
		},
		// Yesterday: excluded.
		model.TimeEntry{
			ID: uuid.New(), TaskID: taskA.ID, UserID: userID,
			StartTime: midnight.Add(-2 * time.Hour), EndTime: endAt(midnight.Add(-1 * time.Hour)),
			DurationSeconds: seconds(3600),
		},
		// Still active: excluded.
		model.TimeEntry{
			ID: uuid.New(), TaskID: taskB.ID, UserID: userID,
			StartTime: midnight.Add(17 * time.Hour),
		},
		// Zero duration: excluded.
		model.TimeEntry{
			ID: uuid.New(), TaskID: taskB.ID, UserID: userID,
			StartTime: midnight.Add(12 * time.Hour), EndTime: endAt(midnight.Add(12 * time.Hour)),
			DurationSeconds: seconds(0),
		},
		// Another user: excluded.
		model.TimeEntry{
			ID: uuid.New(), TaskID: taskA.ID, UserID: uuid.New(),
			StartTime: midnight.Add(9 * time.Hour), EndTime: endAt(midnight.Add(10 * time.Hour)),
			DurationSeconds: seconds(3600),
		},
	)

	// One task completed today, one done yesterday.
	doneToday := seedTask(tasks, &userID, midnight.Add(14*time.Hour))
	tasks.tasks[len(tasks.tasks)-1].Status = model.StatusDone
	_ = doneToday
	doneYesterday := seedTask(tasks, &userID, midnight.Add(-3*time.Hour))
	tasks.tasks[len(tasks.tasks)-1].Status = model.StatusDone
	_ = doneYesterday

	summary, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, int64(5400), summary.TotalTodaySeconds)
	assert.Equal(t, int64(3600), summary.PerTaskTodaySeconds[taskA.ID])
	assert.Equal(t, int64(1800), summary.PerTaskTodaySeconds[taskB.ID])
	assert.Equal(t, int64(1), summary.CompletedTasksTodayCount)
}
