package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"timetrack/internal/apperr"
	"timetrack/internal/model"
	"timetrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityEnv(now time.Time) (*service.ActivityService, *fakeTaskRepo, *fakeActivityRepo) {
	tasks := &fakeTaskRepo{}
	activities := &fakeActivityRepo{}
	svc := service.NewActivityService(activities, tasks, &fixedClock{now: now})
	return svc, tasks, activities
}

func TestApply_BestEffortOnStorageFailure(t *testing.T) {
	svc, _, activities := newActivityEnv(time.Now())
	activities.failCreate = errors.New("connection refused")

	// Must not panic and must not propagate: the primary write already
	// happened by the time effects are applied.
	svc.Apply(context.Background(), []service.Effect{
		{TaskID: uuid.New(), Type: model.ActivityTimerStarted, Message: "Timer started", ActorID: uuid.New()},
	})

	assert.Empty(t, activities.activities)
}

func TestApply_RecordsEveryEffect(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _, activities := newActivityEnv(now)

	taskID := uuid.New()
	actorID := uuid.New()
	svc.Apply(context.Background(), []service.Effect{
		{TaskID: taskID, Type: model.ActivityTaskCreated, Message: `Created task "Fix build"`, ActorID: actorID},
		{TaskID: taskID, Type: model.ActivityTaskAssigned, Message: "Assigned to Maria", ActorID: actorID},
	})

	require.Len(t, activities.activities, 2)
	assert.Equal(t, model.ActivityTaskCreated, activities.activities[0].Type)
	assert.Equal(t, actorID, activities.activities[0].ActorID)
	assert.Equal(t, now, activities.activities[1].CreatedAt)
}

func TestActivityList_NewestFirstAndGated(t *testing.T) {
	now := time.Now()
	svc, tasks, activities := newActivityEnv(now)

	member := memberActor()
	task := seedTask(tasks, &member.ID, now)
	activities.activities = append(activities.activities,
		model.Activity{ID: uuid.New(), TaskID: task.ID, Type: model.ActivityTaskCreated, Message: "Created task", CreatedAt: now.Add(-time.Hour)},
		model.Activity{ID: uuid.New(), TaskID: task.ID, Type: model.ActivityTimerStarted, Message: "Timer started", CreatedAt: now},
	)

	listed, err := svc.List(context.Background(), member, task.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, model.ActivityTimerStarted, listed[0].Type)

	var notFound *apperr.NotFoundError
	_, err = svc.List(context.Background(), member, uuid.New())
	assert.ErrorAs(t, err, &notFound)

	var forbidden *apperr.ForbiddenError
	_, err = svc.List(context.Background(), memberActor(), task.ID)
	assert.ErrorAs(t, err, &forbidden)
}
