package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"timetrack/internal/model"
	"timetrack/internal/repository"
	"timetrack/internal/service"

	"github.com/google/uuid"
)

// fixedClock returns a controllable time for deterministic duration and
// day-boundary math.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recorderSpy captures applied effects without touching storage.
type recorderSpy struct {
	effects []service.Effect
}

func (r *recorderSpy) Apply(_ context.Context, effects []service.Effect) {
	r.effects = append(r.effects, effects...)
}

func (r *recorderSpy) ofType(t model.ActivityType) []service.Effect {
	var out []service.Effect
	for _, e := range r.effects {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// In-memory repositories backing the service tests.

type fakeTaskRepo struct {
	tasks []model.Task
}

var _ repository.TaskRepositoryInterface = (*fakeTaskRepo)(nil)

func (r *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			task := r.tasks[i]
			return &task, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i] = *task
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func (r *fakeTaskRepo) List(_ context.Context, filter model.TaskFilter) ([]model.Task, error) {
	var out []model.Task
	for _, task := range r.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.AssigneeID != nil {
			if task.AssigneeID == nil || *task.AssigneeID != *filter.AssigneeID {
				continue
			}
		}
		if filter.Tag != "" && !containsTag(task.Tags, filter.Tag) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(task.Title), needle) &&
				!strings.Contains(strings.ToLower(task.Description), needle) {
				continue
			}
		}
		out = append(out, task)
	}

	desc := filter.SortOrder == model.SortDesc
	switch filter.SortBy {
	case model.SortByDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := dueOrEpoch(&out[i]), dueOrEpoch(&out[j])
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		})
	case model.SortByCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (r *fakeTaskRepo) CountDoneByAssigneeUpdatedBetween(_ context.Context, assigneeID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	for _, task := range r.tasks {
		if task.AssigneeID == nil || *task.AssigneeID != assigneeID || task.Status != model.StatusDone {
			continue
		}
		if !task.UpdatedAt.Before(from) && task.UpdatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func dueOrEpoch(task *model.Task) time.Time {
	if task.DueDate == nil {
		return time.Unix(0, 0)
	}
	return *task.DueDate
}

type fakeTimeEntryRepo struct {
	entries []model.TimeEntry
}

var _ repository.TimeEntryRepositoryInterface = (*fakeTimeEntryRepo)(nil)

func (r *fakeTimeEntryRepo) Create(_ context.Context, entry *model.TimeEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeTimeEntryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			entry := r.entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (r *fakeTimeEntryRepo) Update(_ context.Context, entry *model.TimeEntry) error {
	for i := range r.entries {
		if r.entries[i].ID == entry.ID {
			r.entries[i] = *entry
			return nil
		}
	}
	return repository.ErrTimeEntryNotFound
}

func (r *fakeTimeEntryRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) (*model.TimeEntry, error) {
	for i := range r.entries {
		if r.entries[i].UserID == userID && r.entries[i].EndTime == nil {
			entry := r.entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (r *fakeTimeEntryRepo) ListByUserStartedBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, entry := range r.entries {
		if entry.UserID != userID {
			continue
		}
		if !entry.StartTime.Before(from) && entry.StartTime.Before(to) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeTimeEntryRepo) ListStartedBetween(_ context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, entry := range r.entries {
		if !entry.StartTime.Before(from) && !entry.StartTime.After(to) {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []model.User
}

var _ repository.UserRepositoryInterface = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

type fakeCommentRepo struct {
	comments []model.Comment
}

var _ repository.CommentRepositoryInterface = (*fakeCommentRepo)(nil)

func (r *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTask(_ context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	var out []model.Comment
	for _, comment := range r.comments {
		if comment.TaskID == taskID {
			out = append(out, comment)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeActivityRepo struct {
	activities []model.Activity
	failCreate error
}

var _ repository.ActivityRepositoryInterface = (*fakeActivityRepo)(nil)

func (r *fakeActivityRepo) Create(_ context.Context, activity *model.Activity) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *fakeActivityRepo) ListByTask(_ context.Context, taskID uuid.UUID) ([]model.Activity, error) {
	var out []model.Activity
	for _, activity := range r.activities {
		if activity.TaskID == taskID {
			out = append(out, activity)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
