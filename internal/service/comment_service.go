package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"timetrack/internal/apperr"
	"timetrack/internal/model"
	"timetrack/internal/repository"
	"timetrack/internal/validate"
)

// CommentService appends and lists task comments. Same access gate on both
// sides: admins everywhere, members only on their assigned tasks.
type CommentService struct {
	comments repository.CommentRepositoryInterface
	tasks    repository.TaskRepositoryInterface
	recorder ActivityRecorder
	clock    Clock
}

func NewCommentService(
	comments repository.CommentRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	recorder ActivityRecorder,
	clock Clock,
) *CommentService {
	return &CommentService{
		comments: comments,
		tasks:    tasks,
		recorder: recorder,
		clock:    clock,
	}
}

// Create appends a comment to a task. Text is re-validated here even though
// the boundary already checks it.
func (s *CommentService) Create(ctx context.Context, actor Actor, taskID uuid.UUID, text string) (*model.Comment, error) {
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
	if err := validate.CommentText(text); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	comment := &model.Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    actor.ID,
		Text:      strings.TrimSpace(text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.recorder.Apply(ctx, []Effect{{
		TaskID:  taskID,
		Type:    model.ActivityCommentAdded,
		Message: "Added a comment",
		ActorID: actor.ID,
	}})

	return comment, nil
}

// List returns a task's comments, oldest first.
func (s *CommentService) List(ctx context.Context, actor Actor, taskID uuid.UUID) ([]model.Comment, error) {
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
	return s.comments.ListByTask(ctx, taskID)
}
