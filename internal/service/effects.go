package service

import (
	"context"

	"github.com/google/uuid"

	"timetrack/internal/model"
)

// Effect describes one activity record to append after a primary state
// change succeeds. Operations accumulate effects instead of writing the log
// inline, so the best-effort contract is explicit and testable.
type Effect struct {
	TaskID  uuid.UUID
	Type    model.ActivityType
	Message string
	ActorID uuid.UUID
}

// ActivityRecorder applies accumulated effects. Implementations must never
// fail the caller: a failed append is logged and skipped, it does not roll
// back the operation that produced it.
type ActivityRecorder interface {
	Apply(ctx context.Context, effects []Effect)
}
