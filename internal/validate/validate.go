// Package validate holds pure validation helpers for time ranges, durations
// and text limits. No I/O, no clock access.
package validate

import (
	"fmt"
	"strings"
	"time"

	"timetrack/internal/apperr"
)

// Length limits for task fields and comments.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxCommentLength     = 2000
)

// TaskTitle checks the title is non-empty after trimming and within limits.
func TaskTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return apperr.Validation("Title is required")
	}
	if len(trimmed) > MaxTitleLength {
		return apperr.Validation(fmt.Sprintf("Title must be at most %d characters", MaxTitleLength))
	}
	return nil
}

// TaskDescription checks the description is non-empty after trimming and
// within limits.
func TaskDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return apperr.Validation("Description is required")
	}
	if len(trimmed) > MaxDescriptionLength {
		return apperr.Validation(fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength))
	}
	return nil
}

// CommentText checks the comment text is non-empty after trimming and within
// limits.
func CommentText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return apperr.Validation("Comment text is required")
	}
	if len(trimmed) > MaxCommentLength {
		return apperr.Validation(fmt.Sprintf("Comment must be at most %d characters", MaxCommentLength))
	}
	return nil
}

// DurationSeconds computes the whole seconds elapsed between start and end,
// rounded down. The start must be strictly before the end; with a server
// clock that always holds, but injected clocks in tests may violate it.
func DurationSeconds(start, end time.Time) (int64, error) {
	if !start.Before(end) {
		return 0, apperr.Validation("Start time must be before end time")
	}
	return int64(end.Sub(start) / time.Second), nil
}

// FormatDuration renders a duration in seconds as "Xm Ys".
func FormatDuration(seconds int64) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// DateRange checks that from does not fall after to.
func DateRange(from, to time.Time) error {
	if from.After(to) {
		return apperr.Validation("Invalid date range: from must not be after to")
	}
	return nil
}
