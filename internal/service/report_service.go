package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"timetrack/internal/repository"
	"timetrack/internal/validate"
)

// ReportService aggregates completed time entries for reporting.
type ReportService struct {
	entries repository.TimeEntryRepositoryInterface
}

func NewReportService(entries repository.TimeEntryRepositoryInterface) *ReportService {
	return &ReportService{entries: entries}
}

// UserTotal is one row of the time-totals report.
type UserTotal struct {
	UserID               uuid.UUID
	TotalDurationSeconds int64
}

// TimeTotalsReport sums tracked time per user over a date range.
type TimeTotalsReport struct {
	From   time.Time
	To     time.Time
	Totals []UserTotal
}

// TimeTotalsByUser sums stopped entries with a positive duration whose
// start time falls in [from, to] inclusive, grouped by user and sorted by
// user id ascending.
func (s *ReportService) TimeTotalsByUser(ctx context.Context, from, to time.Time) (*TimeTotalsReport, error) {
	if err := validate.DateRange(from, to); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListStartedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID]int64)
	for _, entry := range entries {
		if entry.DurationSeconds == nil || *entry.DurationSeconds <= 0 {
			continue
		}
		byUser[entry.UserID] += *entry.DurationSeconds
	}

	totals := make([]UserTotal, 0, len(byUser))
	for userID, seconds := range byUser {
		totals = append(totals, UserTotal{UserID: userID, TotalDurationSeconds: seconds})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].UserID.String() < totals[j].UserID.String()
	})

	return &TimeTotalsReport{From: from, To: to, Totals: totals}, nil
}
