package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetrack/internal/model"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

type TimeEntryRepositoryInterface interface {
	Create(ctx context.Context, entry *model.TimeEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error)
	Update(ctx context.Context, entry *model.TimeEntry) error
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.TimeEntry, error)
	ListByUserStartedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.TimeEntry, error)
	ListStartedBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error)
}

var _ TimeEntryRepositoryInterface = (*TimeEntryRepository)(nil)

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// Create adds a new time entry to the database
func (r *TimeEntryRepository) Create(ctx context.Context, entry *model.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByID retrieves a time entry by its ID, returning nil when absent
func (r *TimeEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update persists an existing time entry
func (r *TimeEntryRepository) Update(ctx context.Context, entry *model.TimeEntry) error {
	result := r.db.WithContext(ctx).Save(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTimeEntryNotFound
	}
	return nil
}

// FindActiveByUser returns the user's running entry, or nil when there is
// none. The service layer guarantees at most one exists.
func (r *TimeEntryRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_time IS NULL", userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUserStartedBetween retrieves a user's entries with a start time in
// [from, to)
func (r *TimeEntryRepository) ListByUserStartedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListStartedBetween retrieves all entries with a start time in [from, to]
func (r *TimeEntryRepository) ListStartedBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
