package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"council-calendar-backend/cmd/council-calendar/model"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

// ListEventsInRange returns events whose start time falls inside the
// window, ordered by start time.
func (r *EventRepo) ListEventsInRange(ctx context.Context, start, end time.Time) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("start_time >= ? AND start_time <= ?", start, end).
		Order("start_time ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) GetEvent(ctx context.Context, id string) (model.Event, error) {

	var event model.Event

	result := r.db.
		WithContext(ctx).
		Where("id = ?", id).
		First(&event)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, result.Error
	}

	return event, nil
}

// CreateEvent stores the event and returns the canonical record.
func (r *EventRepo) CreateEvent(ctx context.Context, event model.Event) (model.Event, error) {

	result := r.db.
		WithContext(ctx).
		Create(&event)

	if result.Error != nil {
		return model.Event{}, result.Error
	}

	return event, nil
}

// CreateEvents stores a batch of events in a single transaction, so a
// failed recurrence expansion never leaves partial rows behind.
func (r *EventRepo) CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&events).Error
	})

	if err != nil {
		return nil, err
	}

	return events, nil
}

// UpdateEvent applies a partial update and returns the stored record.
// Events flagged as school events are read-only at this boundary; the UI
// gate alone is not trusted.
func (r *EventRepo) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (model.Event, error) {

	current, err := r.GetEvent(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	if current.IsSchoolEvent {
		return model.Event{}, model.ErrSchoolEventFixed
	}

	cols := patch.Columns()
	if len(cols) == 0 {
		return current, nil
	}
	cols["update_date"] = time.Now()

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Updates(cols)

	if result.Error != nil {
		return model.Event{}, result.Error
	}

	return r.GetEvent(ctx, id)
}

func (r *EventRepo) DeleteEvent(ctx context.Context, id string) error {

	current, err := r.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if current.IsSchoolEvent {
		return model.ErrSchoolEventFixed
	}

	result := r.db.
		WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Event{})

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// ListAllEvents returns the full collection, used by the iCal export.
func (r *EventRepo) ListAllEvents(ctx context.Context) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Order("start_time ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}
