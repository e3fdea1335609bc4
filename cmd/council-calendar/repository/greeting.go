package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"council-calendar-backend/cmd/council-calendar/model"
)

type GreetingRepo struct {
	db *gorm.DB
}

func NewGreetingRepo(db *gorm.DB) *GreetingRepo {
	return &GreetingRepo{
		db: db,
	}
}

func (r *GreetingRepo) ListRoster(ctx context.Context) ([]model.RosterMember, error) {

	var members []model.RosterMember

	result := r.db.
		WithContext(ctx).
		Order("department ASC, name ASC").
		Find(&members)

	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

// ReplaceRoster swaps the whole duty roster in one transaction; the CSV
// upload is authoritative.
func (r *GreetingRepo) ReplaceRoster(ctx context.Context, members []model.RosterMember) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.RosterMember{}).Error; err != nil {
			return err
		}
		if len(members) == 0 {
			return nil
		}
		return tx.Create(&members).Error
	})
}

func (r *GreetingRepo) ListAttendanceByDay(ctx context.Context, day time.Time) ([]model.AttendanceRecord, error) {

	var records []model.AttendanceRecord

	result := r.db.
		WithContext(ctx).
		Where("day = ?", day).
		Find(&records)

	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (r *GreetingRepo) CreateAttendance(ctx context.Context, record model.AttendanceRecord) (model.AttendanceRecord, error) {

	result := r.db.
		WithContext(ctx).
		Create(&record)

	if result.Error != nil {
		return model.AttendanceRecord{}, result.Error
	}

	return record, nil
}

// PurgeAttendanceBefore drops attendance rows older than the cutoff day.
// Run from the nightly housekeeping job.
func (r *GreetingRepo) PurgeAttendanceBefore(ctx context.Context, cutoff time.Time) (int64, error) {

	result := r.db.
		WithContext(ctx).
		Where("day < ?", cutoff).
		Delete(&model.AttendanceRecord{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
