package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"council-calendar-backend/cmd/council-calendar/model"
)

var ErrNoAnnouncement = errors.New("no active announcement")

type AnnouncementRepo struct {
	db *gorm.DB
}

func NewAnnouncementRepo(db *gorm.DB) *AnnouncementRepo {
	return &AnnouncementRepo{
		db: db,
	}
}

// ActiveAnnouncement returns the newest active banner message.
func (r *AnnouncementRepo) ActiveAnnouncement(ctx context.Context) (model.Announcement, error) {

	var ann model.Announcement

	result := r.db.
		WithContext(ctx).
		Where("is_active = ?", true).
		Order("update_date DESC").
		First(&ann)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Announcement{}, ErrNoAnnouncement
		}
		return model.Announcement{}, result.Error
	}

	return ann, nil
}

func (r *AnnouncementRepo) SaveAnnouncement(ctx context.Context, ann model.Announcement) (model.Announcement, error) {

	result := r.db.
		WithContext(ctx).
		Create(&ann)

	if result.Error != nil {
		return model.Announcement{}, result.Error
	}

	return ann, nil
}

// DeactivateAll retires every active banner, used before publishing a
// replacement.
func (r *AnnouncementRepo) DeactivateAll(ctx context.Context) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.Announcement{}).
		Where("is_active = ?", true).
		Update("is_active", false)

	return result.Error
}
