package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"council-calendar-backend/cmd/council-calendar/model"
)

type PushRepo struct {
	db *gorm.DB
}

func NewPushRepo(db *gorm.DB) *PushRepo {
	return &PushRepo{
		db: db,
	}
}

// SaveSubscription upserts by endpoint; browsers re-subscribe with the
// same endpoint and fresh keys.
func (r *PushRepo) SaveSubscription(ctx context.Context, sub model.PushSubscription) (model.PushSubscription, error) {

	result := r.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).
		Create(&sub)

	if result.Error != nil {
		return model.PushSubscription{}, result.Error
	}

	return sub, nil
}

func (r *PushRepo) DeleteSubscription(ctx context.Context, endpoint string) error {

	result := r.db.
		WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&model.PushSubscription{})

	return result.Error
}

func (r *PushRepo) ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {

	var subs []model.PushSubscription

	result := r.db.
		WithContext(ctx).
		Find(&subs)

	if result.Error != nil {
		return nil, result.Error
	}

	return subs, nil
}
