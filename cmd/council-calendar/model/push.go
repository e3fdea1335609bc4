package model

import "time"

// PushSubscription is bookkeeping for one browser push endpoint. Delivery
// itself goes through the web-push service, not this backend.
type PushSubscription struct {
	ID         string    `gorm:"column:id" json:"id"`
	Endpoint   string    `gorm:"column:endpoint" json:"endpoint"`
	P256dh     string    `gorm:"column:p256dh" json:"p256dh"`
	Auth       string    `gorm:"column:auth" json:"auth"`
	CreateDate time.Time `gorm:"column:create_date" json:"create_date"`
}

func (m *PushSubscription) TableName() string {
	return "push_subscriptions"
}
