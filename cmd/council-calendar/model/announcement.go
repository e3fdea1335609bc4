package model

import "time"

// Announcement is the single banner shown above the calendar. The table
// holds one row per published message; only the newest active one is served.
type Announcement struct {
	ID         string    `gorm:"column:id" json:"id"`
	Message    string    `gorm:"column:message" json:"message"`
	IsActive   bool      `gorm:"column:is_active" json:"is_active"`
	CreateDate time.Time `gorm:"column:create_date" json:"create_date"`
	UpdateDate time.Time `gorm:"column:update_date" json:"update_date"`
}

func (m *Announcement) TableName() string {
	return "announcements"
}
