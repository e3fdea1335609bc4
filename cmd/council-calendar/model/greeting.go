package model

import "time"

// RosterMember is one student on the morning-greeting duty roster.
type RosterMember struct {
	ID         string    `gorm:"column:id" json:"id"`
	Name       string    `gorm:"column:name" json:"name"`
	Department string    `gorm:"column:department" json:"department"`
	CreateDate time.Time `gorm:"column:create_date" json:"create_date"`
}

func (m *RosterMember) TableName() string {
	return "roster_members"
}

// RosterMemberCSV is the upload row format for the duty roster.
type RosterMemberCSV struct {
	Name       string `csv:"name"`
	Department string `csv:"department"`
}

// AttendanceRecord marks one member checked in for morning greeting on a
// given day. Day is a date-only value, midnight local time.
type AttendanceRecord struct {
	ID         string    `gorm:"column:id" json:"id"`
	MemberID   string    `gorm:"column:member_id" json:"member_id"`
	Day        time.Time `gorm:"column:day" json:"day"`
	CreateDate time.Time `gorm:"column:create_date" json:"create_date"`
}

func (m *AttendanceRecord) TableName() string {
	return "attendance_records"
}
