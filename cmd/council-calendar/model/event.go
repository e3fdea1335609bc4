package model

import (
	"errors"
	"strings"
	"time"
)

type EventCategory string

var (
	CategoryMeeting  EventCategory = "meeting"
	CategoryFestival EventCategory = "festival"
	CategoryNotice   EventCategory = "notice"
	CategorySchool   EventCategory = "school"
	CategoryOther    EventCategory = "other"
)

var Categories = []EventCategory{
	CategoryMeeting,
	CategoryFestival,
	CategoryNotice,
	CategorySchool,
	CategoryOther,
}

var Departments = []string{
	"presidium",
	"planning",
	"culture-sports",
	"career",
	"media",
	"welfare",
	"guidance",
}

const DefaultEventColor = "#3b82f6"

var (
	ErrEmptyTitle       = errors.New("event title must not be empty")
	ErrEndBeforeStart   = errors.New("event end time precedes start time")
	ErrUnknownCategory  = errors.New("event category is not in the allowed set")
	ErrSchoolEventFixed = errors.New("school events are read-only")
)

// Event is a calendar entry. For all-day events EndTime is stored as the
// exclusive day-after bound: a one-day all-day event has no EndTime or
// EndTime == StartTime + 24h.
type Event struct {
	ID            string        `gorm:"column:id" json:"id"`
	Title         string        `gorm:"column:title" json:"title"`
	Description   string        `gorm:"column:description" json:"description,omitempty"`
	StartTime     time.Time     `gorm:"column:start_time" json:"start_time"`
	EndTime       *time.Time    `gorm:"column:end_time" json:"end_time,omitempty"`
	IsAllDay      bool          `gorm:"column:is_all_day" json:"is_all_day"`
	Category      EventCategory `gorm:"column:category" json:"category,omitempty"`
	Departments   StringList    `gorm:"column:departments" json:"departments,omitempty"`
	ColorTag      string        `gorm:"column:color_tag" json:"color_tag,omitempty"`
	IsSchoolEvent bool          `gorm:"column:is_school_event" json:"is_school_event"`
	CreateDate    time.Time     `gorm:"column:create_date" json:"create_date"`
	UpdateDate    time.Time     `gorm:"column:update_date" json:"update_date"`
}

func (m *Event) TableName() string {
	return "events"
}

func (m *Event) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if m.EndTime != nil && m.EndTime.Before(m.StartTime) {
		return ErrEndBeforeStart
	}
	if m.Category != "" && !ValidCategory(m.Category) {
		return ErrUnknownCategory
	}
	return nil
}

func ValidCategory(c EventCategory) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// EventPatch carries a partial update. Nil fields are left untouched.
// ClearEndTime distinguishes "drop the end time" from "leave it alone",
// which a bare *time.Time cannot express.
type EventPatch struct {
	Title         *string        `json:"title,omitempty"`
	Description   *string        `json:"description,omitempty"`
	StartTime     *time.Time     `json:"start_time,omitempty"`
	EndTime       *time.Time     `json:"end_time,omitempty"`
	ClearEndTime  bool           `json:"clear_end_time,omitempty"`
	IsAllDay      *bool          `json:"is_all_day,omitempty"`
	Category      *EventCategory `json:"category,omitempty"`
	Departments   *StringList    `json:"departments,omitempty"`
	ColorTag      *string        `json:"color_tag,omitempty"`
	IsSchoolEvent *bool          `json:"is_school_event,omitempty"`
}

// Columns maps the set fields into gorm update columns.
func (p EventPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.StartTime != nil {
		cols["start_time"] = *p.StartTime
	}
	if p.EndTime != nil {
		cols["end_time"] = *p.EndTime
	} else if p.ClearEndTime {
		cols["end_time"] = nil
	}
	if p.IsAllDay != nil {
		cols["is_all_day"] = *p.IsAllDay
	}
	if p.Category != nil {
		cols["category"] = string(*p.Category)
	}
	if p.Departments != nil {
		cols["departments"] = *p.Departments
	}
	if p.ColorTag != nil {
		cols["color_tag"] = *p.ColorTag
	}
	if p.IsSchoolEvent != nil {
		cols["is_school_event"] = *p.IsSchoolEvent
	}
	return cols
}

// Apply merges the patch into a copy of the event, mirroring how Columns
// is applied server-side, so an optimistic cache entry matches the shape
// of the eventual canonical record.
func (p EventPatch) Apply(ev Event) Event {
	if p.Title != nil {
		ev.Title = *p.Title
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.StartTime != nil {
		ev.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		t := *p.EndTime
		ev.EndTime = &t
	} else if p.ClearEndTime {
		ev.EndTime = nil
	}
	if p.IsAllDay != nil {
		ev.IsAllDay = *p.IsAllDay
	}
	if p.Category != nil {
		ev.Category = *p.Category
	}
	if p.Departments != nil {
		ev.Departments = *p.Departments
	}
	if p.ColorTag != nil {
		ev.ColorTag = *p.ColorTag
	}
	if p.IsSchoolEvent != nil {
		ev.IsSchoolEvent = *p.IsSchoolEvent
	}
	return ev
}
