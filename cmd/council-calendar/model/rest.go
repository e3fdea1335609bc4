package model

import "time"

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type EventCreateRequest struct {
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	IsAllDay      bool          `json:"is_all_day"`
	Category      EventCategory `json:"category,omitempty"`
	Departments   StringList    `json:"departments,omitempty"`
	ColorTag      string        `json:"color_tag,omitempty"`
	IsSchoolEvent bool          `json:"is_school_event"`

	// Recurrence, applied at creation time only.
	RepeatMode  string     `json:"repeat_mode,omitempty"`
	RepeatUntil *time.Time `json:"repeat_until,omitempty"`
}

func (r EventCreateRequest) Event() Event {
	return Event{
		Title:         r.Title,
		Description:   r.Description,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		IsAllDay:      r.IsAllDay,
		Category:      r.Category,
		Departments:   r.Departments,
		ColorTag:      r.ColorTag,
		IsSchoolEvent: r.IsSchoolEvent,
	}
}

type AuthVerifyRequest struct {
	Code string `json:"code"`
}

type PushSubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

type PushUnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

type AnnouncementPutRequest struct {
	Message  string `json:"message"`
	IsActive bool   `json:"is_active"`
}
