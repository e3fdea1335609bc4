package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_TableName(t *testing.T) {
	event := Event{}
	assert.Equal(t, "events", event.TableName())
}

func TestEvent_Validate_EmptyTitle(t *testing.T) {
	event := Event{
		Title:     "   ",
		StartTime: time.Now(),
	}
	assert.ErrorIs(t, event.Validate(), ErrEmptyTitle)
}

func TestEvent_Validate_EndBeforeStart(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	event := Event{
		Title:     "Meeting",
		StartTime: start,
		EndTime:   &end,
	}
	assert.ErrorIs(t, event.Validate(), ErrEndBeforeStart)
}

func TestEvent_Validate_UnknownCategory(t *testing.T) {
	event := Event{
		Title:     "Meeting",
		StartTime: time.Now(),
		Category:  EventCategory("party"),
	}
	assert.ErrorIs(t, event.Validate(), ErrUnknownCategory)
}

func TestEvent_Validate_Valid(t *testing.T) {
	end := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)
	event := Event{
		Title:       "Meeting",
		StartTime:   end.Add(-2 * time.Hour),
		EndTime:     &end,
		Category:    CategoryMeeting,
		Departments: StringList{"presidium"},
	}
	assert.NoError(t, event.Validate())
}

func TestEvent_JSONSerialization(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	event := Event{
		ID:        "event-1",
		Title:     "Festival",
		StartTime: start,
		IsAllDay:  true,
		Category:  CategoryFestival,
	}

	jsonData, err := json.Marshal(event)
	assert.NoError(t, err)
	assert.Contains(t, string(jsonData), `"id":"event-1"`)
	assert.Contains(t, string(jsonData), `"title":"Festival"`)
	assert.Contains(t, string(jsonData), `"is_all_day":true`)
	assert.NotContains(t, string(jsonData), `"end_time"`)

	var decoded Event
	err = json.Unmarshal(jsonData, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.Category, decoded.Category)
	assert.Nil(t, decoded.EndTime)
}

func TestEventPatch_Columns(t *testing.T) {
	title := "New title"
	start := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	patch := EventPatch{
		Title:     &title,
		StartTime: &start,
	}

	cols := patch.Columns()

	assert.Len(t, cols, 2)
	assert.Equal(t, title, cols["title"])
	assert.Equal(t, start, cols["start_time"])
}

func TestEventPatch_Columns_ClearEndTime(t *testing.T) {
	patch := EventPatch{ClearEndTime: true}

	cols := patch.Columns()

	val, ok := cols["end_time"]
	assert.True(t, ok)
	assert.Nil(t, val)
}

func TestEventPatch_Apply_MatchesColumns(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	event := Event{
		ID:        "event-1",
		Title:     "Old",
		StartTime: start,
		EndTime:   &end,
	}

	title := "New"
	newStart := start.AddDate(0, 0, 5)
	patched := EventPatch{Title: &title, StartTime: &newStart, ClearEndTime: true}.Apply(event)

	assert.Equal(t, "New", patched.Title)
	assert.Equal(t, newStart, patched.StartTime)
	assert.Nil(t, patched.EndTime)
	// Untouched fields survive.
	assert.Equal(t, "event-1", patched.ID)
	// The original is not mutated.
	assert.Equal(t, "Old", event.Title)
	assert.NotNil(t, event.EndTime)
}

func TestStringList_RoundTrip(t *testing.T) {
	list := StringList{"presidium", "media"}

	value, err := list.Value()
	assert.NoError(t, err)
	assert.Equal(t, "presidium,media", value)

	var decoded StringList
	err = decoded.Scan("presidium,media")
	assert.NoError(t, err)
	assert.Equal(t, list, decoded)
}

func TestStringList_EmptyAndNil(t *testing.T) {
	var empty StringList

	value, err := empty.Value()
	assert.NoError(t, err)
	assert.Equal(t, "", value)

	var decoded StringList
	assert.NoError(t, decoded.Scan(""))
	assert.Nil(t, decoded)
	assert.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryMeeting))
	assert.True(t, ValidCategory(CategorySchool))
	assert.False(t, ValidCategory(EventCategory("party")))
}
