package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"council-calendar-backend/cmd/council-calendar/model"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock database: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("Failed to create GORM instance: %v", err)
	}

	return gormDB, mock
}

func eventColumns() []string {
	return []string{
		"id", "title", "description", "start_time", "end_time", "is_all_day",
		"category", "departments", "color_tag", "is_school_event",
		"create_date", "update_date",
	}
}

func eventRow(rows *sqlmock.Rows, id, title string, start time.Time, isSchoolEvent bool) *sqlmock.Rows {
	return rows.AddRow(
		id, title, "", start, nil, false,
		"meeting", "presidium", "#3b82f6", isSchoolEvent,
		start, start,
	)
}

func TestEventRepo_ListEventsInRange_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	rows := sqlmock.NewRows(eventColumns())
	eventRow(rows, "event-1", "First", start.Add(24*time.Hour), false)
	eventRow(rows, "event-2", "Second", start.Add(48*time.Hour), false)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WithArgs(start, end).
		WillReturnRows(rows)

	ctx := context.Background()
	events, err := repo.ListEventsInRange(ctx, start, end)

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "event-1", events[0].ID)
	assert.Equal(t, "First", events[0].Title)
	assert.Equal(t, model.CategoryMeeting, events[0].Category)
	assert.Equal(t, model.StringList{"presidium"}, events[0].Departments)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_ListEventsInRange_DatabaseError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnError(errors.New("database connection failed"))

	ctx := context.Background()
	events, err := repo.ListEventsInRange(ctx, time.Now().AddDate(0, -1, 0), time.Now())

	assert.Error(t, err)
	assert.Nil(t, events)
	assert.Contains(t, err.Error(), "database connection failed")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_GetEvent_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows(eventColumns()))

	ctx := context.Background()
	_, err := repo.GetEvent(ctx, "missing")

	assert.ErrorIs(t, err, ErrEventNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_CreateEvent_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	event := model.Event{
		ID:         "event-1",
		Title:      "Festival",
		StartTime:  time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		Category:   model.CategoryFestival,
		CreateDate: time.Now(),
		UpdateDate: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "events"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	created, err := repo.CreateEvent(ctx, event)

	assert.NoError(t, err)
	assert.Equal(t, "event-1", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_CreateEvents_SingleTransaction(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: "event-1", Title: "Weekly", StartTime: start},
		{ID: "event-2", Title: "Weekly", StartTime: start.AddDate(0, 0, 7)},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "events"`).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	ctx := context.Background()
	created, err := repo.CreateEvents(ctx, events)

	assert.NoError(t, err)
	assert.Len(t, created, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_CreateEvents_RollbackOnFailure(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	events := []model.Event{
		{ID: "event-1", Title: "Weekly", StartTime: time.Now()},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "events"`).
		WillReturnError(errors.New("database insert failed"))
	mock.ExpectRollback()

	ctx := context.Background()
	created, err := repo.CreateEvents(ctx, events)

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_UpdateEvent_SchoolEventRejected(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	rows := sqlmock.NewRows(eventColumns())
	eventRow(rows, "event-1", "Exam week", time.Now(), true)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(rows)

	title := "Renamed"
	ctx := context.Background()
	_, err := repo.UpdateEvent(ctx, "event-1", model.EventPatch{Title: &title})

	assert.ErrorIs(t, err, model.ErrSchoolEventFixed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_UpdateEvent_EmptyPatchReturnsCurrent(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	rows := sqlmock.NewRows(eventColumns())
	eventRow(rows, "event-1", "Meeting", time.Now(), false)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(rows)

	ctx := context.Background()
	current, err := repo.UpdateEvent(ctx, "event-1", model.EventPatch{})

	assert.NoError(t, err)
	assert.Equal(t, "Meeting", current.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_DeleteEvent_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	rows := sqlmock.NewRows(eventColumns())
	eventRow(rows, "event-1", "Meeting", time.Now(), false)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "events"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	err := repo.DeleteEvent(ctx, "event-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_DeleteEvent_SchoolEventRejected(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewEventRepo(gormDB)

	rows := sqlmock.NewRows(eventColumns())
	eventRow(rows, "event-1", "Exam week", time.Now(), true)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(rows)

	ctx := context.Background()
	err := repo.DeleteEvent(ctx, "event-1")

	assert.ErrorIs(t, err, model.ErrSchoolEventFixed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
