package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimetableCatalogRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimetableCatalogRepositoryLoad(t *testing.T) {
	db, mock, cleanup := newTimetableCatalogRepoMock(t)
	defer cleanup()
	repo := NewTimetableCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, capacity, room_type FROM timetable_classrooms")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "room_type"}).
			AddRow("r1", "Room 1", 40, "lecture"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, size FROM timetable_batches")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size"}).
			AddRow("b1", "Batch 1", 30))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, batch_id, classes_per_week, preferred_room_type FROM timetable_subjects")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "batch_id", "classes_per_week", "preferred_room_type"}).
			AddRow("math", "Math", "b1", 2, nil))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM timetable_faculties")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("f1", "Teacher 1"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT faculty_id, subject_id FROM timetable_faculty_subjects")).
		WillReturnRows(sqlmock.NewRows([]string{"faculty_id", "subject_id"}).
			AddRow("f1", "math"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT faculty_id, timeslot FROM timetable_faculty_unavailabilities")).
		WillReturnRows(sqlmock.NewRows([]string{"faculty_id", "timeslot"}))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT day_of_week, slot, subject_id, batch_id, faculty_id, room_id FROM timetable_fixed_slots")).
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "slot", "subject_id", "batch_id", "faculty_id", "room_id"}))

	cat, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Classrooms, 1)
	assert.Len(t, cat.Batches, 1)
	assert.Len(t, cat.Subjects, 1)
	assert.Len(t, cat.Faculties, 1)
	assert.Len(t, cat.FacultySubjects, 1)
	assert.Empty(t, cat.FacultyUnavailabilities)
	assert.Empty(t, cat.FixedSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}
