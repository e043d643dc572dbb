package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type classroomRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
	Type     string `db:"room_type"`
}

type batchRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Size int    `db:"size"`
}

type subjectRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	BatchID           string         `db:"batch_id"`
	ClassesPerWeek    int            `db:"classes_per_week"`
	PreferredRoomType sql.NullString `db:"preferred_room_type"`
}

type facultyRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type facultySubjectRow struct {
	FacultyID string `db:"faculty_id"`
	SubjectID string `db:"subject_id"`
}

type facultyUnavailabilityRow struct {
	FacultyID string `db:"faculty_id"`
	Timeslot  int    `db:"timeslot"`
}

type fixedSlotRow struct {
	Day       int            `db:"day_of_week"`
	Slot      int            `db:"slot"`
	SubjectID string         `db:"subject_id"`
	BatchID   string         `db:"batch_id"`
	FacultyID sql.NullString `db:"faculty_id"`
	RoomID    sql.NullString `db:"room_id"`
}

// TimetableCatalog is the flattened shape of every catalog table the
// engine's input needs, read back from Postgres.
type TimetableCatalog struct {
	Classrooms              []classroomRow
	Batches                 []batchRow
	Subjects                []subjectRow
	Faculties               []facultyRow
	FacultySubjects         []facultySubjectRow
	FacultyUnavailabilities []facultyUnavailabilityRow
	FixedSlots              []fixedSlotRow
}

// TimetableCatalogRepository reads the classroom/batch/subject/faculty
// catalog that backs schedule generation when no inline catalog is
// supplied in the request — grounded on teacher_repository.go's sqlx
// query idiom, generalized from a single-entity repository to one that
// loads every catalog table a solve needs in one round trip each.
type TimetableCatalogRepository struct {
	db *sqlx.DB
}

// NewTimetableCatalogRepository constructs a TimetableCatalogRepository.
func NewTimetableCatalogRepository(db *sqlx.DB) *TimetableCatalogRepository {
	return &TimetableCatalogRepository{db: db}
}

// Load reads every catalog table in one shot. An empty table yields an
// empty slice (SelectContext does not report sql.ErrNoRows); any query
// error, including a missing table, fails the whole load.
func (r *TimetableCatalogRepository) Load(ctx context.Context) (*TimetableCatalog, error) {
	cat := &TimetableCatalog{}

	if err := r.db.SelectContext(ctx, &cat.Classrooms,
		`SELECT id, name, capacity, room_type FROM timetable_classrooms ORDER BY name`); err != nil {
		return nil, fmt.Errorf("load classrooms: %w", err)
	}
	if err := r.db.SelectContext(ctx, &cat.Batches,
		`SELECT id, name, size FROM timetable_batches ORDER BY name`); err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	if err := r.db.SelectContext(ctx, &cat.Subjects,
		`SELECT id, name, batch_id, classes_per_week, preferred_room_type FROM timetable_subjects ORDER BY name`); err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	if err := r.db.SelectContext(ctx, &cat.Faculties,
		`SELECT id, name FROM timetable_faculties ORDER BY name`); err != nil {
		return nil, fmt.Errorf("load faculties: %w", err)
	}
	if err := r.db.SelectContext(ctx, &cat.FacultySubjects,
		`SELECT faculty_id, subject_id FROM timetable_faculty_subjects`); err != nil {
		return nil, fmt.Errorf("load faculty subjects: %w", err)
	}
	if err := r.db.SelectContext(ctx, &cat.FacultyUnavailabilities,
		`SELECT faculty_id, timeslot FROM timetable_faculty_unavailabilities`); err != nil {
		return nil, fmt.Errorf("load faculty unavailabilities: %w", err)
	}
	if err := r.db.SelectContext(ctx, &cat.FixedSlots,
		`SELECT day_of_week, slot, subject_id, batch_id, faculty_id, room_id FROM timetable_fixed_slots`); err != nil {
		return nil, fmt.Errorf("load fixed slots: %w", err)
	}

	return cat, nil
}
