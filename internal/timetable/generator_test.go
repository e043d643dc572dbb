package timetable

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBudget = 500 * time.Millisecond

// Scenario: Trivial — a single batch/subject/faculty/room that fits
// comfortably within the horizon must schedule every session.
func TestGenerateTrivialSchedulesEverySession(t *testing.T) {
	resp := Generate(trivialRequest(), testBudget)

	require.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, 2, resp.ScheduledCount)
	assert.Empty(t, resp.Unscheduled)
	assert.Len(t, resp.TimetableMatrix, 2)
	for _, row := range resp.TimetableMatrix {
		assert.Len(t, row.Slots, 3)
	}
}

// Scenario: Capacity cull — a room too small for the batch must never be
// offered as a candidate, so the session goes unscheduled rather than
// overflow the room.
func TestGenerateCapacityCullLeavesSessionUnscheduled(t *testing.T) {
	req := trivialRequest()
	req.Classrooms = []Classroom{
		{ID: "tiny", Name: "Tiny Room", Capacity: 5, Type: "lecture"},
	}

	resp := Generate(req, testBudget)

	assert.Equal(t, 0, resp.ScheduledCount)
	assert.Len(t, resp.Unscheduled, 2)
}

// Scenario: Fixed slot honored — a pinned (day, slot) must appear in the
// resulting assignment at exactly that timeslot.
func TestGenerateFixedSlotHonored(t *testing.T) {
	req := trivialRequest()
	req.FixedSlots = []FixedSlot{
		{Day: 0, Slot: 1, SubjectID: "math", BatchID: "b1", FacultyID: "f1", RoomID: "r1"},
	}

	resp := Generate(req, testBudget)

	want := EncodeSlot(0, 1, req.SlotsPerDay)
	found := false
	for _, a := range resp.Assignments {
		if a.Timeslot == want {
			found = true
			assert.Equal(t, "fixed", a.Source)
			assert.Equal(t, "f1", a.FacultyID)
			assert.Equal(t, "r1", a.RoomID)
		}
	}
	assert.True(t, found, "fixed slot should appear in the assignment list")
}

// Scenario: Unplaceable fixed slot — a fixed slot naming a subject/batch
// pair with no remaining session must be dropped without error.
func TestGenerateUnplaceableFixedSlotDroppedSilently(t *testing.T) {
	req := trivialRequest()
	req.FixedSlots = []FixedSlot{
		{Day: 0, Slot: 0, SubjectID: "nonexistent", BatchID: "b1", FacultyID: "f1", RoomID: "r1"},
	}

	resp := Generate(req, testBudget)

	require.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, 2, resp.ScheduledCount)
}

// Scenario: Fully unavailable faculty — a faculty qualified for the subject but
// blocked at every timeslot must leave the subject's sessions unscheduled
// rather than violate its unavailability.
func TestGenerateFacultyExclusionLeavesSessionsUnscheduled(t *testing.T) {
	req := trivialRequest()
	blocked := make(map[int]struct{})
	for slot := 0; slot < len(req.Days)*req.SlotsPerDay; slot++ {
		blocked[slot] = struct{}{}
	}
	req.Faculties = []Faculty{
		{ID: "f1", Name: "Teacher 1", CanTeach: map[string]struct{}{"math": {}}, UnavailableSlots: blocked},
	}

	resp := Generate(req, testBudget)

	assert.Equal(t, 0, resp.ScheduledCount)
	assert.Len(t, resp.Unscheduled, 2)
}

// Scenario: Daily cap — a faculty with a tight daily cap
// must never be booked more than that many sessions on any single day.
func TestGenerateRespectsMaxClassesPerDay(t *testing.T) {
	req := ScheduleRequest{
		Days:             []string{"Mon"},
		SlotsPerDay:      6,
		MaxClassesPerDay: 1,
		Classrooms: []Classroom{
			{ID: "r1", Name: "Room 1", Capacity: 40, Type: "lecture"},
			{ID: "r2", Name: "Room 2", Capacity: 40, Type: "lecture"},
		},
		Batches: []Batch{
			{ID: "b1", Name: "Batch 1", Size: 30},
		},
		Subjects: []Subject{
			{ID: "math", Name: "Math", BatchID: "b1", ClassesPerWeek: 3},
		},
		Faculties: []Faculty{
			{ID: "f1", Name: "Teacher 1", CanTeach: map[string]struct{}{"math": {}}},
		},
	}

	resp := Generate(req, testBudget)

	perDay := map[int]int{}
	for _, a := range resp.Assignments {
		day, _ := DecodeSlot(a.Timeslot, req.SlotsPerDay)
		perDay[day]++
	}
	for day, count := range perDay {
		assert.LessOrEqualf(t, count, 1, "day %d exceeded max classes per day", day)
	}
}

// Property: no two assignments may share (timeslot, room), (timeslot,
// faculty), or (timeslot, batch) — the three hard exclusion constraints.
func TestGenerateNoResourceConflicts(t *testing.T) {
	req := ScheduleRequest{
		Days:             []string{"Mon", "Tue", "Wed"},
		SlotsPerDay:      4,
		MaxClassesPerDay: 4,
		Classrooms: []Classroom{
			{ID: "r1", Name: "Room 1", Capacity: 40, Type: "lecture"},
			{ID: "r2", Name: "Room 2", Capacity: 40, Type: "lecture"},
		},
		Batches: []Batch{
			{ID: "b1", Name: "Batch 1", Size: 30},
			{ID: "b2", Name: "Batch 2", Size: 20},
		},
		Subjects: []Subject{
			{ID: "math", Name: "Math", BatchID: "b1", ClassesPerWeek: 3},
			{ID: "phys", Name: "Physics", BatchID: "b2", ClassesPerWeek: 3},
		},
		Faculties: []Faculty{
			{ID: "f1", Name: "Teacher 1", CanTeach: map[string]struct{}{"math": {}, "phys": {}}},
		},
	}

	resp := Generate(req, testBudget)

	roomSlot := map[[2]string]bool{}
	facSlot := map[[2]string]bool{}
	batchSlot := map[[2]string]bool{}
	for _, a := range resp.Assignments {
		rk := [2]string{strconv.Itoa(a.Timeslot), a.RoomID}
		fk := [2]string{strconv.Itoa(a.Timeslot), a.FacultyID}
		bk := [2]string{strconv.Itoa(a.Timeslot), a.BatchID}
		require.False(t, roomSlot[rk], "room double-booked at timeslot")
		require.False(t, facSlot[fk], "faculty double-booked at timeslot")
		require.False(t, batchSlot[bk], "batch double-booked at timeslot")
		roomSlot[rk] = true
		facSlot[fk] = true
		batchSlot[bk] = true
	}
}

// Property: per-faculty load reported in FacultyLoads must equal the count
// of assignments actually carrying that faculty id.
func TestGenerateFacultyLoadsSumInvariant(t *testing.T) {
	resp := Generate(trivialRequest(), testBudget)

	counted := map[string]int{}
	for _, a := range resp.Assignments {
		counted[a.FacultyID]++
	}
	for fac, want := range counted {
		assert.Equal(t, want, resp.FacultyLoads[fac])
	}
}
