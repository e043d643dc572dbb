package timetable

import "math/rand"

// deterministicRNG gives tests a fixed seed so the hybrid prefill's random
// room pick doesn't make assertions flaky.
func deterministicRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// trivialRequest builds the smallest feasible request: one batch, one
// subject needing two sessions a week, one qualified faculty, one room.
func trivialRequest() ScheduleRequest {
	return ScheduleRequest{
		Days:             []string{"Mon", "Tue"},
		SlotsPerDay:      3,
		MaxClassesPerDay: 4,
		Classrooms: []Classroom{
			{ID: "r1", Name: "Room 1", Capacity: 40, Type: "lecture"},
		},
		Batches: []Batch{
			{ID: "b1", Name: "Batch 1", Size: 30},
		},
		Subjects: []Subject{
			{ID: "math", Name: "Math", BatchID: "b1", ClassesPerWeek: 2},
		},
		Faculties: []Faculty{
			{ID: "f1", Name: "Teacher 1", CanTeach: map[string]struct{}{"math": {}}},
		},
	}
}
