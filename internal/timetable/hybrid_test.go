package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hybrid mode must still report a usable schedule for the trivial case —
// the reduced model's missing faculty-exclusion constraint only matters
// when two sessions can contend for the same faculty.
func TestGenerateHybridTrivial(t *testing.T) {
	req := trivialRequest()
	req.Mode = ModeHybrid

	resp := Generate(req, testBudget)

	require.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "hybrid (greedy + solver)", resp.Method)
	assert.Equal(t, 2, resp.ScheduledCount)
}

// A fixed slot is honored by the hybrid pre-fill exactly as in strict mode.
func TestGenerateHybridFixedSlotHonored(t *testing.T) {
	req := trivialRequest()
	req.Mode = ModeHybrid
	req.FixedSlots = []FixedSlot{
		{Day: 1, Slot: 2, SubjectID: "math", BatchID: "b1", FacultyID: "f1", RoomID: "r1"},
	}

	resp := Generate(req, testBudget)

	want := EncodeSlot(1, 2, req.SlotsPerDay)
	found := false
	for _, a := range resp.Assignments {
		if a.Timeslot == want {
			found = true
		}
	}
	assert.True(t, found)
}

// The greedy pre-fill places only the FIRST session of a single-subject
// faculty's load; later sessions of the same subject fall
// through to reducedSolve instead of being pre-filled alongside it.
func TestSingleSubjectPrefillPlacesOnlyFirstSession(t *testing.T) {
	req := trivialRequest() // math has ClassesPerWeek: 2, f1 teaches only math
	n := normalize(req)
	sessions := expandSessions(n)
	cand := candidateSet(n, sessions)

	m := newModel(n, sessions, cand)
	remaining, placedCount := singleSubjectPrefill(n, sessions, m, deterministicRNG())

	assert.Equal(t, 1, placedCount)
	assert.Len(t, remaining, 1)
}
