package timetable

import (
	"math/rand"
	"time"
)

// hybridSolve implements the two-stage strategy §4.7-4.8 describe: a
// greedy pre-fill pass ported line-for-line from the Python original's
// greedy_prefill(), followed by a reduced pass whose only conflict check
// is "each room holds at most one session per slot" — deliberately
// omitting the faculty and batch exclusion the strict model carries. Each
// remaining session is placed at most once; one with no free room among
// its candidates stays unscheduled. This is the one place in the engine that
// reproduces the original's known hazards rather than fixing them: no
// capacity or availability check during pre-fill, a random room pick, and
// placing only the first session of any single-subject faculty's load.
// SPEC_FULL.md §6 calls this out as behavior to preserve for parity, not a
// bug to silently correct.
func hybridSolve(n *normalized, sessions []Session, cand map[string][]Candidate, rng *rand.Rand, budget time.Duration) (*model, int) {
	m := newModel(n, sessions, cand)

	remaining := fixedSlotPrefill(n, sessions, m)
	remaining, preFilled := singleSubjectPrefill(n, remaining, m, rng)

	reducedSolve(n, remaining, cand, m, budget)

	return m, preFilled
}

// fixedSlotPrefill forces every FixedSlot onto its matching session,
// consuming the first not-yet-consumed session for that (subject, batch)
// pair. It does not consult canPlace at all — a fixed slot is honored even
// if it collides with something else, matching the original's unchecked
// reservation pass. A fixed slot with no matching session is dropped
// silently (see SPEC_FULL.md §6).
func fixedSlotPrefill(n *normalized, sessions []Session, m *model) []Session {
	consumed := make(map[string]bool, len(sessions))

	for _, fs := range n.req.FixedSlots {
		var match *Session
		for i := range sessions {
			s := &sessions[i]
			if consumed[s.ID] || s.SubjectID != fs.SubjectID || s.BatchID != fs.BatchID {
				continue
			}
			match = s
			break
		}
		if match == nil {
			continue
		}

		facultyID := fs.FacultyID
		if facultyID == "" {
			if fac := firstQualifiedFaculty(n, fs.SubjectID); fac != "" {
				facultyID = fac
			}
		}
		roomID := fs.RoomID
		if roomID == "" {
			if r := firstRoomOfAnyType(n); r != "" {
				roomID = r
			}
		}
		if facultyID == "" || roomID == "" {
			continue
		}

		t := EncodeSlot(fs.Day, fs.Slot, n.slotsPerDay)
		m.place(*match, Candidate{Timeslot: t, RoomID: roomID, FacultyID: facultyID}, "fixed")
		consumed[match.ID] = true
	}

	var remaining []Session
	for _, s := range sessions {
		if !consumed[s.ID] {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

// singleSubjectPrefill mirrors greedy_prefill's single-subject shortcut:
// a faculty qualified to teach exactly one subject gets only the FIRST of
// that subject's remaining sessions placed here, into the first
// currently-free-for-this-faculty timeslot, in a room chosen at random
// rather than by capacity or type. Any later session of the same subject
// is left for the reduced model. This under-places on purpose.
func singleSubjectPrefill(n *normalized, sessions []Session, m *model, rng *rand.Rand) ([]Session, int) {
	handled := make(map[string]bool)
	placedCount := 0

	for _, f := range n.req.Faculties {
		if len(f.CanTeach) != 1 {
			continue
		}
		var subjectID string
		for s := range f.CanTeach {
			subjectID = s
		}

		var first *Session
		for i := range sessions {
			s := &sessions[i]
			if s.SubjectID == subjectID && !handled[s.ID] {
				first = s
				break
			}
		}
		if first == nil {
			continue
		}

		t := firstFreeTimeslotForFaculty(n, m, f.ID)
		if t < 0 {
			continue
		}
		if len(n.req.Classrooms) == 0 {
			continue
		}
		room := n.req.Classrooms[rng.Intn(len(n.req.Classrooms))]

		m.place(*first, Candidate{Timeslot: t, RoomID: room.ID, FacultyID: f.ID}, "greedy")
		handled[first.ID] = true
		placedCount++
	}

	var remaining []Session
	for _, s := range sessions {
		if !handled[s.ID] {
			remaining = append(remaining, s)
		}
	}
	return remaining, placedCount
}

func firstFreeTimeslotForFaculty(n *normalized, m *model, facultyID string) int {
	for t := 0; t < n.horizon; t++ {
		if !m.facultyBusy[t][facultyID] {
			return t
		}
	}
	return -1
}

func firstQualifiedFaculty(n *normalized, subjectID string) string {
	for _, f := range n.req.Faculties {
		if _, ok := f.CanTeach[subjectID]; ok {
			return f.ID
		}
	}
	return ""
}

func firstRoomOfAnyType(n *normalized) string {
	if len(n.req.Classrooms) == 0 {
		return ""
	}
	return n.req.Classrooms[0].ID
}

// reducedSolve completes the remaining sessions under the reduced model:
// each session goes into its first candidate whose room is free at that
// slot, at most once. A session with no such candidate, or not reached
// before the budget runs out, stays unscheduled. No faculty exclusion, no
// batch exclusion and no daily cap are enforced here — that asymmetry
// with the strict model's canPlace is the point of the reduced model.
func reducedSolve(n *normalized, sessions []Session, cand map[string][]Candidate, m *model, budget time.Duration) {
	if len(sessions) == 0 {
		return
	}
	if budget <= 0 {
		budget = defaultHybridBudget
	}
	deadline := time.Now().Add(budget)

	for _, sess := range sessions {
		for _, c := range cand[sess.ID] {
			if m.roomBusy[c.Timeslot][c.RoomID] {
				continue
			}
			m.place(sess, c, "solver")
			break
		}
		if time.Now().After(deadline) {
			break
		}
	}
}
