package timetable

import (
	"math/rand"
	"time"
)

// Generate runs the full pipeline spec.md §2 describes: normalize the
// request, expand subjects into sessions, compute feasible candidates,
// then solve with either the strict or hybrid strategy, and assemble the
// readable response. Grounded on ScheduleGeneratorService.Generate's
// top-level flow (validate → build availability → seed/solve → assemble).
func Generate(req ScheduleRequest, budget time.Duration) ScheduleResponse {
	n := normalize(req)
	sessions := expandSessions(n)
	if len(sessions) == 0 {
		return infeasible("no sessions to schedule: check subjects and classes_per_week")
	}

	cand := candidateSet(n, sessions)

	switch req.Mode {
	case ModeHybrid:
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		m, preFilled := hybridSolve(n, sessions, cand, rng, budget)
		resp := assemble(n, sessions, m, "hybrid (greedy + solver)")
		resp.PreFilled = preFilled
		return resp
	default:
		m := strictSolve(n, sessions, cand, budget)
		return assemble(n, sessions, m, "strict")
	}
}

// strictSolve seeds the full model with every FixedSlot (validated against
// canPlace, unlike the hybrid pre-fill) and then hands the rest to the
// general-purpose solver.
func strictSolve(n *normalized, sessions []Session, cand map[string][]Candidate, budget time.Duration) *model {
	m := newModel(n, sessions, cand)
	consumed := seedFixedSlotsStrict(n, sessions, m)

	var remaining []Session
	for _, s := range sessions {
		if !consumed[s.ID] {
			remaining = append(remaining, s)
		}
	}

	if len(remaining) == 0 {
		return m
	}

	solved := solve(n, remaining, cand, budget)
	for _, s := range remaining {
		if p := solved.placement[s.ID]; p != nil && m.canPlace(s, p.Candidate) {
			m.place(s, p.Candidate, p.source)
		}
	}
	return m
}

// seedFixedSlotsStrict places every FixedSlot that is actually feasible
// given the resources already booked, silently skipping any fixed slot that
// is not among the session's candidates (unqualified or unavailable
// faculty, unknown or unsuitable room) or that collides with another fixed
// slot.
func seedFixedSlotsStrict(n *normalized, sessions []Session, m *model) map[string]bool {
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
			facultyID = firstQualifiedFaculty(n, fs.SubjectID)
		}
		roomID := fs.RoomID
		if roomID == "" {
			roomID = firstRoomOfAnyType(n)
		}
		if facultyID == "" || roomID == "" {
			continue
		}

		t := EncodeSlot(fs.Day, fs.Slot, n.slotsPerDay)
		c := Candidate{Timeslot: t, RoomID: roomID, FacultyID: facultyID}
		isCandidate := false
		for _, cc := range m.cand[match.ID] {
			if cc == c {
				isCandidate = true
				break
			}
		}
		if !isCandidate || !m.canPlace(*match, c) {
			continue
		}
		m.place(*match, c, "fixed")
		consumed[match.ID] = true
	}
	return consumed
}
