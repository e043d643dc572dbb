package timetable

import "fmt"

// expandSessions turns each Subject's classes_per_week into that many
// individual Session tokens, one per required weekly occurrence.
// Session ids are deterministic (subjectID#ordinal) rather than wall-clock
// based — see SPEC_FULL.md §6 for why this departs from the original.
func expandSessions(n *normalized) []Session {
	var sessions []Session
	for _, subj := range n.req.Subjects {
		size := n.batchSize(subj.ID)
		for i := 0; i < subj.ClassesPerWeek; i++ {
			sessions = append(sessions, Session{
				ID:                fmt.Sprintf("%s#%d", subj.ID, i),
				SubjectID:         subj.ID,
				BatchID:           subj.BatchID,
				PreferredRoomType: subj.PreferredRoomType,
				Size:              size,
				Ordinal:           i,
			})
		}
	}
	return sessions
}
