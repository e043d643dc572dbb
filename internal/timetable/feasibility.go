package timetable

// Candidate is one feasible (timeslot, room, faculty) triple for a session,
// after every static filter in this file has been applied.
type Candidate struct {
	Timeslot  int
	RoomID    string
	FacultyID string
}

// feasibleFaculty returns, for a subject, the faculties qualified to teach
// it — grounded on the teacher's teacherAvailability.CanTeach filter.
func feasibleFaculty(n *normalized, subjectID string) []Faculty {
	var out []Faculty
	for _, f := range n.req.Faculties {
		if _, ok := f.CanTeach[subjectID]; ok {
			out = append(out, f)
		}
	}
	return out
}

// feasibleRooms returns the rooms that can host a session: capacity must
// cover the batch size, and when the subject names a preferred room type
// the room must match it. A room with no declared type defaults to
// "lecture", the same default normalize applies to n.roomByID — applied
// here too since this filter reads the raw request rooms, not the
// normalized copy.
func feasibleRooms(n *normalized, sess Session) []Classroom {
	var out []Classroom
	for _, r := range n.req.Classrooms {
		if r.Capacity < sess.Size {
			continue
		}
		roomType := r.Type
		if roomType == "" {
			roomType = defaultRoomType
		}
		if sess.PreferredRoomType != "" && roomType != sess.PreferredRoomType {
			continue
		}
		out = append(out, r)
	}
	return out
}

// candidates builds the full static candidate set for one session: every
// (timeslot, room, faculty) triple that survives room capacity/type,
// faculty qualification, and faculty availability — mirroring the static
// filter loop the Python original runs before handing the model to
// OR-Tools.
func candidates(n *normalized, sess Session) []Candidate {
	faculties := feasibleFaculty(n, sess.SubjectID)
	rooms := feasibleRooms(n, sess)
	if len(faculties) == 0 || len(rooms) == 0 {
		return nil
	}

	var out []Candidate
	for t := 0; t < n.horizon; t++ {
		for _, f := range faculties {
			if _, blocked := f.UnavailableSlots[t]; blocked {
				continue
			}
			for _, r := range rooms {
				out = append(out, Candidate{Timeslot: t, RoomID: r.ID, FacultyID: f.ID})
			}
		}
	}
	return out
}

// candidateSet computes the candidate set for every session, keyed by
// session id.
func candidateSet(n *normalized, sessions []Session) map[string][]Candidate {
	set := make(map[string][]Candidate, len(sessions))
	for _, s := range sessions {
		set[s.ID] = candidates(n, s)
	}
	return set
}
