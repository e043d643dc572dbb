package timetable

// assemble turns a solved model into the public ScheduleResponse: a flat
// assignment list, the sessions that never got placed, per-faculty load
// totals, and the readable D×S matrix with every id resolved back to a
// display name — grounded on the Python original's "Build readable
// response" block and the teacher's ScheduleSlotProposal/matrix shape.
func assemble(n *normalized, sessions []Session, m *model, method string) ScheduleResponse {
	resp := ScheduleResponse{
		Status:       StatusOK,
		Method:       method,
		FacultyLoads: make(map[string]int, len(n.req.Faculties)),
	}

	for _, sess := range sessions {
		p := m.placement[sess.ID]
		if p == nil {
			resp.Unscheduled = append(resp.Unscheduled, UnscheduledSession{
				SessionID: sess.ID,
				SubjectID: sess.SubjectID,
				BatchID:   sess.BatchID,
			})
			continue
		}
		resp.Assignments = append(resp.Assignments, Assignment{
			SessionID: sess.ID,
			SubjectID: sess.SubjectID,
			BatchID:   sess.BatchID,
			Timeslot:  p.Timeslot,
			RoomID:    p.RoomID,
			FacultyID: p.FacultyID,
			Source:    p.source,
		})
	}
	resp.ScheduledCount = len(resp.Assignments)

	for facultyID, load := range m.facultyLoad {
		if load > 0 {
			resp.FacultyLoads[facultyID] = load
		}
	}

	resp.TimetableMatrix = buildMatrix(n, resp.Assignments)
	return resp
}

// buildMatrix lays the flat assignment list out into one row per day, one
// cell per slot, resolving every id to the display name callers expect in
// a readable timetable.
func buildMatrix(n *normalized, assignments []Assignment) []MatrixRow {
	rows := make([]MatrixRow, len(n.days))
	for d, name := range n.days {
		rows[d] = MatrixRow{Day: name, Slots: make([]*MatrixCell, n.slotsPerDay)}
	}

	for _, a := range assignments {
		day, slot := DecodeSlot(a.Timeslot, n.slotsPerDay)
		if day < 0 || day >= len(rows) || slot < 0 || slot >= n.slotsPerDay {
			continue
		}
		subj := n.subjectByID[a.SubjectID]
		batch := n.batchByID[a.BatchID]
		fac := n.facultyByID[a.FacultyID]
		room := n.roomByID[a.RoomID]

		rows[day].Slots[slot] = &MatrixCell{
			Subject: nameOrID(subj.Name, subj.ID),
			Batch:   nameOrID(batch.Name, batch.ID),
			Faculty: nameOrID(fac.Name, fac.ID),
			Room:    nameOrID(room.Name, room.ID),
			Source:  a.Source,
		}
	}
	return rows
}

// nameOrID resolves a display name, falling back to the id when the
// entity's name is empty — names are optional per the catalog's input
// contract, ids never are.
func nameOrID(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

// infeasible builds the terminal "could not schedule anything usable"
// response; Generate returns it when the request expands to no sessions at
// all.
func infeasible(message string) ScheduleResponse {
	return ScheduleResponse{
		Status:  StatusInfeasible,
		Message: message,
	}
}
