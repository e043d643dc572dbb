package service

import (
	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/repository"
	"github.com/noah-isme/timetable-api/internal/timetable"
)

// fromGenerateRequest converts the wire DTO into the core engine's input
// value object.
func fromGenerateRequest(req dto.GenerateTimetableRequest) timetable.ScheduleRequest {
	out := timetable.ScheduleRequest{
		Days:             req.Days,
		SlotsPerDay:      req.SlotsPerDay,
		MaxClassesPerDay: req.MaxClassesPerDay,
	}

	for _, c := range req.Classrooms {
		out.Classrooms = append(out.Classrooms, timetable.Classroom{
			ID: c.ID, Name: c.Name, Capacity: c.Capacity, Type: c.Type,
		})
	}
	for _, b := range req.Batches {
		out.Batches = append(out.Batches, timetable.Batch{ID: b.ID, Name: b.Name, Size: b.Size})
	}
	for _, s := range req.Subjects {
		out.Subjects = append(out.Subjects, timetable.Subject{
			ID: s.ID, Name: s.Name, BatchID: s.BatchID,
			ClassesPerWeek: s.ClassesPerWeek, PreferredRoomType: s.PreferredRoomType,
		})
	}
	for _, f := range req.Faculties {
		canTeach := make(map[string]struct{}, len(f.CanTeach))
		for _, subjID := range f.CanTeach {
			canTeach[subjID] = struct{}{}
		}
		unavailable := make(map[int]struct{}, len(f.UnavailableSlots))
		for _, slot := range f.UnavailableSlots {
			unavailable[slot] = struct{}{}
		}
		out.Faculties = append(out.Faculties, timetable.Faculty{
			ID: f.ID, Name: f.Name, CanTeach: canTeach, UnavailableSlots: unavailable,
		})
	}
	for _, fs := range req.FixedSlots {
		out.FixedSlots = append(out.FixedSlots, timetable.FixedSlot{
			Day: fs.Day, Slot: fs.Slot, SubjectID: fs.SubjectID, BatchID: fs.BatchID,
			FacultyID: fs.FacultyID, RoomID: fs.RoomID,
		})
	}
	return out
}

// mergeCatalog fills in whichever catalog collections the request left
// empty with rows loaded from Postgres — request-supplied entities always
// win, the database only fills gaps.
func mergeCatalog(req *timetable.ScheduleRequest, cat *repository.TimetableCatalog) {
	if len(req.Classrooms) == 0 {
		for _, r := range cat.Classrooms {
			req.Classrooms = append(req.Classrooms, timetable.Classroom{
				ID: r.ID, Name: r.Name, Capacity: r.Capacity, Type: r.Type,
			})
		}
	}
	if len(req.Batches) == 0 {
		for _, b := range cat.Batches {
			req.Batches = append(req.Batches, timetable.Batch{ID: b.ID, Name: b.Name, Size: b.Size})
		}
	}
	if len(req.Subjects) == 0 {
		for _, s := range cat.Subjects {
			req.Subjects = append(req.Subjects, timetable.Subject{
				ID: s.ID, Name: s.Name, BatchID: s.BatchID,
				ClassesPerWeek: s.ClassesPerWeek, PreferredRoomType: s.PreferredRoomType.String,
			})
		}
	}
	if len(req.Faculties) == 0 {
		canTeach := make(map[string]map[string]struct{})
		for _, fs := range cat.FacultySubjects {
			if canTeach[fs.FacultyID] == nil {
				canTeach[fs.FacultyID] = make(map[string]struct{})
			}
			canTeach[fs.FacultyID][fs.SubjectID] = struct{}{}
		}
		unavailable := make(map[string]map[int]struct{})
		for _, u := range cat.FacultyUnavailabilities {
			if unavailable[u.FacultyID] == nil {
				unavailable[u.FacultyID] = make(map[int]struct{})
			}
			unavailable[u.FacultyID][u.Timeslot] = struct{}{}
		}
		for _, f := range cat.Faculties {
			req.Faculties = append(req.Faculties, timetable.Faculty{
				ID: f.ID, Name: f.Name,
				CanTeach:         canTeach[f.ID],
				UnavailableSlots: unavailable[f.ID],
			})
		}
	}
	if len(req.FixedSlots) == 0 {
		for _, fs := range cat.FixedSlots {
			req.FixedSlots = append(req.FixedSlots, timetable.FixedSlot{
				Day: fs.Day, Slot: fs.Slot, SubjectID: fs.SubjectID, BatchID: fs.BatchID,
				FacultyID: fs.FacultyID.String, RoomID: fs.RoomID.String,
			})
		}
	}
}

// toTimetableResponse converts the core engine's output value object into
// the wire DTO, decoding each assignment's flat timeslot back into a
// (day, slot) pair for display.
func toTimetableResponse(resp timetable.ScheduleResponse) dto.GenerateTimetableResponse {
	out := dto.GenerateTimetableResponse{
		Status:         string(resp.Status),
		Message:        resp.Message,
		Method:         resp.Method,
		ScheduledCount: resp.ScheduledCount,
		PreFilled:      resp.PreFilled,
		FacultyLoads:   resp.FacultyLoads,
	}

	slotsPerDay := inferSlotsPerDay(resp)
	for _, a := range resp.Assignments {
		day, slot := timetable.DecodeSlot(a.Timeslot, slotsPerDay)
		out.Assignments = append(out.Assignments, dto.AssignmentView{
			SessionID: a.SessionID, SubjectID: a.SubjectID, BatchID: a.BatchID,
			Day: day, Slot: slot, RoomID: a.RoomID, FacultyID: a.FacultyID, Source: a.Source,
		})
	}
	for _, u := range resp.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, dto.UnscheduledView{
			SessionID: u.SessionID, SubjectID: u.SubjectID, BatchID: u.BatchID,
		})
	}
	for _, row := range resp.TimetableMatrix {
		view := dto.MatrixRowView{Day: row.Day}
		for _, cell := range row.Slots {
			if cell == nil {
				view.Slots = append(view.Slots, nil)
				continue
			}
			view.Slots = append(view.Slots, &dto.MatrixCellView{
				Subject: cell.Subject, Batch: cell.Batch, Faculty: cell.Faculty,
				Room: cell.Room, Source: cell.Source,
			})
		}
		out.TimetableMatrix = append(out.TimetableMatrix, view)
	}
	return out
}

// inferSlotsPerDay recovers the slots-per-day divisor from the already
// -built matrix, since ScheduleResponse itself doesn't carry it.
func inferSlotsPerDay(resp timetable.ScheduleResponse) int {
	if len(resp.TimetableMatrix) > 0 {
		return len(resp.TimetableMatrix[0].Slots)
	}
	return 1
}

func toCatalogResponse(cat *repository.TimetableCatalog) *dto.TimetableCatalogResponse {
	out := &dto.TimetableCatalogResponse{}
	for _, r := range cat.Classrooms {
		out.Classrooms = append(out.Classrooms, dto.ClassroomInput{ID: r.ID, Name: r.Name, Capacity: r.Capacity, Type: r.Type})
	}
	for _, b := range cat.Batches {
		out.Batches = append(out.Batches, dto.BatchInput{ID: b.ID, Name: b.Name, Size: b.Size})
	}
	for _, s := range cat.Subjects {
		out.Subjects = append(out.Subjects, dto.SubjectInput{
			ID: s.ID, Name: s.Name, BatchID: s.BatchID,
			ClassesPerWeek: s.ClassesPerWeek, PreferredRoomType: s.PreferredRoomType.String,
		})
	}
	canTeach := make(map[string][]string)
	for _, fs := range cat.FacultySubjects {
		canTeach[fs.FacultyID] = append(canTeach[fs.FacultyID], fs.SubjectID)
	}
	unavailable := make(map[string][]int)
	for _, u := range cat.FacultyUnavailabilities {
		unavailable[u.FacultyID] = append(unavailable[u.FacultyID], u.Timeslot)
	}
	for _, f := range cat.Faculties {
		out.Faculties = append(out.Faculties, dto.FacultyInput{
			ID: f.ID, Name: f.Name, CanTeach: canTeach[f.ID], UnavailableSlots: unavailable[f.ID],
		})
	}
	return out
}
