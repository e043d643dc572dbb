package dto

// ClassroomInput describes a bookable teaching space in a generate request.
type ClassroomInput struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Type     string `json:"type"`
}

// BatchInput describes a cohort of students sharing a timetable.
type BatchInput struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Size int    `json:"size" validate:"required,min=1"`
}

// SubjectInput describes one subject's weekly demand for one batch.
type SubjectInput struct {
	ID                string `json:"id" validate:"required"`
	Name              string `json:"name" validate:"required"`
	BatchID           string `json:"batchId" validate:"required"`
	ClassesPerWeek    int    `json:"classesPerWeek" validate:"required,min=1"`
	PreferredRoomType string `json:"preferredRoomType"`
}

// FacultyInput describes a faculty's teaching qualifications and blocked
// timeslots.
type FacultyInput struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	CanTeach         []string `json:"canTeach" validate:"required,min=1"`
	UnavailableSlots []int    `json:"unavailableSlots" validate:"omitempty,dive,min=0"`
}

// FixedSlotInput pins a (subject, batch) pairing to a specific day/slot
// ahead of the solve.
type FixedSlotInput struct {
	Day       int    `json:"day" validate:"min=0"`
	Slot      int    `json:"slot" validate:"min=0"`
	SubjectID string `json:"subjectId" validate:"required"`
	BatchID   string `json:"batchId" validate:"required"`
	FacultyID string `json:"facultyId"`
	RoomID    string `json:"roomId"`
}

// GenerateTimetableRequest instructs the engine to build one week's
// schedule. Classrooms/Batches/Subjects/Faculties may all be omitted when
// the server's catalog repository is configured to supply them instead.
type GenerateTimetableRequest struct {
	Days             []string         `json:"days" validate:"omitempty,min=1"`
	SlotsPerDay      int              `json:"slotsPerDay" validate:"omitempty,min=1,max=16"`
	MaxClassesPerDay int              `json:"maxClassesPerDay" validate:"omitempty,min=1"`
	Classrooms       []ClassroomInput `json:"classrooms" validate:"omitempty,dive"`
	Batches          []BatchInput     `json:"batches" validate:"omitempty,dive"`
	Subjects         []SubjectInput   `json:"subjects" validate:"omitempty,dive"`
	Faculties        []FacultyInput   `json:"faculties" validate:"omitempty,dive"`
	FixedSlots       []FixedSlotInput `json:"fixedSlots" validate:"omitempty,dive"`
}

// AssignmentView is one placement in the flat assignment list.
type AssignmentView struct {
	SessionID string `json:"sessionId"`
	SubjectID string `json:"subjectId"`
	BatchID   string `json:"batchId"`
	Day       int    `json:"day"`
	Slot      int    `json:"slot"`
	RoomID    string `json:"roomId"`
	FacultyID string `json:"facultyId"`
	Source    string `json:"source,omitempty"`
}

// UnscheduledView describes a session that received no placement.
type UnscheduledView struct {
	SessionID string `json:"sessionId"`
	SubjectID string `json:"subjectId"`
	BatchID   string `json:"batchId"`
}

// MatrixCellView is one cell of the readable timetable matrix.
type MatrixCellView struct {
	Subject string `json:"subject"`
	Batch   string `json:"batch"`
	Faculty string `json:"faculty"`
	Room    string `json:"room"`
	Source  string `json:"source,omitempty"`
}

// MatrixRowView is one day's row of the readable timetable matrix.
type MatrixRowView struct {
	Day   string            `json:"day"`
	Slots []*MatrixCellView `json:"slots"`
}

// GenerateTimetableResponse is the wire shape of a solved (or infeasible)
// schedule attempt.
type GenerateTimetableResponse struct {
	ProposalID      string            `json:"proposalId,omitempty"`
	Status          string            `json:"status"`
	Message         string            `json:"message,omitempty"`
	Method          string            `json:"method,omitempty"`
	ScheduledCount  int               `json:"scheduledCount"`
	PreFilled       int               `json:"preFilled,omitempty"`
	Assignments     []AssignmentView  `json:"assignments,omitempty"`
	Unscheduled     []UnscheduledView `json:"unscheduled,omitempty"`
	FacultyLoads    map[string]int    `json:"facultyLoads,omitempty"`
	TimetableMatrix []MatrixRowView   `json:"timetableMatrix,omitempty"`
}

// TimetableCatalogResponse returns the classrooms/batches/subjects/
// faculties the server has on file, for clients building a request
// without duplicating the whole catalog client-side.
type TimetableCatalogResponse struct {
	Classrooms []ClassroomInput `json:"classrooms"`
	Batches    []BatchInput     `json:"batches"`
	Subjects   []SubjectInput   `json:"subjects"`
	Faculties  []FacultyInput   `json:"faculties"`
}
