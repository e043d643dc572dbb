package timetable

const (
	defaultSlotsPerDay      = 6
	defaultMaxClassesPerDay = 4
	defaultRoomType         = "lecture"
)

var defaultDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// normalized carries the dense indices the rest of the pipeline works
// against, built once by normalize().
type normalized struct {
	req *ScheduleRequest

	days        []string
	slotsPerDay int
	maxPerDay   int
	horizon     int // D * slotsPerDay

	batchByID   map[string]Batch
	subjectByID map[string]Subject
	facultyByID map[string]Faculty
	roomByID    map[string]Classroom

	batchIndex   map[string]int
	facultyIndex map[string]int
	roomIndex    map[string]int
}

// normalize applies §4.1's defaults and builds id lookups. It performs no
// semantic validation beyond the invariants spec.md §3 already allows:
// unknown cross-references simply shrink candidate sets later on.
func normalize(req ScheduleRequest) *normalized {
	n := &normalized{req: &req}

	n.days = req.Days
	if len(n.days) == 0 {
		n.days = defaultDays
	}
	n.slotsPerDay = req.SlotsPerDay
	if n.slotsPerDay <= 0 {
		n.slotsPerDay = defaultSlotsPerDay
	}
	n.maxPerDay = req.MaxClassesPerDay
	if n.maxPerDay <= 0 {
		n.maxPerDay = defaultMaxClassesPerDay
	}
	n.horizon = len(n.days) * n.slotsPerDay

	n.batchByID = make(map[string]Batch, len(req.Batches))
	n.batchIndex = make(map[string]int, len(req.Batches))
	for i, b := range req.Batches {
		n.batchByID[b.ID] = b
		n.batchIndex[b.ID] = i
	}

	n.subjectByID = make(map[string]Subject, len(req.Subjects))
	for _, s := range req.Subjects {
		n.subjectByID[s.ID] = s
	}

	n.facultyByID = make(map[string]Faculty, len(req.Faculties))
	n.facultyIndex = make(map[string]int, len(req.Faculties))
	for i, f := range req.Faculties {
		n.facultyByID[f.ID] = f
		n.facultyIndex[f.ID] = i
	}

	n.roomByID = make(map[string]Classroom, len(req.Classrooms))
	n.roomIndex = make(map[string]int, len(req.Classrooms))
	for i, r := range req.Classrooms {
		if r.Type == "" {
			r.Type = defaultRoomType
		}
		n.roomByID[r.ID] = r
		n.roomIndex[r.ID] = i
	}

	return n
}

func (n *normalized) batchSize(subjectID string) int {
	subj, ok := n.subjectByID[subjectID]
	if !ok {
		return 0
	}
	batch, ok := n.batchByID[subj.BatchID]
	if !ok {
		return 0
	}
	return batch.Size
}
