package timetable

// Objective weights: scheduled count dominates utilization, which in turn
// dominates load balance — a lexicographic ordering folded into a single
// weighted sum via well-separated magnitudes.
const (
	weightScheduled   = 1000
	weightUtilization = 10
)

// model holds the Boolean placement state for every session together with
// the resource-exclusion bookkeeping needed to check a candidate in O(1):
// one decision variable per (session, timeslot, room, faculty) candidate,
// realized here as a single "current candidate or none" per session plus
// per-timeslot occupancy maps rather than an explicit variable matrix —
// the two are equivalent, this one just doesn't allocate a cell for every
// infeasible triple.
type model struct {
	n    *normalized
	cand map[string][]Candidate

	placement map[string]*placed // sessionID -> current candidate, nil if unscheduled

	roomBusy    map[int]map[string]bool // timeslot -> roomID -> occupied
	facultyBusy map[int]map[string]bool // timeslot -> facultyID -> occupied
	batchBusy   map[int]map[string]bool // timeslot -> batchID -> occupied

	facultyDaily map[string]map[int]int // facultyID -> day -> count
	facultyLoad  map[string]int         // facultyID -> total scheduled sessions
	batchDaily   map[string]map[int]int // batchID -> day -> count
}

type placed struct {
	Candidate
	source string
}

func newModel(n *normalized, sessions []Session, cand map[string][]Candidate) *model {
	m := &model{
		n:            n,
		cand:         cand,
		placement:    make(map[string]*placed, len(sessions)),
		roomBusy:     make(map[int]map[string]bool),
		facultyBusy:  make(map[int]map[string]bool),
		batchBusy:    make(map[int]map[string]bool),
		facultyDaily: make(map[string]map[int]int),
		facultyLoad:  make(map[string]int),
		batchDaily:   make(map[string]map[int]int),
	}
	for _, s := range sessions {
		m.placement[s.ID] = nil
	}
	for _, f := range n.req.Faculties {
		m.facultyDaily[f.ID] = make(map[int]int)
	}
	for _, b := range n.req.Batches {
		m.batchDaily[b.ID] = make(map[int]int)
	}
	return m
}

// canPlace reports whether c is currently free for sess: the room, the
// faculty, and the session's own batch must all be unbooked at c.Timeslot,
// and placing it must not push the faculty or the batch over the daily cap
// — §4.4's daily caps apply identically to every batch, not just faculties.
func (m *model) canPlace(sess Session, c Candidate) bool {
	if m.roomBusy[c.Timeslot][c.RoomID] {
		return false
	}
	if m.facultyBusy[c.Timeslot][c.FacultyID] {
		return false
	}
	if m.batchBusy[c.Timeslot][sess.BatchID] {
		return false
	}
	day, _ := DecodeSlot(c.Timeslot, m.n.slotsPerDay)
	if m.facultyDaily[c.FacultyID][day] >= m.n.maxPerDay {
		return false
	}
	if m.batchDaily[sess.BatchID][day] >= m.n.maxPerDay {
		return false
	}
	return true
}

// place books c for sess, marking every exclusive resource occupied. It
// does not check canPlace — callers that need the conflict and daily-cap
// checks must call it first. The strict path always does; the hybrid
// pre-fill calls place directly, so its fixed and greedy placements skip
// every check.
func (m *model) place(sess Session, c Candidate, source string) {
	if m.placement[sess.ID] != nil {
		m.remove(sess)
	}
	m.placement[sess.ID] = &placed{Candidate: c, source: source}
	if m.facultyDaily[c.FacultyID] == nil {
		m.facultyDaily[c.FacultyID] = make(map[int]int)
	}
	if m.batchDaily[sess.BatchID] == nil {
		m.batchDaily[sess.BatchID] = make(map[int]int)
	}

	m.bookRoom(c.Timeslot, c.RoomID, true)
	m.bookFaculty(c.Timeslot, c.FacultyID, true)
	m.bookBatch(c.Timeslot, sess.BatchID, true)

	day, _ := DecodeSlot(c.Timeslot, m.n.slotsPerDay)
	m.facultyDaily[c.FacultyID][day]++
	m.facultyLoad[c.FacultyID]++
	m.batchDaily[sess.BatchID][day]++
}

// remove undoes a prior placement for sess, freeing its resources.
func (m *model) remove(sess Session) {
	p := m.placement[sess.ID]
	if p == nil {
		return
	}
	m.placement[sess.ID] = nil

	m.bookRoom(p.Timeslot, p.RoomID, false)
	m.bookFaculty(p.Timeslot, p.FacultyID, false)
	m.bookBatch(p.Timeslot, sess.BatchID, false)

	day, _ := DecodeSlot(p.Timeslot, m.n.slotsPerDay)
	m.facultyDaily[p.FacultyID][day]--
	m.facultyLoad[p.FacultyID]--
	m.batchDaily[sess.BatchID][day]--
}

func (m *model) bookRoom(t int, id string, occupied bool) {
	if m.roomBusy[t] == nil {
		m.roomBusy[t] = make(map[string]bool)
	}
	m.setOrClear(m.roomBusy[t], id, occupied)
}

func (m *model) bookFaculty(t int, id string, occupied bool) {
	if m.facultyBusy[t] == nil {
		m.facultyBusy[t] = make(map[string]bool)
	}
	m.setOrClear(m.facultyBusy[t], id, occupied)
}

func (m *model) bookBatch(t int, id string, occupied bool) {
	if m.batchBusy[t] == nil {
		m.batchBusy[t] = make(map[string]bool)
	}
	m.setOrClear(m.batchBusy[t], id, occupied)
}

func (*model) setOrClear(mm map[string]bool, id string, occupied bool) {
	if occupied {
		mm[id] = true
	} else {
		delete(mm, id)
	}
}

// scheduledCount is the reified "is this session scheduled" indicator,
// summed — the dominant term of the objective.
func (m *model) scheduledCount() int {
	n := 0
	for _, p := range m.placement {
		if p != nil {
			n++
		}
	}
	return n
}

// maxLoad is the highest per-faculty session count currently booked; used
// by the objective's load-balance term, encoded as a max-via-inequality
// over facultyLoad rather than a dedicated variable.
func (m *model) maxLoad() int {
	max := 0
	for _, load := range m.facultyLoad {
		if load > max {
			max = load
		}
	}
	return max
}

// utilization is Σ u_{b,t}: the count of distinct (batch, timeslot) pairs
// that hold at least one assignment. Batch exclusivity means each pair
// holds at most one, so this is a plain count of occupied batchBusy
// entries rather than a genuine OR-of-several-variables reduction.
func (m *model) utilization() int {
	n := 0
	for _, occupied := range m.batchBusy {
		n += len(occupied)
	}
	return n
}

// objective is the weighted sum the search maximizes: scheduled sessions
// first, then slot utilization, then tighter load balance (lower max load
// is better, so it enters negatively with coefficient 1, pinning M to the
// true max as it's maximized away).
func (m *model) objective() int {
	return weightScheduled*m.scheduledCount() - m.maxLoad() + weightUtilization*m.utilization()
}
