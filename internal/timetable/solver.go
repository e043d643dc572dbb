package timetable

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"
)

const (
	numSearchWorkers = 8

	// defaultStrictBudget and defaultHybridBudget are the solve wall-clock
	// fallbacks used when a caller passes a non-positive budget — §4.5/§6's
	// compile-time constants of 60s for the strict model and 5s for the
	// hybrid model's reduced-solve completion.
	defaultStrictBudget = 60 * time.Second
	defaultHybridBudget = 5 * time.Second

	saInitialTemp = 4.0
	saCoolingRate = 0.995
)

// solverResult is one worker's final model plus its objective value, so the
// caller can pick the best run.
type solverResult struct {
	m   *model
	obj int
}

// solve runs numSearchWorkers independent greedy-construction-plus-local-
// search attempts in parallel, racing a shared wall-clock budget, and
// returns the best-objective model found — grounded on the teacher's
// sync-guarded proposalStore idiom, generalized here to a worker fan-out
// coordinated with sync.WaitGroup instead of a mutex-protected cache.
func solve(n *normalized, sessions []Session, cand map[string][]Candidate, budget time.Duration) *model {
	if budget <= 0 {
		budget = defaultStrictBudget
	}
	deadline := time.Now().Add(budget)

	results := make([]solverResult, numSearchWorkers)
	var wg sync.WaitGroup
	for w := 0; w < numSearchWorkers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(worker) + 1))
			m := greedyConstruct(n, sessions, cand, rng)
			localSearch(m, n, sessions, cand, rng, deadline)
			results[worker] = solverResult{m: m, obj: m.objective()}
		}(w)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.obj > best.obj {
			best = r
		}
	}
	return best.m
}

// greedyConstruct places sessions most-constrained-first (fewest
// candidates), choosing at each step the candidate that keeps the
// assigning faculty's day load most even — the same day-balancing greedy
// the teacher's schedulerState.Assign performs, generalized from a single
// deterministic pass to one usable per search worker.
func greedyConstruct(n *normalized, sessions []Session, cand map[string][]Candidate, rng *rand.Rand) *model {
	m := newModel(n, sessions, cand)

	order := make([]Session, len(sessions))
	copy(order, sessions)
	sort.Slice(order, func(i, j int) bool {
		return len(cand[order[i].ID]) < len(cand[order[j].ID])
	})

	for _, sess := range order {
		options := cand[sess.ID]
		if len(options) == 0 {
			continue
		}
		shuffled := make([]Candidate, len(options))
		copy(shuffled, options)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		bestIdx := -1
		bestDayLoad := math.MaxInt32
		for i, c := range shuffled {
			if !m.canPlace(sess, c) {
				continue
			}
			day, _ := DecodeSlot(c.Timeslot, n.slotsPerDay)
			load := m.facultyDaily[c.FacultyID][day]
			if load < bestDayLoad {
				bestDayLoad = load
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			m.place(sess, shuffled[bestIdx], "greedy")
		}
	}
	return m
}

// localSearch runs a simulated-annealing-style pass over the construction:
// each iteration proposes moving one session to a different candidate (or
// placing an unscheduled one), accepting improving moves always and
// worsening moves with Metropolis probability exp(delta/T) — grounded on
// the temperature/acceptance loop shape of the simulated-annealing example
// in the pack, bounded here by a wall-clock deadline instead of a fixed
// iteration count.
func localSearch(m *model, n *normalized, sessions []Session, cand map[string][]Candidate, rng *rand.Rand, deadline time.Time) {
	temp := saInitialTemp
	for time.Now().Before(deadline) {
		sess := sessions[rng.Intn(len(sessions))]
		options := cand[sess.ID]
		if len(options) == 0 {
			continue
		}
		c := options[rng.Intn(len(options))]

		before := m.objective()
		prior := m.placement[sess.ID]
		wasPlaced := prior != nil

		if wasPlaced && prior.Candidate == c {
			continue
		}
		if wasPlaced {
			m.remove(sess)
		}
		if !m.canPlace(sess, c) {
			if wasPlaced {
				m.place(sess, prior.Candidate, prior.source)
			}
			temp *= saCoolingRate
			continue
		}
		m.place(sess, c, "search")
		after := m.objective()

		delta := after - before
		if delta >= 0 || acceptWorsening(rng, delta, temp) {
			// keep the move
		} else {
			m.remove(sess)
			if wasPlaced {
				m.place(sess, prior.Candidate, prior.source)
			}
		}
		temp *= saCoolingRate
		if temp < 0.01 {
			temp = saInitialTemp
		}
	}
}

func acceptWorsening(rng *rand.Rand, delta int, temp float64) bool {
	if temp <= 0 {
		return false
	}
	p := math.Exp(float64(delta) / temp)
	return rng.Float64() < p
}
