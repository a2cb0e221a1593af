package services

import (
	"fmt"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
)

// ResolveResult summarises an auto-resolve run
type ResolveResult struct {
	Message            string       `json:"message"`
	ResolvedCount      int          `json:"resolved"`
	RemainingConflicts []Conflict   `json:"remainingConflicts"`
	Moved              []model.Exam `json:"-"`
}

// AutoResolver moves DRAFT exams of a scope to other slots or dates until no
// single move lowers the conflict count any further.
type AutoResolver struct {
	policy   Policy
	detector *ConflictDetector
}

func NewAutoResolver(policy Policy, detector *ConflictDetector) *AutoResolver {
	return &AutoResolver{policy: policy, detector: detector}
}

type placement struct {
	date string
	slot TimeSlot
}

// Resolve works on a copy of exams and never mutates the input. exams should
// hold every stored exam; published ones are treated as fixed obstacles.
func (r *AutoResolver) Resolve(scope Scope, exams []model.Exam) ResolveResult {
	working := make([]model.Exam, len(exams))
	copy(working, exams)

	index := make(map[string]int, len(working))
	for i := range working {
		index[working[i].ID] = i
	}

	current := r.detector.Detect(scope, working)
	initial := len(current)
	if initial == 0 {
		return ResolveResult{Message: "No conflicts to resolve", RemainingConflicts: current}
	}

	for progress := true; progress && len(current) > 0; {
		progress = false
	scan:
		for _, conflict := range current {
			for _, id := range []string{conflict.ExamID2, conflict.ExamID1} {
				i, ok := index[id]
				if !ok || !working[i].IsDraft() || !scope.Matches(&working[i]) {
					continue
				}
				if next, moved := r.tryMove(scope, working, i, conflict.Type, current); moved {
					current = next
					progress = true
					break scan
				}
			}
		}
	}

	var moved []model.Exam
	for i := range working {
		before, after := exams[i], working[i]
		if before.ExamDate != after.ExamDate || before.StartTime != after.StartTime || before.EndTime != after.EndTime {
			moved = append(moved, after)
		}
	}

	remaining := len(current)
	resolved := initial - remaining
	result := ResolveResult{
		ResolvedCount:      resolved,
		RemainingConflicts: current,
		Moved:              moved,
	}
	switch {
	case remaining == 0:
		result.Message = fmt.Sprintf("Resolved %d conflict(s)", resolved)
	case resolved == 0:
		result.Message = fmt.Sprintf("Could not resolve %d conflict(s) automatically", remaining)
	default:
		result.Message = fmt.Sprintf("Resolved %d of %d conflict(s); %d remain", resolved, initial, remaining)
	}
	return result
}

// tryMove places working[i] at the first candidate that strictly shrinks the
// conflict set without introducing a new conflict. working[i] is left
// unchanged when no candidate qualifies.
func (r *AutoResolver) tryMove(scope Scope, working []model.Exam, i int, reason ConflictType, current []Conflict) ([]Conflict, bool) {
	original := working[i]
	known := make(map[string]bool, len(current))
	for _, c := range current {
		known[pairKey(c)] = true
	}

	for _, p := range r.placements(reason, &original) {
		candidate := original
		candidate.ExamDate = p.date
		candidate.StartTime = p.slot.Start
		candidate.EndTime = p.slot.End
		candidate.DurationMinutes = p.slot.Duration
		if r.blocked(&candidate, working) {
			continue
		}

		working[i] = candidate
		next := r.detector.Detect(scope, working)
		if len(next) < len(current) && subsetOf(next, known) {
			return next, true
		}
		working[i] = original
	}
	return current, false
}

// placements lists candidate dates and slots for exam in search order.
// Overlap conflicts try the same day first, load conflicts spread outwards.
func (r *AutoResolver) placements(reason ConflictType, exam *model.Exam) []placement {
	horizon := r.policy.ResolveHorizonDays
	var offsets []int
	switch reason {
	case ConflictStudent, ConflictHall, ConflictFaculty:
		for d := 0; d <= horizon; d++ {
			offsets = append(offsets, d)
		}
	case ConflictDailyLimit:
		for d := 1; d <= horizon; d++ {
			offsets = append(offsets, d)
		}
	default:
		for d := 1; d <= horizon; d++ {
			offsets = append(offsets, d, -d)
		}
	}

	var out []placement
	for _, offset := range offsets {
		day, err := parseDate(exam.ExamDate)
		if err != nil {
			return nil
		}
		day = day.AddDate(0, 0, offset)
		if r.policy.isExcluded(day.Weekday()) {
			continue
		}
		date := day.Format(dateLayout)
		for _, slot := range r.policy.TimeSlots {
			if offset == 0 && slot.Start == exam.StartTime && slot.End == exam.EndTime {
				continue
			}
			out = append(out, placement{date: date, slot: slot})
		}
	}
	return out
}

// blocked reports whether candidate collides with a published exam or would
// exceed the daily exam-type limit counting exams of every status.
func (r *AutoResolver) blocked(candidate *model.Exam, exams []model.Exam) bool {
	sameType := 0
	for i := range exams {
		other := &exams[i]
		if other.ID == candidate.ID {
			continue
		}
		if other.SameCohort(candidate) && other.ExamDate == candidate.ExamDate && other.ExamType == candidate.ExamType {
			sameType++
		}
		if other.IsDraft() || !other.Overlaps(candidate) {
			continue
		}
		if other.SameCohort(candidate) {
			return true
		}
		if hall := normalizeResource(candidate.HallID); hall != "" && hall == normalizeResource(other.HallID) {
			return true
		}
		if coordinator := normalizeResource(candidate.TestCoordinator); coordinator != "" && coordinator == normalizeResource(other.TestCoordinator) {
			return true
		}
	}
	return r.policy.DailyTypeLimit > 0 && sameType >= r.policy.DailyTypeLimit
}

// pairKey ignores member order because a move can swap which exam comes first
func pairKey(c Conflict) string {
	a, b := c.ExamID1, c.ExamID2
	if b < a {
		a, b = b, a
	}
	return string(c.Type) + "|" + a + "|" + b
}

func subsetOf(conflicts []Conflict, known map[string]bool) bool {
	for _, c := range conflicts {
		if !known[pairKey(c)] {
			return false
		}
	}
	return true
}
