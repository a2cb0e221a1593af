package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
)

// ConflictType names a scheduling rule
type ConflictType string

const (
	ConflictStudent    ConflictType = "STUDENT"
	ConflictHall       ConflictType = "HALL"
	ConflictFaculty    ConflictType = "FACULTY"
	ConflictSameDay    ConflictType = "SAME_DAY"
	ConflictMaxLoad    ConflictType = "MAX_LOAD"
	ConflictDailyLimit ConflictType = "DAILY_LIMIT"
)

var conflictRank = map[ConflictType]int{
	ConflictStudent:    0,
	ConflictHall:       1,
	ConflictFaculty:    2,
	ConflictSameDay:    3,
	ConflictMaxLoad:    4,
	ConflictDailyLimit: 5,
}

// Conflict is a rule violation between two draft exams. ExamID1 is always the
// earlier booking by date, start time and id.
type Conflict struct {
	Type    ConflictType `json:"type"`
	ExamID1 string       `json:"examId1"`
	ExamID2 string       `json:"examId2"`
	Message string       `json:"message"`
}

// ConflictDetector computes the conflicts of a scope. It holds no state besides
// the policy, so concurrent calls are safe.
type ConflictDetector struct {
	policy Policy
}

func NewConflictDetector(policy Policy) *ConflictDetector {
	return &ConflictDetector{policy: policy}
}

// Detect returns the conflicts among DRAFT exams that touch scope. exams should
// hold every stored exam so that hall and coordinator clashes with other
// cohorts are found; non-draft exams are ignored.
func (d *ConflictDetector) Detect(scope Scope, exams []model.Exam) []Conflict {
	drafts := make([]*model.Exam, 0, len(exams))
	for i := range exams {
		if exams[i].IsDraft() {
			drafts = append(drafts, &exams[i])
		}
	}
	sortByPosition(drafts)

	position := make(map[string]int, len(drafts))
	for i, e := range drafts {
		position[e.ID] = i
	}

	var conflicts []Conflict
	conflicts = append(conflicts, d.pairConflicts(scope, drafts)...)

	var scoped []*model.Exam
	for _, e := range drafts {
		if scope.Matches(e) {
			scoped = append(scoped, e)
		}
	}
	conflicts = append(conflicts, d.sameDayConflicts(scoped)...)
	conflicts = append(conflicts, d.maxLoadConflicts(scoped)...)
	conflicts = append(conflicts, d.dailyLimitConflicts(scoped)...)

	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if pa, pb := position[a.ExamID1], position[b.ExamID1]; pa != pb {
			return pa < pb
		}
		if pa, pb := position[a.ExamID2], position[b.ExamID2]; pa != pb {
			return pa < pb
		}
		return conflictRank[a.Type] < conflictRank[b.Type]
	})
	if conflicts == nil {
		conflicts = []Conflict{}
	}
	return conflicts
}

// pairConflicts finds overlapping pairs. drafts must be sorted by position so
// the inner loop can stop at the first exam that starts after a ends.
func (d *ConflictDetector) pairConflicts(scope Scope, drafts []*model.Exam) []Conflict {
	var conflicts []Conflict
	for i, a := range drafts {
		for _, b := range drafts[i+1:] {
			if b.ExamDate != a.ExamDate || b.StartTime >= a.EndTime {
				break
			}
			if !scope.Matches(a) && !scope.Matches(b) {
				continue
			}
			if !a.Overlaps(b) {
				continue
			}
			if a.SameCohort(b) {
				conflicts = append(conflicts, Conflict{
					Type:    ConflictStudent,
					ExamID1: a.ID,
					ExamID2: b.ID,
					Message: fmt.Sprintf("%s & %s are scheduled at the same time.", a.CourseName, b.CourseName),
				})
			}
			if hall := normalizeResource(a.HallID); hall != "" && hall == normalizeResource(b.HallID) {
				conflicts = append(conflicts, Conflict{
					Type:    ConflictHall,
					ExamID1: a.ID,
					ExamID2: b.ID,
					Message: fmt.Sprintf("%s & %s share hall %s at the same time.", a.CourseName, b.CourseName, strings.TrimSpace(a.HallID)),
				})
			}
			if coordinator := normalizeResource(a.TestCoordinator); coordinator != "" && coordinator == normalizeResource(b.TestCoordinator) {
				conflicts = append(conflicts, Conflict{
					Type:    ConflictFaculty,
					ExamID1: a.ID,
					ExamID2: b.ID,
					Message: fmt.Sprintf("%s is coordinating %s & %s at the same time.", strings.TrimSpace(a.TestCoordinator), a.CourseName, b.CourseName),
				})
			}
		}
	}
	return conflicts
}

func (d *ConflictDetector) sameDayConflicts(scoped []*model.Exam) []Conflict {
	limit := d.policy.MaxExamsPerDay
	if limit <= 0 {
		return nil
	}
	var conflicts []Conflict
	for _, group := range groupExams(scoped, func(e *model.Exam) string {
		return cohortKey(e.Department, e.Semester) + "|" + e.ExamDate
	}) {
		for _, excess := range group[min(limit, len(group)):] {
			first := group[0]
			conflicts = append(conflicts, Conflict{
				Type:    ConflictSameDay,
				ExamID1: first.ID,
				ExamID2: excess.ID,
				Message: fmt.Sprintf("Sem %d %s: %d exams on %s (limit: %d)",
					first.Semester, first.Department, len(group), first.ExamDate, limit),
			})
		}
	}
	return conflicts
}

func (d *ConflictDetector) maxLoadConflicts(scoped []*model.Exam) []Conflict {
	limit := d.policy.MaxExamsPerWindow
	if limit <= 0 {
		return nil
	}
	window := max(d.policy.LoadWindowDays, 1)

	var conflicts []Conflict
	for _, cohort := range groupExams(scoped, func(e *model.Exam) string {
		return cohortKey(e.Department, e.Semester)
	}) {
		start := 0
		for i, exam := range cohort {
			earliest := shiftDate(exam.ExamDate, -(window - 1))
			for cohort[start].ExamDate < earliest {
				start++
			}
			count := i - start + 1
			if count <= limit {
				continue
			}
			first := cohort[start]
			conflicts = append(conflicts, Conflict{
				Type:    ConflictMaxLoad,
				ExamID1: first.ID,
				ExamID2: exam.ID,
				Message: fmt.Sprintf("Sem %d %s: %d exams within %d days ending %s (limit: %d)",
					exam.Semester, exam.Department, count, window, exam.ExamDate, limit),
			})
		}
	}
	return conflicts
}

func (d *ConflictDetector) dailyLimitConflicts(scoped []*model.Exam) []Conflict {
	limit := d.policy.DailyTypeLimit
	if limit <= 0 {
		return nil
	}
	var conflicts []Conflict
	for _, group := range groupExams(scoped, func(e *model.Exam) string {
		return cohortKey(e.Department, e.Semester) + "|" + e.ExamDate + "|" + e.ExamType
	}) {
		for _, excess := range group[min(limit, len(group)):] {
			first := group[0]
			conflicts = append(conflicts, Conflict{
				Type:    ConflictDailyLimit,
				ExamID1: first.ID,
				ExamID2: excess.ID,
				Message: fmt.Sprintf("Daily limit exceeded: %d %s exams for %s Sem %d on %s (limit: %d)",
					len(group), first.ExamType, first.Department, first.Semester, first.ExamDate, limit),
			})
		}
	}
	return conflicts
}

// groupExams buckets exams by key, preserving input order inside each bucket
// and returning buckets in order of first appearance.
func groupExams(exams []*model.Exam, key func(*model.Exam) string) [][]*model.Exam {
	index := make(map[string]int)
	var groups [][]*model.Exam
	for _, e := range exams {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}

func sortByPosition(exams []*model.Exam) {
	sort.Slice(exams, func(i, j int) bool {
		return examBefore(exams[i], exams[j])
	})
}

func examBefore(a, b *model.Exam) bool {
	if a.ExamDate != b.ExamDate {
		return a.ExamDate < b.ExamDate
	}
	if a.StartTime != b.StartTime {
		return a.StartTime < b.StartTime
	}
	return a.ID < b.ID
}

func normalizeResource(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
