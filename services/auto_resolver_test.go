package services

import (
	"testing"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(policy Policy) *AutoResolver {
	return NewAutoResolver(policy, NewConflictDetector(policy))
}

// applyMoves returns exams with the resolver's moves written back
func applyMoves(exams []model.Exam, moved []model.Exam) []model.Exam {
	out := append([]model.Exam(nil), exams...)
	for _, m := range moved {
		for i := range out {
			if out[i].ID == m.ID {
				out[i] = m
			}
		}
	}
	return out
}

func TestResolve_MovesSecondBookingToFreeSlotSameDay(t *testing.T) {
	r := newResolver(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "10:00", "11:30", "H1", "Dr. B"),
	}

	result := r.Resolve(cohort("CSE", 1), exams)

	assert.Equal(t, "Resolved 2 conflict(s)", result.Message)
	assert.Equal(t, 2, result.ResolvedCount)
	assert.Empty(t, result.RemainingConflicts)
	require.Len(t, result.Moved, 1)

	moved := result.Moved[0]
	assert.Equal(t, "b", moved.ID)
	assert.Equal(t, "2025-01-10", moved.ExamDate)
	assert.Equal(t, "13:30", moved.StartTime)
	assert.Equal(t, "15:00", moved.EndTime)
	assert.Equal(t, 90, moved.DurationMinutes)
	assert.Equal(t, "H1", moved.HallID, "hall is kept")

	assert.Equal(t, "10:00", exams[1].StartTime, "input is not mutated")
}

func TestResolve_Idempotent(t *testing.T) {
	r := newResolver(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "10:00", "11:30", "H1", "Dr. A"),
		booking("c", "CSE", 1, "2025-01-10", "10:30", "12:00", "H2", "Dr. C"),
		booking("d", "ECE", 2, "2025-01-10", "09:00", "10:00", "H1", "Dr. D"),
	}

	first := r.Resolve(cohort("CSE", 1), exams)
	require.NotEmpty(t, first.Moved)
	after := applyMoves(exams, first.Moved)

	second := r.Resolve(cohort("CSE", 1), after)
	assert.Empty(t, second.Moved)
	assert.Equal(t, len(first.RemainingConflicts), len(second.RemainingConflicts))
	assert.Equal(t, first.RemainingConflicts, second.RemainingConflicts)
	assert.Equal(t, 0, second.ResolvedCount)
}

func TestResolve_AvoidsPublishedBookings(t *testing.T) {
	r := newResolver(DefaultPolicy())
	published := booking("p", "CSE", 1, "2025-01-10", "13:30", "15:00", "", "Dr. P")
	published.ExamType = ExamTypeMSE2
	published.Status = model.ExamStatusPublished
	exams := []model.Exam{
		published,
		booking("b", "CSE", 1, "2025-01-10", "09:30", "11:00", "", "Dr. B"),
		booking("c", "CSE", 1, "2025-01-10", "09:30", "11:00", "", "Dr. C"),
	}

	result := r.Resolve(cohort("CSE", 1), exams)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, "c", result.Moved[0].ID)
	assert.Equal(t, "2025-01-11", result.Moved[0].ExamDate)
	assert.Equal(t, "09:30", result.Moved[0].StartTime)
	assert.Empty(t, result.RemainingConflicts)
}

func TestResolve_SkipsExcludedWeekdays(t *testing.T) {
	r := newResolver(DefaultPolicy())
	published := booking("p", "CSE", 1, "2025-01-11", "13:30", "15:00", "", "Dr. P")
	published.ExamType = ExamTypeMSE2
	published.Status = model.ExamStatusPublished
	exams := []model.Exam{
		published,
		booking("b", "CSE", 1, "2025-01-11", "09:30", "11:00", "", "Dr. B"),
		booking("c", "CSE", 1, "2025-01-11", "09:30", "11:00", "", "Dr. C"),
	}

	result := r.Resolve(cohort("CSE", 1), exams)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, "2025-01-13", result.Moved[0].ExamDate, "2025-01-12 is a Sunday")
}

func TestResolve_DailyLimitMovesExcessToNextDate(t *testing.T) {
	r := newResolver(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "08:00", "09:00", "", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "09:30", "11:00", "", "Dr. B"),
		booking("c", "CSE", 1, "2025-01-10", "13:30", "15:00", "", "Dr. C"),
	}

	result := r.Resolve(cohort("CSE", 1), exams)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, "c", result.Moved[0].ID)
	assert.Equal(t, "2025-01-11", result.Moved[0].ExamDate)
	assert.Equal(t, 1, result.ResolvedCount)
}

func TestResolve_OnlyMovesBookingsInScope(t *testing.T) {
	r := newResolver(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
		booking("b", "ECE", 2, "2025-01-10", "10:00", "11:30", "H1", "Dr. B"),
	}

	result := r.Resolve(cohort("CSE", 1), exams)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, "a", result.Moved[0].ID)
	assert.Equal(t, "13:30", result.Moved[0].StartTime)
}

func TestResolve_ReportsWhatCannotBeResolved(t *testing.T) {
	policy := DefaultPolicy()
	policy.TimeSlots = policy.TimeSlots[:1]
	policy.ResolveHorizonDays = 0
	r := newResolver(policy)
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "09:30", "11:00", "", "Dr. B"),
	}

	result := r.Resolve(cohort("CSE", 1), exams)

	assert.Equal(t, "Could not resolve 1 conflict(s) automatically", result.Message)
	assert.Equal(t, 0, result.ResolvedCount)
	require.Len(t, result.RemainingConflicts, 1)
	assert.Equal(t, ConflictStudent, result.RemainingConflicts[0].Type)
	assert.Empty(t, result.Moved)
}

func TestResolve_NothingToDo(t *testing.T) {
	r := newResolver(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
	}

	result := r.Resolve(Scope{}, exams)

	assert.Equal(t, "No conflicts to resolve", result.Message)
	assert.NotNil(t, result.RemainingConflicts)
	assert.Empty(t, result.RemainingConflicts)
}
