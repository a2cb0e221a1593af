package services

import (
	"math/rand"
	"testing"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_StudentAndHallForOverlappingCohortBookings(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "10:00", "11:30", "H1", "Dr. B"),
	}

	conflicts := d.Detect(cohort("CSE", 1), exams)

	require.Len(t, conflicts, 2)
	assert.Equal(t, ConflictStudent, conflicts[0].Type)
	assert.Equal(t, ConflictHall, conflicts[1].Type)
	for _, c := range conflicts {
		assert.Equal(t, "a", c.ExamID1)
		assert.Equal(t, "b", c.ExamID2)
	}
	assert.Equal(t, "Course a & Course b are scheduled at the same time.", conflicts[0].Message)
}

func TestDetect_TypeOrderForSamePair(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())
	exams := []model.Exam{
		booking("b", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. Rao"),
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "h1 ", " dr. rao"),
	}

	conflicts := d.Detect(Scope{}, exams)

	require.Len(t, conflicts, 3)
	assert.Equal(t, []ConflictType{ConflictStudent, ConflictHall, ConflictFaculty},
		[]ConflictType{conflicts[0].Type, conflicts[1].Type, conflicts[2].Type})
	assert.Equal(t, "a", conflicts[0].ExamID1, "earlier id is listed first at equal times")
}

func TestDetect_HallAcrossDepartments(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
		booking("b", "ECE", 3, "2025-01-10", "10:30", "12:00", "H1", "Dr. B"),
	}

	conflicts := d.Detect(cohort("CSE", 1), exams)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictHall, conflicts[0].Type)

	assert.Empty(t, d.Detect(cohort("ME", 5), exams), "pairs with no member in scope are skipped")
}

func TestDetect_FacultyIsCaseInsensitive(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "", " Dr. Rao "),
		booking("b", "ME", 2, "2025-01-10", "10:00", "11:30", "", "dr. rao"),
	}

	conflicts := d.Detect(Scope{}, exams)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictFaculty, conflicts[0].Type)
}

func TestDetect_NoConflictCases(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())

	tests := []struct {
		name  string
		exams []model.Exam
	}{
		{
			name: "back to back",
			exams: []model.Exam{
				booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
				booking("b", "CSE", 1, "2025-01-10", "11:00", "12:30", "H1", "Dr. A"),
			},
		},
		{
			name: "different dates",
			exams: []model.Exam{
				booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
				booking("b", "CSE", 1, "2025-01-11", "09:30", "11:00", "H1", "Dr. A"),
			},
		},
		{
			name: "unassigned halls",
			exams: []model.Exam{
				booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "", "Dr. A"),
				booking("b", "ECE", 1, "2025-01-10", "09:30", "11:00", " ", "Dr. B"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, d.Detect(Scope{}, tt.exams))
		})
	}
}

func TestDetect_IgnoresPublished(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())
	published := booking("b", "CSE", 1, "2025-01-10", "10:00", "11:30", "H1", "Dr. B")
	published.Status = model.ExamStatusPublished
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
		published,
	}

	assert.Empty(t, d.Detect(cohort("CSE", 1), exams))
}

func TestDetect_DailyLimitReportsEachExcessBooking(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "08:00", "09:00", "", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "10:00", "11:00", "", "Dr. B"),
		booking("c", "CSE", 1, "2025-01-10", "12:00", "13:00", "", "Dr. C"),
		booking("d", "CSE", 1, "2025-01-10", "14:00", "15:00", "", "Dr. D"),
	}
	other := booking("e", "CSE", 1, "2025-01-10", "16:00", "17:00", "", "Dr. E")
	other.ExamType = ExamTypeMSE2
	exams = append(exams, other)

	conflicts := d.Detect(cohort("CSE", 1), exams)

	require.Len(t, conflicts, 2)
	for i, excess := range []string{"c", "d"} {
		assert.Equal(t, ConflictDailyLimit, conflicts[i].Type)
		assert.Equal(t, "a", conflicts[i].ExamID1)
		assert.Equal(t, excess, conflicts[i].ExamID2)
	}
}

func TestDetect_SameDayDisabledByDefault(t *testing.T) {
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "13:30", "15:00", "", "Dr. B"),
	}
	exams[1].ExamType = ExamTypeMSE2

	assert.Empty(t, NewConflictDetector(DefaultPolicy()).Detect(Scope{}, exams))

	policy := DefaultPolicy()
	policy.MaxExamsPerDay = 1
	conflicts := NewConflictDetector(policy).Detect(Scope{}, exams)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictSameDay, conflicts[0].Type)
	assert.Equal(t, "b", conflicts[0].ExamID2)
}

func TestDetect_MaxLoadRollingWindow(t *testing.T) {
	policy := DefaultPolicy()
	policy.MaxExamsPerWindow = 2
	policy.LoadWindowDays = 7
	d := NewConflictDetector(policy)

	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-06", "09:30", "11:00", "", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-07", "09:30", "11:00", "", "Dr. A"),
		booking("c", "CSE", 1, "2025-01-08", "09:30", "11:00", "", "Dr. A"),
		booking("d", "CSE", 1, "2025-01-20", "09:30", "11:00", "", "Dr. A"),
		booking("e", "ECE", 1, "2025-01-08", "13:30", "15:00", "", "Dr. E"),
	}

	conflicts := d.Detect(Scope{}, exams)

	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictMaxLoad, conflicts[0].Type)
	assert.Equal(t, "a", conflicts[0].ExamID1)
	assert.Equal(t, "c", conflicts[0].ExamID2)
}

func TestDetect_Deterministic(t *testing.T) {
	d := NewConflictDetector(DefaultPolicy())
	exams := []model.Exam{
		booking("a", "CSE", 1, "2025-01-10", "09:30", "11:00", "H1", "Dr. A"),
		booking("b", "CSE", 1, "2025-01-10", "10:00", "11:30", "H1", "Dr. A"),
		booking("c", "ECE", 2, "2025-01-10", "10:30", "12:00", "H1", "Dr. C"),
		booking("d", "CSE", 1, "2025-01-10", "13:30", "15:00", "H2", "Dr. D"),
		booking("e", "CSE", 1, "2025-01-11", "09:30", "11:00", "H2", "Dr. A"),
	}
	want := d.Detect(Scope{}, exams)
	require.NotEmpty(t, want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]model.Exam(nil), exams...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, d.Detect(Scope{}, shuffled))
	}
}
