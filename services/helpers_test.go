package services

import (
	"testing"

	"github.com/lalankumar17/Automated-Examination-Management-System/database"
	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// booking builds a DRAFT MSE I exam with the given placement
func booking(id, dept string, sem int, date, start, end, hall, coordinator string) model.Exam {
	startMin, _ := parseClock(start)
	endMin, _ := parseClock(end)
	return model.Exam{
		ID:              id,
		Department:      dept,
		Semester:        sem,
		CourseName:      "Course " + id,
		ExamType:        ExamTypeMSE1,
		ExamDate:        date,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: endMin - startMin,
		HallID:          hall,
		TestCoordinator: coordinator,
		HOD:             model.HODFor(dept),
		Status:          model.ExamStatusDraft,
		Version:         1,
	}
}

func cohort(dept string, sem int) Scope {
	return Scope{Department: dept, Semester: intPtr(sem)}
}

func findExam(t *testing.T, exams []model.Exam, id string) model.Exam {
	t.Helper()
	for _, e := range exams {
		if e.ID == id {
			return e
		}
	}
	require.Failf(t, "exam not found", "id %s", id)
	return model.Exam{}
}

func newTestStore() *database.MemoryStore {
	return database.NewMemoryStore()
}
