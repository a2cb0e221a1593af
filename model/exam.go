package model

import "time"

// ExamStatus is the lifecycle state of an exam booking
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "DRAFT"
	ExamStatusPublished ExamStatus = "PUBLISHED"
)

// IsValid reports whether s is a known status
func (s ExamStatus) IsValid() bool {
	return s == ExamStatusDraft || s == ExamStatusPublished
}

// Exam is one scheduled or published exam instance for a department/semester cohort.
// Dates are stored as YYYY-MM-DD and times as zero-padded HH:MM so that
// lexical order matches chronological order.
type Exam struct {
	ID              string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Semester        int        `gorm:"not null;index:idx_exams_scope" json:"semester"`
	Department      string     `gorm:"type:varchar(20);not null;index:idx_exams_scope" json:"department"`
	CourseName      string     `gorm:"type:varchar(255);not null" json:"courseName"`
	ExamType        string     `gorm:"type:varchar(30);not null" json:"examType"`
	ExamDate        string     `gorm:"type:varchar(10);not null;index" json:"examDate"`
	StartTime       string     `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime         string     `gorm:"type:varchar(5);not null" json:"endTime"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	HallID          string     `gorm:"type:varchar(50)" json:"hallId,omitempty"`
	TestCoordinator string     `gorm:"type:varchar(255);not null" json:"testCoordinator"`
	HOD             string     `gorm:"type:varchar(100)" json:"hod"`
	Status          ExamStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	Version         int        `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Exam
func (Exam) TableName() string {
	return "exams"
}

// IsDraft reports whether the exam still participates in conflict detection
func (e *Exam) IsDraft() bool {
	return e.Status == ExamStatusDraft
}

// SameCohort reports whether both exams are sat by the same department/semester
func (e *Exam) SameCohort(other *Exam) bool {
	return e.Department == other.Department && e.Semester == other.Semester
}

// Overlaps reports whether both exams share a date and their [start, end) windows intersect
func (e *Exam) Overlaps(other *Exam) bool {
	if e.ExamDate != other.ExamDate {
		return false
	}
	return e.StartTime < other.EndTime && other.StartTime < e.EndTime
}

// HODFor returns the head-of-department display string for a department
func HODFor(department string) string {
	return "Dept. of " + department
}
