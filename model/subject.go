package model

import "time"

// Subject is a course taught to a department/semester cohort. Exams reference
// subjects by name through Exam.CourseName.
type Subject struct {
	Name         string    `gorm:"type:varchar(255);primaryKey" json:"name"`
	SubjectCode  string    `gorm:"type:varchar(50)" json:"subjectCode"`
	Semester     int       `gorm:"index:idx_subjects_scope" json:"semester"`
	Department   string    `gorm:"type:varchar(20);index:idx_subjects_scope" json:"department"`
	SubjectType  string    `gorm:"type:varchar(20)" json:"subjectType"` // Theory, Practical
	LectureCount int       `gorm:"default:0" json:"lectureCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Subject
func (Subject) TableName() string {
	return "subjects"
}
