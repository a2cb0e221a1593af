package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Audit actions recorded by the exam service
const (
	AuditActionCreate      = "exam_create"
	AuditActionUpdate      = "exam_update"
	AuditActionDelete      = "exam_delete"
	AuditActionAutoResolve = "auto_resolve"
	AuditActionPublish     = "publish"
)

// ScheduleAuditLog records every mutation of the exam timetable
type ScheduleAuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Action     string         `gorm:"type:varchar(50);not null;index" json:"action"`
	Department string         `gorm:"type:varchar(20);index" json:"department"`
	Semester   int            `gorm:"index" json:"semester"` // 0 when the action spans semesters
	ExamIDs    pq.StringArray `gorm:"type:text[]" json:"examIds"`
	Message    string         `gorm:"type:text" json:"message"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for ScheduleAuditLog
func (ScheduleAuditLog) TableName() string {
	return "schedule_audit_logs"
}
