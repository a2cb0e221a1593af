package database

import (
	"context"
	"errors"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrStaleVersion = errors.New("stale version")
)

// ExamFilter narrows exam listings. Zero values match everything.
type ExamFilter struct {
	Semester   *int
	Department string
	Status     model.ExamStatus
	IDs        []string
}

// DailyKey identifies the bookings that share one daily exam-type quota
type DailyKey struct {
	Department string
	Semester   int
	ExamDate   string
	ExamType   string
}

type SubjectFilter struct {
	Department string
	Semester   *int
}

type AuditFilter struct {
	Department string
	Semester   *int
	Limit      int
}

type ExamRepository interface {
	// List returns exams ordered by semester, exam date, start time and id
	List(ctx context.Context, filter ExamFilter) ([]model.Exam, error)
	FindByID(ctx context.Context, id string) (*model.Exam, error)
	Create(ctx context.Context, exam *model.Exam) error
	// Update persists exam only if the stored version still equals expectedVersion.
	// On success exam.Version holds the new version.
	Update(ctx context.Context, exam *model.Exam, expectedVersion int) error
	Delete(ctx context.Context, id string) error
	CountDaily(ctx context.Context, key DailyKey, excludeID string) (int64, error)
	// MarkPublished flips the given DRAFT exams to PUBLISHED and returns the number changed
	MarkPublished(ctx context.Context, ids []string) (int64, error)
	CountByStatus(ctx context.Context) (map[model.ExamStatus]int64, error)
	Departments(ctx context.Context) ([]string, error)
}

type SubjectRepository interface {
	List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error)
	FindByName(ctx context.Context, name string) (*model.Subject, error)
	Upsert(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, name string) error
}

type AuditRepository interface {
	Record(ctx context.Context, entry *model.ScheduleAuditLog) error
	List(ctx context.Context, filter AuditFilter) ([]model.ScheduleAuditLog, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Repositories groups the repositories bound to a single transaction
type Repositories struct {
	Exams    ExamRepository
	Subjects SubjectRepository
	Audit    AuditRepository
}

// TxManager runs fn inside one transaction. Returning an error from fn rolls back every write made through repos.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
