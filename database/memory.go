package database

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"gorm.io/gorm"
)

// MemoryStore keeps every table in process memory. It backs DB_DRIVER=memory
// and package tests. Transactions run against a copy of the state that
// replaces the committed state only when fn returns nil.
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

type memoryState struct {
	exams       map[string]model.Exam
	subjects    map[string]model.Subject
	audit       []model.ScheduleAuditLog
	nextAuditID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memoryState{
			exams:    make(map[string]model.Exam),
			subjects: make(map[string]model.Subject),
		},
	}
}

// NewMemoryTxManager returns a TxManager over a fresh in-memory store
func NewMemoryTxManager() *MemoryStore {
	return NewMemoryStore()
}

func (s *MemoryStore) Init() error {
	log.Println("Using in-memory storage; data is lost on restart")
	return nil
}

func (s *MemoryStore) Close() error       { return nil }
func (s *MemoryStore) HealthCheck() error { return nil }
func (s *MemoryStore) GetDB() *gorm.DB    { return nil }

func (s *MemoryStore) TxManager() TxManager {
	return s
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := s.state.clone()
	repos := Repositories{
		Exams:    &memoryExamRepository{state: working},
		Subjects: &memorySubjectRepository{state: working},
		Audit:    &memoryAuditRepository{state: working},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	s.state = working
	return nil
}

func (st *memoryState) clone() *memoryState {
	next := &memoryState{
		exams:       make(map[string]model.Exam, len(st.exams)),
		subjects:    make(map[string]model.Subject, len(st.subjects)),
		audit:       make([]model.ScheduleAuditLog, len(st.audit)),
		nextAuditID: st.nextAuditID,
	}
	for id, exam := range st.exams {
		next.exams[id] = exam
	}
	for name, subject := range st.subjects {
		next.subjects[name] = subject
	}
	copy(next.audit, st.audit)
	return next
}

type memoryExamRepository struct {
	state *memoryState
}

func (r *memoryExamRepository) List(ctx context.Context, filter ExamFilter) ([]model.Exam, error) {
	var ids map[string]bool
	if filter.IDs != nil {
		ids = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			ids[id] = true
		}
	}

	exams := []model.Exam{}
	for _, exam := range r.state.exams {
		if filter.Semester != nil && exam.Semester != *filter.Semester {
			continue
		}
		if filter.Department != "" && exam.Department != filter.Department {
			continue
		}
		if filter.Status != "" && exam.Status != filter.Status {
			continue
		}
		if ids != nil && !ids[exam.ID] {
			continue
		}
		exams = append(exams, exam)
	}

	sort.Slice(exams, func(i, j int) bool {
		a, b := exams[i], exams[j]
		if a.Semester != b.Semester {
			return a.Semester < b.Semester
		}
		if a.ExamDate != b.ExamDate {
			return a.ExamDate < b.ExamDate
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return exams, nil
}

func (r *memoryExamRepository) FindByID(ctx context.Context, id string) (*model.Exam, error) {
	exam, ok := r.state.exams[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &exam, nil
}

func (r *memoryExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	now := time.Now()
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = now
	}
	exam.UpdatedAt = now
	r.state.exams[exam.ID] = *exam
	return nil
}

func (r *memoryExamRepository) Update(ctx context.Context, exam *model.Exam, expectedVersion int) error {
	stored, ok := r.state.exams[exam.ID]
	if !ok || stored.Version != expectedVersion {
		return ErrStaleVersion
	}
	exam.Version = expectedVersion + 1
	exam.CreatedAt = stored.CreatedAt
	exam.UpdatedAt = time.Now()
	r.state.exams[exam.ID] = *exam
	return nil
}

func (r *memoryExamRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.state.exams[id]; !ok {
		return ErrNotFound
	}
	delete(r.state.exams, id)
	return nil
}

func (r *memoryExamRepository) CountDaily(ctx context.Context, key DailyKey, excludeID string) (int64, error) {
	var count int64
	for _, exam := range r.state.exams {
		if exam.ID == excludeID {
			continue
		}
		if exam.Department == key.Department && exam.Semester == key.Semester &&
			exam.ExamDate == key.ExamDate && exam.ExamType == key.ExamType {
			count++
		}
	}
	return count, nil
}

func (r *memoryExamRepository) MarkPublished(ctx context.Context, ids []string) (int64, error) {
	var changed int64
	now := time.Now()
	for _, id := range ids {
		exam, ok := r.state.exams[id]
		if !ok || exam.Status != model.ExamStatusDraft {
			continue
		}
		exam.Status = model.ExamStatusPublished
		exam.Version++
		exam.UpdatedAt = now
		r.state.exams[id] = exam
		changed++
	}
	return changed, nil
}

func (r *memoryExamRepository) CountByStatus(ctx context.Context) (map[model.ExamStatus]int64, error) {
	counts := make(map[model.ExamStatus]int64)
	for _, exam := range r.state.exams {
		counts[exam.Status]++
	}
	return counts, nil
}

func (r *memoryExamRepository) Departments(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	departments := []string{}
	for _, exam := range r.state.exams {
		if exam.Department == "" || seen[exam.Department] {
			continue
		}
		seen[exam.Department] = true
		departments = append(departments, exam.Department)
	}
	sort.Strings(departments)
	return departments, nil
}

type memorySubjectRepository struct {
	state *memoryState
}

func (r *memorySubjectRepository) List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error) {
	subjects := []model.Subject{}
	for _, subject := range r.state.subjects {
		if filter.Department != "" && subject.Department != filter.Department {
			continue
		}
		if filter.Semester != nil && subject.Semester != *filter.Semester {
			continue
		}
		subjects = append(subjects, subject)
	}

	sort.Slice(subjects, func(i, j int) bool {
		a, b := subjects[i], subjects[j]
		if a.Department != b.Department {
			return a.Department < b.Department
		}
		if a.Semester != b.Semester {
			return a.Semester < b.Semester
		}
		return a.Name < b.Name
	})
	return subjects, nil
}

func (r *memorySubjectRepository) FindByName(ctx context.Context, name string) (*model.Subject, error) {
	subject, ok := r.state.subjects[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &subject, nil
}

func (r *memorySubjectRepository) Upsert(ctx context.Context, subject *model.Subject) error {
	now := time.Now()
	if existing, ok := r.state.subjects[subject.Name]; ok {
		subject.CreatedAt = existing.CreatedAt
	} else {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now
	r.state.subjects[subject.Name] = *subject
	return nil
}

func (r *memorySubjectRepository) Delete(ctx context.Context, name string) error {
	if _, ok := r.state.subjects[name]; !ok {
		return ErrNotFound
	}
	delete(r.state.subjects, name)
	return nil
}

type memoryAuditRepository struct {
	state *memoryState
}

func (r *memoryAuditRepository) Record(ctx context.Context, entry *model.ScheduleAuditLog) error {
	r.state.nextAuditID++
	entry.ID = r.state.nextAuditID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.state.audit = append(r.state.audit, *entry)
	return nil
}

func (r *memoryAuditRepository) List(ctx context.Context, filter AuditFilter) ([]model.ScheduleAuditLog, error) {
	entries := []model.ScheduleAuditLog{}
	// newest first
	for i := len(r.state.audit) - 1; i >= 0; i-- {
		entry := r.state.audit[i]
		if filter.Department != "" && entry.Department != filter.Department {
			continue
		}
		if filter.Semester != nil && entry.Semester != *filter.Semester {
			continue
		}
		entries = append(entries, entry)
		if filter.Limit > 0 && len(entries) == filter.Limit {
			break
		}
	}
	return entries, nil
}

func (r *memoryAuditRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	kept := r.state.audit[:0:0]
	var removed int64
	for _, entry := range r.state.audit {
		if entry.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	r.state.audit = kept
	return removed, nil
}
