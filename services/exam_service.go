package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalankumar17/Automated-Examination-Management-System/database"
	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/validation"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// ExamService owns exam bookings: CRUD, conflict checks, auto-resolve and
// publishing. Every mutation runs under the scope lock and inside one
// transaction, and every read goes to the store.
type ExamService struct {
	tx        database.TxManager
	policy    Policy
	detector  *ConflictDetector
	resolver  *AutoResolver
	locker    *ScopeLocker
	archiver  TimetableArchiver
	validator *validation.Validator
	health    func() error
	clock     func() time.Time
}

func NewExamService(tx database.TxManager, policy Policy, locker *ScopeLocker, archiver TimetableArchiver) *ExamService {
	if archiver == nil {
		archiver = NewNoopArchiver()
	}
	detector := NewConflictDetector(policy)
	return &ExamService{
		tx:        tx,
		policy:    policy,
		detector:  detector,
		resolver:  NewAutoResolver(policy, detector),
		locker:    locker,
		archiver:  archiver,
		validator: validation.NewValidator(),
		health:    func() error { return nil },
		clock:     time.Now,
	}
}

// SetHealthCheck sets the probe reported as "db" by Status
func (s *ExamService) SetHealthCheck(fn func() error) {
	s.health = fn
}

func (s *ExamService) Policy() Policy {
	return s.policy
}

// Create schedules a new DRAFT exam. A third exam of the same type for a
// cohort on one date is rejected with a ConflictError.
func (s *ExamService) Create(ctx context.Context, req CreateExamRequest) (*model.Exam, error) {
	req.Department = validation.SanitizeString(req.Department)
	req.CourseName = validation.SanitizeString(req.CourseName)
	req.ExamType = validation.SanitizeString(req.ExamType)
	req.ExamDate = validation.SanitizeString(req.ExamDate)
	req.StartTime = validation.SanitizeString(req.StartTime)
	req.EndTime = validation.SanitizeString(req.EndTime)
	req.HallID = validation.SanitizeString(req.HallID)
	req.TestCoordinator = validation.SanitizeString(req.TestCoordinator)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: validation.FormatValidationErrors(err)}
	}

	exam := model.Exam{
		ID:              uuid.NewString(),
		Semester:        req.Semester,
		CourseName:      req.CourseName,
		ExamDate:        req.ExamDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		HallID:          req.HallID,
		TestCoordinator: req.TestCoordinator,
		Status:          model.ExamStatusDraft,
		Version:         1,
	}

	dept, ok := s.policy.NormalizeDepartment(req.Department)
	if !ok {
		return nil, newValidationError("department", fmt.Sprintf("Unknown department: %s", req.Department))
	}
	exam.Department = dept

	examType, ok := NormalizeExamType(req.ExamType)
	if !ok {
		return nil, newValidationError("examType", fmt.Sprintf("examType must be one of: %s", strings.Join(ExamTypes, ", ")))
	}
	exam.ExamType = examType

	if req.TimeSlot != nil && *req.TimeSlot != "" {
		slot, ok := s.policy.SlotByChoice(string(*req.TimeSlot))
		if !ok {
			return nil, newValidationError("timeSlot", fmt.Sprintf("Unknown time slot: %s", *req.TimeSlot))
		}
		exam.StartTime, exam.EndTime = slot.Start, slot.End
	} else if exam.StartTime == "" || exam.EndTime == "" {
		return nil, &ValidationError{
			Message: "Either timeSlot or startTime and endTime are required",
			Fields: map[string]string{
				"startTime": "startTime is required",
				"endTime":   "endTime is required",
			},
		}
	}
	if err := deriveTimes(&exam); err != nil {
		return nil, err
	}

	scope := cohortScope(&exam)
	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		if err := s.checkSubject(ctx, repos, &exam); err != nil {
			return err
		}
		if err := s.checkDailyLimit(ctx, repos, &exam, ""); err != nil {
			return err
		}
		if err := repos.Exams.Create(ctx, &exam); err != nil {
			return fmt.Errorf("failed to create exam: %w", err)
		}
		return s.record(ctx, repos, model.AuditActionCreate, scope, []string{exam.ID},
			fmt.Sprintf("Scheduled %s (%s) on %s %s-%s", exam.CourseName, exam.ExamType, exam.ExamDate, exam.StartTime, exam.EndTime), nil)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[EXAMS] created %s for %s Sem %d on %s", exam.ID, exam.Department, exam.Semester, exam.ExamDate)
	return &exam, nil
}

// Update merges patch into the stored exam. An empty patch, or one that
// changes nothing, returns the stored exam without writing.
func (s *ExamService) Update(ctx context.Context, id string, patch UpdateExamRequest) (*model.Exam, error) {
	if err := s.validator.ValidateStruct(patch); err != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: validation.FormatValidationErrors(err)}
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(current, patch.Version); err != nil {
		return nil, err
	}
	merged, err := s.applyPatch(*current, patch)
	if err != nil {
		return nil, err
	}
	if sameBooking(current, &merged) {
		return current, nil
	}

	oldScope, newScope := cohortScope(current), cohortScope(&merged)
	unlock, err := s.lock(ctx, oldScope, newScope)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var updated model.Exam
	err = s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		stored, err := repos.Exams.FindByID(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return &NotFoundError{Resource: "Exam", ID: id}
		}
		if err != nil {
			return fmt.Errorf("failed to load exam: %w", err)
		}
		if err := checkVersion(stored, patch.Version); err != nil {
			return err
		}
		if cohortKey(stored.Department, stored.Semester) != cohortKey(current.Department, current.Semester) {
			return &ConflictError{Message: "Exam was moved by another request, please retry"}
		}

		updated, err = s.applyPatch(*stored, patch)
		if err != nil {
			return err
		}
		if updated.CourseName != stored.CourseName || !stored.SameCohort(&updated) {
			if err := s.checkSubject(ctx, repos, &updated); err != nil {
				return err
			}
		}
		if dailyKey(stored) != dailyKey(&updated) {
			if err := s.checkDailyLimit(ctx, repos, &updated, updated.ID); err != nil {
				return err
			}
		}

		if err := repos.Exams.Update(ctx, &updated, stored.Version); err != nil {
			if errors.Is(err, database.ErrStaleVersion) {
				return &ConflictError{Message: "Exam was modified by another request, please reload"}
			}
			return fmt.Errorf("failed to update exam: %w", err)
		}

		details := map[string]interface{}{
			"before": bookingSummary(stored),
			"after":  bookingSummary(&updated),
		}
		return s.record(ctx, repos, model.AuditActionUpdate, newScope, []string{updated.ID},
			fmt.Sprintf("Updated %s", updated.CourseName), details)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[EXAMS] updated %s (version %d)", updated.ID, updated.Version)
	return &updated, nil
}

func (s *ExamService) Delete(ctx context.Context, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	scope := cohortScope(current)
	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		if err := repos.Exams.Delete(ctx, id); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return &NotFoundError{Resource: "Exam", ID: id}
			}
			return fmt.Errorf("failed to delete exam: %w", err)
		}
		return s.record(ctx, repos, model.AuditActionDelete, scope, []string{id},
			fmt.Sprintf("Deleted %s on %s", current.CourseName, current.ExamDate), nil)
	})
	if err != nil {
		return err
	}

	log.Printf("[EXAMS] deleted %s", id)
	return nil
}

func (s *ExamService) Get(ctx context.Context, id string) (*model.Exam, error) {
	var exam *model.Exam
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		found, err := repos.Exams.FindByID(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return &NotFoundError{Resource: "Exam", ID: id}
		}
		if err != nil {
			return fmt.Errorf("failed to load exam: %w", err)
		}
		exam = found
		return nil
	})
	return exam, err
}

// List returns the exams of scope, optionally narrowed to one status
func (s *ExamService) List(ctx context.Context, scope Scope, status string) ([]model.Exam, error) {
	filter := scope.Filter()
	if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
		if !model.ExamStatus(status).IsValid() {
			return nil, newValidationError("status", "status must be DRAFT or PUBLISHED")
		}
		filter.Status = model.ExamStatus(status)
	}

	var exams []model.Exam
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		var err error
		exams, err = repos.Exams.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list exams: %w", err)
		}
		return nil
	})
	return exams, err
}

// Conflicts recomputes the conflict set of scope from the store
func (s *ExamService) Conflicts(ctx context.Context, scope Scope) (*ConflictReport, error) {
	all, err := s.List(ctx, Scope{}, "")
	if err != nil {
		return nil, err
	}
	conflicts := s.detector.Detect(scope, all)
	return &ConflictReport{ConflictFree: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// AutoResolve moves DRAFT exams of scope until no single move reduces the
// conflict count. Unresolved conflicts are returned, not raised.
func (s *ExamService) AutoResolve(ctx context.Context, scope Scope) (*ResolveResult, error) {
	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result ResolveResult
	err = s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		all, err := repos.Exams.List(ctx, database.ExamFilter{})
		if err != nil {
			return fmt.Errorf("failed to list exams: %w", err)
		}

		result = s.resolver.Resolve(scope, all)
		if len(result.Moved) == 0 {
			return nil
		}

		ids := make([]string, 0, len(result.Moved))
		moves := make([]map[string]interface{}, 0, len(result.Moved))
		for i := range result.Moved {
			exam := &result.Moved[i]
			if err := repos.Exams.Update(ctx, exam, exam.Version); err != nil {
				if errors.Is(err, database.ErrStaleVersion) {
					return &ConflictError{Message: "Timetable changed during auto-resolve, please retry"}
				}
				return fmt.Errorf("failed to move exam %s: %w", exam.ID, err)
			}
			ids = append(ids, exam.ID)
			moves = append(moves, bookingSummary(exam))
		}
		return s.record(ctx, repos, model.AuditActionAutoResolve, scope, ids, result.Message,
			map[string]interface{}{"moves": moves, "remaining": len(result.RemainingConflicts)})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RESOLVE] %s: %s (%d moved)", scope, result.Message, len(result.Moved))
	return &result, nil
}

// Publish flips every DRAFT exam of scope to PUBLISHED in one statement.
// It is refused while the scope has any conflict.
func (s *ExamService) Publish(ctx context.Context, scope Scope) (*PublishResult, error) {
	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result := &PublishResult{}
	var snapshot []model.Exam
	err = s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		all, err := repos.Exams.List(ctx, database.ExamFilter{})
		if err != nil {
			return fmt.Errorf("failed to list exams: %w", err)
		}

		var scoped []model.Exam
		var drafts []string
		for i := range all {
			if !scope.Matches(&all[i]) {
				continue
			}
			scoped = append(scoped, all[i])
			if all[i].IsDraft() {
				drafts = append(drafts, all[i].ID)
			}
		}
		if len(scoped) == 0 {
			result.Message = "No exams to publish"
			return nil
		}
		if len(drafts) == 0 {
			result.Message = "Timetable already published"
			return nil
		}

		if conflicts := s.detector.Detect(scope, all); len(conflicts) > 0 {
			return &ConflictError{
				Message:   fmt.Sprintf("Cannot publish: %d unresolved conflict(s) exist", len(conflicts)),
				Conflicts: conflicts,
			}
		}

		published, err := repos.Exams.MarkPublished(ctx, drafts)
		if err != nil {
			return fmt.Errorf("failed to publish exams: %w", err)
		}
		if published != int64(len(drafts)) {
			return &ConflictError{Message: "Timetable changed during publish, please retry"}
		}
		result.Published = published
		result.Message = fmt.Sprintf("Published %d exam(s)", published)

		for i := range scoped {
			scoped[i].Status = model.ExamStatusPublished
		}
		snapshot = scoped
		return s.record(ctx, repos, model.AuditActionPublish, scope, drafts, result.Message, nil)
	})
	if err != nil {
		return nil, err
	}

	if len(snapshot) > 0 {
		log.Printf("[EXAMS] %s: %s", scope, result.Message)
		url, err := s.archiver.Archive(ctx, scope, snapshot)
		if err != nil {
			log.Printf("[EXAMS] failed to archive published timetable for %s: %v", scope, err)
		}
		result.ArchiveURL = url
	}
	return result, nil
}

// Archives lists the stored snapshots of published timetables for scope
func (s *ExamService) Archives(ctx context.Context, scope Scope) ([]string, error) {
	keys, err := s.archiver.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived timetables: %w", err)
	}
	return keys, nil
}

func (s *ExamService) Status(ctx context.Context) (*StatusSummary, error) {
	var counts map[model.ExamStatus]int64
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		var err error
		counts, err = repos.Exams.CountByStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to count exams: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := &StatusSummary{
		Published: counts[model.ExamStatusPublished],
		Draft:     counts[model.ExamStatusDraft],
		DB:        "Connected",
	}
	summary.Total = summary.Published + summary.Draft
	summary.IsFullyPublished = summary.Total > 0 && summary.Draft == 0
	if err := s.health(); err != nil {
		summary.DB = "Disconnected"
	}
	return summary, nil
}

// Departments returns the distinct departments that have exams
func (s *ExamService) Departments(ctx context.Context) ([]string, error) {
	var departments []string
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		var err error
		departments, err = repos.Exams.Departments(ctx)
		if err != nil {
			return fmt.Errorf("failed to list departments: %w", err)
		}
		return nil
	})
	return departments, err
}

func (s *ExamService) TimeSlots() []TimeSlot {
	return s.policy.TimeSlots
}

func (s *ExamService) AuditLogs(ctx context.Context, scope Scope, limit int) ([]model.ScheduleAuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []model.ScheduleAuditLog
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		var err error
		entries, err = repos.Audit.List(ctx, database.AuditFilter{
			Department: scope.Department,
			Semester:   scope.Semester,
			Limit:      limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list audit logs: %w", err)
		}
		return nil
	})
	return entries, err
}

// PruneAudit deletes audit rows older than retention
func (s *ExamService) PruneAudit(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.clock().Add(-retention)
	var removed int64
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		var err error
		removed, err = repos.Audit.PruneBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune audit logs: %w", err)
		}
		return nil
	})
	return removed, err
}

// SweepConflicts checks every cohort that has draft exams in parallel
func (s *ExamService) SweepConflicts(ctx context.Context) (*SweepReport, error) {
	all, err := s.List(ctx, Scope{}, "")
	if err != nil {
		return nil, err
	}

	var scopes []Scope
	seen := make(map[string]bool)
	for i := range all {
		exam := &all[i]
		key := cohortKey(exam.Department, exam.Semester)
		if !exam.IsDraft() || seen[key] {
			continue
		}
		seen[key] = true
		scopes = append(scopes, cohortScope(exam))
	}

	report := &SweepReport{Scopes: len(scopes), Conflicts: make(map[string]int)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, scope := range scopes {
		scope := scope
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			conflicts := s.detector.Detect(scope, all)
			if len(conflicts) == 0 {
				return nil
			}
			mu.Lock()
			report.Conflicts[scope.String()] = len(conflicts)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ExamService) lock(ctx context.Context, scopes ...Scope) (func(), error) {
	unlock, err := s.locker.Lock(ctx, scopes...)
	if err != nil {
		if errors.Is(err, ErrLockTimeout) {
			log.Printf("[LOCK] %v", err)
			return nil, &ConflictError{Message: "Timetable is being modified by another request, please retry"}
		}
		return nil, err
	}
	return unlock, nil
}

func (s *ExamService) checkDailyLimit(ctx context.Context, repos database.Repositories, exam *model.Exam, excludeID string) error {
	limit := s.policy.DailyTypeLimit
	count, err := repos.Exams.CountDaily(ctx, dailyKey(exam), excludeID)
	if err != nil {
		return fmt.Errorf("failed to count daily exams: %w", err)
	}
	if count >= int64(limit) {
		return &ConflictError{Message: fmt.Sprintf(
			"Daily limit reached: only %d %s exams allowed per day for %s Sem %d on %s",
			limit, exam.ExamType, exam.Department, exam.Semester, exam.ExamDate)}
	}
	return nil
}

func (s *ExamService) checkSubject(ctx context.Context, repos database.Repositories, exam *model.Exam) error {
	if !s.policy.RequireKnownSubject {
		return nil
	}
	subject, err := repos.Subjects.FindByName(ctx, exam.CourseName)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("failed to load subject: %w", err)
	}
	if subject == nil || subject.Department != exam.Department || subject.Semester != exam.Semester {
		return newValidationError("courseName",
			fmt.Sprintf("%s is not a subject of %s Sem %d", exam.CourseName, exam.Department, exam.Semester))
	}
	return nil
}

func (s *ExamService) record(ctx context.Context, repos database.Repositories, action string, scope Scope, ids []string, message string, details interface{}) error {
	entry := &model.ScheduleAuditLog{
		Action:     action,
		Department: scope.Department,
		ExamIDs:    ids,
		Message:    message,
		CreatedAt:  s.clock(),
	}
	if scope.Semester != nil {
		entry.Semester = *scope.Semester
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
		entry.Details = datatypes.JSON(raw)
	}
	if err := repos.Audit.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// applyPatch returns exam with the non-nil patch fields applied and derived fields recomputed
func (s *ExamService) applyPatch(exam model.Exam, patch UpdateExamRequest) (model.Exam, error) {
	if patch.Semester != nil {
		exam.Semester = *patch.Semester
	}
	if patch.Department != nil {
		dept, ok := s.policy.NormalizeDepartment(*patch.Department)
		if !ok {
			return exam, newValidationError("department", fmt.Sprintf("Unknown department: %s", strings.TrimSpace(*patch.Department)))
		}
		exam.Department = dept
	}
	if patch.CourseName != nil {
		exam.CourseName = validation.SanitizeString(*patch.CourseName)
		if exam.CourseName == "" {
			return exam, newValidationError("courseName", "courseName is required")
		}
	}
	if patch.ExamType != nil {
		examType, ok := NormalizeExamType(*patch.ExamType)
		if !ok {
			return exam, newValidationError("examType", fmt.Sprintf("examType must be one of: %s", strings.Join(ExamTypes, ", ")))
		}
		exam.ExamType = examType
	}
	if patch.ExamDate != nil {
		exam.ExamDate = strings.TrimSpace(*patch.ExamDate)
	}
	if patch.TimeSlot != nil && *patch.TimeSlot != "" {
		slot, ok := s.policy.SlotByChoice(string(*patch.TimeSlot))
		if !ok {
			return exam, newValidationError("timeSlot", fmt.Sprintf("Unknown time slot: %s", *patch.TimeSlot))
		}
		exam.StartTime, exam.EndTime = slot.Start, slot.End
	} else {
		if patch.StartTime != nil {
			exam.StartTime = strings.TrimSpace(*patch.StartTime)
		}
		if patch.EndTime != nil {
			exam.EndTime = strings.TrimSpace(*patch.EndTime)
		}
	}
	if patch.HallID != nil {
		exam.HallID = validation.SanitizeString(*patch.HallID)
	}
	if patch.TestCoordinator != nil {
		exam.TestCoordinator = validation.SanitizeString(*patch.TestCoordinator)
		if exam.TestCoordinator == "" {
			return exam, newValidationError("testCoordinator", "testCoordinator is required")
		}
	}

	if err := deriveTimes(&exam); err != nil {
		return exam, err
	}
	return exam, nil
}

// deriveTimes normalises start/end to HH:MM and recomputes duration and hod
func deriveTimes(exam *model.Exam) error {
	start, err := parseClock(exam.StartTime)
	if err != nil {
		return newValidationError("startTime", "startTime must be a time in HH:MM format")
	}
	end, err := parseClock(exam.EndTime)
	if err != nil {
		return newValidationError("endTime", "endTime must be a time in HH:MM format")
	}
	if end <= start {
		return newValidationError("endTime", "endTime must be after startTime")
	}
	exam.StartTime = formatClock(start)
	exam.EndTime = formatClock(end)
	exam.DurationMinutes = end - start
	exam.HOD = model.HODFor(exam.Department)
	return nil
}

func checkVersion(exam *model.Exam, expected *int) error {
	if expected != nil && *expected != exam.Version {
		return &ConflictError{Message: fmt.Sprintf(
			"Exam was modified by another request (version %d, current %d), please reload", *expected, exam.Version)}
	}
	return nil
}

func sameBooking(a, b *model.Exam) bool {
	return a.Semester == b.Semester &&
		a.Department == b.Department &&
		a.CourseName == b.CourseName &&
		a.ExamType == b.ExamType &&
		a.ExamDate == b.ExamDate &&
		a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime &&
		a.HallID == b.HallID &&
		a.TestCoordinator == b.TestCoordinator
}

func cohortScope(exam *model.Exam) Scope {
	semester := exam.Semester
	return Scope{Department: exam.Department, Semester: &semester}
}

func dailyKey(exam *model.Exam) database.DailyKey {
	return database.DailyKey{
		Department: exam.Department,
		Semester:   exam.Semester,
		ExamDate:   exam.ExamDate,
		ExamType:   exam.ExamType,
	}
}

func bookingSummary(exam *model.Exam) map[string]interface{} {
	return map[string]interface{}{
		"id":         exam.ID,
		"department": exam.Department,
		"semester":   exam.Semester,
		"examDate":   exam.ExamDate,
		"startTime":  exam.StartTime,
		"endTime":    exam.EndTime,
		"hallId":     exam.HallID,
	}
}
