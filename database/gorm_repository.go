package database

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := Repositories{
			Exams:    &gormExamRepository{db: tx},
			Subjects: &gormSubjectRepository{db: tx},
			Audit:    &gormAuditRepository{db: tx},
		}
		return fn(ctx, repos)
	})
}

type gormExamRepository struct {
	db *gorm.DB
}

func (r *gormExamRepository) List(ctx context.Context, filter ExamFilter) ([]model.Exam, error) {
	query := r.db.WithContext(ctx).Model(&model.Exam{})
	if filter.Semester != nil {
		query = query.Where("semester = ?", *filter.Semester)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return []model.Exam{}, nil
		}
		query = query.Where("id IN ?", filter.IDs)
	}

	var exams []model.Exam
	if err := query.Order("semester, exam_date, start_time, id").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *gormExamRepository) FindByID(ctx context.Context, id string) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&exam).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exam, nil
}

func (r *gormExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *gormExamRepository) Update(ctx context.Context, exam *model.Exam, expectedVersion int) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Where("id = ? AND version = ?", exam.ID, expectedVersion).
		Updates(map[string]interface{}{
			"semester":         exam.Semester,
			"department":       exam.Department,
			"course_name":      exam.CourseName,
			"exam_type":        exam.ExamType,
			"exam_date":        exam.ExamDate,
			"start_time":       exam.StartTime,
			"end_time":         exam.EndTime,
			"duration_minutes": exam.DurationMinutes,
			"hall_id":          exam.HallID,
			"test_coordinator": exam.TestCoordinator,
			"hod":              exam.HOD,
			"status":           exam.Status,
			"version":          expectedVersion + 1,
			"updated_at":       now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleVersion
	}
	exam.Version = expectedVersion + 1
	exam.UpdatedAt = now
	return nil
}

func (r *gormExamRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Exam{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormExamRepository) CountDaily(ctx context.Context, key DailyKey, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Exam{}).
		Where("department = ? AND semester = ? AND exam_date = ? AND exam_type = ?",
			key.Department, key.Semester, key.ExamDate, key.ExamType)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gormExamRepository) MarkPublished(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Where("id IN ? AND status = ?", ids, model.ExamStatusDraft).
		Updates(map[string]interface{}{
			"status":     model.ExamStatusPublished,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *gormExamRepository) CountByStatus(ctx context.Context) (map[model.ExamStatus]int64, error) {
	var rows []struct {
		Status model.ExamStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.ExamStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *gormExamRepository) Departments(ctx context.Context) ([]string, error) {
	var departments []string
	err := r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Where("department <> ''").
		Distinct().
		Pluck("department", &departments).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(departments)
	return departments, nil
}

type gormSubjectRepository struct {
	db *gorm.DB
}

func (r *gormSubjectRepository) List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error) {
	query := r.db.WithContext(ctx).Model(&model.Subject{})
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Semester != nil {
		query = query.Where("semester = ?", *filter.Semester)
	}

	var subjects []model.Subject
	if err := query.Order("department, semester, name").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *gormSubjectRepository) FindByName(ctx context.Context, name string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

func (r *gormSubjectRepository) Upsert(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subject_code", "semester", "department", "subject_type", "lecture_count", "updated_at",
		}),
	}).Create(subject).Error
}

func (r *gormSubjectRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Subject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormAuditRepository struct {
	db *gorm.DB
}

func (r *gormAuditRepository) Record(ctx context.Context, entry *model.ScheduleAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormAuditRepository) List(ctx context.Context, filter AuditFilter) ([]model.ScheduleAuditLog, error) {
	query := r.db.WithContext(ctx).Model(&model.ScheduleAuditLog{})
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Semester != nil {
		query = query.Where("semester = ?", *filter.Semester)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []model.ScheduleAuditLog
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormAuditRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.ScheduleAuditLog{})
	return result.RowsAffected, result.Error
}
