package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lalankumar17/Automated-Examination-Management-System/database"
	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/validation"
)

// SubjectService manages the subject catalog that exams reference by name
type SubjectService struct {
	tx        database.TxManager
	policy    Policy
	validator *validation.Validator
}

// NewSubjectService creates a new subject service
func NewSubjectService(tx database.TxManager, policy Policy) *SubjectService {
	return &SubjectService{
		tx:        tx,
		policy:    policy,
		validator: validation.NewValidator(),
	}
}

// UpsertSubjectRequest represents the body of PUT /io/subjects/:name
type UpsertSubjectRequest struct {
	SubjectCode  string `json:"subjectCode" validate:"max=50"`
	Semester     int    `json:"semester" validate:"required,gte=1,lte=8"`
	Department   string `json:"department" validate:"required"`
	SubjectType  string `json:"subjectType" validate:"omitempty,oneof=Theory Practical"`
	LectureCount int    `json:"lectureCount" validate:"gte=0"`
}

// SubjectCode pairs a subject name with its code
type SubjectCode struct {
	Name        string `json:"name"`
	SubjectCode string `json:"subjectCode"`
}

func (s *SubjectService) List(ctx context.Context, scope Scope) ([]model.Subject, error) {
	var subjects []model.Subject
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		var err error
		subjects, err = repos.Subjects.List(ctx, database.SubjectFilter{
			Department: scope.Department,
			Semester:   scope.Semester,
		})
		if err != nil {
			return fmt.Errorf("failed to list subjects: %w", err)
		}
		return nil
	})
	return subjects, err
}

// Codes returns every subject name with its code, sorted by name
func (s *SubjectService) Codes(ctx context.Context) ([]SubjectCode, error) {
	subjects, err := s.List(ctx, Scope{})
	if err != nil {
		return nil, err
	}
	codes := make([]SubjectCode, 0, len(subjects))
	for _, subject := range subjects {
		codes = append(codes, SubjectCode{Name: subject.Name, SubjectCode: subject.SubjectCode})
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Name < codes[j].Name })
	return codes, nil
}

func (s *SubjectService) Get(ctx context.Context, name string) (*model.Subject, error) {
	var subject *model.Subject
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		found, err := repos.Subjects.FindByName(ctx, name)
		if errors.Is(err, database.ErrNotFound) {
			return &NotFoundError{Resource: "Subject", ID: name}
		}
		if err != nil {
			return fmt.Errorf("failed to load subject: %w", err)
		}
		subject = found
		return nil
	})
	return subject, err
}

// Upsert creates or replaces the subject called name
func (s *SubjectService) Upsert(ctx context.Context, name string, req UpsertSubjectRequest) (*model.Subject, error) {
	name = validation.SanitizeString(name)
	if name == "" {
		return nil, newValidationError("name", "name is required")
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "Validation failed", Fields: validation.FormatValidationErrors(err)}
	}
	dept, ok := s.policy.NormalizeDepartment(req.Department)
	if !ok {
		return nil, newValidationError("department", fmt.Sprintf("Unknown department: %s", req.Department))
	}

	subject := &model.Subject{
		Name:         name,
		SubjectCode:  validation.SanitizeString(req.SubjectCode),
		Semester:     req.Semester,
		Department:   dept,
		SubjectType:  req.SubjectType,
		LectureCount: req.LectureCount,
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		if err := repos.Subjects.Upsert(ctx, subject); err != nil {
			return fmt.Errorf("failed to save subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Delete(ctx context.Context, name string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, repos database.Repositories) error {
		if err := repos.Subjects.Delete(ctx, name); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return &NotFoundError{Resource: "Subject", ID: name}
			}
			return fmt.Errorf("failed to delete subject: %w", err)
		}
		return nil
	})
}
