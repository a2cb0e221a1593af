package database

import (
	"context"
	"fmt"
	"log"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
)

// Seeder fills an empty store with a starter subject catalog
type Seeder struct {
	tx TxManager
}

// NewSeeder creates a new seeder instance
func NewSeeder(tx TxManager) *Seeder {
	return &Seeder{tx: tx}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(ctx context.Context) error {
	log.Println("🌱 Starting database seeding...")

	if err := s.SeedSubjects(ctx); err != nil {
		return fmt.Errorf("failed to seed subjects: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedSubjects adds the CSE catalog for semesters 1 to 4 unless subjects already exist
func (s *Seeder) SeedSubjects(ctx context.Context) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, repos Repositories) error {
		existing, err := repos.Subjects.List(ctx, SubjectFilter{})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			log.Println("⏭️  Subjects already exist, skipping...")
			return nil
		}

		subjects := defaultSubjects()
		for i := range subjects {
			if err := repos.Subjects.Upsert(ctx, &subjects[i]); err != nil {
				return err
			}
		}
		log.Printf("✅ Created %d subjects\n", len(subjects))
		return nil
	})
}

func defaultSubjects() []model.Subject {
	bySemester := map[int][]model.Subject{
		1: {
			{Name: "Programming in C", SubjectCode: "CS101", SubjectType: "Theory", LectureCount: 48},
			{Name: "Engineering Mathematics I", SubjectCode: "MA101", SubjectType: "Theory", LectureCount: 52},
			{Name: "C Programming Lab", SubjectCode: "CS101L", SubjectType: "Practical", LectureCount: 24},
		},
		2: {
			{Name: "Data Structures", SubjectCode: "CS201", SubjectType: "Theory", LectureCount: 48},
			{Name: "Digital Logic Design", SubjectCode: "CS202", SubjectType: "Theory", LectureCount: 42},
			{Name: "Engineering Mathematics II", SubjectCode: "MA201", SubjectType: "Theory", LectureCount: 52},
		},
		3: {
			{Name: "Design and Analysis of Algorithms", SubjectCode: "CS301", SubjectType: "Theory", LectureCount: 48},
			{Name: "Database Management Systems", SubjectCode: "CS302", SubjectType: "Theory", LectureCount: 48},
			{Name: "DBMS Lab", SubjectCode: "CS302L", SubjectType: "Practical", LectureCount: 24},
		},
		4: {
			{Name: "Operating Systems", SubjectCode: "CS401", SubjectType: "Theory", LectureCount: 48},
			{Name: "Computer Networks", SubjectCode: "CS402", SubjectType: "Theory", LectureCount: 48},
			{Name: "Theory of Computation", SubjectCode: "CS403", SubjectType: "Theory", LectureCount: 42},
		},
	}

	var subjects []model.Subject
	for semester := 1; semester <= 4; semester++ {
		for _, subject := range bySemester[semester] {
			subject.Department = "CSE"
			subject.Semester = semester
			subjects = append(subjects, subject)
		}
	}
	return subjects
}

// RunSeeds is the entry point used by cmd/seed
func RunSeeds(ctx context.Context, tx TxManager) error {
	return NewSeeder(tx).SeedAll(ctx)
}
