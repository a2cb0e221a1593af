package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
)

const archivePrefix = "timetables/"

// TimetableArchiver stores a snapshot of a freshly published timetable
type TimetableArchiver interface {
	Archive(ctx context.Context, scope Scope, exams []model.Exam) (string, error)
	// List returns the object keys of stored snapshots covering scope, oldest first
	List(ctx context.Context, scope Scope) ([]string, error)
}

// ObjectStore is implemented by utils/storage.SpacesClient
type ObjectStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}

type noopArchiver struct{}

// NewNoopArchiver returns an archiver that discards snapshots
func NewNoopArchiver() TimetableArchiver {
	return noopArchiver{}
}

func (noopArchiver) Archive(context.Context, Scope, []model.Exam) (string, error) {
	return "", nil
}

func (noopArchiver) List(context.Context, Scope) ([]string, error) {
	return []string{}, nil
}

// SpacesArchiver writes snapshots as JSON objects to S3 compatible storage
type SpacesArchiver struct {
	store ObjectStore
	clock func() time.Time
}

func NewSpacesArchiver(store ObjectStore) *SpacesArchiver {
	return &SpacesArchiver{store: store, clock: time.Now}
}

type timetableSnapshot struct {
	Department  string       `json:"department,omitempty"`
	Semester    *int         `json:"semester,omitempty"`
	PublishedAt time.Time    `json:"publishedAt"`
	Exams       []model.Exam `json:"exams"`
}

func (a *SpacesArchiver) Archive(ctx context.Context, scope Scope, exams []model.Exam) (string, error) {
	now := a.clock().UTC()
	body, err := json.MarshalIndent(timetableSnapshot{
		Department:  scope.Department,
		Semester:    scope.Semester,
		PublishedAt: now,
		Exams:       exams,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode timetable snapshot: %w", err)
	}

	return a.store.UploadBytes(ctx, archiveKey(scope, now), body, "application/json")
}

func (a *SpacesArchiver) List(ctx context.Context, scope Scope) ([]string, error) {
	prefix := archivePrefix
	if scope.Department != "" {
		prefix += scope.Department + "/"
		if scope.Semester != nil {
			prefix += "sem-" + strconv.Itoa(*scope.Semester) + "/"
		}
	}

	keys, err := a.store.ListFiles(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, key := range keys {
		if scope.Department == "" && scope.Semester != nil &&
			!strings.Contains(key, "/sem-"+strconv.Itoa(*scope.Semester)+"/") {
			continue
		}
		out = append(out, key)
	}
	// timestamps sort lexically within a scope
	sort.Strings(out)
	return out, nil
}

// archiveKey builds timetables/{dept|all}/sem-{n|all}/{timestamp}.json
func archiveKey(scope Scope, at time.Time) string {
	dept := "all"
	if scope.Department != "" {
		dept = scope.Department
	}
	sem := "all"
	if scope.Semester != nil {
		sem = strconv.Itoa(*scope.Semester)
	}
	return fmt.Sprintf("%s%s/sem-%s/%s.json", archivePrefix, dept, sem, at.Format("20060102T150405Z"))
}
