package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SlotChoice selects a configured time slot by index or label. JSON accepts
// either a number or a string.
type SlotChoice string

func (c *SlotChoice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = SlotChoice(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("timeSlot must be a slot index or label")
	}
	*c = SlotChoice(n.String())
	return nil
}

// CreateExamRequest carries the fields a client supplies when scheduling an
// exam. Either timeSlot or both startTime and endTime must be present.
type CreateExamRequest struct {
	Semester        int         `json:"semester" validate:"required,gte=1,lte=8"`
	Department      string      `json:"department" validate:"required"`
	CourseName      string      `json:"courseName" validate:"required,max=255"`
	ExamType        string      `json:"examType" validate:"max=30"`
	ExamDate        string      `json:"examDate" validate:"required,yyyymmdd"`
	TimeSlot        *SlotChoice `json:"timeSlot"`
	StartTime       string      `json:"startTime" validate:"omitempty,hhmm"`
	EndTime         string      `json:"endTime" validate:"omitempty,hhmm"`
	HallID          string      `json:"hallId" validate:"max=50"`
	TestCoordinator string      `json:"testCoordinator" validate:"required,max=255"`
}

// UpdateExamRequest is a partial update; nil fields are left unchanged.
// Version, when set, must match the stored version.
type UpdateExamRequest struct {
	Semester        *int        `json:"semester" validate:"omitempty,gte=1,lte=8"`
	Department      *string     `json:"department"`
	CourseName      *string     `json:"courseName" validate:"omitempty,max=255"`
	ExamType        *string     `json:"examType" validate:"omitempty,max=30"`
	ExamDate        *string     `json:"examDate" validate:"omitempty,yyyymmdd"`
	TimeSlot        *SlotChoice `json:"timeSlot"`
	StartTime       *string     `json:"startTime" validate:"omitempty,hhmm"`
	EndTime         *string     `json:"endTime" validate:"omitempty,hhmm"`
	HallID          *string     `json:"hallId" validate:"omitempty,max=50"`
	TestCoordinator *string     `json:"testCoordinator" validate:"omitempty,max=255"`
	Version         *int        `json:"version"`
}

// ConflictReport is the result of a conflict check
type ConflictReport struct {
	ConflictFree bool       `json:"conflictFree"`
	Conflicts    []Conflict `json:"conflicts"`
}

type PublishResult struct {
	Message    string `json:"message"`
	Published  int64  `json:"published"`
	ArchiveURL string `json:"archiveUrl,omitempty"`
}

type StatusSummary struct {
	Total            int64  `json:"total"`
	Published        int64  `json:"published"`
	Draft            int64  `json:"draft"`
	IsFullyPublished bool   `json:"isFullyPublished"`
	DB               string `json:"db"`
}

// SweepReport lists the conflict count of every cohort that has draft exams
type SweepReport struct {
	Scopes    int            `json:"scopes"`
	Conflicts map[string]int `json:"conflicts"`
}
