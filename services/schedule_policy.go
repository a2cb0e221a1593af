package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/config"
	"github.com/lalankumar17/Automated-Examination-Management-System/database"
	"github.com/lalankumar17/Automated-Examination-Management-System/model"
)

const (
	dateLayout  = "2006-01-02"
	minSemester = 1
	maxSemester = 8
)

// Exam types accepted by the timetable
const (
	ExamTypeMSE1       = "MSE I"
	ExamTypeMSE2       = "MSE II"
	ExamTypeRetestMSE1 = "Retest MSE I"
	ExamTypeRetestMSE2 = "Retest MSE II"
)

var ExamTypes = []string{ExamTypeMSE1, ExamTypeMSE2, ExamTypeRetestMSE1, ExamTypeRetestMSE2}

// NormalizeExamType maps raw input onto the canonical exam type spelling.
// Empty input defaults to MSE I.
func NormalizeExamType(raw string) (string, bool) {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" {
		return ExamTypeMSE1, true
	}
	for _, t := range ExamTypes {
		if strings.EqualFold(t, raw) {
			return t, true
		}
	}
	return "", false
}

// TimeSlot is a standard exam sitting
type TimeSlot struct {
	Label    string `json:"label"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration int    `json:"duration"`
}

// Policy holds the tunable scheduling rules
type Policy struct {
	Departments         []string
	DailyTypeLimit      int
	MaxExamsPerDay      int // 0 disables SAME_DAY
	MaxExamsPerWindow   int // 0 disables MAX_LOAD
	LoadWindowDays      int
	ResolveHorizonDays  int
	TimeSlots           []TimeSlot
	ExcludedWeekdays    []time.Weekday
	RequireKnownSubject bool
}

func DefaultPolicy() Policy {
	return Policy{
		Departments:        []string{"CSE", "AE", "CE", "ECE", "EEE", "ME", "ISE", "AI&DS", "AI&ML"},
		DailyTypeLimit:     2,
		LoadWindowDays:     7,
		ResolveHorizonDays: 14,
		TimeSlots: []TimeSlot{
			{Label: "Morning", Start: "09:30", End: "11:00", Duration: 90},
			{Label: "Afternoon", Start: "13:30", End: "15:00", Duration: 90},
		},
		ExcludedWeekdays: []time.Weekday{time.Sunday},
	}
}

// PolicyFromConfig builds the scheduling policy from the environment
func PolicyFromConfig(env *config.EnviornmentVariable) (Policy, error) {
	policy := DefaultPolicy()

	departments := splitList(env.SCHEDULE_DEPARTMENTS)
	if len(departments) == 0 {
		return Policy{}, fmt.Errorf("SCHEDULE_DEPARTMENTS must list at least one department")
	}
	policy.Departments = departments

	slots, err := ParseTimeSlots(env.SCHEDULE_TIME_SLOTS)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid SCHEDULE_TIME_SLOTS: %w", err)
	}
	policy.TimeSlots = slots

	weekdays, err := ParseWeekdays(env.SCHEDULE_EXCLUDED_WEEKDAYS)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid SCHEDULE_EXCLUDED_WEEKDAYS: %w", err)
	}
	if len(weekdays) == 7 {
		return Policy{}, fmt.Errorf("SCHEDULE_EXCLUDED_WEEKDAYS excludes every day")
	}
	policy.ExcludedWeekdays = weekdays

	if env.SCHEDULE_DAILY_TYPE_LIMIT < 1 {
		return Policy{}, fmt.Errorf("SCHEDULE_DAILY_TYPE_LIMIT must be at least 1")
	}
	if env.SCHEDULE_LOAD_WINDOW_DAYS < 1 {
		return Policy{}, fmt.Errorf("SCHEDULE_LOAD_WINDOW_DAYS must be at least 1")
	}
	policy.DailyTypeLimit = env.SCHEDULE_DAILY_TYPE_LIMIT
	policy.MaxExamsPerDay = env.SCHEDULE_MAX_EXAMS_PER_DAY
	policy.MaxExamsPerWindow = env.SCHEDULE_MAX_EXAMS_PER_WINDOW
	policy.LoadWindowDays = env.SCHEDULE_LOAD_WINDOW_DAYS
	policy.ResolveHorizonDays = env.SCHEDULE_RESOLVE_HORIZON_DAYS
	policy.RequireKnownSubject = env.SCHEDULE_REQUIRE_KNOWN_SUBJECT

	return policy, nil
}

// ParseTimeSlots parses "Label=HH:MM-HH:MM" entries separated by commas. The label is optional.
func ParseTimeSlots(raw string) ([]TimeSlot, error) {
	var slots []TimeSlot
	for i, entry := range splitList(raw) {
		label := fmt.Sprintf("Slot %d", i+1)
		if name, window, ok := strings.Cut(entry, "="); ok {
			label = strings.TrimSpace(name)
			entry = window
		}
		startRaw, endRaw, ok := strings.Cut(entry, "-")
		if !ok {
			return nil, fmt.Errorf("slot %q must look like HH:MM-HH:MM", entry)
		}
		start, err := parseClock(startRaw)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(endRaw)
		if err != nil {
			return nil, err
		}
		if end <= start {
			return nil, fmt.Errorf("slot %q ends before it starts", entry)
		}
		slots = append(slots, TimeSlot{
			Label:    label,
			Start:    formatClock(start),
			End:      formatClock(end),
			Duration: end - start,
		})
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("at least one time slot is required")
	}
	return slots, nil
}

// ParseWeekdays parses a comma separated list of weekday names such as "sunday,sat"
func ParseWeekdays(raw string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range splitList(raw) {
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
				days = append(days, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
	}
	return days, nil
}

// NormalizeDepartment matches raw against the configured departments ignoring case
func (p Policy) NormalizeDepartment(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, d := range p.Departments {
		if strings.EqualFold(d, raw) {
			return d, true
		}
	}
	return "", false
}

func (p Policy) isExcluded(day time.Weekday) bool {
	for _, d := range p.ExcludedWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// SlotByChoice resolves a time slot by index (0 based) or label
func (p Policy) SlotByChoice(choice string) (TimeSlot, bool) {
	choice = strings.TrimSpace(choice)
	if idx, err := strconv.Atoi(choice); err == nil {
		if idx >= 0 && idx < len(p.TimeSlots) {
			return p.TimeSlots[idx], true
		}
		return TimeSlot{}, false
	}
	for _, slot := range p.TimeSlots {
		if strings.EqualFold(slot.Label, choice) {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// Scope is a department/semester filter. Empty fields match everything.
type Scope struct {
	Department string
	Semester   *int
}

// ResolveScope validates a raw department/semester filter
func (p Policy) ResolveScope(department string, semester *int) (Scope, error) {
	scope := Scope{Semester: semester}
	if strings.TrimSpace(department) != "" {
		dept, ok := p.NormalizeDepartment(department)
		if !ok {
			return Scope{}, &ScopeError{Message: fmt.Sprintf("Unknown department: %s", strings.TrimSpace(department))}
		}
		scope.Department = dept
	}
	if semester != nil && (*semester < minSemester || *semester > maxSemester) {
		return Scope{}, &ScopeError{Message: fmt.Sprintf("Semester must be between %d and %d", minSemester, maxSemester)}
	}
	return scope, nil
}

// Complete reports whether the scope names exactly one cohort
func (s Scope) Complete() bool {
	return s.Department != "" && s.Semester != nil
}

func (s Scope) Matches(exam *model.Exam) bool {
	if s.Department != "" && exam.Department != s.Department {
		return false
	}
	if s.Semester != nil && exam.Semester != *s.Semester {
		return false
	}
	return true
}

func (s Scope) Filter() database.ExamFilter {
	return database.ExamFilter{Department: s.Department, Semester: s.Semester}
}

func (s Scope) String() string {
	dept := s.Department
	if dept == "" {
		dept = "all"
	}
	sem := "all"
	if s.Semester != nil {
		sem = strconv.Itoa(*s.Semester)
	}
	return dept + "/sem-" + sem
}

// cohortKey identifies a department/semester pair
func cohortKey(department string, semester int) string {
	return department + ":" + strconv.Itoa(semester)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseClock converts "H:MM" or "HH:MM" to minutes since midnight
func parseClock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}

func shiftDate(date string, days int) string {
	t, err := parseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(dateLayout)
}
