package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlots(t *testing.T) {
	slots, err := ParseTimeSlots("Morning=9:30-11:00, Afternoon = 13:30-15:00,16:00-17:15")
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, TimeSlot{Label: "Morning", Start: "09:30", End: "11:00", Duration: 90}, slots[0])
	assert.Equal(t, "Afternoon", slots[1].Label)
	assert.Equal(t, TimeSlot{Label: "Slot 3", Start: "16:00", End: "17:15", Duration: 75}, slots[2])

	for _, raw := range []string{"", "Morning=09:30", "Morning=11:00-09:30", "Late=24:00-25:00"} {
		_, err := ParseTimeSlots(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays("sunday, SAT")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, days)

	days, err = ParseWeekdays("")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = ParseWeekdays("funday")
	assert.Error(t, err)
}

func TestPolicyFromConfig(t *testing.T) {
	env := &config.EnviornmentVariable{
		SCHEDULE_DEPARTMENTS:          "CSE, ECE",
		SCHEDULE_TIME_SLOTS:           "A=08:00-09:00",
		SCHEDULE_EXCLUDED_WEEKDAYS:    "sun,sat",
		SCHEDULE_DAILY_TYPE_LIMIT:     3,
		SCHEDULE_MAX_EXAMS_PER_DAY:    4,
		SCHEDULE_LOAD_WINDOW_DAYS:     5,
		SCHEDULE_RESOLVE_HORIZON_DAYS: 7,
	}

	policy, err := PolicyFromConfig(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"CSE", "ECE"}, policy.Departments)
	assert.Equal(t, 3, policy.DailyTypeLimit)
	assert.Equal(t, 4, policy.MaxExamsPerDay)
	assert.Equal(t, 0, policy.MaxExamsPerWindow)
	assert.Len(t, policy.TimeSlots, 1)
	assert.True(t, policy.isExcluded(time.Saturday))

	env.SCHEDULE_DAILY_TYPE_LIMIT = 0
	_, err = PolicyFromConfig(env)
	assert.Error(t, err)

	env.SCHEDULE_DAILY_TYPE_LIMIT = 2
	env.SCHEDULE_EXCLUDED_WEEKDAYS = "sun,mon,tue,wed,thu,fri,sat"
	_, err = PolicyFromConfig(env)
	assert.Error(t, err)
}

func TestNormalizeExamType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"", ExamTypeMSE1, true},
		{"mse i", ExamTypeMSE1, true},
		{"MSE  II", ExamTypeMSE2, true},
		{"Retest MSE I", ExamTypeRetestMSE1, true},
		{"SEE", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeExamType(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestPolicy_SlotByChoice(t *testing.T) {
	p := DefaultPolicy()

	slot, ok := p.SlotByChoice("0")
	require.True(t, ok)
	assert.Equal(t, "Morning", slot.Label)

	slot, ok = p.SlotByChoice(" AFTERNOON ")
	require.True(t, ok)
	assert.Equal(t, "13:30", slot.Start)

	_, ok = p.SlotByChoice("2")
	assert.False(t, ok)
	_, ok = p.SlotByChoice("-1")
	assert.False(t, ok)
}

func TestSlotChoice_UnmarshalJSON(t *testing.T) {
	var req CreateExamRequest
	require.NoError(t, json.Unmarshal([]byte(`{"timeSlot": 1}`), &req))
	require.NotNil(t, req.TimeSlot)
	assert.Equal(t, SlotChoice("1"), *req.TimeSlot)

	req = CreateExamRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"timeSlot": " Morning "}`), &req))
	assert.Equal(t, SlotChoice("Morning"), *req.TimeSlot)

	req = CreateExamRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"timeSlot": null}`), &req))
	assert.Nil(t, req.TimeSlot)

	assert.Error(t, json.Unmarshal([]byte(`{"timeSlot": true}`), &req))
}

func TestPolicy_ResolveScope(t *testing.T) {
	p := DefaultPolicy()

	scope, err := p.ResolveScope("ai&ml", intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, "AI&ML", scope.Department)
	assert.True(t, scope.Complete())
	assert.Equal(t, "AI&ML/sem-5", scope.String())

	scope, err = p.ResolveScope("", nil)
	require.NoError(t, err)
	assert.False(t, scope.Complete())
	assert.Equal(t, "all/sem-all", scope.String())

	var serr *ScopeError
	_, err = p.ResolveScope("Law", nil)
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Unknown department: Law", serr.Message)

	_, err = p.ResolveScope("CSE", intPtr(0))
	assert.ErrorAs(t, err, &serr)
}

func TestScope_Matches(t *testing.T) {
	exam := booking("a", "CSE", 3, "2025-01-10", "09:30", "11:00", "", "Dr. A")

	assert.True(t, Scope{}.Matches(&exam))
	assert.True(t, Scope{Department: "CSE"}.Matches(&exam))
	assert.True(t, Scope{Semester: intPtr(3)}.Matches(&exam))
	assert.False(t, cohort("CSE", 4).Matches(&exam))
	assert.False(t, cohort("ECE", 3).Matches(&exam))
}
