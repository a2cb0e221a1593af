package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExamJobs struct {
	sweeps    int
	sweepErr  error
	retention time.Duration
	prunes    int
}

func (f *fakeExamJobs) SweepConflicts(context.Context) (*services.SweepReport, error) {
	f.sweeps++
	if f.sweepErr != nil {
		return nil, f.sweepErr
	}
	return &services.SweepReport{Scopes: 3, Conflicts: map[string]int{"CSE/sem-1": 2}}, nil
}

func (f *fakeExamJobs) PruneAudit(_ context.Context, retention time.Duration) (int64, error) {
	f.prunes++
	f.retention = retention
	return 4, nil
}

func TestRegisterJobs(t *testing.T) {
	m := NewCronManager(nil, &fakeExamJobs{}, 90)

	require.NoError(t, m.registerJobs())
	assert.Len(t, m.cron.Entries(), 2)
}

func TestSweepDraftConflicts(t *testing.T) {
	jobs := &fakeExamJobs{}
	m := NewCronManager(nil, jobs, 90)

	m.SweepDraftConflicts()
	assert.Equal(t, 1, jobs.sweeps)

	jobs.sweepErr = errors.New("database unavailable")
	m.SweepDraftConflicts()
	assert.Equal(t, 2, jobs.sweeps)
}

func TestPruneOldLogs(t *testing.T) {
	jobs := &fakeExamJobs{}
	m := NewCronManager(nil, jobs, 30)

	m.PruneOldLogs()
	assert.Equal(t, 1, jobs.prunes)
	assert.Equal(t, 30*24*time.Hour, jobs.retention)
}

func TestPruneOldLogs_RetentionDisabled(t *testing.T) {
	jobs := &fakeExamJobs{}
	m := NewCronManager(nil, jobs, 0)

	m.PruneOldLogs()
	assert.Zero(t, jobs.prunes)
}
