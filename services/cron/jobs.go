package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
)

const (
	jobSweepConflicts = "sweep_draft_conflicts"
	jobPruneLogs      = "prune_old_logs"
)

// SweepDraftConflicts recomputes the conflicts of every cohort with draft exams
// and records the counts. Nothing is modified.
func (m *CronManager) SweepDraftConflicts() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	id := m.logJobStart(jobSweepConflicts)

	report, err := m.exams.SweepConflicts(ctx)
	if err != nil {
		m.logJobError(id, jobSweepConflicts, started, fmt.Errorf("failed to sweep conflicts: %w", err))
		return
	}

	total := 0
	for _, n := range report.Conflicts {
		total += n
	}
	m.logJobComplete(id, jobSweepConflicts, started,
		fmt.Sprintf("Checked %d cohort(s), %d with conflicts, %d conflict(s) total", report.Scopes, len(report.Conflicts), total),
		report)
}

// PruneOldLogs removes audit rows past the retention period and job logs older than 30 days
func (m *CronManager) PruneOldLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	id := m.logJobStart(jobPruneLogs)

	if m.retention <= 0 {
		m.logJobComplete(id, jobPruneLogs, started, "Audit retention disabled", nil)
		return
	}

	removed, err := m.exams.PruneAudit(ctx, m.retention)
	if err != nil {
		m.logJobError(id, jobPruneLogs, started, err)
		return
	}

	var jobLogs int64
	if m.db != nil {
		cutoff := time.Now().AddDate(0, 0, -30)
		result := m.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.CronJobLog{})
		if result.Error != nil {
			m.logJobError(id, jobPruneLogs, started, fmt.Errorf("failed to prune job logs: %w", result.Error))
			return
		}
		jobLogs = result.RowsAffected
	}

	m.logJobComplete(id, jobPruneLogs, started,
		fmt.Sprintf("Removed %d audit log(s) and %d job log(s)", removed, jobLogs), nil)
}
