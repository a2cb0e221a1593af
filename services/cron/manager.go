package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/lalankumar17/Automated-Examination-Management-System/model"
	"github.com/lalankumar17/Automated-Examination-Management-System/services"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamJobs is the part of services.ExamService the scheduled jobs call
type ExamJobs interface {
	SweepConflicts(ctx context.Context) (*services.SweepReport, error)
	PruneAudit(ctx context.Context, retention time.Duration) (int64, error)
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron      *cron.Cron
	db        *gorm.DB // nil when running on in-memory storage
	exams     ExamJobs
	retention time.Duration
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, exams ExamJobs, retentionDays int) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		db:        db,
		exams:     exams,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Every 15 minutes: report draft conflicts per cohort
	_, err := m.cron.AddFunc("0 */15 * * * *", m.SweepDraftConflicts)
	if err != nil {
		return err
	}

	// 2. Daily at 3 AM: prune audit and job logs
	_, err = m.cron.AddFunc("0 0 3 * * *", m.PruneOldLogs)
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job and returns its row id (0 without a database)
func (m *CronManager) logJobStart(jobName string) uint {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	if m.db == nil {
		return 0
	}
	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
		Metadata:  datatypes.JSON("{}"),
	}
	if err := m.db.Create(&cronLog).Error; err != nil {
		log.Printf("[CRON] Failed to record start of %s: %v", jobName, err)
		return 0
	}
	return cronLog.ID
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(id uint, jobName string, started time.Time, message string, metadata interface{}) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)

	updates := map[string]interface{}{
		"status":       "completed",
		"completed_at": time.Now(),
		"duration":     time.Since(started).Milliseconds(),
		"message":      message,
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			updates["metadata"] = datatypes.JSON(raw)
		}
	}
	m.updateJob(id, updates)
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(id uint, jobName string, started time.Time, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)

	m.updateJob(id, map[string]interface{}{
		"status":       "failed",
		"completed_at": time.Now(),
		"duration":     time.Since(started).Milliseconds(),
		"error_msg":    err.Error(),
	})
}

func (m *CronManager) updateJob(id uint, updates map[string]interface{}) {
	if m.db == nil || id == 0 {
		return
	}
	if err := m.db.Model(&model.CronJobLog{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		log.Printf("[CRON] Failed to update job log %d: %v", id, err)
	}
}
