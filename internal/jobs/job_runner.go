package jobs

import (
	"database/sql"

	"voltrent-backend/internal/config"
	"voltrent-backend/internal/events"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/repository/postgres"
	"voltrent-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db        *sql.DB
	store     *postgres.Store
	publisher events.Publisher
	emailSvc  service.EmailService
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, publisher events.Publisher, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:        db,
		store:     store,
		publisher: publisher,
		emailSvc:  emailSvc,
		config:    cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every job once (for manual execution via cmd/cronjob)
func (jr *JobRunner) RunAllJobs() {
	jr.ExpireStalePendingBookings()
	jr.SendUpcomingBookingReminders()
}
