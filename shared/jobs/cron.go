package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"contaia-backend/shared/tenancy"
)

// Schedules holds the cron expressions for the tenancy jobs. An empty
// expression disables that job.
type Schedules struct {
	UsageReset string
	QuotaSweep string
}

// CronManager manages scheduled jobs
type CronManager struct {
	cron     *cron.Cron
	registry *tenancy.Registry
	logger   *zap.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(registry *tenancy.Registry, logger *zap.Logger) *CronManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronManager{
		cron:     cron.New(),
		registry: registry,
		logger:   logger.Named("jobs"),
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs(s Schedules) error {
	if s.UsageReset != "" {
		if _, err := cm.cron.AddFunc(s.UsageReset, cm.ResetUsage); err != nil {
			return fmt.Errorf("invalid usage reset schedule %q: %w", s.UsageReset, err)
		}
		cm.logger.Info("Scheduled processing hours reset", zap.String("schedule", s.UsageReset))
	}
	if s.QuotaSweep != "" {
		if _, err := cm.cron.AddFunc(s.QuotaSweep, cm.SweepQuotas); err != nil {
			return fmt.Errorf("invalid quota sweep schedule %q: %w", s.QuotaSweep, err)
		}
		cm.logger.Info("Scheduled quota sweep", zap.String("schedule", s.QuotaSweep))
	}
	return nil
}

// ResetUsage opens a new monthly processing window for every organization.
func (cm *CronManager) ResetUsage() {
	n, err := cm.registry.ResetProcessingHours()
	if err != nil {
		cm.logger.Error("Failed to reset processing hours", zap.Error(err))
		return
	}
	cm.logger.Info("Processing hours reset", zap.Int("organizations", n))
}

// SweepQuotas logs every organization currently above a ceiling.
func (cm *CronManager) SweepQuotas() {
	cm.sweep()
}

// sweep returns how many organizations were over quota.
func (cm *CronManager) sweep() int {
	over, err := cm.registry.QuotaSweep()
	if err != nil {
		cm.logger.Error("Quota sweep failed", zap.Error(err))
		return 0
	}
	for orgID, warnings := range over {
		for _, w := range warnings {
			cm.logger.Warn("Organization over quota",
				zap.String("organization_id", orgID),
				zap.String("resource", w.Resource),
				zap.Float64("used", w.Used),
				zap.Float64("limit", w.Limit))
		}
	}
	return len(over)
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.logger.Info("Starting cron scheduler", zap.Int("jobs", len(cm.cron.Entries())))
	cm.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (cm *CronManager) Stop() {
	cm.logger.Info("Stopping cron scheduler")
	<-cm.cron.Stop().Done()
}
