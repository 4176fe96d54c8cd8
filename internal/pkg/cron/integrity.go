package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
)

const IntegritySweepJob = "integrity-sweep"

// IntegrityJobs re-verifies stored entry hashes. It only reports; nothing is modified.
type IntegrityJobs struct {
	entryService entry.EntryService
	interval     time.Duration
}

func NewIntegrityJobs(entryService entry.EntryService, interval time.Duration) *IntegrityJobs {
	return &IntegrityJobs{
		entryService: entryService,
		interval:     interval,
	}
}

func (j *IntegrityJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(IntegritySweepJob, j.interval, j.SweepIntegrity)
}

func (j *IntegrityJobs) SweepIntegrity(ctx context.Context) error {
	slog.Info("Cron: Starting integrity sweep")

	result, err := j.entryService.SweepIntegrity(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep entry integrity: %w", err)
	}

	if result.Mismatches > 0 {
		slog.Warn("Cron: Integrity sweep found tampered entries",
			"checked", result.Checked,
			"mismatches", result.Mismatches,
			"entry_ids", result.MismatchedIDs,
		)
		return nil
	}

	slog.Info("Cron: Integrity sweep completed", "checked", result.Checked)
	return nil
}
