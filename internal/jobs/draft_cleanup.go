// Package jobs holds the scheduled background jobs run by the server.
package jobs

import (
	"log"
	"time"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/repository"
)

// DraftCleanupJob deletes wizard drafts that have not been touched within
// the retention window. Abandoned drafts hold personal data and should not
// outlive the session that created them.
type DraftCleanupJob struct {
	draftRepo *repository.DraftRepository
	retention time.Duration
}

// NewDraftCleanupJob creates a cleanup job with the given retention in days.
func NewDraftCleanupJob(draftRepo *repository.DraftRepository, retentionDays int) *DraftCleanupJob {
	return &DraftCleanupJob{
		draftRepo: draftRepo,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Run deletes all stale drafts. Implements cron.Job.
func (j *DraftCleanupJob) Run() {
	cutoff := time.Now().UTC().Add(-j.retention)
	deleted, err := j.draftRepo.DeleteStale(cutoff)
	if err != nil {
		log.Printf("draft cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("draft cleanup removed %d stale drafts (cutoff %s)", deleted, cutoff.Format(time.RFC3339))
	}
}
