// File: /jobs/session_cleanup_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"loopline-api/repositories"
)

// SessionCleanupJob handles periodic cleanup of sessions that logged out
// and were never picked up again
type SessionCleanupJob struct {
	sessions *repositories.SessionRepository
	maxIdle  time.Duration
	ticker   *time.Ticker
	done     chan bool
}

// NewSessionCleanupJob creates a new session cleanup job
func NewSessionCleanupJob(db *gorm.DB, interval, maxIdle time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: repositories.NewSessionRepository(db),
		maxIdle:  maxIdle,
		ticker:   time.NewTicker(interval),
		done:     make(chan bool),
	}
}

// Start begins the cleanup job
func (j *SessionCleanupJob) Start() {
	fmt.Println("Session cleanup job started")

	go func() {
		// Run immediately on start
		j.cleanup()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				fmt.Println("Session cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup job
func (j *SessionCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// cleanup performs the actual cleanup
func (j *SessionCleanupJob) cleanup() {
	removed, err := j.sessions.DeleteStale(j.maxIdle)
	if err != nil {
		fmt.Printf("Error during session cleanup: %v\n", err)
		return
	}

	if removed > 0 {
		fmt.Printf("Session cleanup removed %d stale sessions\n", removed)
	}
}
