// Package sync maintains the live, ordered view of the job board.
package sync

import (
	"errors"
	"fmt"
	"sort"
	stdsync "sync"

	"github.com/worklink-app/worklink_be/internal/models"
	"github.com/worklink-app/worklink_be/internal/realtime"
	"github.com/worklink-app/worklink_be/internal/store"
)

// Board owns the always-current job list. Every snapshot replaces the whole
// list: rebuild-and-resort is wasteful but cannot drift from store state,
// because nothing stale survives an event.
type Board struct {
	mu   stdsync.RWMutex
	jobs []models.Job

	hub *realtime.Hub // may be nil when nobody streams
}

func NewBoard(hub *realtime.Hub) *Board {
	return &Board{hub: hub}
}

// Apply replaces the board with a fresh snapshot. Order: descending by
// creation timestamp; documents whose timestamp the store has not assigned
// yet sort as oldest, i.e. last. Applying the same snapshot twice yields the
// same list both times.
func (b *Board) Apply(snapshot []models.Job) {
	jobs := make([]models.Job, len(snapshot))
	copy(jobs, snapshot)

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	b.mu.Lock()
	b.jobs = jobs
	b.mu.Unlock()

	if b.hub != nil {
		b.hub.BroadcastJSON(map[string]interface{}{
			"type": "jobs_snapshot",
			"jobs": jobs,
		})
	}
}

// Jobs returns a copy of the current ordered list.
func (b *Board) Jobs() []models.Job {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Job, len(b.jobs))
	copy(out, b.jobs)
	return out
}

// Consume feeds the board from a store subscription until the subscription
// channel closes. Run it in its own goroutine.
func (b *Board) Consume(sub *store.Subscription) {
	for snapshot := range sub.C {
		b.Apply(snapshot)
	}
}

// ErrorMessage converts a subscription failure into the user-facing text the
// board surfaces. Permission denials get their own wording; everything else
// carries the raw detail.
func ErrorMessage(err error) string {
	if errors.Is(err, store.ErrPermissionDenied) {
		return "Permission denied. Please log in correctly."
	}
	return fmt.Sprintf("Error: %v", err)
}
