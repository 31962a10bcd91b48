package store

import (
	"context"
	"sync"

	"github.com/worklink-app/worklink_be/internal/models"
)

// Subscription is a live feed of full job-collection snapshots. C delivers
// the current snapshot once on attach and again after every write to the
// collection. The feed never diffs: each element is the whole collection,
// reloaded, so a consumer can never drift from store state.
//
// Close must be called before the consumer is replaced or torn down;
// otherwise stale snapshots leak into a superseded view.
type Subscription struct {
	C <-chan []models.Job

	cancel context.CancelFunc
	once   sync.Once
}

// Close tears the subscription down. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// SubscribeJobs opens a long-lived subscription to the whole jobs collection.
// There is no server-side filter; skill and status filtering happen on the
// consumer's copy.
//
// onError fires at most once, after which the channel closes and the
// subscription is dead. The store never re-subscribes on its own.
func (s *Store) SubscribeJobs(ctx context.Context, onError func(error)) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	pubsub := s.rdb.Subscribe(ctx, s.jobsPath)
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, classify(err)
	}

	ch := make(chan []models.Job, 1)
	sub := &Subscription{C: ch, cancel: cancel}

	go func() {
		defer close(ch)
		defer pubsub.Close()

		fail := func(err error) {
			if ctx.Err() == nil && onError != nil {
				onError(classify(err))
			}
		}

		// Initial attach delivers the current snapshot before any event.
		snapshot, err := s.Jobs(ctx)
		if err != nil {
			fail(err)
			return
		}
		if !send(ctx, ch, snapshot) {
			return
		}

		for {
			if _, err := pubsub.ReceiveMessage(ctx); err != nil {
				if ctx.Err() != nil {
					return // closed by the consumer
				}
				fail(err)
				return
			}

			// Full rebuild on every event, no incremental diffing.
			snapshot, err := s.Jobs(ctx)
			if err != nil {
				fail(err)
				return
			}
			if !send(ctx, ch, snapshot) {
				return
			}
		}
	}()

	return sub, nil
}

func send(ctx context.Context, ch chan []models.Job, snapshot []models.Job) bool {
	select {
	case ch <- snapshot:
		return true
	case <-ctx.Done():
		return false
	}
}
