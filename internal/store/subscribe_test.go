package store_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/worklink-app/worklink_be/internal/models"
	"github.com/worklink-app/worklink_be/internal/store"
)

// The jobs table is created by hand because the model's column defaults are
// written for Postgres. SQLite fills id with 32 hex chars, which uuid parsing
// accepts.
const jobsDDL = `CREATE TABLE jobs (
	id text PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
	title text NOT NULL,
	skill varchar(30),
	description text,
	offered_wage real NOT NULL,
	client_id varchar(120) NOT NULL,
	client_name varchar(120),
	status varchar(20) DEFAULT 'Open',
	location varchar(200),
	coords text,
	created_at datetime,
	worker_id varchar(120),
	worker_name varchar(120),
	assigned_at datetime
)`

// newTestStore wires a Store against an in-process Redis and an in-memory
// SQLite database. cache=shared keeps the subscription goroutine and the test
// on the same database across pooled connections.
func newTestStore(t *testing.T) (*store.Store, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(jobsDDL).Error)

	return store.New(db, rdb, "worklink-test"), db, mr
}

func seedJob(t *testing.T, db *gorm.DB, title string) {
	t.Helper()
	job := models.Job{
		ID:          uuid.New(),
		Title:       title,
		Skill:       "Carpenter",
		OfferedWage: 800,
		ClientID:    "client-ramesh99",
		Status:      models.StatusOpen,
		Location:    "Sector 5",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, db.Create(&job).Error)
}

func recvSnapshot(t *testing.T, c <-chan []models.Job) []models.Job {
	t.Helper()
	select {
	case snap, ok := <-c:
		require.True(t, ok, "subscription channel closed early")
		return snap
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func requireClosed(t *testing.T, c <-chan []models.Job) {
	t.Helper()
	for {
		select {
		case _, ok := <-c:
			if !ok {
				return
			}
		case <-time.After(3 * time.Second):
			t.Fatal("subscription channel never closed")
		}
	}
}

func TestSubscribeJobs_SnapshotOnAttach(t *testing.T) {
	st, db, _ := newTestStore(t)
	seedJob(t, db, "Fix Roof")

	sub, err := st.SubscribeJobs(context.Background(), func(err error) {
		t.Errorf("unexpected subscription error: %v", err)
	})
	require.NoError(t, err)
	defer sub.Close()

	snap := recvSnapshot(t, sub.C)
	require.Len(t, snap, 1)
	assert.Equal(t, "Fix Roof", snap[0].Title)
}

// Every write to the collection triggers a full reload: once through the
// store's own publish on CreateJob, once through an event published by
// another process on the same channel.
func TestSubscribeJobs_ReloadOnEveryWrite(t *testing.T) {
	st, db, mr := newTestStore(t)
	ctx := context.Background()

	sub, err := st.SubscribeJobs(ctx, func(err error) {
		t.Errorf("unexpected subscription error: %v", err)
	})
	require.NoError(t, err)
	defer sub.Close()

	assert.Empty(t, recvSnapshot(t, sub.C))

	_, err = st.CreateJob(ctx, &models.Job{
		Title:       "Paint Fence",
		Skill:       "Painter",
		OfferedWage: 600,
		ClientID:    "client-ramesh99",
	})
	require.NoError(t, err)
	assert.Len(t, recvSnapshot(t, sub.C), 1)

	seedJob(t, db, "Fix Roof")
	mr.Publish(st.JobsPath(), `{"collection":"jobs","op":"insert","id":"x"}`)
	assert.Len(t, recvSnapshot(t, sub.C), 2)
}

// When the snapshot reload fails, onError fires exactly once and the feed
// terminates; further events never resurrect it.
func TestSubscribeJobs_ErrorFiresOnceAndTerminates(t *testing.T) {
	st, db, mr := newTestStore(t)

	var calls atomic.Int32
	sub, err := st.SubscribeJobs(context.Background(), func(err error) {
		calls.Add(1)
	})
	require.NoError(t, err)
	defer sub.Close()

	assert.Empty(t, recvSnapshot(t, sub.C))

	require.NoError(t, db.Exec("DROP TABLE jobs").Error)
	mr.Publish(st.JobsPath(), `{"collection":"jobs","op":"update","id":"x"}`)

	requireClosed(t, sub.C)
	assert.Equal(t, int32(1), calls.Load())

	mr.Publish(st.JobsPath(), `{"collection":"jobs","op":"update","id":"y"}`)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubscribeJobs_AttachFailsWhenRedisDown(t *testing.T) {
	st, _, mr := newTestStore(t)
	mr.Close()

	sub, err := st.SubscribeJobs(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, sub)
}

// Closing is the consumer's move, not a failure: the channel closes without
// onError, and a second Close is a no-op.
func TestSubscription_CloseIdempotent(t *testing.T) {
	st, _, _ := newTestStore(t)

	var calls atomic.Int32
	sub, err := st.SubscribeJobs(context.Background(), func(err error) {
		calls.Add(1)
	})
	require.NoError(t, err)

	recvSnapshot(t, sub.C)

	assert.NotPanics(t, sub.Close)
	assert.NotPanics(t, sub.Close)

	requireClosed(t, sub.C)
	assert.Equal(t, int32(0), calls.Load())
}
