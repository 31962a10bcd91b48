// Package store wraps every read and write against the two public document
// collections. All mutations publish a change event on the collection's
// Redis channel so live subscribers (in this process or another instance)
// reload their snapshot.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	rdb *redis.Client

	jobsPath  string
	usersPath string
}

func New(db *gorm.DB, rdb *redis.Client, projectID string) *Store {
	return &Store{
		db:        db,
		rdb:       rdb,
		jobsPath:  fmt.Sprintf("/artifacts/%s/public/data/jobs", projectID),
		usersPath: fmt.Sprintf("/artifacts/%s/public/data/users", projectID),
	}
}

// JobsPath returns the collection path job change events are published on.
func (s *Store) JobsPath() string { return s.jobsPath }

// ChangeEvent is what travels over the collection channel. Subscribers do not
// apply it incrementally; it only tells them to reload the full snapshot.
type ChangeEvent struct {
	Collection string `json:"collection"`
	Op         string `json:"op"` // insert | update
	ID         string `json:"id"`
}

func (s *Store) publish(ctx context.Context, collection, op, id string) {
	payload, _ := json.Marshal(ChangeEvent{Collection: collection, Op: op, ID: id})
	if err := s.rdb.Publish(ctx, collection, payload).Err(); err != nil {
		// Writers must not fail because notification delivery did; the next
		// successful publish triggers a full reload anyway.
		log.Printf("store: publish on %s failed: %v", collection, err)
	}
}
