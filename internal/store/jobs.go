package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/worklink-app/worklink_be/internal/models"
)

// CreateJob inserts a new job document. The store assigns the id and the
// creation timestamp; the caller surfaces any failure to the user and may
// only re-submit manually.
func (s *Store) CreateJob(ctx context.Context, job *models.Job) (uuid.UUID, error) {
	job.ID = uuid.Nil
	job.Status = models.StatusOpen
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return uuid.Nil, &WriteError{Op: "create job", Err: err}
	}
	s.publish(ctx, s.jobsPath, "insert", job.ID.String())
	return job.ID, nil
}

// Jobs returns the full current snapshot of the collection. Ordering is the
// sync engine's concern, not the store's.
func (s *Store) Jobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.WithContext(ctx).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Job loads one document by id.
func (s *Store) Job(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// AssignJob applies the grouped assignment patch in one UPDATE. There is
// deliberately no status precondition: two workers racing on the same Open
// job both succeed here and the last write wins. The loser only finds out
// from the next snapshot.
func (s *Store) AssignJob(ctx context.Context, id uuid.UUID, workerID, workerName string) error {
	patch := models.AssignmentPatch(workerID, workerName, time.Now())
	res := s.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return &WriteError{Op: "assign job", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &WriteError{Op: "assign job", Err: gorm.ErrRecordNotFound}
	}
	s.publish(ctx, s.jobsPath, "update", id.String())
	return nil
}

// CompleteJob moves an Assigned job to Completed. Only the posting client may
// do this, and only along the forward transition path.
func (s *Store) CompleteJob(ctx context.Context, id uuid.UUID, clientID string) error {
	job, err := s.Job(ctx, id)
	if err != nil {
		return err
	}
	if job.ClientID != clientID {
		return ErrNotJobOwner
	}
	if !models.CanTransition(job.Status, models.StatusCompleted) {
		return ErrInvalidTransition
	}
	res := s.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Update("status", models.StatusCompleted)
	if res.Error != nil {
		return &WriteError{Op: "complete job", Err: res.Error}
	}
	s.publish(ctx, s.jobsPath, "update", id.String())
	return nil
}
