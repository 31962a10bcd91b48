package store

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/worklink-app/worklink_be/internal/models"
)

// UpsertProfile creates or merges the user profile document on login. Merge
// semantics: fields not carried by this login are preserved, so a client
// logging back in does not clear a previously stored primarySkill.
func (s *Store) UpsertProfile(ctx context.Context, p *models.UserProfile) error {
	p.LastLogin = time.Now()
	if p.ProfileStatus == "" {
		p.ProfileStatus = "created"
	}

	assignments := map[string]interface{}{
		"role":           p.Role,
		"contact":        p.Contact,
		"password_hash":  p.PasswordHash,
		"profile_status": p.ProfileStatus,
		"last_login":     p.LastLogin,
	}
	if p.PrimarySkill != "" {
		assignments["primary_skill"] = p.PrimarySkill
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(p).Error
	if err != nil {
		return &WriteError{Op: "upsert profile", Err: err}
	}
	s.publish(ctx, s.usersPath, "update", p.ID)
	return nil
}
