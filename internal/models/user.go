// internal/models/user.go
package models

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
)

// AvailableSkills is the fixed trade set shown in both the worker login form
// and the job posting form.
var AvailableSkills = []string{
	"Mason", "Carpenter", "Plumber", "Electrician", "General Labor", "Painter", "House Helper",
}

// IsValidSkill reports whether s is one of the fixed trades.
func IsValidSkill(s string) bool {
	for _, skill := range AvailableSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// UserProfile is keyed by the derived identity label, not by a real
// credential. It is upserted on every login and never read back by the app.
type UserProfile struct {
	ID      string `gorm:"type:varchar(120);primaryKey" json:"id"`
	Role    Role   `gorm:"type:varchar(20);not null" json:"role"`
	Contact string `gorm:"type:varchar(150)" json:"contact"`

	// Workers only.
	PrimarySkill string `gorm:"type:varchar(30)" json:"primarySkill,omitempty"`

	// Stored write-only; login never verifies it.
	PasswordHash string `gorm:"type:text" json:"-"`

	ProfileStatus string    `gorm:"type:varchar(20);default:'created'" json:"profileStatus"`
	LastLogin     time.Time `json:"lastLogin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
