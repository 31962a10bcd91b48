// internal/models/job.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobStatus string

const (
	StatusOpen      JobStatus = "Open"      // posted, nobody assigned
	StatusAssigned  JobStatus = "Assigned"  // a worker took it
	StatusCompleted JobStatus = "Completed" // client confirmed the work is done
)

// validTransitions lists every allowed (from → to) pair. Strictly forward,
// no reversal: Open → Assigned → Completed.
var validTransitions = map[JobStatus][]JobStatus{
	StatusOpen:     {StatusAssigned},
	StatusAssigned: {StatusCompleted},
	// Completed is terminal
}

// ParseJobStatus converts a raw string to a JobStatus, returning an error for
// unknown values.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case StatusOpen, StatusAssigned, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// CanTransition returns true when moving from → to is permitted.
func CanTransition(from, to JobStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Coords is the optional geocoordinate pair attached to a job. Absent coords
// mean "location unavailable".
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Skill       string    `gorm:"type:varchar(30);index" json:"skill"`
	Description string    `gorm:"type:text" json:"description"`
	OfferedWage float64   `gorm:"not null" json:"offeredWage"` // ₹/day, minimum 500

	ClientID   string `gorm:"type:varchar(120);index;not null" json:"clientId"`
	ClientName string `gorm:"type:varchar(120)" json:"clientName"`

	Status   JobStatus      `gorm:"type:varchar(20);default:'Open';index" json:"status"`
	Location string         `gorm:"type:varchar(200)" json:"location"`
	Coords   datatypes.JSON `json:"coords,omitempty"` // {"lat":..,"lng":..}, null when unavailable

	CreatedAt time.Time `json:"createdAt"`

	// Set together when the job leaves Open, never one at a time.
	WorkerID   *string    `gorm:"type:varchar(120);index" json:"workerId,omitempty"`
	WorkerName *string    `gorm:"type:varchar(120)" json:"workerName,omitempty"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
}

// CoordsJSON encodes a coordinate pair for the Coords column.
func CoordsJSON(c Coords) datatypes.JSON {
	b, _ := json.Marshal(c)
	return datatypes.JSON(b)
}

// DecodeCoords returns the coordinate pair stored on a job, or nil when the
// job carries no usable coordinates.
func DecodeCoords(raw datatypes.JSON) *Coords {
	if len(raw) == 0 {
		return nil
	}
	var c Coords
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil
	}
	return &c
}

// AssignmentPatch builds the grouped write that moves a job out of Open. All
// four columns travel in a single UPDATE so no reader ever observes a
// partially assigned job.
func AssignmentPatch(workerID, workerName string, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":      StatusAssigned,
		"worker_id":   workerID,
		"worker_name": workerName,
		"assigned_at": at,
	}
}
