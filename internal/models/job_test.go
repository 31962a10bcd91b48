package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklink-app/worklink_be/internal/models"
)

func TestParseJobStatus(t *testing.T) {
	for _, s := range []string{"Open", "Assigned", "Completed"} {
		got, err := models.ParseJobStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	}

	_, err := models.ParseJobStatus("open")
	assert.Error(t, err, "status values are case-sensitive")
	_, err = models.ParseJobStatus("")
	assert.Error(t, err)
}

func TestCanTransition_ForwardOnly(t *testing.T) {
	cases := []struct {
		from, to models.JobStatus
		want     bool
	}{
		{models.StatusOpen, models.StatusAssigned, true},
		{models.StatusAssigned, models.StatusCompleted, true},
		{models.StatusOpen, models.StatusCompleted, false}, // no skipping
		{models.StatusAssigned, models.StatusOpen, false},  // no reversal
		{models.StatusCompleted, models.StatusOpen, false},
		{models.StatusCompleted, models.StatusAssigned, false},
		{models.StatusOpen, models.StatusOpen, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

// The assignment patch must always carry all four columns together so no
// reader can observe a partially assigned job.
func TestAssignmentPatch_AllFieldsTogether(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	patch := models.AssignmentPatch("worker-johndoe123", "Worker work", at)

	require.Len(t, patch, 4)
	assert.Equal(t, models.StatusAssigned, patch["status"])
	assert.Equal(t, "worker-johndoe123", patch["worker_id"])
	assert.Equal(t, "Worker work", patch["worker_name"])
	assert.Equal(t, at, patch["assigned_at"])
}

func TestCoordsRoundTrip(t *testing.T) {
	c := models.Coords{Lat: 12.9716, Lng: 77.5946}
	got := models.DecodeCoords(models.CoordsJSON(c))
	require.NotNil(t, got)
	assert.Equal(t, c, *got)
}

func TestDecodeCoords_AbsentMeansUnavailable(t *testing.T) {
	assert.Nil(t, models.DecodeCoords(nil))
	assert.Nil(t, models.DecodeCoords([]byte("not json")))
}

func TestIsValidSkill(t *testing.T) {
	for _, s := range models.AvailableSkills {
		assert.True(t, models.IsValidSkill(s))
	}
	assert.False(t, models.IsValidSkill("carpenter"), "trade names are exact")
	assert.False(t, models.IsValidSkill("Welder"))
}
