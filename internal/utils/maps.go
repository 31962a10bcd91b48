package utils

import (
	"fmt"

	"github.com/worklink-app/worklink_be/internal/models"
)

const mapImageBaseURL = "https://maps.googleapis.com/maps/api/staticmap?zoom=13&size=300x150&markers=color:red%7C"

// StaticMapURL builds the static map image URL for a job's coordinates.
func StaticMapURL(c models.Coords) string {
	return fmt.Sprintf("%s%v,%v", mapImageBaseURL, c.Lat, c.Lng)
}
