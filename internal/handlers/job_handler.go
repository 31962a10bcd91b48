package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/worklink-app/worklink_be/internal/identity"
	"github.com/worklink-app/worklink_be/internal/models"
	"github.com/worklink-app/worklink_be/internal/store"
	syncview "github.com/worklink-app/worklink_be/internal/sync"
	"github.com/worklink-app/worklink_be/internal/utils"
)

// DefaultLocation stands in when the poster's geolocation was unavailable.
const DefaultLocation = "Default: Bengaluru, KA"

// MinDailyWage is the lowest accepted ₹/day. 500 passes, 499 is rejected
// before any write.
const MinDailyWage = 500

type JobHandler struct {
	Store *store.Store
	Board *syncview.Board
}

func NewJobHandler(st *store.Store, board *syncview.Board) *JobHandler {
	return &JobHandler{Store: st, Board: board}
}

type CreateJobRequest struct {
	Title       string         `json:"title"`
	Skill       string         `json:"skill"`
	Description string         `json:"description"`
	OfferedWage float64        `json:"offeredWage"`
	Location    string         `json:"location"`
	Coords      *models.Coords `json:"coords,omitempty"`
}

// Validate applies the form-level checks before anything touches the store.
func (r CreateJobRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(r.Title) == "" {
		errs.Add("title", "Please fill in all required fields.")
	}
	if r.Skill == "" {
		errs.Add("skill", "Please fill in all required fields.")
	} else if !models.IsValidSkill(r.Skill) {
		errs.Add("skill", "Select a trade from the list.")
	}
	if r.OfferedWage <= 0 {
		errs.Add("offeredWage", "Please fill in all required fields.")
	} else if r.OfferedWage < MinDailyWage {
		errs.Add("offeredWage", "Minimum wage is ₹500/day.")
	}
	return errs
}

// JobResponse is the DTO for one job on the board.
type JobResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Skill       string         `json:"skill"`
	Description string         `json:"description"`
	OfferedWage float64        `json:"offeredWage"`
	ClientID    string         `json:"clientId"`
	ClientName  string         `json:"clientName"`
	Status      string         `json:"status"`
	Location    string         `json:"location"`
	Coords      *models.Coords `json:"coords,omitempty"`
	MapURL      string         `json:"mapUrl,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	WorkerID    *string        `json:"workerId,omitempty"`
	WorkerName  *string        `json:"workerName,omitempty"`
	AssignedAt  *time.Time     `json:"assignedAt,omitempty"`
}

func toJobResponse(j *models.Job) JobResponse {
	resp := JobResponse{
		ID:          j.ID.String(),
		Title:       j.Title,
		Skill:       j.Skill,
		Description: j.Description,
		OfferedWage: j.OfferedWage,
		ClientID:    j.ClientID,
		ClientName:  j.ClientName,
		Status:      string(j.Status),
		Location:    j.Location,
		CreatedAt:   j.CreatedAt,
		WorkerID:    j.WorkerID,
		WorkerName:  j.WorkerName,
		AssignedAt:  j.AssignedAt,
	}
	if c := models.DecodeCoords(j.Coords); c != nil {
		resp.Coords = c
		resp.MapURL = utils.StaticMapURL(*c)
	}
	return resp
}

// List returns the board's current ordered snapshot.
func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs := h.Board.Jobs()
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Create posts a new job for the logged-in client.
func (h *JobHandler) Create(c *fiber.Ctx) error {
	uid, ok := c.Locals("userId").(string)
	if !ok || uid == "" {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return validationFail(c, errs)
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		// geolocation unavailable on the poster's side
		location = DefaultLocation
	}

	job := models.Job{
		Title:       strings.TrimSpace(req.Title),
		Skill:       req.Skill,
		Description: req.Description,
		OfferedWage: req.OfferedWage,
		ClientID:    uid,
		ClientName:  "Client " + identity.ShortLabel(uid),
		Location:    location,
	}
	if req.Coords != nil {
		job.Coords = models.CoordsJSON(*req.Coords)
	}

	if _, err := h.Store.CreateJob(c.Context(), &job); err != nil {
		log.Println("Error posting job:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to post job. Please try again.",
		})
	}

	resp := toJobResponse(&job)
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Job posted successfully!",
		"data":    resp,
	})
}

// Accept assigns the job to the logged-in worker. There is no status
// precondition; with two racing workers the last write wins and the loser
// learns about it from the next snapshot.
func (h *JobHandler) Accept(c *fiber.Ctx) error {
	uid, ok := c.Locals("userId").(string)
	if !ok || uid == "" {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	jobUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	job, err := h.Store.Job(c.Context(), jobUUID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Job not found",
		})
	}

	if job.ClientID == uid {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "You cannot accept your own job.",
		})
	}

	workerName := "Worker " + identity.ShortLabel(uid)
	if err := h.Store.AssignJob(c.Context(), jobUUID, uid, workerName); err != nil {
		log.Println("Error accepting job:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "This job may have been taken. Please refresh.",
		})
	}

	job, err = h.Store.Job(c.Context(), jobUUID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load job",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job accepted!",
		"data":    toJobResponse(job),
	})
}

// Complete moves an Assigned job to Completed, client-owner only.
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	uid, ok := c.Locals("userId").(string)
	if !ok || uid == "" {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	jobUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	err = h.Store.CompleteJob(c.Context(), jobUUID, uid)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Job not found",
		})
	case errors.Is(err, store.ErrNotJobOwner):
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Access denied",
		})
	case errors.Is(err, store.ErrInvalidTransition):
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Job must be assigned before it can be completed.",
		})
	default:
		log.Println("Error completing job:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update status",
		})
	}

	job, err := h.Store.Job(c.Context(), jobUUID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load job",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toJobResponse(job),
	})
}
