package handlers

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/worklink_be/internal/assistant"
	"github.com/worklink-app/worklink_be/internal/identity"
	"github.com/worklink-app/worklink_be/internal/middleware"
	"github.com/worklink-app/worklink_be/internal/models"
	syncview "github.com/worklink-app/worklink_be/internal/sync"
	"github.com/worklink-app/worklink_be/internal/utils"
)

// AssistantHandler serves the floating chat widget. The widget works before
// login too, so the session here is optional: a missing or bad cookie just
// means an unauthenticated session.
type AssistantHandler struct {
	Board     *syncview.Board
	Bot       *assistant.Assistant
	JWTSecret string

	mu          sync.Mutex
	transcripts map[string]*assistant.Transcript
}

func NewAssistantHandler(board *syncview.Board, bot *assistant.Assistant, jwtSecret string) *AssistantHandler {
	return &AssistantHandler{
		Board:       board,
		Bot:         bot,
		JWTSecret:   jwtSecret,
		transcripts: make(map[string]*assistant.Transcript),
	}
}

func (h *AssistantHandler) session(c *fiber.Ctx) identity.Session {
	tokenStr := c.Cookies(middleware.SessionCookie)
	if tokenStr == "" {
		return identity.Session{}
	}
	claims, err := utils.ParseJWT(h.JWTSecret, tokenStr)
	if err != nil {
		return identity.Session{}
	}
	return identity.Session{
		ID:            claims.UserID,
		Role:          models.Role(claims.Role),
		Authenticated: true,
	}
}

func (h *AssistantHandler) transcript(sess identity.Session, c *fiber.Ctx) *assistant.Transcript {
	key := sess.ID
	if key == "" {
		key = "guest:" + c.IP()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.transcripts[key]
	if !ok {
		t = assistant.NewTranscript()
		h.transcripts[key] = t
	}
	return t
}

type assistantMessageReq struct {
	Text string `json:"text"`
}

// Send answers one question against the current board snapshot and appends
// the exchange to the caller's transcript.
func (h *AssistantHandler) Send(c *fiber.Ctx) error {
	var req assistantMessageReq
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Text is required",
		})
	}

	sess := h.session(c)
	text := strings.TrimSpace(req.Text)

	reply := h.Bot.Answer(h.Board.Jobs(), sess, text)

	t := h.transcript(sess, c)
	t.Append("user", text)
	t.Append("bot", reply)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"reply": reply,
		},
	})
}

// History returns the caller's transcript so far.
func (h *AssistantHandler) History(c *fiber.Ctx) error {
	sess := h.session(c)
	t := h.transcript(sess, c)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    t.Entries(),
	})
}
