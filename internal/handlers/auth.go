package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/worklink_be/internal/identity"
	"github.com/worklink-app/worklink_be/internal/middleware"
	"github.com/worklink-app/worklink_be/internal/models"
	"github.com/worklink-app/worklink_be/internal/store"
	"github.com/worklink-app/worklink_be/internal/utils"
)

type AuthHandler struct {
	Store     *store.Store
	JWTSecret string
	Expires   int
}

type LoginReq struct {
	Role     string `json:"role"` // client / worker
	Contact  string `json:"contact"`
	Password string `json:"password"`
	Skill    string `json:"skill"` // workers only
}

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// ValidateLogin applies the pre-write checks. Nothing here reaches the store:
// the contact is not verified, only shaped.
func ValidateLogin(req LoginReq) FieldErrors {
	errs := FieldErrors{}

	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if role != models.RoleClient && role != models.RoleWorker {
		errs.Add("role", "Choose worker or client.")
	}
	if len(strings.TrimSpace(req.Contact)) < 5 {
		errs.Add("contact", "Please enter valid contact info.")
	}
	if len(req.Password) < 6 {
		errs.Add("password", "Password must be 6+ characters.")
	}
	if role == models.RoleWorker {
		if req.Skill == "" {
			errs.Add("skill", "Please select your primary skill.")
		} else if !models.IsValidSkill(req.Skill) {
			errs.Add("skill", "Select your trade from the list.")
		}
	}
	return errs
}

// Login is login-and-register in one step. The identity is derived from the
// role + contact, the profile document is upserted with merge semantics, and
// the password is hashed into the profile without ever being verified.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	if errs := ValidateLogin(req); len(errs) > 0 {
		return validationFail(c, errs)
	}

	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	uid := identity.Resolve(role, req.Contact)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to process password",
		})
	}

	profile := models.UserProfile{
		ID:           uid,
		Role:         role,
		Contact:      strings.TrimSpace(req.Contact),
		PasswordHash: hash,
	}
	if role == models.RoleWorker {
		profile.PrimarySkill = req.Skill
	}

	if err := h.Store.UpsertProfile(c.Context(), &profile); err != nil {
		log.Println("Error upserting profile:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save profile. Please try again.",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, uid, string(role), h.Expires)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":   uid,
				"role": role,
			},
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}
