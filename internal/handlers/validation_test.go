package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worklink-app/worklink_be/internal/handlers"
)

func validJobReq() handlers.CreateJobRequest {
	return handlers.CreateJobRequest{
		Title:       "Fix Roof",
		Skill:       "Carpenter",
		Description: "Replace broken tiles",
		OfferedWage: 800,
		Location:    "Sector 5",
	}
}

func TestCreateJobRequest_Validate_OK(t *testing.T) {
	assert.Empty(t, validJobReq().Validate())
}

// The wage floor is inclusive: exactly 500 passes, 499 is rejected before
// any write is attempted.
func TestCreateJobRequest_Validate_WageBoundary(t *testing.T) {
	req := validJobReq()

	req.OfferedWage = 500
	assert.Empty(t, req.Validate())

	req.OfferedWage = 499
	errs := req.Validate()
	assert.Contains(t, errs, "offeredWage")

	req.OfferedWage = 0
	errs = req.Validate()
	assert.Contains(t, errs, "offeredWage")
}

func TestCreateJobRequest_Validate_Skill(t *testing.T) {
	req := validJobReq()

	req.Skill = ""
	assert.Contains(t, req.Validate(), "skill")

	req.Skill = "Welder"
	assert.Contains(t, req.Validate(), "skill")
}

func TestCreateJobRequest_Validate_Title(t *testing.T) {
	req := validJobReq()
	req.Title = "   "
	assert.Contains(t, req.Validate(), "title")
}

func TestValidateLogin(t *testing.T) {
	ok := handlers.LoginReq{Role: "worker", Contact: "9876543210", Password: "secret1", Skill: "Mason"}
	assert.Empty(t, handlers.ValidateLogin(ok))

	cases := []struct {
		name  string
		req   handlers.LoginReq
		field string
	}{
		{"short contact", handlers.LoginReq{Role: "client", Contact: "abcd", Password: "secret1"}, "contact"},
		{"short password", handlers.LoginReq{Role: "client", Contact: "98765", Password: "12345"}, "password"},
		{"worker without skill", handlers.LoginReq{Role: "worker", Contact: "98765", Password: "secret1"}, "skill"},
		{"worker with unknown trade", handlers.LoginReq{Role: "worker", Contact: "98765", Password: "secret1", Skill: "Welder"}, "skill"},
		{"unknown role", handlers.LoginReq{Role: "admin", Contact: "98765", Password: "secret1"}, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := handlers.ValidateLogin(tc.req)
			assert.Contains(t, errs, tc.field)
		})
	}
}

// Clients do not pick a trade; a missing skill is only an error for workers.
func TestValidateLogin_ClientNeedsNoSkill(t *testing.T) {
	req := handlers.LoginReq{Role: "client", Contact: "98765", Password: "secret1"}
	assert.Empty(t, handlers.ValidateLogin(req))
}
