// Package assistant answers free-text questions about the current job list.
// No external calls, no model: an ordered list of (predicate, respond) rules
// evaluated top to bottom, first match wins.
package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/worklink-app/worklink_be/internal/identity"
	"github.com/worklink-app/worklink_be/internal/models"
)

const maxListed = 5

// request carries one query plus the state it is answered against.
type request struct {
	query string // already lower-cased
	jobs  []models.Job
	sess  identity.Session
}

type rule struct {
	match   func(r *request) bool
	respond func(r *request) string
}

type Assistant struct {
	rules []rule
}

func New() *Assistant {
	return &Assistant{rules: []rule{
		{matchEmptyBoard, respondEmptyBoard},
		{matchOpenJobs, respondOpenJobs},
		{matchSkill, respondSkill},
		{matchMyJobs, respondMyJobs},
		{matchHelp, respondHelp},
	}}
}

// Answer evaluates the rules against the given job list and session. jobs is
// expected in board order; replies list at most five entries.
func (a *Assistant) Answer(jobs []models.Job, sess identity.Session, query string) string {
	r := &request{
		query: strings.ToLower(strings.TrimSpace(query)),
		jobs:  jobs,
		sess:  sess,
	}
	for _, rl := range a.rules {
		if rl.match(r) {
			return rl.respond(r)
		}
	}
	return `Not sure about that. Try asking for "open jobs", a specific skill like "plumber jobs", or "my jobs".`
}

func containsAny(q string, keys ...string) bool {
	for _, k := range keys {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// ── rule 1: empty board wins over everything ───────────────────────────────

func matchEmptyBoard(r *request) bool { return len(r.jobs) == 0 }

func respondEmptyBoard(*request) string {
	return "There are no jobs in the system yet. Ask a client to post a job first."
}

// ── rule 2: open jobs ──────────────────────────────────────────────────────

func matchOpenJobs(r *request) bool {
	return containsAny(r.query, "open job", "available job", "find work")
}

func respondOpenJobs(r *request) string {
	var lines []string
	for _, j := range r.jobs {
		if j.Status != models.StatusOpen {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s) - ₹%s/day at %s",
			j.Title, j.Skill, formatWage(j.OfferedWage), j.Location))
		if len(lines) == maxListed {
			break
		}
	}
	if len(lines) == 0 {
		return "There are currently no open jobs. Please check again later."
	}
	return "Here are some open jobs: " + strings.Join(lines, " | ")
}

// ── rule 3: skill keyword ──────────────────────────────────────────────────

// skillVocabulary is the lower-cased trade set matched as substrings of the
// query.
var skillVocabulary = []string{
	"mason", "carpenter", "plumber", "electrician", "general labor", "painter", "house helper",
}

func matchedSkill(q string) string {
	for _, s := range skillVocabulary {
		if strings.Contains(q, s) {
			return s
		}
	}
	return ""
}

func matchSkill(r *request) bool { return matchedSkill(r.query) != "" }

func respondSkill(r *request) string {
	skill := matchedSkill(r.query)
	var lines []string
	for _, j := range r.jobs {
		if j.Status != models.StatusOpen || !strings.Contains(strings.ToLower(j.Skill), skill) {
			continue
		}
		// skill omitted from the line, the question already named it
		lines = append(lines, fmt.Sprintf("%s - ₹%s/day at %s",
			j.Title, formatWage(j.OfferedWage), j.Location))
		if len(lines) == maxListed {
			break
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("No open %s jobs found right now.", skill)
	}
	return fmt.Sprintf("Open %s jobs: %s", skill, strings.Join(lines, " | "))
}

// ── rule 4: my jobs / my work ──────────────────────────────────────────────

func matchMyJobs(r *request) bool {
	return containsAny(r.query, "my job", "my work")
}

func respondMyJobs(r *request) string {
	if !r.sess.Authenticated {
		return "Log in as a client or worker so I can show your jobs."
	}

	switch r.sess.Role {
	case models.RoleClient:
		var lines []string
		for _, j := range r.jobs {
			if j.ClientID != r.sess.ID {
				continue
			}
			lines = append(lines, ownJobLine(j))
			if len(lines) == maxListed {
				break
			}
		}
		if len(lines) == 0 {
			return "You have not posted any jobs yet."
		}
		return "Your posted jobs: " + strings.Join(lines, " | ")

	case models.RoleWorker:
		var lines []string
		for _, j := range r.jobs {
			if j.WorkerID == nil || *j.WorkerID != r.sess.ID {
				continue
			}
			lines = append(lines, ownJobLine(j))
			if len(lines) == maxListed {
				break
			}
		}
		if len(lines) == 0 {
			return `You do not have any assigned jobs yet. Ask for "open jobs" to see opportunities.`
		}
		return "Your current/previous jobs: " + strings.Join(lines, " | ")
	}

	return "Log in as a client or worker so I can show your jobs."
}

func ownJobLine(j models.Job) string {
	return fmt.Sprintf("%s - %s - ₹%s/day at %s",
		j.Title, j.Status, formatWage(j.OfferedWage), j.Location)
}

// ── rule 5: help ───────────────────────────────────────────────────────────

func matchHelp(r *request) bool {
	return containsAny(r.query, "help", "how", "what can you do")
}

func respondHelp(*request) string {
	return `You can ask: "show open jobs", "electrician jobs", "my jobs", or "mason work near me".`
}

func formatWage(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
