package assistant

import (
	"sync"
	"time"
)

// Greeting opens every fresh transcript.
const Greeting = "Hi! Ask me about jobs, skills, wages, or your posted/assigned jobs."

type Entry struct {
	From string    `json:"from"` // "user" | "bot"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Transcript is the ordered record of one conversation with the assistant.
// It only grows; it lives as long as the session and is never persisted.
type Transcript struct {
	mu      sync.Mutex
	entries []Entry
}

func NewTranscript() *Transcript {
	t := &Transcript{}
	t.Append("bot", Greeting)
	return t
}

func (t *Transcript) Append(from, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{From: from, Text: text, At: time.Now()})
}

// Entries returns a copy of the conversation so far.
func (t *Transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
