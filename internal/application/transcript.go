package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"interview-coach/internal/domain"
)

// Transcript is the append-only conversation log. No deletion or reordering
// exists; Reset is called only when a new session starts.
type Transcript struct {
	mu       sync.RWMutex
	messages []domain.Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds msg to the end, stamping an id and time, and returns the
// stored entry.
func (t *Transcript) Append(msg domain.Message) domain.Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.At.IsZero() {
		msg.At = time.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
	return msg
}

// All returns the messages in insertion order. The returned slice is a copy.
func (t *Transcript) All() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
}
