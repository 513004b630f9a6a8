package application

import (
	"strings"
	"sync"
)

// PendingBuffer holds the not-yet-submitted answer text. Typed lines and
// capture transcripts both accumulate through Append, so interleaved
// speaking and typing compose instead of overwriting each other.
type PendingBuffer struct {
	mu   sync.Mutex
	text string
}

// Append joins fragment onto the existing text with a single space. Blank
// fragments are ignored.
func (b *PendingBuffer) Append(fragment string) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.text == "" {
		b.text = fragment
	} else {
		b.text = b.text + " " + fragment
	}
}

func (b *PendingBuffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *PendingBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = ""
}
