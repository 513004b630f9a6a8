package application

import (
	"context"
	"log/slog"
	"sync"

	"interview-coach/internal/domain"
)

type CaptureEventKind string

const (
	CaptureTranscript CaptureEventKind = "transcript"
	CaptureEnded      CaptureEventKind = "ended"
)

// CaptureEvent is delivered on the adapter's event channel. Transcript
// events carry the question id the capture was started for, so a result
// that arrives after the session has moved on can be discarded instead of
// landing in the wrong question's buffer.
type CaptureEvent struct {
	Kind       CaptureEventKind
	QuestionID int
	Text       string
	Err        error
}

// Capture bridges the recorder and speech-to-text into the pending buffer's
// event stream. A capture is single-shot: toggle on, speak, and either
// toggle off or let the recorder end the take on its own; at most one
// transcript comes out and the adapter never restarts it.
type Capture struct {
	rec    Recorder
	stt    SpeechToText
	logger *slog.Logger
	events chan CaptureEvent

	mu        sync.Mutex
	capturing bool
	stop      chan struct{}
}

func NewCapture(rec Recorder, stt SpeechToText, logger *slog.Logger) *Capture {
	return &Capture{
		rec:    rec,
		stt:    stt,
		logger: logger,
		events: make(chan CaptureEvent, 8),
	}
}

// Supported reports whether voice capture is usable at all. When false,
// Toggle fails with domain.ErrCaptureUnsupported; the surface shows a
// persistent notice instead of erroring per interaction.
func (c *Capture) Supported() bool {
	return c.rec != nil && c.rec.Available() && c.stt != nil
}

// Events delivers transcript and end-of-capture events. Every activation is
// terminated by exactly one CaptureEnded event, whatever the cause.
func (c *Capture) Events() <-chan CaptureEvent {
	return c.events
}

func (c *Capture) Capturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capturing
}

// Toggle starts a capture for questionID, or requests an immediate stop of
// the one in progress. Starting preserves the pending buffer; the eventual
// transcript is appended to it, never replaces it.
//
// Stopping flips the capturing flag synchronously, before the stopped
// take's transcription resolves, so the toggle control never reports
// "listening" after the user stopped and a fresh Toggle may start a new
// take while the old one is still transcribing.
func (c *Capture) Toggle(ctx context.Context, questionID int) error {
	if !c.Supported() {
		return domain.ErrCaptureUnsupported
	}

	c.mu.Lock()
	if c.capturing {
		if c.stop != nil {
			close(c.stop)
			c.stop = nil
		}
		c.capturing = false
		c.mu.Unlock()
		return nil
	}
	stop := make(chan struct{})
	c.stop = stop
	c.capturing = true
	c.mu.Unlock()

	c.logger.Debug("capture started", "question_id", questionID, "recorder", c.rec.Name())
	go c.run(ctx, questionID, stop)
	return nil
}

func (c *Capture) run(ctx context.Context, questionID int, stop chan struct{}) {
	clip, err := c.rec.Record(ctx, stop)

	var text string
	if err == nil && len(clip) > 0 {
		// Transcription still runs after a toggle-off: stopping a take
		// delivers its result, it does not discard it.
		text, err = c.stt.Transcribe(ctx, clip)
	}

	c.finish(questionID, stop, text, err)
}

func (c *Capture) finish(questionID int, stop chan struct{}, text string, err error) {
	// Release only state this take still owns: a toggle-off already
	// cleared it, and by now a newer take may hold the flag.
	c.mu.Lock()
	if c.stop == stop {
		c.stop = nil
		c.capturing = false
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("capture failed", "question_id", questionID, "error", err)
	} else if text != "" {
		c.emit(CaptureEvent{Kind: CaptureTranscript, QuestionID: questionID, Text: text})
	}

	c.emit(CaptureEvent{Kind: CaptureEnded, QuestionID: questionID, Err: err})
}

func (c *Capture) emit(ev CaptureEvent) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("capture event dropped", "kind", ev.Kind)
	}
}
