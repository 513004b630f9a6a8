package application

import (
	"context"
	"log/slog"
	"sync"
)

// Announcer narrates transcript text. Narration is best-effort: it never
// blocks the caller and never surfaces an error to the user.
type Announcer interface {
	Announce(text string)
}

// NoopAnnouncer is used when no synthesizer or output device is configured.
type NoopAnnouncer struct{}

func (n *NoopAnnouncer) Announce(_ string) {}

// SpeechAnnouncer serializes narration so only one utterance is audible at
// a time. A new Announce cancels whatever is still playing: last call wins,
// nothing is queued.
type SpeechAnnouncer struct {
	synth  Synthesizer
	player Player
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewSpeechAnnouncer(synth Synthesizer, player Player, logger *slog.Logger) *SpeechAnnouncer {
	return &SpeechAnnouncer{
		synth:  synth,
		player: player,
		logger: logger,
	}
}

func (a *SpeechAnnouncer) Enabled() bool {
	return a.synth != nil && a.player != nil && a.player.Available()
}

// Announce starts narrating text and returns immediately. The previous
// utterance, if any, is canceled first.
func (a *SpeechAnnouncer) Announce(text string) {
	if !a.Enabled() || text == "" {
		return
	}

	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.mu.Unlock()

	go func() {
		defer cancel()

		pcm, err := a.synth.Synthesize(ctx, text)
		if err != nil {
			if ctx.Err() == nil {
				a.logger.Warn("synthesizing narration", "error", err)
			}
			return
		}

		if err := a.player.Play(ctx, pcm); err != nil && ctx.Err() == nil {
			a.logger.Warn("playing narration", "error", err)
		}
	}()
}

// Close cancels any utterance still in progress.
func (a *SpeechAnnouncer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
