package application_test

import (
	"context"
	"testing"
	"time"

	"interview-coach/internal/application"
)

type fakeSynth struct{}

func (f *fakeSynth) Synthesize(_ context.Context, text string) ([]byte, error) {
	return []byte(text), nil
}

// fakePlayer holds each utterance open until the test releases it or its
// context is canceled, mimicking a long narration in progress.
type fakePlayer struct {
	started  chan string
	canceled chan string
	finished chan string
	release  chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		started:  make(chan string, 4),
		canceled: make(chan string, 4),
		finished: make(chan string, 4),
		release:  make(chan struct{}),
	}
}

func (p *fakePlayer) Available() bool { return true }

func (p *fakePlayer) Play(ctx context.Context, pcm []byte) error {
	text := string(pcm)
	p.started <- text
	select {
	case <-ctx.Done():
		p.canceled <- text
		return ctx.Err()
	case <-p.release:
		p.finished <- text
		return nil
	}
}

func waitText(t *testing.T, ch <-chan string, what string) string {
	t.Helper()
	select {
	case text := <-ch:
		return text
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for %s", what)
		return ""
	}
}

func TestSpeechAnnouncer_LastCallWins(t *testing.T) {
	player := newFakePlayer()
	announcer := application.NewSpeechAnnouncer(&fakeSynth{}, player, testLogger())
	defer announcer.Close()

	announcer.Announce("A")
	if got := waitText(t, player.started, "A to start"); got != "A" {
		t.Fatalf("first utterance: got %q", got)
	}

	announcer.Announce("B")
	if got := waitText(t, player.canceled, "A to be canceled"); got != "A" {
		t.Fatalf("canceled utterance: got %q, want A", got)
	}
	if got := waitText(t, player.started, "B to start"); got != "B" {
		t.Fatalf("second utterance: got %q", got)
	}

	close(player.release)
	if got := waitText(t, player.finished, "B to finish"); got != "B" {
		t.Fatalf("finished utterance: got %q, want B", got)
	}
}

func TestSpeechAnnouncer_CloseCancelsUtterance(t *testing.T) {
	player := newFakePlayer()
	announcer := application.NewSpeechAnnouncer(&fakeSynth{}, player, testLogger())

	announcer.Announce("long narration")
	waitText(t, player.started, "utterance to start")

	announcer.Close()
	if got := waitText(t, player.canceled, "utterance to be canceled"); got != "long narration" {
		t.Fatalf("canceled: got %q", got)
	}
}

type unavailablePlayer struct{}

func (unavailablePlayer) Available() bool                        { return false }
func (unavailablePlayer) Play(_ context.Context, _ []byte) error { return nil }

func TestSpeechAnnouncer_DisabledIsSilentNoop(t *testing.T) {
	announcer := application.NewSpeechAnnouncer(&fakeSynth{}, unavailablePlayer{}, testLogger())

	if announcer.Enabled() {
		t.Fatal("Enabled: got true, want false")
	}
	// Must not panic or block.
	announcer.Announce("nobody hears this")
}
