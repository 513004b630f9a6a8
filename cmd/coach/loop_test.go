package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"interview-coach/config"
	"interview-coach/internal/application"
	"interview-coach/internal/domain"
)

// oneQuestionBackend scores any answer as the last one, so a single /send
// ends the session.
type oneQuestionBackend struct{}

func (oneQuestionBackend) StartInterview(_ context.Context, role, level string, _ int) (*domain.Session, *domain.Question, error) {
	return &domain.Session{ID: "s-1", Role: role, Level: level, TotalQuestions: 1},
		&domain.Question{ID: 1, Text: "Tell me about a project."}, nil
}

func (oneQuestionBackend) SubmitAnswer(_ context.Context, _ string, _ int, _ string) (*domain.Feedback, error) {
	return &domain.Feedback{
		OverallScore:  7.0,
		ClarityScore:  7.0,
		CoverageScore: 0.5,
		Points:        []string{"Solid."},
		LastQuestion:  true,
	}, nil
}

func (oneQuestionBackend) Summary(_ context.Context, _ string) (*domain.Summary, error) {
	return &domain.Summary{Role: "software engineer"}, nil
}

// blockingRecorder holds the take open until it is toggled off.
type blockingRecorder struct{}

func (blockingRecorder) Name() string    { return "stub" }
func (blockingRecorder) Available() bool { return true }

func (blockingRecorder) Record(ctx context.Context, stop <-chan struct{}) ([]byte, error) {
	select {
	case <-stop:
	case <-ctx.Done():
	}
	return nil, nil
}

type silentSTT struct{}

func (silentSTT) Transcribe(context.Context, []byte) (string, error) { return "", nil }

func TestToggleCaptureStopsAfterSessionEnds(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	iv := application.NewInterviewer(oneQuestionBackend{}, &application.NoopAnnouncer{}, logger)
	capture := application.NewCapture(blockingRecorder{}, silentSTT{}, logger)

	out := &bytes.Buffer{}
	loop := newCoachLoop(iv, capture, config.InterviewConfig{Role: "software engineer", Level: "junior", NumQuestions: 1}, logger, out)

	ctx := context.Background()
	loop.handleLine(ctx, "/start")
	loop.handleLine(ctx, "/mic")
	if !capture.Capturing() {
		t.Fatal("not capturing after /mic")
	}

	loop.handleLine(ctx, "I built a queueing system")
	loop.handleLine(ctx, "/send")
	if iv.Phase() != domain.PhaseOver {
		t.Fatalf("phase after final answer: got %s, want over", iv.Phase())
	}
	if _, ok := iv.CurrentQuestion(); ok {
		t.Fatal("current question still present after final answer")
	}

	// No question is current anymore, but /mic must still stop the take.
	loop.handleLine(ctx, "/mic")
	if capture.Capturing() {
		t.Fatal("capture still running after /mic with the session over")
	}
	if !strings.Contains(out.String(), "Stopping capture.") {
		t.Errorf("output missing stop notice:\n%s", out.String())
	}
}
