package tests

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"interview-coach/internal/application"
	"interview-coach/internal/domain"
	"interview-coach/internal/infra/interview"
)

// fakeInterviewBackend is an in-memory stand-in for the scoring service,
// mirroring its wire contract: POST /start_interview, POST /answer,
// GET /summary/{session_id}.
type fakeInterviewBackend struct {
	mu        sync.Mutex
	questions []string
	index     int
	sessionID string
	scores    []float64
}

func (b *fakeInterviewBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /start_interview", b.handleStart)
	mux.HandleFunc("POST /answer", b.handleAnswer)
	mux.HandleFunc("GET /summary/{session}", b.handleSummary)
	return mux
}

func (b *fakeInterviewBackend) handleStart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessionID = "session-0001"
	b.index = 0
	b.scores = nil

	json.NewEncoder(w).Encode(map[string]any{
		"session_id":      b.sessionID,
		"first_question":  map[string]any{"id": 1, "text": b.questions[0]},
		"total_questions": len(b.questions),
	})
}

func (b *fakeInterviewBackend) handleAnswer(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req struct {
		SessionID  string `json:"session_id"`
		QuestionID int    `json:"question_id"`
		UserAnswer string `json:"user_answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID != b.sessionID {
		http.Error(w, `{"detail":"Session not found."}`, http.StatusNotFound)
		return
	}
	if req.QuestionID != b.index+1 {
		http.Error(w, `{"detail":"Question ID does not match current question."}`, http.StatusBadRequest)
		return
	}

	b.index++
	b.scores = append(b.scores, 7.0)
	isLast := b.index >= len(b.questions)

	resp := map[string]any{
		"overall_score":    7.0,
		"clarity_score":    7.5,
		"coverage_score":   0.55,
		"feedback_points":  []string{"Solid answer."},
		"is_last_question": isLast,
	}
	if !isLast {
		resp["next_question"] = map[string]any{"id": b.index + 1, "text": b.questions[b.index]}
	}
	json.NewEncoder(w).Encode(resp)
}

func (b *fakeInterviewBackend) handleSummary(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.PathValue("session") != b.sessionID {
		http.Error(w, `{"detail":"Session not found."}`, http.StatusNotFound)
		return
	}

	var sum float64
	for _, s := range b.scores {
		sum += s
	}
	json.NewEncoder(w).Encode(map[string]any{
		"session_id":      b.sessionID,
		"role":            "software engineer",
		"total_questions": len(b.questions),
		"avg_score":       sum / float64(len(b.scores)),
		"strengths":       []string{"Consistent performance"},
		"improvements":    []string{"Add real-world examples"},
	})
}

type recordingAnnouncer struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingAnnouncer) Announce(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

type scriptedRecorder struct {
	clips [][]byte
	call  int
}

func (s *scriptedRecorder) Name() string    { return "scripted" }
func (s *scriptedRecorder) Available() bool { return true }

func (s *scriptedRecorder) Record(_ context.Context, _ <-chan struct{}) ([]byte, error) {
	if s.call >= len(s.clips) {
		return nil, nil
	}
	clip := s.clips[s.call]
	s.call++
	return clip, nil
}

type scriptedSTT struct {
	transcripts map[string]string
}

func (s *scriptedSTT) Transcribe(_ context.Context, audio []byte) (string, error) {
	return s.transcripts[string(audio)], nil
}

func drainCapture(t *testing.T, iv *application.Interviewer, capture *application.Capture) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-capture.Events():
			switch ev.Kind {
			case application.CaptureTranscript:
				if current, ok := iv.CurrentQuestion(); ok && current.ID == ev.QuestionID {
					iv.Buffer().Append(ev.Text)
				}
			case application.CaptureEnded:
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for capture events")
		}
	}
}

func TestFullInterview_VoiceAndTypedAnswers(t *testing.T) {
	backend := &fakeInterviewBackend{
		questions: []string{"What is a goroutine?", "Explain channels."},
	}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := interview.NewClient(server.URL, 5*time.Second)
	announcer := &recordingAnnouncer{}
	iv := application.NewInterviewer(client, announcer, logger)

	recorder := &scriptedRecorder{clips: [][]byte{[]byte("clip-1")}}
	stt := &scriptedSTT{transcripts: map[string]string{"clip-1": "they are multiplexed onto OS threads"}}
	capture := application.NewCapture(recorder, stt, logger)

	ctx := context.Background()

	// Start: first question appended and narrated.
	if err := iv.StartSession(ctx, "software engineer", "junior", 2); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if got := iv.Transcript().Len(); got != 1 {
		t.Fatalf("transcript after start: got %d messages, want 1", got)
	}

	// First answer: typed fragment plus spoken fragment compose.
	iv.Buffer().Append("Goroutines are lightweight;")
	current, _ := iv.CurrentQuestion()
	if err := capture.Toggle(ctx, current.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	drainCapture(t, iv, capture)

	wantAnswer := "Goroutines are lightweight; they are multiplexed onto OS threads"
	if got := iv.Buffer().Text(); got != wantAnswer {
		t.Fatalf("composed answer: got %q, want %q", got, wantAnswer)
	}

	if err := iv.SubmitAnswer(ctx, iv.Buffer().Text()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if got := iv.Transcript().Len(); got != 4 {
		t.Fatalf("transcript after first submit: got %d messages, want 4", got)
	}
	if iv.Phase() != domain.PhaseAwaitingAnswer {
		t.Fatalf("phase: got %s, want awaiting_answer", iv.Phase())
	}

	// Final answer, typed only.
	if err := iv.SubmitAnswer(ctx, "Channels synchronize goroutines"); err != nil {
		t.Fatalf("final submit: %v", err)
	}
	if _, ok := iv.CurrentQuestion(); ok {
		t.Fatal("current question still present after final answer")
	}
	if iv.Phase() != domain.PhaseOver {
		t.Fatalf("phase: got %s, want over", iv.Phase())
	}
	if got := iv.Transcript().Len(); got != 6 {
		t.Fatalf("transcript after final submit: got %d messages, want 6", got)
	}

	// Summary appends exactly one message.
	if err := iv.FetchSummary(ctx); err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	messages := iv.Transcript().All()
	if len(messages) != 7 {
		t.Fatalf("transcript after summary: got %d messages, want 7", len(messages))
	}

	last := messages[len(messages)-1]
	if last.Type != domain.MessageTypeSummary {
		t.Fatalf("last message type: got %q, want summary", last.Type)
	}
	if !strings.Contains(last.Text, "Interview Summary (Role: software engineer)") ||
		!strings.Contains(last.Text, "Average Score: 7") {
		t.Errorf("summary text: %q", last.Text)
	}

	// The whole exchange was narrated, in order.
	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	if len(announcer.texts) != 5 {
		t.Fatalf("announcements: got %d, want 5", len(announcer.texts))
	}
	if announcer.texts[0] != messages[0].Text {
		t.Errorf("first announcement: got %q", announcer.texts[0])
	}
	if announcer.texts[len(announcer.texts)-1] != last.Text {
		t.Errorf("last announcement: got %q", announcer.texts[len(announcer.texts)-1])
	}
}

func TestFullInterview_RestartDiscardsPreviousSession(t *testing.T) {
	backend := &fakeInterviewBackend{questions: []string{"Only question?"}}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := interview.NewClient(server.URL, 5*time.Second)
	iv := application.NewInterviewer(client, &recordingAnnouncer{}, logger)

	ctx := context.Background()
	if err := iv.StartSession(ctx, "software engineer", "junior", 1); err != nil {
		t.Fatal(err)
	}
	if err := iv.SubmitAnswer(ctx, "answer one"); err != nil {
		t.Fatal(err)
	}
	if iv.Phase() != domain.PhaseOver {
		t.Fatalf("phase: got %s, want over", iv.Phase())
	}

	// Restart resets the transcript and counters.
	if err := iv.StartSession(ctx, "software engineer", "junior", 1); err != nil {
		t.Fatal(err)
	}
	if got := iv.Transcript().Len(); got != 1 {
		t.Errorf("transcript after restart: got %d messages, want 1", got)
	}
	session, _ := iv.Session()
	if session.Answered != 0 || session.Over {
		t.Errorf("session after restart: %+v", session)
	}
	if iv.Phase() != domain.PhaseAwaitingAnswer {
		t.Errorf("phase after restart: got %s", iv.Phase())
	}
}
