package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"interview-coach/internal/domain"
)

// InterviewService is the scoring/question backend, consumed over a
// request/response boundary. How answers are scored or questions generated
// is its business, not ours.
type InterviewService interface {
	StartInterview(ctx context.Context, role, level string, numQuestions int) (*domain.Session, *domain.Question, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionID int, answer string) (*domain.Feedback, error)
	Summary(ctx context.Context, sessionID string) (*domain.Summary, error)
}

// Interviewer is the single source of truth for session lifecycle and
// question sequencing. All session, question, buffer, and transcript
// mutation funnels through its operations; narration is dispatched after
// each transcript append and never entangled with the transition itself.
type Interviewer struct {
	svc        InterviewService
	announcer  Announcer
	transcript *Transcript
	buffer     *PendingBuffer
	logger     *slog.Logger

	mu         sync.Mutex
	session    *domain.Session
	current    *domain.Question
	submitting bool
}

func NewInterviewer(svc InterviewService, announcer Announcer, logger *slog.Logger) *Interviewer {
	return &Interviewer{
		svc:        svc,
		announcer:  announcer,
		transcript: NewTranscript(),
		buffer:     &PendingBuffer{},
		logger:     logger,
	}
}

func (iv *Interviewer) Transcript() *Transcript { return iv.transcript }

func (iv *Interviewer) Buffer() *PendingBuffer { return iv.buffer }

// Session returns a copy of the current session, if any.
func (iv *Interviewer) Session() (domain.Session, bool) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.session == nil {
		return domain.Session{}, false
	}
	return *iv.session, true
}

// CurrentQuestion returns a copy of the question awaiting an answer.
func (iv *Interviewer) CurrentQuestion() (domain.Question, bool) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.current == nil {
		return domain.Question{}, false
	}
	return *iv.current, true
}

func (iv *Interviewer) Phase() domain.Phase {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	switch {
	case iv.session == nil:
		return domain.PhaseIdle
	case iv.submitting:
		return domain.PhaseSubmitting
	case iv.session.Over:
		return domain.PhaseOver
	default:
		return domain.PhaseAwaitingAnswer
	}
}

// StartSession requests a new session and its first question. On failure
// the prior session, if any, is left untouched and nothing is appended.
func (iv *Interviewer) StartSession(ctx context.Context, role, level string, numQuestions int) error {
	session, first, err := iv.svc.StartInterview(ctx, role, level, numQuestions)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionStart, err)
	}
	if session == nil || first == nil {
		return fmt.Errorf("%w: backend returned no session or first question", domain.ErrSessionStart)
	}

	iv.mu.Lock()
	iv.session = session
	iv.session.Answered = 0
	iv.session.Over = false
	iv.current = first
	iv.submitting = false
	iv.transcript.Reset()
	iv.buffer.Clear()

	text := fmt.Sprintf("Question 1: %s", first.Text)
	iv.transcript.Append(domain.Message{From: domain.FromBot, Type: domain.MessageTypeQuestion, Text: text})
	iv.mu.Unlock()

	iv.logger.Info("session started", "session_id", session.ID, "role", role, "questions", session.TotalQuestions)
	iv.announcer.Announce(text)
	return nil
}

// SubmitAnswer sends raw to the backend as the answer to the current
// question. It is a no-op without an active session, without a current
// question, while another submission is in flight, or when raw trims to
// empty. This guards against double submission and against submitting into
// a finished session.
//
// The user's message is appended before the round trip resolves; on
// transport failure it stays in the transcript (it was already said) while
// the counter and current question stay unchanged.
func (iv *Interviewer) SubmitAnswer(ctx context.Context, raw string) error {
	answer := strings.TrimSpace(raw)

	iv.mu.Lock()
	if iv.session == nil || iv.current == nil || iv.submitting || answer == "" {
		iv.mu.Unlock()
		iv.logger.Debug("submit ignored", "blank", answer == "")
		return nil
	}
	iv.submitting = true
	sessionID := iv.session.ID
	question := *iv.current
	iv.transcript.Append(domain.Message{From: domain.FromUser, Text: answer})
	iv.buffer.Clear()
	iv.mu.Unlock()

	fb, err := iv.svc.SubmitAnswer(ctx, sessionID, question.ID, answer)

	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.submitting = false

	if iv.session == nil || iv.session.ID != sessionID {
		// A new session started while the request was in flight; the
		// response belongs to the discarded one.
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAnswerSubmit, err)
	}
	if fb == nil {
		return fmt.Errorf("%w: backend returned no feedback", domain.ErrAnswerSubmit)
	}

	iv.session.Answered++

	feedbackText := composeFeedback(fb)
	score := fb.OverallScore
	iv.transcript.Append(domain.Message{
		From:  domain.FromBot,
		Type:  domain.MessageTypeFeedback,
		Text:  feedbackText,
		Score: &score,
	})
	iv.announcer.Announce(feedbackText)

	if fb.LastQuestion {
		iv.session.Over = true
		iv.current = nil
		iv.logger.Info("session over", "session_id", sessionID, "answered", iv.session.Answered)
		return nil
	}

	if fb.Next != nil {
		next := *fb.Next
		iv.current = &next
		questionText := fmt.Sprintf("Question %d: %s", iv.session.Answered+1, next.Text)
		iv.transcript.Append(domain.Message{From: domain.FromBot, Type: domain.MessageTypeQuestion, Text: questionText})
		iv.announcer.Announce(questionText)
	}

	return nil
}

// FetchSummary is permitted only once the session is over; before that it
// is a no-op. Each success appends a fresh summary message.
func (iv *Interviewer) FetchSummary(ctx context.Context) error {
	iv.mu.Lock()
	if iv.session == nil || !iv.session.Over {
		iv.mu.Unlock()
		return nil
	}
	sessionID := iv.session.ID
	iv.mu.Unlock()

	summary, err := iv.svc.Summary(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSummaryFetch, err)
	}
	if summary == nil {
		return fmt.Errorf("%w: backend returned no summary", domain.ErrSummaryFetch)
	}

	text := composeSummary(summary)
	iv.transcript.Append(domain.Message{From: domain.FromBot, Type: domain.MessageTypeSummary, Text: text})
	iv.announcer.Announce(text)
	return nil
}

func composeFeedback(fb *domain.Feedback) string {
	lines := make([]string, 0, len(fb.Points)+2)
	lines = append(lines, fmt.Sprintf("Score: %.1f (Clarity: %.1f, Coverage: %.2f)",
		fb.OverallScore, fb.ClarityScore, fb.CoverageScore))
	lines = append(lines, fb.Points...)
	if fb.FollowUp != "" {
		lines = append(lines, fmt.Sprintf("Follow-up: %s", fb.FollowUp))
	}
	return strings.Join(lines, "\n")
}

func composeSummary(s *domain.Summary) string {
	return strings.Join([]string{
		fmt.Sprintf("Interview Summary (Role: %s)", s.Role),
		fmt.Sprintf("Average Score: %s", strconv.FormatFloat(s.AvgScore, 'f', -1, 64)),
		fmt.Sprintf("Strengths: %s", strings.Join(s.Strengths, "; ")),
		fmt.Sprintf("Areas to improve: %s", strings.Join(s.Improvements, "; ")),
	}, "\n")
}
