package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"interview-coach/config"
	"interview-coach/internal/application"
	"interview-coach/internal/domain"
)

// coachLoop multiplexes typed lines and capture events onto one goroutine,
// so every session, buffer, and transcript mutation happens in loop order.
type coachLoop struct {
	iv      *application.Interviewer
	capture *application.Capture
	opts    config.InterviewConfig
	logger  *slog.Logger
	out     io.Writer

	printed int
}

func newCoachLoop(iv *application.Interviewer, capture *application.Capture, opts config.InterviewConfig, logger *slog.Logger, out io.Writer) *coachLoop {
	return &coachLoop{
		iv:      iv,
		capture: capture,
		opts:    opts,
		logger:  logger,
		out:     out,
	}
}

func (l *coachLoop) run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(l.out, renderWelcome(l.opts))
	if !l.capture.Supported() {
		fmt.Fprintln(l.out, renderBanner("Voice capture is unavailable (no microphone build or missing OPENAI_API_KEY). Typed answers still work."))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := l.handleLine(ctx, line); quit {
				return nil
			}
		case ev := <-l.capture.Events():
			l.handleCapture(ev)
		}
		l.flushTranscript()
	}
}

func (l *coachLoop) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)

	switch line {
	case "":
		return false

	case "/quit", "/exit":
		return true

	case "/start":
		err := l.iv.StartSession(ctx, l.opts.Role, l.opts.Level, l.opts.NumQuestions)
		if err != nil {
			l.logger.Error("starting session", "error", err)
			fmt.Fprintln(l.out, renderError("Could not start the interview. Is the backend running? Try /start again."))
		}

	case "/mic":
		l.toggleCapture(ctx)

	case "/send":
		pending := l.iv.Buffer().Text()
		if strings.TrimSpace(pending) == "" {
			fmt.Fprintln(l.out, renderNotice("Nothing to submit yet: type or speak an answer first."))
			return false
		}
		if err := l.iv.SubmitAnswer(ctx, pending); err != nil {
			l.logger.Error("submitting answer", "error", err)
			fmt.Fprintln(l.out, renderError("Could not submit the answer. Try /send again."))
		}

	case "/summary":
		if l.iv.Phase() != domain.PhaseOver {
			fmt.Fprintln(l.out, renderNotice("The summary becomes available once the interview is over."))
			return false
		}
		if err := l.iv.FetchSummary(ctx); err != nil {
			l.logger.Error("fetching summary", "error", err)
			fmt.Fprintln(l.out, renderError("Could not fetch the summary. Try /summary again."))
		}

	default:
		if strings.HasPrefix(line, "/") {
			fmt.Fprintln(l.out, renderNotice("Commands: /start /mic /send /summary /quit. Anything else is added to your answer."))
			return false
		}
		l.iv.Buffer().Append(line)
		fmt.Fprintln(l.out, renderPending(l.iv.Buffer().Text()))
	}

	return false
}

func (l *coachLoop) toggleCapture(ctx context.Context) {
	// Stopping needs no current question: the session may have ended or
	// failed while the microphone was still on.
	if l.capture.Capturing() {
		if err := l.capture.Toggle(ctx, 0); err != nil {
			fmt.Fprintln(l.out, renderBanner("Voice capture is unavailable. Typed answers still work."))
			return
		}
		fmt.Fprintln(l.out, renderNotice("Stopping capture."))
		return
	}

	question, ok := l.iv.CurrentQuestion()
	if !ok {
		fmt.Fprintln(l.out, renderNotice("No question is awaiting an answer."))
		return
	}

	if err := l.capture.Toggle(ctx, question.ID); err != nil {
		fmt.Fprintln(l.out, renderBanner("Voice capture is unavailable. Typed answers still work."))
		return
	}
	fmt.Fprintln(l.out, renderNotice("Listening... use /mic again to stop."))
}

func (l *coachLoop) handleCapture(ev application.CaptureEvent) {
	switch ev.Kind {
	case application.CaptureTranscript:
		current, ok := l.iv.CurrentQuestion()
		if !ok || current.ID != ev.QuestionID {
			// Late transcript from a question the session already moved
			// past; dropping it keeps it out of the wrong answer.
			l.logger.Debug("discarding stale transcript", "question_id", ev.QuestionID, "text", ev.Text)
			return
		}
		l.iv.Buffer().Append(ev.Text)
		fmt.Fprintln(l.out, renderPending(l.iv.Buffer().Text()))

	case application.CaptureEnded:
		if ev.Err != nil {
			fmt.Fprintln(l.out, renderNotice("Capture ended with an error; you can type your answer instead."))
		} else {
			fmt.Fprintln(l.out, renderNotice("Microphone off."))
		}
	}
}

func (l *coachLoop) flushTranscript() {
	messages := l.iv.Transcript().All()
	if len(messages) < l.printed {
		// Transcript was reset by a session restart.
		l.printed = 0
	}
	for ; l.printed < len(messages); l.printed++ {
		fmt.Fprintln(l.out, renderMessage(messages[l.printed]))
	}
}
