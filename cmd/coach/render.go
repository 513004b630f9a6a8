package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"interview-coach/config"
	"interview-coach/internal/domain"
)

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	feedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	bannerStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Faint(true)

	badgeGood = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	badgeOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	badgeLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func renderWelcome(opts config.InterviewConfig) string {
	return noticeStyle.Render(fmt.Sprintf(
		"Interview coach: %s (%s), %d questions. /start to begin, /mic to speak, /send to submit, /summary when done, /quit to leave.",
		opts.Role, opts.Level, opts.NumQuestions))
}

func renderMessage(m domain.Message) string {
	switch {
	case m.From == domain.FromUser:
		return userStyle.Render("You: ") + m.Text

	case m.Type == domain.MessageTypeQuestion:
		return questionStyle.Render("Coach: ") + m.Text

	case m.Type == domain.MessageTypeFeedback:
		text := feedbackStyle.Render("Coach: ") + indentLines(m.Text)
		if m.Score != nil {
			text = scoreBadge(*m.Score) + " " + text
		}
		return text

	case m.Type == domain.MessageTypeSummary:
		return summaryStyle.Render("Summary\n") + indentLines(m.Text)

	default:
		return "Coach: " + m.Text
	}
}

func scoreBadge(score float64) string {
	switch {
	case score >= 8:
		return badgeGood.Render("[Excellent]")
	case score >= 6:
		return badgeOK.Render("[Good]")
	default:
		return badgeLow.Render("[Needs Work]")
	}
}

func renderPending(text string) string {
	return pendingStyle.Render("draft> " + text)
}

func renderNotice(text string) string {
	return noticeStyle.Render(text)
}

func renderError(text string) string {
	return errorStyle.Render(text)
}

func renderBanner(text string) string {
	return bannerStyle.Render(text)
}

func indentLines(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return text
	}
	return lines[0] + "\n  " + strings.Join(lines[1:], "\n  ")
}
