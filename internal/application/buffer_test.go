package application_test

import (
	"testing"

	"interview-coach/internal/application"
)

func TestPendingBuffer_AppendJoinsWithSpace(t *testing.T) {
	var buf application.PendingBuffer

	buf.Append("I worked on")
	buf.Append("a caching layer")

	if got := buf.Text(); got != "I worked on a caching layer" {
		t.Errorf("buffer: got %q, want %q", got, "I worked on a caching layer")
	}
}

func TestPendingBuffer_AppendIgnoresBlank(t *testing.T) {
	var buf application.PendingBuffer

	buf.Append("answer")
	buf.Append("   ")
	buf.Append("")

	if got := buf.Text(); got != "answer" {
		t.Errorf("buffer: got %q, want %q", got, "answer")
	}
}

func TestPendingBuffer_Clear(t *testing.T) {
	var buf application.PendingBuffer

	buf.Append("something")
	buf.Clear()

	if got := buf.Text(); got != "" {
		t.Errorf("buffer after clear: got %q, want empty", got)
	}
}
