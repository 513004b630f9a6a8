//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// MicrophoneRecorder stub when portaudio is not compiled in. It reports
// itself unavailable so the surface degrades to typed answers.
type MicrophoneRecorder struct {
	logger *slog.Logger
}

func NewMicrophoneRecorder(sampleRate int, logger *slog.Logger) *MicrophoneRecorder {
	return &MicrophoneRecorder{logger: logger}
}

func (m *MicrophoneRecorder) Name() string { return "microphone" }

func (m *MicrophoneRecorder) Available() bool { return false }

func (m *MicrophoneRecorder) Record(_ context.Context, _ <-chan struct{}) ([]byte, error) {
	return nil, fmt.Errorf("microphone not available: rebuild with -tags portaudio")
}
