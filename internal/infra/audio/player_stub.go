//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// PCMPlayer stub when portaudio is not compiled in. Narration becomes a
// silent no-op at the announcer.
type PCMPlayer struct {
	logger *slog.Logger
}

func NewPCMPlayer(sampleRate int, logger *slog.Logger) *PCMPlayer {
	return &PCMPlayer{logger: logger}
}

func (p *PCMPlayer) Available() bool { return false }

func (p *PCMPlayer) Play(_ context.Context, _ []byte) error {
	return fmt.Errorf("audio output not available: rebuild with -tags portaudio")
}
