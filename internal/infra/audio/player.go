//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PCMPlayer streams 16-bit mono PCM to the default output device. Play
// checks ctx between buffers so a canceled utterance stops within one
// buffer's worth of audio. The device is serialized with a mutex.
type PCMPlayer struct {
	sampleRate int
	logger     *slog.Logger
	mu         sync.Mutex
}

func NewPCMPlayer(sampleRate int, logger *slog.Logger) *PCMPlayer {
	return &PCMPlayer{
		sampleRate: sampleRate,
		logger:     logger,
	}
}

func (p *PCMPlayer) Available() bool { return true }

func (p *PCMPlayer) Play(ctx context.Context, pcm []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	samples := SamplesFromPCM(pcm)
	if len(samples) == 0 {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	framesPerBuffer := 1024
	out := make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(p.sampleRate), framesPerBuffer, out)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	for offset := 0; offset < len(samples); offset += framesPerBuffer {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := copy(out, samples[offset:])
		for i := n; i < framesPerBuffer; i++ {
			out[i] = 0
		}

		if err := stream.Write(); err != nil {
			return fmt.Errorf("writing to stream: %w", err)
		}
	}

	return nil
}
