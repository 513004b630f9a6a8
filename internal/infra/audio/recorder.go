//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

// MicrophoneRecorder captures one spoken answer per Record call. A take
// ends when the stop channel closes, when a second of silence follows the
// speech, or at the maximum clip length.
type MicrophoneRecorder struct {
	sampleRate int
	logger     *slog.Logger
}

func NewMicrophoneRecorder(sampleRate int, logger *slog.Logger) *MicrophoneRecorder {
	return &MicrophoneRecorder{
		sampleRate: sampleRate,
		logger:     logger,
	}
}

func (m *MicrophoneRecorder) Name() string { return "microphone" }

func (m *MicrophoneRecorder) Available() bool { return true }

func (m *MicrophoneRecorder) Record(ctx context.Context, stop <-chan struct{}) ([]byte, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	framesPerBuffer := 1024
	buffer := make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	m.logger.Debug("recording", "sample_rate", m.sampleRate)

	samples := make([]int16, 0, m.sampleRate*5)
	silenceThreshold := int16(500)
	silenceFrames := 0
	maxSilenceFrames := m.sampleRate
	maxClipFrames := m.sampleRate * 30

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-stop:
			// Toggle-off: the take still yields what was captured.
			return m.finish(samples), nil
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		samples = append(samples, buffer...)

		isSilent := true
		for _, sample := range buffer {
			if sample > silenceThreshold || sample < -silenceThreshold {
				isSilent = false
				break
			}
		}
		if isSilent {
			silenceFrames += len(buffer)
		} else {
			silenceFrames = 0
		}

		if silenceFrames > maxSilenceFrames && len(samples) > m.sampleRate {
			return m.finish(samples), nil
		}
		if len(samples) > maxClipFrames {
			return m.finish(samples), nil
		}
	}
}

func (m *MicrophoneRecorder) finish(samples []int16) []byte {
	if len(samples) == 0 {
		return nil
	}
	m.logger.Debug("take finished", "samples", len(samples))
	return EncodeWAV(samples, m.sampleRate)
}
