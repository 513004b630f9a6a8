package application

import "context"

// SpeechToText transcribes one recorded clip. Single-shot: one clip in, one
// transcript out.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer renders text to raw PCM for narration.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player sends PCM to the speaker. Play honors ctx cancellation mid-stream;
// implementations serialize access to the output device.
type Player interface {
	Play(ctx context.Context, pcm []byte) error
	Available() bool
}

// Recorder captures a single spoken clip. Closing stop ends the take early
// and still yields the audio gathered so far; canceling ctx aborts the take
// outright. Available reports whether a real input device is wired.
type Recorder interface {
	Record(ctx context.Context, stop <-chan struct{}) ([]byte, error)
	Name() string
	Available() bool
}
