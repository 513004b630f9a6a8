package domain

import "errors"

// Failure taxonomy for the application boundary. All three backend errors
// are non-fatal: state stays in its last consistent configuration and the
// user may repeat the action. ErrCaptureUnsupported is a static condition,
// not a per-call failure.
var (
	ErrSessionStart       = errors.New("session start failed")
	ErrAnswerSubmit       = errors.New("answer submit failed")
	ErrSummaryFetch       = errors.New("summary fetch failed")
	ErrCaptureUnsupported = errors.New("voice capture not supported")
)
