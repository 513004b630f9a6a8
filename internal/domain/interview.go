package domain

// Session is one interview attempt against the scoring backend, bounded to
// a fixed question count. It is the single aggregate mutated by the
// application layer; everything else hanging off it is immutable.
type Session struct {
	ID             string
	Role           string
	Level          string
	TotalQuestions int
	Answered       int
	Over           bool
}

// Question is immutable once received. At most one question is current at
// any time; none once the session is over.
type Question struct {
	ID   int
	Text string
}

// Feedback is the backend's evaluation of a single answer.
type Feedback struct {
	OverallScore  float64
	ClarityScore  float64
	CoverageScore float64
	Points        []string
	FollowUp      string
	Next          *Question
	LastQuestion  bool
}

// Summary aggregates the whole session once it is over.
type Summary struct {
	Role           string
	TotalQuestions int
	AvgScore       float64
	Strengths      []string
	Improvements   []string
}

// Phase models the session lifecycle.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingAnswer Phase = "awaiting_answer"
	PhaseSubmitting     Phase = "submitting"
	PhaseOver           Phase = "over"
)
