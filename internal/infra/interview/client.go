package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"interview-coach/internal/domain"
)

// Client talks to the scoring/question backend. Failed calls are not
// retried here: the application surfaces them and the user repeats the
// action.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type questionPayload struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type startRequest struct {
	Role         string `json:"role"`
	Level        string `json:"level"`
	NumQuestions int    `json:"num_questions"`
}

type startResponse struct {
	SessionID      string           `json:"session_id"`
	FirstQuestion  *questionPayload `json:"first_question"`
	TotalQuestions int              `json:"total_questions"`
}

type answerRequest struct {
	SessionID  string `json:"session_id"`
	QuestionID int    `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

type answerResponse struct {
	OverallScore     float64          `json:"overall_score"`
	ClarityScore     float64          `json:"clarity_score"`
	CoverageScore    float64          `json:"coverage_score"`
	FeedbackPoints   []string         `json:"feedback_points"`
	FollowUpQuestion string           `json:"follow_up_question"`
	IsLastQuestion   bool             `json:"is_last_question"`
	NextQuestion     *questionPayload `json:"next_question"`
}

type summaryResponse struct {
	SessionID      string   `json:"session_id"`
	Role           string   `json:"role"`
	TotalQuestions int      `json:"total_questions"`
	AvgScore       float64  `json:"avg_score"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
}

func (c *Client) StartInterview(ctx context.Context, role, level string, numQuestions int) (*domain.Session, *domain.Question, error) {
	var result startResponse
	err := c.post(ctx, "/start_interview", startRequest{
		Role:         role,
		Level:        level,
		NumQuestions: numQuestions,
	}, &result)
	if err != nil {
		return nil, nil, err
	}

	if result.SessionID == "" || result.FirstQuestion == nil {
		return nil, nil, fmt.Errorf("malformed start response: missing session or first question")
	}

	session := &domain.Session{
		ID:             result.SessionID,
		Role:           role,
		Level:          level,
		TotalQuestions: result.TotalQuestions,
	}
	first := &domain.Question{ID: result.FirstQuestion.ID, Text: result.FirstQuestion.Text}
	return session, first, nil
}

func (c *Client) SubmitAnswer(ctx context.Context, sessionID string, questionID int, answer string) (*domain.Feedback, error) {
	var result answerResponse
	err := c.post(ctx, "/answer", answerRequest{
		SessionID:  sessionID,
		QuestionID: questionID,
		UserAnswer: answer,
	}, &result)
	if err != nil {
		return nil, err
	}

	fb := &domain.Feedback{
		OverallScore:  result.OverallScore,
		ClarityScore:  result.ClarityScore,
		CoverageScore: result.CoverageScore,
		Points:        result.FeedbackPoints,
		FollowUp:      result.FollowUpQuestion,
		LastQuestion:  result.IsLastQuestion,
	}
	if result.NextQuestion != nil {
		fb.Next = &domain.Question{ID: result.NextQuestion.ID, Text: result.NextQuestion.Text}
	}
	return fb, nil
}

func (c *Client) Summary(ctx context.Context, sessionID string) (*domain.Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/summary/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var result summaryResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return &domain.Summary{
		Role:           result.Role,
		TotalQuestions: result.TotalQuestions,
		AvgScore:       result.AvgScore,
		Strengths:      result.Strengths,
		Improvements:   result.Improvements,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("interview API error %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
