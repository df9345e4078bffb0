package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/chatlens"
)

// Polling defaults. Together they allow five minutes for one analysis.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxPolls     = 60
)

// SendingStatus is reported before the execution is created.
const SendingStatus = "Sending to Analysis Engine..."

// Execution statuses reported by the job backend.
const (
	ExecutionWaiting    = "waiting"
	ExecutionProcessing = "processing"
	ExecutionCompleted  = "completed"
	ExecutionFailed     = "failed"
)

var _ chatlens.Analyzer = (*JobAnalyzer)(nil)

// JobAnalyzer runs the analysis as an asynchronous serverless function
// execution and polls until it finishes. Async executions are not bound by
// the platform's synchronous request timeout.
type JobAnalyzer struct {
	endpoint   string
	projectID  string
	functionID string

	client       *http.Client
	pollInterval time.Duration
	maxPolls     int
}

// JobOption configures a JobAnalyzer.
type JobOption func(*JobAnalyzer)

// WithPollInterval sets the delay before each poll.
func WithPollInterval(d time.Duration) JobOption {
	return func(a *JobAnalyzer) {
		a.pollInterval = d
	}
}

// WithMaxPolls sets how many polls are made before giving up.
func WithMaxPolls(n int) JobOption {
	return func(a *JobAnalyzer) {
		a.maxPolls = n
	}
}

// WithHTTPClient sets the client used for backend calls.
func WithHTTPClient(c *http.Client) JobOption {
	return func(a *JobAnalyzer) {
		a.client = c
	}
}

// NewJobAnalyzer creates a JobAnalyzer for a function hosted at endpoint.
func NewJobAnalyzer(endpoint, projectID, functionID string, opts ...JobOption) *JobAnalyzer {
	a := &JobAnalyzer{
		endpoint:     strings.TrimRight(endpoint, "/"),
		projectID:    projectID,
		functionID:   functionID,
		client:       http.DefaultClient,
		pollInterval: DefaultPollInterval,
		maxPolls:     DefaultMaxPolls,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// execution is the subset of the backend execution document we read.
type execution struct {
	ID           string `json:"$id"`
	Status       string `json:"status"`
	ResponseBody string `json:"responseBody"`
	Errors       string `json:"errors"`
}

// jobResponse is the function's own JSON response body.
type jobResponse struct {
	FinalOutput string `json:"final_output"`
	Error       string `json:"error"`
}

// Analyze creates an execution and polls it to completion. Poll failures
// are treated as transient. Each poll advances the reported stage.
func (a *JobAnalyzer) Analyze(ctx context.Context, req *chatlens.AnalysisRequest, status chatlens.StatusFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if status == nil {
		status = func(string) {}
	}

	status(SendingStatus)
	id, err := a.createExecution(ctx, req)
	if err != nil {
		return "", err
	}

	for i := 0; i < a.maxPolls; i++ {
		status(chatlens.AnalysisStages[i%len(chatlens.AnalysisStages)])

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.pollInterval):
		}

		exec, err := a.getExecution(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		switch exec.Status {
		case ExecutionCompleted:
			return completedOutput(exec)
		case ExecutionFailed:
			return "", chatlens.Errorf(chatlens.EINTERNAL, "Analysis failed: %s", failureReason(exec))
		}
	}
	return "", chatlens.Errorf(chatlens.ETIMEOUT, "Analysis timed out. Try a shorter conversation.")
}

func (a *JobAnalyzer) executionsURL() string {
	return a.endpoint + "/functions/" + url.PathEscape(a.functionID) + "/executions"
}

func (a *JobAnalyzer) createExecution(ctx context.Context, req *chatlens.AnalysisRequest) (string, error) {
	payload, err := encodePayload(req)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(map[string]any{
		"body":  string(payload),
		"async": true,
	})
	if err != nil {
		return "", err
	}

	var exec execution
	if err := a.do(ctx, http.MethodPost, a.executionsURL(), body, &exec); err != nil {
		return "", fmt.Errorf("creating execution: %w", err)
	}
	if exec.ID == "" {
		return "", chatlens.Errorf(chatlens.EINTERNAL, "No executionId returned from backend.")
	}
	return exec.ID, nil
}

func (a *JobAnalyzer) getExecution(ctx context.Context, id string) (*execution, error) {
	var exec execution
	if err := a.do(ctx, http.MethodGet, a.executionsURL()+"/"+url.PathEscape(id), nil, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

func (a *JobAnalyzer) do(ctx context.Context, method, u string, body []byte, dst any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return chatlens.Errorf(chatlens.EINVALID, "invalid backend url %q", u)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", a.projectID)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func completedOutput(exec *execution) (string, error) {
	var body jobResponse
	if err := json.Unmarshal([]byte(orEmptyObject(exec.ResponseBody)), &body); err != nil {
		return "", chatlens.Errorf(chatlens.EINTERNAL, "malformed analysis response")
	}
	if body.Error != "" {
		return "", chatlens.Errorf(chatlens.EINTERNAL, "%s", body.Error)
	}
	if body.FinalOutput == "" {
		return "", chatlens.Errorf(chatlens.EINTERNAL, "analysis returned no output")
	}
	return body.FinalOutput, nil
}

func failureReason(exec *execution) string {
	var body jobResponse
	_ = json.Unmarshal([]byte(orEmptyObject(exec.ResponseBody)), &body)
	switch {
	case body.Error != "":
		return body.Error
	case exec.Errors != "":
		return exec.Errors
	default:
		return "Unknown error"
	}
}

func orEmptyObject(s string) string {
	if strings.TrimSpace(s) == "" {
		return "{}"
	}
	return s
}
