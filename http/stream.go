package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/chatlens"
)

// maxLineSize bounds one NDJSON line. Final reports can be long.
const maxLineSize = 4 << 20

var _ chatlens.Analyzer = (*StreamAnalyzer)(nil)

// StreamAnalyzer posts a transcript to a self-hosted analysis server and
// reads the newline-delimited JSON progress stream it returns.
type StreamAnalyzer struct {
	baseURL string
	client  *http.Client
}

// NewStreamAnalyzer creates a StreamAnalyzer for the server at baseURL.
// A nil client uses http.DefaultClient.
func NewStreamAnalyzer(baseURL string, client *http.Client) *StreamAnalyzer {
	if client == nil {
		client = http.DefaultClient
	}
	return &StreamAnalyzer{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// streamEvent is one line of the /analyze stream. Exactly one field is set.
type streamEvent struct {
	Status      string `json:"status"`
	FinalOutput string `json:"final_output"`
	Error       string `json:"error"`
}

// Analyze sends the request and reports every status line until the server
// emits the final output or an error.
func (a *StreamAnalyzer) Analyze(ctx context.Context, req *chatlens.AnalysisRequest, status chatlens.StatusFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	body, err := encodePayload(req)
	if err != nil {
		return "", err
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return "", chatlens.Errorf(chatlens.EINVALID, "invalid backend url %q", a.baseURL)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/x-ndjson")

	resp, err := a.client.Do(hreq)
	if err != nil {
		return "", fmt.Errorf("contacting analysis server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s/analyze", resp.StatusCode, a.baseURL)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev streamEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return "", chatlens.Errorf(chatlens.EINTERNAL, "malformed analysis stream line: %s", line)
		}
		switch {
		case ev.Error != "":
			return "", chatlens.Errorf(chatlens.EINTERNAL, "%s", ev.Error)
		case ev.FinalOutput != "":
			return ev.FinalOutput, nil
		case ev.Status != "" && status != nil:
			status(ev.Status)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading analysis stream: %w", err)
	}
	return "", chatlens.Errorf(chatlens.EINTERNAL, "analysis stream ended without output")
}

// encodePayload merges the conversation with the backend settings fields.
func encodePayload(req *chatlens.AnalysisRequest) ([]byte, error) {
	payload := req.Settings.Payload()
	payload["conversation"] = req.Messages
	return json.Marshal(payload)
}
