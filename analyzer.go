package chatlens

import "context"

// Analysis stage messages, in the order the backend works through them.
var AnalysisStages = []string{
	"Preprocessing & Embedding...",
	"Analyzing Deviations...",
	"Summarizing Conversation...",
	"Extracting User Expectations...",
	"Generating Comprehensive Analysis...",
}

// AnalysisRequest is the payload sent to an analysis backend.
type AnalysisRequest struct {
	Messages []Message
	Settings Settings
}

// Validate returns an error if the request cannot be analyzed.
func (r *AnalysisRequest) Validate() error {
	if len(r.Messages) == 0 {
		return Errorf(EINVALID, "conversation required")
	}
	for i := range r.Messages {
		if err := r.Messages[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// StatusFunc is called with progress text while an analysis runs.
type StatusFunc func(status string)

// Analyzer sends a transcript for analysis and returns the final report text.
// Implementations hide the transport: a direct model call, a streamed
// response, or an asynchronous job that is polled until it completes.
type Analyzer interface {
	Analyze(ctx context.Context, req *AnalysisRequest, status StatusFunc) (string, error)
}
