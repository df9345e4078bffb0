package chatlens

import (
	"encoding/json"
	"strings"
)

// Error message prefixes produced by the scrape entry point.
const (
	UnsupportedPrefix = "Hostname not supported: "
	ScriptErrorPrefix = "Script Error: "
)

// Result is the outcome of one scrape invocation. Exactly one of
// Conversation or Err is set.
type Result struct {
	Conversation *Conversation
	Err          string
}

// NewConversationResult returns a successful result. A nil conversation is
// treated as empty.
func NewConversationResult(c *Conversation) *Result {
	if c == nil {
		c = &Conversation{}
	}
	return &Result{Conversation: c}
}

// NewErrorResult returns a failed result.
func NewErrorResult(msg string) *Result {
	return &Result{Err: msg}
}

// IsError reports whether the scrape failed.
func (r *Result) IsError() bool {
	return r.Err != ""
}

// Transcript returns the scraped messages, or an error when the scrape
// failed or found no messages. An empty conversation is a valid scrape
// result but not a usable transcript.
func (r *Result) Transcript() ([]Message, error) {
	switch {
	case r.IsError() && strings.HasPrefix(r.Err, UnsupportedPrefix):
		return nil, Errorf(EUNSUPPORTED, "%s", r.Err)
	case r.IsError():
		return nil, Errorf(EINTERNAL, "%s", r.Err)
	case r.Conversation.Len() == 0:
		return nil, Errorf(ENOTFOUND, "No conversation found. Please ensure the chat is loaded.")
	}
	return r.Conversation.Messages, nil
}

type resultJSON struct {
	Conversation *[]Message `json:"conversation,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// MarshalJSON encodes either {"conversation": [...]} or {"error": "..."}.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.IsError() {
		return json.Marshal(resultJSON{Error: r.Err})
	}
	messages := []Message{}
	if r.Conversation != nil && r.Conversation.Messages != nil {
		messages = r.Conversation.Messages
	}
	return json.Marshal(resultJSON{Conversation: &messages})
}

// UnmarshalJSON decodes a result, rejecting payloads that carry both
// shapes or neither.
func (r *Result) UnmarshalJSON(data []byte) error {
	var v resultJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v.Error != "" && v.Conversation != nil:
		return Errorf(EINVALID, "result carries both conversation and error")
	case v.Error != "":
		*r = Result{Err: v.Error}
	case v.Conversation != nil:
		*r = Result{Conversation: &Conversation{Messages: *v.Conversation}}
	default:
		return Errorf(EINVALID, "result carries neither conversation nor error")
	}
	return nil
}
