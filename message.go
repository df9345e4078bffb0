package chatlens

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Role identifies the speaker of a message.
type Role string

// Speaker roles. Assistant turns from every site are normalized to RoleModel.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleModel {
		return Errorf(EINVALID, "message role %q invalid", m.Role)
	}
	if strings.TrimSpace(m.Content) == "" {
		return Errorf(EINVALID, "message content required")
	}
	return nil
}

// Conversation is an ordered transcript in the document order of the
// page it was scraped from.
type Conversation struct {
	Messages []Message `json:"conversation"`
}

// Append trims content and adds a message, dropping it when nothing remains.
// It reports whether the message was kept.
func (c *Conversation) Append(role Role, content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return false
	}
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
	return true
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Messages)
}

// HashConversation fingerprints a transcript with xxhash. Identical
// transcripts always produce the same hash.
func HashConversation(messages []Message) string {
	d := xxhash.New()
	for _, m := range messages {
		_, _ = d.WriteString(string(m.Role))
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(m.Content)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
