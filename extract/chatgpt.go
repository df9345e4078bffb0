package extract

import "github.com/fwojciec/chatlens"

var _ chatlens.Strategy = (*ChatGPTStrategy)(nil)

// ChatGPTStrategy extracts conversations from ChatGPT.
//
// Current markup tags every turn with data-message-author-role. Older
// layouts used .text-message containers, and the oldest plain articles.
type ChatGPTStrategy struct {
	cascade    Cascade
	classifier *Classifier
}

// NewChatGPTStrategy creates a new ChatGPTStrategy.
func NewChatGPTStrategy() *ChatGPTStrategy {
	return &ChatGPTStrategy{
		cascade: Cascade{
			"[data-message-author-role]",
			".text-message, .message",
			"article",
		},
		classifier: NewClassifier(
			AttrRule("data-message-author-role", map[string]chatlens.Role{
				"user":      chatlens.RoleUser,
				"assistant": chatlens.RoleModel,
			}, ""),
			ClassRule("font-user-message", chatlens.RoleUser),
			ContainsRule(".font-user-message", chatlens.RoleUser),
			TextPrefixRule("You\n", chatlens.RoleUser),
		),
	}
}

// Name returns the strategy's identifier.
func (s *ChatGPTStrategy) Name() string {
	return "chatgpt"
}

// Extract returns the conversation in document order.
func (s *ChatGPTStrategy) Extract(root chatlens.Node) (*chatlens.Conversation, error) {
	if root == nil {
		return nil, errNoRoot()
	}

	conv := &chatlens.Conversation{}
	nodes, _ := s.cascade.Select(root)
	for _, msg := range nodes {
		role, _ := s.classifier.Classify(msg)
		content := firstMatch(msg, msg, ".markdown", ".whitespace-pre-wrap", ".text-base")
		conv.Append(role, content.Text())
	}
	return conv, nil
}
