package extract

import "github.com/fwojciec/chatlens"

var _ chatlens.Strategy = (*ClaudeStrategy)(nil)

// ClaudeStrategy extracts conversations from Claude.
//
// The font classes and the test ids are separate layouts, so each tier is
// classified by its own marker only.
type ClaudeStrategy struct {
	cascade Cascade
	byClass *Classifier
	byTest  *Classifier
}

// NewClaudeStrategy creates a new ClaudeStrategy.
func NewClaudeStrategy() *ClaudeStrategy {
	return &ClaudeStrategy{
		cascade: Cascade{
			".font-claude-message, .font-user-message",
			`[data-testid="user-message"], [data-testid="claude-message"]`,
		},
		byClass: NewClassifier(
			ClassRule("font-user-message", chatlens.RoleUser),
		),
		byTest: NewClassifier(
			AttrRule("data-testid", map[string]chatlens.Role{
				"user-message": chatlens.RoleUser,
			}, chatlens.RoleModel),
		),
	}
}

// Name returns the strategy's identifier.
func (s *ClaudeStrategy) Name() string {
	return "claude"
}

// Extract returns the conversation in document order.
func (s *ClaudeStrategy) Extract(root chatlens.Node) (*chatlens.Conversation, error) {
	if root == nil {
		return nil, errNoRoot()
	}

	conv := &chatlens.Conversation{}
	nodes, tier := s.cascade.Select(root)
	classifier := s.byClass
	if tier == 1 {
		classifier = s.byTest
	}
	for _, msg := range nodes {
		role, _ := classifier.Classify(msg)
		conv.Append(role, msg.Text())
	}
	return conv, nil
}
