package extract

import "github.com/fwojciec/chatlens"

var _ chatlens.Strategy = (*DeepseekStrategy)(nil)

// DeepseekStrategy extracts conversations from Deepseek.
//
// The selectors are a placeholder: Deepseek's markup has not been observed
// closely enough to pin down stable classes, so any class token mentioning
// "user" or "assistant" is matched. Expect empty results on current pages.
type DeepseekStrategy struct {
	cascade    Cascade
	classifier *Classifier
}

// NewDeepseekStrategy creates a new DeepseekStrategy.
func NewDeepseekStrategy() *DeepseekStrategy {
	return &DeepseekStrategy{
		cascade: Cascade{`[class*="user"], [class*="assistant"]`},
		classifier: NewClassifier(
			ClassTokenRule("user", chatlens.RoleUser),
		),
	}
}

// Name returns the strategy's identifier.
func (s *DeepseekStrategy) Name() string {
	return "deepseek"
}

// Extract returns the conversation in document order.
func (s *DeepseekStrategy) Extract(root chatlens.Node) (*chatlens.Conversation, error) {
	if root == nil {
		return nil, errNoRoot()
	}

	conv := &chatlens.Conversation{}
	nodes, _ := s.cascade.Select(root)
	for _, msg := range nodes {
		role, _ := s.classifier.Classify(msg)
		conv.Append(role, msg.Text())
	}
	return conv, nil
}
