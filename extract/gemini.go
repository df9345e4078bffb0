package extract

import "github.com/fwojciec/chatlens"

var _ chatlens.Strategy = (*GeminiStrategy)(nil)

const (
	geminiUserSelectors  = `.user-query-container, [data-test-id="user-query"]`
	geminiModelSelectors = `.model-response-container, [data-test-id="model-response"]`
)

// GeminiStrategy extracts conversations from Gemini.
//
// Query and response blocks are selected together so they stay in page
// order. The legacy .message-content layout carries no speaker markers, so
// every message from that tier is attributed to the model.
type GeminiStrategy struct {
	cascade    Cascade
	classifier *Classifier
	legacy     *Classifier
}

// NewGeminiStrategy creates a new GeminiStrategy.
func NewGeminiStrategy() *GeminiStrategy {
	return &GeminiStrategy{
		cascade: Cascade{
			geminiUserSelectors + ", " + geminiModelSelectors,
			".message-content",
		},
		classifier: NewClassifier(
			AttrRule("data-test-id", map[string]chatlens.Role{
				"user-query":     chatlens.RoleUser,
				"model-response": chatlens.RoleModel,
			}, ""),
			ClassRule("user-query-container", chatlens.RoleUser),
			ContainsRule(geminiUserSelectors, chatlens.RoleUser),
		),
		legacy: NewClassifier(),
	}
}

// Name returns the strategy's identifier.
func (s *GeminiStrategy) Name() string {
	return "gemini"
}

// Extract returns the conversation in document order.
func (s *GeminiStrategy) Extract(root chatlens.Node) (*chatlens.Conversation, error) {
	if root == nil {
		return nil, errNoRoot()
	}

	conv := &chatlens.Conversation{}
	nodes, tier := s.cascade.Select(root)
	classifier := s.classifier
	if tier == 1 {
		classifier = s.legacy
	}
	for _, block := range nodes {
		role, _ := classifier.Classify(block)
		conv.Append(role, block.Text())
	}
	return conv, nil
}
