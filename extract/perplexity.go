package extract

import (
	"strings"

	"github.com/fwojciec/chatlens"
)

var _ chatlens.Strategy = (*PerplexityStrategy)(nil)

// PerplexityStrategy extracts conversations from Perplexity.
//
// Queries render as the page heading or in the display font; answers render
// in .prose blocks. Only the main region is searched.
type PerplexityStrategy struct {
	cascade    Cascade
	classifier *Classifier
	chrome     map[string]bool
}

// NewPerplexityStrategy creates a new PerplexityStrategy.
func NewPerplexityStrategy() *PerplexityStrategy {
	return &PerplexityStrategy{
		cascade: Cascade{"h1, .font-display, .prose"},
		classifier: NewClassifier(
			ClassRule("font-display", chatlens.RoleUser),
			ClassRule("prose", chatlens.RoleModel),
			// Matched by the tier but carries neither class: an h1.
			Rule{
				Name:   "heading",
				Signal: SignalHeuristic,
				Apply: func(chatlens.Node) (chatlens.Role, bool) {
					return chatlens.RoleUser, true
				},
			},
		),
		chrome: map[string]bool{
			"Sources": true,
			"Related": true,
			"Answer":  true,
		},
	}
}

// Name returns the strategy's identifier.
func (s *PerplexityStrategy) Name() string {
	return "perplexity"
}

// Extract returns the conversation in document order.
func (s *PerplexityStrategy) Extract(root chatlens.Node) (*chatlens.Conversation, error) {
	if root == nil {
		return nil, errNoRoot()
	}

	conv := &chatlens.Conversation{}
	main := root.Find("main")
	if len(main) == 0 {
		return conv, nil
	}

	nodes, _ := s.cascade.Select(main[0])
	for _, node := range nodes {
		content := strings.TrimSpace(node.Text())
		if s.chrome[content] {
			continue
		}
		role, _ := s.classifier.Classify(node)
		conv.Append(role, content)
	}
	return conv, nil
}
