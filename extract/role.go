package extract

import (
	"slices"
	"strings"

	"github.com/fwojciec/chatlens"
)

// Signal ranks how trustworthy a role classification is.
type Signal int

// Signal strengths, weakest first.
const (
	SignalDefault Signal = iota
	SignalHeuristic
	SignalStructural
	SignalExplicit
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalExplicit:
		return "explicit"
	case SignalStructural:
		return "structural"
	case SignalHeuristic:
		return "heuristic"
	default:
		return "default"
	}
}

// Rule decides a node's role from one signal. Apply returns ok=false when
// the signal is absent or gives no definite answer.
type Rule struct {
	Name   string
	Signal Signal
	Apply  func(n chatlens.Node) (role chatlens.Role, ok bool)
}

// Classifier resolves roles by evaluating rules from the strongest signal to
// the weakest. The first definite answer wins; nodes no rule decides are
// classified as model.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier. Rules are ordered by signal strength;
// rules of equal strength keep their declaration order.
func NewClassifier(rules ...Rule) *Classifier {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		return int(b.Signal) - int(a.Signal)
	})
	return &Classifier{rules: sorted}
}

// Classify returns the node's role and the signal that decided it.
func (c *Classifier) Classify(n chatlens.Node) (chatlens.Role, Signal) {
	for _, r := range c.rules {
		if role, ok := r.Apply(n); ok {
			return role, r.Signal
		}
	}
	return chatlens.RoleModel, SignalDefault
}

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	return slices.Clone(c.rules)
}

// AttrRule maps values of an explicit attribute to roles. Values missing
// from the map decline, unless fallback is set, in which case any present
// value resolves to it.
func AttrRule(attr string, values map[string]chatlens.Role, fallback chatlens.Role) Rule {
	return Rule{
		Name:   "attr:" + attr,
		Signal: SignalExplicit,
		Apply: func(n chatlens.Node) (chatlens.Role, bool) {
			v, ok := n.Attr(attr)
			if !ok {
				return "", false
			}
			if role, ok := values[v]; ok {
				return role, true
			}
			if fallback != "" {
				return fallback, true
			}
			return "", false
		},
	}
}

// ClassRule assigns role when the node carries class.
func ClassRule(class string, role chatlens.Role) Rule {
	return Rule{
		Name:   "class:" + class,
		Signal: SignalStructural,
		Apply: func(n chatlens.Node) (chatlens.Role, bool) {
			return role, n.HasClass(class)
		},
	}
}

// ContainsRule assigns role when the node has a descendant matching pattern.
func ContainsRule(pattern string, role chatlens.Role) Rule {
	return Rule{
		Name:   "contains:" + pattern,
		Signal: SignalStructural,
		Apply: func(n chatlens.Node) (chatlens.Role, bool) {
			return role, len(n.Find(pattern)) > 0
		},
	}
}

// ClassTokenRule assigns role when any class token contains substr.
func ClassTokenRule(substr string, role chatlens.Role) Rule {
	return Rule{
		Name:   "class~" + substr,
		Signal: SignalStructural,
		Apply: func(n chatlens.Node) (chatlens.Role, bool) {
			class, _ := n.Attr("class")
			for _, tok := range strings.Fields(class) {
				if strings.Contains(tok, substr) {
					return role, true
				}
			}
			return "", false
		},
	}
}

// TextPrefixRule assigns role when the rendered text starts with prefix.
func TextPrefixRule(prefix string, role chatlens.Role) Rule {
	return Rule{
		Name:   "text^" + prefix,
		Signal: SignalHeuristic,
		Apply: func(n chatlens.Node) (chatlens.Role, bool) {
			return role, strings.HasPrefix(n.Text(), prefix)
		},
	}
}
