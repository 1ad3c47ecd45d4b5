package selector

import (
	"github.com/npillmayer/stylo"
)

// Declarations is a shared, immutable block of property declarations. The
// concrete property representation lives one layer up (package style); the
// matcher only ever passes these handles through unchanged.
type Declarations interface{}

// Rule pairs a shared Selector with a shared declaration block and the
// bookkeeping needed to order it against every other rule: the index of the
// source style rule within its stylesheet, and the index of that stylesheet
// in ingestion order, counted across all origins of the Stylist.
type Rule struct {
	Selector     *Selector
	Declarations Declarations

	RuleIndex       int
	StylesheetIndex int
}

// order returns the (stylesheet_index, rule_index) tie-break tuple used once
// two rules share a specificity. Reuses the module's own generic pair type
// rather than an anonymous struct.
func (r Rule) order() fp.Pair[int, int] {
	return fp.P(r.StylesheetIndex, r.RuleIndex)
}

// Less implements the Rule total order: (specificity, stylesheet_index,
// rule_index), lexicographically. Later stylesheets and later rules win at
// equal specificity.
func (r Rule) Less(other Rule) bool {
	if r.Selector.Specificity != other.Selector.Specificity {
		return r.Selector.Specificity < other.Selector.Specificity
	}
	a, b := r.order(), other.order()
	al, ar := a.Decompose()
	bl, br := b.Decompose()
	if al != bl {
		return al < bl
	}
	return ar < br
}

// byRuleOrder makes a []Rule sortable by the Rule total order while
// preserving relative order of equal elements (sort.Stable is used by
// callers, never sort.Sort).
type byRuleOrder []Rule

func (s byRuleOrder) Len() int           { return len(s) }
func (s byRuleOrder) Less(i, j int) bool { return s[i].Less(s[j]) }
func (s byRuleOrder) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
