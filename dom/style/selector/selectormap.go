package selector

import "sort"

// SelectorMap buckets rules by the rightmost simple selector of their
// compound-selector chain, so that matching only has to test a small
// candidate set against any given element. Every rule lives in exactly one
// bucket: the four-way id/class/element/universal split mirrors WebKit's
// RuleSet and the original source's SelectorMap.
type SelectorMap struct {
	idHash      map[string][]Rule
	classHash   map[string][]Rule
	elementHash map[string][]Rule // keyed by lowercased local name
	universal   []Rule
}

// NewSelectorMap returns an empty SelectorMap.
func NewSelectorMap() *SelectorMap {
	return &SelectorMap{
		idHash:      make(map[string][]Rule),
		classHash:   make(map[string][]Rule),
		elementHash: make(map[string][]Rule),
	}
}

// Insert places rule into the bucket chosen by inspecting the rightmost
// compound selector's simple selectors, in order: first ID wins, else first
// Class, else first LocalName (lowercased), else universal.
func (m *SelectorMap) Insert(rule Rule) {
	rightmost := rule.Selector.Compound
	if rightmost == nil {
		m.universal = append(m.universal, rule)
		return
	}
	if id, ok := firstOfKind(rightmost.Simple, KindID); ok {
		m.idHash[id] = append(m.idHash[id], rule)
		tracer().Debugf("selector map: bucketed rule by id %q", id)
		return
	}
	if class, ok := firstOfKind(rightmost.Simple, KindClass); ok {
		m.classHash[class] = append(m.classHash[class], rule)
		tracer().Debugf("selector map: bucketed rule by class %q", class)
		return
	}
	if name, ok := firstOfKind(rightmost.Simple, KindLocalName); ok {
		name = lowercaseASCII(name)
		m.elementHash[name] = append(m.elementHash[name], rule)
		tracer().Debugf("selector map: bucketed rule by element %q", name)
		return
	}
	m.universal = append(m.universal, rule)
	tracer().Debugf("selector map: bucketed rule as universal")
}

// firstOfKind returns the Name field of the first simple selector of the
// given kind, consulted in sequence order (not re-sorted).
func firstOfKind(simple []SimpleSelector, kind SimpleSelectorKind) (string, bool) {
	for _, s := range simple {
		if s.Kind == kind {
			return s.Name, true
		}
	}
	return "", false
}

// GetAllMatchingRules appends every rule in m that matches element (with the
// given pseudo-element) to out, querying id, class, element and universal
// buckets in that order, then stably sorts only the slice appended during
// this call by the Rule total order.
func (m *SelectorMap) GetAllMatchingRules(element Element, pseudo PseudoElement, out []Rule) []Rule {
	start := len(out)

	if element.IsElement() {
		if id, ok := element.Attr("", "id"); ok {
			for _, rule := range m.idHash[id] {
				if MatchesSelector(rule.Selector, element, pseudo) {
					out = append(out, rule)
				}
			}
		}
		if class, ok := element.Attr("", "class"); ok {
			for _, token := range splitSelectorWhitespace(class) {
				for _, rule := range m.classHash[token] {
					if MatchesSelector(rule.Selector, element, pseudo) {
						out = append(out, rule)
					}
				}
			}
		}
		name := lowercaseASCII(element.LocalName())
		for _, rule := range m.elementHash[name] {
			if MatchesSelector(rule.Selector, element, pseudo) {
				out = append(out, rule)
			}
		}
	}
	for _, rule := range m.universal {
		if MatchesSelector(rule.Selector, element, pseudo) {
			out = append(out, rule)
		}
	}

	sort.Stable(byRuleOrder(out[start:]))
	return out
}

// IDBucketSize, ClassBucketSize, ElementBucketSize and UniversalBucketSize
// report how many rules sit in a given bucket; useful for tests and for
// Dump.
func (m *SelectorMap) IDBucketSize(id string) int     { return len(m.idHash[id]) }
func (m *SelectorMap) ClassBucketSize(c string) int   { return len(m.classHash[c]) }
func (m *SelectorMap) ElementBucketSize(e string) int { return len(m.elementHash[e]) }
func (m *SelectorMap) UniversalBucketSize() int       { return len(m.universal) }

// splitSelectorWhitespace splits on CSS selector whitespace: space, tab,
// LF, CR, FF.
func splitSelectorWhitespace(s string) []string {
	return splitAny(s, " \t\n\r\f")
}

func splitAny(s, cutset string) []string {
	var fields []string
	start := -1
	for i, r := range s {
		if containsRune(cutset, r) {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func lowercaseASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
