package selector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/stylo/result"
)

// ParseSelectorGroup parses a comma-separated selector-group string - the
// raw text douceur exposes as css.Rule.Prelude - into the Selector values
// this package's SelectorMap/Matcher operate on.
//
// This is the one bridging, standard-library-only component of the core:
// no library in the dependency graph exposes a public selector-grammar
// parser (douceur does not parse selectors at all; cascadia's is
// unexported and is being replaced, not depended on). The grammar handled
// here is deliberately narrow: comma-separated compound-selector chains
// joined by descendant/child/sibling combinators, with the simple-selector
// syntax spec.md §3 lists.
func ParseSelectorGroup(text string) result.Result[[]*Selector] {
	var out []*Selector
	for _, part := range splitTopLevel(text, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sel, err := parseSelector(part)
		if err != nil {
			return result.Err[[]*Selector](err)
		}
		out = append(out, sel)
	}
	if len(out) == 0 {
		return result.Err[[]*Selector](fmt.Errorf("empty selector group: %q", text))
	}
	return result.Ok(out)
}

func parseSelector(text string) (*Selector, error) {
	body, pseudoElement := splitPseudoElement(text)

	compoundTexts, combs, err := splitCompounds(body)
	if err != nil {
		return nil, err
	}
	if len(compoundTexts) == 0 {
		return nil, fmt.Errorf("empty selector: %q", text)
	}

	nodes := make([]*CompoundSelector, len(compoundTexts))
	for i, t := range compoundTexts {
		n, err := parseCompoundText(t)
		if err != nil {
			return nil, fmt.Errorf("selector %q: %w", text, err)
		}
		nodes[i] = n
	}
	for i := len(nodes) - 1; i > 0; i-- {
		nodes[i].Next = nodes[i-1]
		nodes[i].Comb = combs[i-1]
	}

	return &Selector{
		Compound:      nodes[len(nodes)-1],
		PseudoElement: pseudoElement,
		Specificity:   computeSpecificity(nodes[len(nodes)-1], pseudoElement),
	}, nil
}

// splitPseudoElement splits off a trailing "::name" pseudo-element, if any,
// at the top level (not inside brackets/parens).
func splitPseudoElement(text string) (string, PseudoElement) {
	depth := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ':':
			if depth == 0 && text[i+1] == ':' {
				return strings.TrimSpace(text[:i]), PseudoElement(strings.TrimSpace(text[i+2:]))
			}
		}
	}
	return text, ""
}

// splitTopLevel splits s on sep, ignoring occurrences inside [...] or (...).
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// splitCompounds tokenizes a combinator-joined chain of compound selectors,
// left (ancestor) to right (subject). Combinators are whitespace
// (Descendant) or one of '>' '+' '~', each of which may itself be
// surrounded by whitespace.
func splitCompounds(s string) ([]string, []Combinator, error) {
	var compounds []string
	var combs []Combinator
	depth := 0
	var cur strings.Builder
	pendingComb := -1 // -1 means "no combinator seen yet since last flush"
	flush := func() error {
		text := strings.TrimSpace(cur.String())
		cur.Reset()
		if text == "" {
			return nil
		}
		compounds = append(compounds, text)
		if pendingComb >= 0 {
			combs = append(combs, Combinator(pendingComb))
			pendingComb = -1
		} else if len(compounds) > 1 {
			combs = append(combs, Descendant)
		}
		return nil
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '[' || c == '(':
			depth++
			cur.WriteByte(c)
		case c == ']' || c == ')':
			depth--
			cur.WriteByte(c)
		case depth > 0:
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			if err := flush(); err != nil {
				return nil, nil, err
			}
		case c == '>' || c == '+' || c == '~':
			if err := flush(); err != nil {
				return nil, nil, err
			}
			switch c {
			case '>':
				pendingComb = int(Child)
			case '+':
				pendingComb = int(NextSibling)
			case '~':
				pendingComb = int(LaterSibling)
			}
		default:
			cur.WriteByte(c)
		}
	}
	if err := flush(); err != nil {
		return nil, nil, err
	}
	if pendingComb >= 0 {
		return nil, nil, fmt.Errorf("dangling combinator in selector %q", s)
	}
	return compounds, combs, nil
}

var identStop = func(c byte) bool {
	return c == '#' || c == '.' || c == ':' || c == '['
}

func parseCompoundText(text string) (*CompoundSelector, error) {
	node := &CompoundSelector{}
	i := 0
	if i < len(text) && !identStop(text[i]) {
		start := i
		for i < len(text) && !identStop(text[i]) {
			i++
		}
		name := text[start:i]
		if name != "*" {
			node.Simple = append(node.Simple, SimpleSelector{Kind: KindLocalName, Name: name})
		}
	}
	for i < len(text) {
		switch text[i] {
		case '#':
			start := i + 1
			i++
			for i < len(text) && !identStop(text[i]) {
				i++
			}
			node.Simple = append(node.Simple, SimpleSelector{Kind: KindID, Name: text[start:i]})
		case '.':
			start := i + 1
			i++
			for i < len(text) && !identStop(text[i]) {
				i++
			}
			node.Simple = append(node.Simple, SimpleSelector{Kind: KindClass, Name: text[start:i]})
		case '[':
			end := matchingBracket(text, i, '[', ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated attribute selector in %q", text)
			}
			s, err := parseAttrSelector(text[i+1 : end])
			if err != nil {
				return nil, err
			}
			node.Simple = append(node.Simple, s)
			i = end + 1
		case ':':
			start := i + 1
			i++
			for i < len(text) && text[i] != '(' && !identStop(text[i]) {
				i++
			}
			name := text[start:i]
			var arg string
			if i < len(text) && text[i] == '(' {
				end := matchingBracket(text, i, '(', ')')
				if end < 0 {
					return nil, fmt.Errorf("unterminated pseudo-class args in %q", text)
				}
				arg = text[i+1 : end]
				i = end + 1
			}
			s, err := parsePseudoClass(name, arg)
			if err != nil {
				return nil, err
			}
			node.Simple = append(node.Simple, s)
		default:
			return nil, fmt.Errorf("unexpected character %q in selector %q", text[i], text)
		}
	}
	return node, nil
}

func matchingBracket(s string, open int, o, c byte) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case o:
			depth++
		case c:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

var attrOpRe = regexp.MustCompile(`^([^=~|^$*]+?)\s*(=|~=|\|=|\^=|\$=|\*=)\s*"?([^"]*?)"?$`)

func parseAttrSelector(body string) (SimpleSelector, error) {
	body = strings.TrimSpace(body)
	attr := func(name string) AttrSelector {
		if idx := strings.IndexByte(name, '|'); idx >= 0 {
			return AttrSelector{Namespace: name[:idx], Name: name[idx+1:]}
		}
		return AttrSelector{Name: name}
	}
	if m := attrOpRe.FindStringSubmatch(body); m != nil {
		name, op, value := strings.TrimSpace(m[1]), m[2], m[3]
		a := attr(name)
		switch op {
		case "=":
			return SimpleSelector{Kind: KindAttrEqual, Attr: a, Value: value}, nil
		case "~=":
			return SimpleSelector{Kind: KindAttrIncludes, Attr: a, Value: value}, nil
		case "|=":
			return SimpleSelector{Kind: KindAttrDashMatch, Attr: a, Value: value, Dash: value + "-"}, nil
		case "^=":
			return SimpleSelector{Kind: KindAttrPrefixMatch, Attr: a, Value: value}, nil
		case "$=":
			return SimpleSelector{Kind: KindAttrSuffixMatch, Attr: a, Value: value}, nil
		case "*=":
			return SimpleSelector{Kind: KindAttrSubstringMatch, Attr: a, Value: value}, nil
		}
	}
	return SimpleSelector{Kind: KindAttrExists, Attr: attr(body)}, nil
}

func parsePseudoClass(name, arg string) (SimpleSelector, error) {
	switch strings.ToLower(name) {
	case "any-link":
		return SimpleSelector{Kind: KindAnyLink}, nil
	case "link":
		return SimpleSelector{Kind: KindLink}, nil
	case "visited":
		return SimpleSelector{Kind: KindVisited}, nil
	case "first-child":
		return SimpleSelector{Kind: KindFirstChild}, nil
	case "last-child":
		return SimpleSelector{Kind: KindLastChild}, nil
	case "only-child":
		return SimpleSelector{Kind: KindOnlyChild}, nil
	case "root":
		return SimpleSelector{Kind: KindRoot}, nil
	case "first-of-type":
		return SimpleSelector{Kind: KindFirstOfType}, nil
	case "last-of-type":
		return SimpleSelector{Kind: KindLastOfType}, nil
	case "only-of-type":
		return SimpleSelector{Kind: KindOnlyOfType}, nil
	case "nth-child":
		a, b, err := parseAnB(arg)
		if err != nil {
			return SimpleSelector{}, err
		}
		return SimpleSelector{Kind: KindNthChild, A: a, B: b}, nil
	case "nth-last-child":
		a, b, err := parseAnB(arg)
		if err != nil {
			return SimpleSelector{}, err
		}
		return SimpleSelector{Kind: KindNthLastChild, A: a, B: b}, nil
	case "nth-of-type":
		a, b, err := parseAnB(arg)
		if err != nil {
			return SimpleSelector{}, err
		}
		return SimpleSelector{Kind: KindNthOfType, A: a, B: b}, nil
	case "nth-last-of-type":
		a, b, err := parseAnB(arg)
		if err != nil {
			return SimpleSelector{}, err
		}
		return SimpleSelector{Kind: KindNthLastOfType, A: a, B: b}, nil
	case "not":
		inner, err := parseCompoundText(strings.TrimSpace(arg))
		if err != nil {
			return SimpleSelector{}, fmt.Errorf(":not(%s): %w", arg, err)
		}
		return SimpleSelector{Kind: KindNegation, Negated: inner.Simple}, nil
	}
	return SimpleSelector{}, fmt.Errorf("unsupported pseudo-class %q", name)
}

var anbRe = regexp.MustCompile(`^\s*([+-]?\d*)n\s*([+-]\s*\d+)?\s*$`)

// parseAnB parses the An+B micro-syntax used by :nth-child and friends.
func parseAnB(s string) (a, b int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	}
	if m := anbRe.FindStringSubmatch(s); m != nil {
		aPart := m[1]
		switch aPart {
		case "", "+":
			a = 1
		case "-":
			a = -1
		default:
			a, err = strconv.Atoi(aPart)
			if err != nil {
				return 0, 0, fmt.Errorf("bad An+B %q: %w", s, err)
			}
		}
		if m[2] != "" {
			b, err = strconv.Atoi(strings.ReplaceAll(m[2], " ", ""))
			if err != nil {
				return 0, 0, fmt.Errorf("bad An+B %q: %w", s, err)
			}
		}
		return a, b, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("bad An+B %q", s)
	}
	return 0, n, nil
}

// computeSpecificity walks the whole compound chain (and any Negation
// operands) tallying id/class/element counts per CSS Selectors Level 3:
// IDs are most significant, then classes/attributes/pseudo-classes, then
// type selectors/pseudo-elements.
func computeSpecificity(chain *CompoundSelector, pseudo PseudoElement) Specificity {
	var ids, classes, elements int
	for c := chain; c != nil; c = c.Next {
		for _, s := range c.Simple {
			tallySimple(s, &ids, &classes, &elements)
		}
	}
	if pseudo != "" {
		elements++
	}
	return NewSpecificity(ids, classes, elements)
}

func tallySimple(s SimpleSelector, ids, classes, elements *int) {
	switch s.Kind {
	case KindID:
		*ids++
	case KindLocalName:
		*elements++
	case KindNegation:
		for _, inner := range s.Negated {
			tallySimple(inner, ids, classes, elements)
		}
	case KindNamespace:
		// contributes nothing to specificity on its own
	default:
		*classes++
	}
}
