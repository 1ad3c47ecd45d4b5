package selector

// MatchesSelector requires selector.PseudoElement == pseudo, then delegates
// to the compound-selector chain walk.
func MatchesSelector(sel *Selector, element Element, pseudo PseudoElement) bool {
	if sel.PseudoElement != pseudo {
		return false
	}
	return matchesCompoundSelector(sel.Compound, element)
}

// matchesCompoundSelector tests every simple selector in compound against
// element (short-circuit AND); if compound.Next is nil that is the whole
// answer. Otherwise it walks the tree toward compound.Next per compound.Comb.
func matchesCompoundSelector(compound *CompoundSelector, element Element) bool {
	if compound == nil {
		return true
	}
	for _, s := range compound.Simple {
		if !matchesSimpleSelector(s, element) {
			return false
		}
	}
	if compound.Next == nil {
		return true
	}
	switch compound.Comb {
	case Child:
		parent, ok := firstElementParent(element)
		if !ok {
			return false
		}
		return matchesCompoundSelector(compound.Next, parent)
	case Descendant:
		for parent, ok := firstElementParent(element); ok; parent, ok = firstElementParent(parent) {
			if matchesCompoundSelector(compound.Next, parent) {
				return true
			}
		}
		return false
	case NextSibling:
		sib, ok := firstElementPrevSibling(element)
		if !ok {
			return false
		}
		return matchesCompoundSelector(compound.Next, sib)
	case LaterSibling:
		for sib, ok := firstElementPrevSibling(element); ok; sib, ok = firstElementPrevSibling(sib) {
			if matchesCompoundSelector(compound.Next, sib) {
				return true
			}
		}
		return false
	}
	return false
}

// firstElementParent walks up exactly one step to the parent. Non-element
// ancestors never occur for ParentNode in a well-formed tree, but navigation
// transparently passes through them if they do: callers asking for "the one
// ancestor" get the first element encountered, consuming no extra budget for
// any non-element nodes skipped along the way. See the package-level design
// note on one-shot combinators past non-element nodes.
func firstElementParent(element Element) (Element, bool) {
	node, ok := element.ParentNode()
	for ok && !node.IsElement() {
		node, ok = node.ParentNode()
	}
	return node, ok
}

// firstElementPrevSibling walks backward to the first element sibling,
// transparently skipping non-element siblings (text nodes, comments) without
// consuming the "exactly one" budget Child/NextSibling enforce: the one-shot
// allowance is against the first *element* in the walk direction.
func firstElementPrevSibling(element Element) (Element, bool) {
	node, ok := element.PrevSibling()
	for ok && !node.IsElement() {
		node, ok = node.PrevSibling()
	}
	return node, ok
}

func matchesSimpleSelector(s SimpleSelector, element Element) bool {
	switch s.Kind {
	case KindLocalName:
		return element.IsElement() && equalFoldASCII(element.LocalName(), s.Name)
	case KindNamespace:
		return element.IsElement() && element.NamespaceURL() == s.Name
	case KindID:
		v, ok := element.Attr("", "id")
		return ok && v == s.Name
	case KindClass:
		v, ok := element.Attr("", "class")
		if !ok {
			return false
		}
		for _, tok := range splitSelectorWhitespace(v) {
			if tok == s.Name {
				return true
			}
		}
		return false
	case KindAttrExists:
		_, ok := element.Attr(s.Attr.Namespace, s.Attr.Name)
		return ok
	case KindAttrEqual:
		v, ok := element.Attr(s.Attr.Namespace, s.Attr.Name)
		return ok && v == s.Value
	case KindAttrIncludes:
		v, ok := element.Attr(s.Attr.Namespace, s.Attr.Name)
		if !ok {
			return false
		}
		for _, tok := range splitSelectorWhitespace(v) {
			if tok == s.Value {
				return true
			}
		}
		return false
	case KindAttrDashMatch:
		v, ok := element.Attr(s.Attr.Namespace, s.Attr.Name)
		return ok && (v == s.Value || hasPrefix(v, s.Dash))
	case KindAttrPrefixMatch:
		v, ok := element.Attr(s.Attr.Namespace, s.Attr.Name)
		return ok && hasPrefix(v, s.Value)
	case KindAttrSubstringMatch:
		v, ok := element.Attr(s.Attr.Namespace, s.Attr.Name)
		return ok && containsSubstring(v, s.Value)
	case KindAttrSuffixMatch:
		v, ok := element.Attr(s.Attr.Namespace, s.Attr.Name)
		return ok && hasSuffix(v, s.Value)
	case KindAnyLink:
		return hasLink(element)
	case KindLink:
		return hasLink(element) && !isVisited(element)
	case KindVisited:
		return hasLink(element) && isVisited(element)
	case KindFirstChild:
		return isFirstChild(element)
	case KindLastChild:
		return isLastChild(element)
	case KindOnlyChild:
		return isFirstChild(element) && isLastChild(element)
	case KindRoot:
		parent, ok := element.ParentNode()
		return ok && parent.IsDocument()
	case KindNthChild:
		return matchesGenericNthChild(element, s.A, s.B, false, false)
	case KindNthLastChild:
		return matchesGenericNthChild(element, s.A, s.B, true, false)
	case KindNthOfType:
		return matchesGenericNthChild(element, s.A, s.B, false, true)
	case KindNthLastOfType:
		return matchesGenericNthChild(element, s.A, s.B, true, true)
	case KindFirstOfType:
		return matchesGenericNthChild(element, 0, 1, false, true)
	case KindLastOfType:
		return matchesGenericNthChild(element, 0, 1, true, true)
	case KindOnlyOfType:
		return matchesGenericNthChild(element, 0, 1, false, true) && matchesGenericNthChild(element, 0, 1, true, true)
	case KindNegation:
		return !allMatch(s.Negated, element)
	}
	return false
}

// allMatch reports whether every simple selector in list matches element.
// Negation succeeds iff this is false, i.e. iff not all of them match -
// the source's literal semantics, reproduced even though a conforming
// parser only ever builds single-element Negated lists.
func allMatch(list []SimpleSelector, element Element) bool {
	for _, s := range list {
		if !matchesSimpleSelector(s, element) {
			return false
		}
	}
	return true
}

func hasLink(element Element) bool {
	has := false
	switch m := element.Link().Match(); m {
	case m.Just(new(string)):
		has = true
	case m.Nothing():
		has = false
	}
	return has
}

// isVisited is the visited-link oracle. It has a safe default of false and
// must never throw; no external state currently feeds it (link-visitedness
// is out of scope per the engine's stated contract).
func isVisited(element Element) bool {
	return false
}

func isFirstChild(element Element) bool {
	parent, ok := element.ParentNode()
	if !ok || parent.IsDocument() {
		return false
	}
	_, hasPrevElement := firstElementPrevSibling(element)
	return !hasPrevElement
}

func isLastChild(element Element) bool {
	parent, ok := element.ParentNode()
	if !ok || parent.IsDocument() {
		return false
	}
	node, hasNext := element.NextSibling()
	for hasNext && !node.IsElement() {
		node, hasNext = node.NextSibling()
	}
	return !hasNext
}

// matchesGenericNthChild implements :nth-child(an+b) and its of-type /
// from-the-end variants. index counts starting at 1, walking previous
// siblings (or next siblings if fromEnd), counting only elements (or, if
// ofType, only elements sharing the subject's local name and namespace).
func matchesGenericNthChild(element Element, a, b int, fromEnd, ofType bool) bool {
	parent, ok := element.ParentNode()
	if !ok || parent.IsDocument() {
		return false
	}
	index := 1
	var cur Element = element
	var next func(Element) (Element, bool)
	if fromEnd {
		next = Element.NextSibling
	} else {
		next = Element.PrevSibling
	}
	for {
		sib, has := next(cur)
		if !has {
			break
		}
		cur = sib
		if !cur.IsElement() {
			continue
		}
		if ofType && !sameTypeAndNamespace(cur, element) {
			continue
		}
		index++
	}
	if a == 0 {
		return index == b
	}
	n, r := truncDivMod(index-b, a)
	return n >= 0 && r == 0
}

func sameTypeAndNamespace(a, b Element) bool {
	return equalFoldASCII(a.LocalName(), b.LocalName()) && a.NamespaceURL() == b.NamespaceURL()
}

// truncDivMod performs truncated division with a remainder carrying the
// sign of the dividend, matching the semantics spec.md §4.4 requires (as
// opposed to Go's own "/" and "%" which already truncate toward zero and
// give the remainder the dividend's sign - this helper exists to make that
// explicit and documented at the call site rather than relying on readers
// to know Go's integer division rules).
func truncDivMod(dividend, divisor int) (n, r int) {
	return dividend / divisor, dividend % divisor
}

func equalFoldASCII(a, b string) bool {
	return lowercaseASCII(a) == lowercaseASCII(b)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func containsSubstring(s, substr string) bool {
	if substr == "" {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
