package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/stylo/dom/style/selector"
)

func parseOne(t *testing.T, text string) *selector.Selector {
	t.Helper()
	r := selector.ParseSelectorGroup(text)
	var list []*selector.Selector
	var err error
	switch m := r.Match(); m {
	case m.Ok(&list):
		require.Len(t, list, 1)
		return list[0]
	case m.Err(&err):
		t.Fatalf("unexpected parse error for %q: %v", text, err)
	}
	return nil
}

func TestParseSimpleCompound(t *testing.T) {
	sel := parseOne(t, "div.intro#top[data-x=\"1\"]")
	kinds := make([]selector.SimpleSelectorKind, 0, 4)
	for _, s := range sel.Compound.Simple {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []selector.SimpleSelectorKind{
		selector.KindLocalName, selector.KindClass, selector.KindID, selector.KindAttrEqual,
	}, kinds)
	assert.Nil(t, sel.Compound.Next)
}

func TestParseCombinatorChain(t *testing.T) {
	sel := parseOne(t, "div > section p + span ~ b")
	// Compound is the rightmost ("b"); Next walks toward the root.
	assert.Equal(t, "b", sel.Compound.Simple[0].Name)
	assert.Equal(t, selector.LaterSibling, sel.Compound.Comb)

	span := sel.Compound.Next
	assert.Equal(t, "span", span.Simple[0].Name)
	assert.Equal(t, selector.NextSibling, span.Comb)

	p := span.Next
	assert.Equal(t, "p", p.Simple[0].Name)
	assert.Equal(t, selector.Descendant, p.Comb)

	section := p.Next
	assert.Equal(t, "section", section.Simple[0].Name)
	assert.Equal(t, selector.Child, section.Comb)

	div := section.Next
	assert.Equal(t, "div", div.Simple[0].Name)
	assert.Nil(t, div.Next)
}

func TestParseSelectorGroupSplitsOnComma(t *testing.T) {
	r := selector.ParseSelectorGroup("a.intro, img.sidebar")
	var list []*selector.Selector
	var err error
	switch m := r.Match(); m {
	case m.Ok(&list):
	case m.Err(&err):
		t.Fatalf("unexpected error: %v", err)
	}
	require.Len(t, list, 2)
}

// Scenario 2/3: specificity and bucket placement are grounded directly on
// which selector the parser hands to SelectorMap.Insert, so correct
// specificity computation matters independently of bucket choice.
func TestParseSpecificity(t *testing.T) {
	idSel := parseOne(t, "#top")
	classSel := parseOne(t, "img.foo")
	elemSel := parseOne(t, "img")

	assert.Greater(t, uint32(idSel.Specificity), uint32(classSel.Specificity))
	assert.Greater(t, uint32(classSel.Specificity), uint32(elemSel.Specificity))
}

func TestParseNthChildArgs(t *testing.T) {
	odd := parseOne(t, "li:nth-child(odd)")
	assert.Equal(t, 2, odd.Compound.Simple[1].A)
	assert.Equal(t, 1, odd.Compound.Simple[1].B)

	even := parseOne(t, "li:nth-child(even)")
	assert.Equal(t, 2, even.Compound.Simple[1].A)
	assert.Equal(t, 0, even.Compound.Simple[1].B)

	anb := parseOne(t, "li:nth-child(3n+2)")
	assert.Equal(t, 3, anb.Compound.Simple[1].A)
	assert.Equal(t, 2, anb.Compound.Simple[1].B)

	plain := parseOne(t, "li:nth-child(5)")
	assert.Equal(t, 0, plain.Compound.Simple[1].A)
	assert.Equal(t, 5, plain.Compound.Simple[1].B)
}

func TestParseNegationSingleArg(t *testing.T) {
	sel := parseOne(t, "p:not(.intro)")
	not := sel.Compound.Simple[1]
	require.Equal(t, selector.KindNegation, not.Kind)
	require.Len(t, not.Negated, 1)
	assert.Equal(t, selector.KindClass, not.Negated[0].Kind)
	assert.Equal(t, "intro", not.Negated[0].Name)
}

func TestParsePseudoElement(t *testing.T) {
	sel := parseOne(t, "p::before")
	assert.Equal(t, selector.PseudoElement("before"), sel.PseudoElement)
}

func TestParseMalformedSelectorReturnsErr(t *testing.T) {
	r := selector.ParseSelectorGroup("div >")
	var err error
	ok := false
	switch m := r.Match(); m {
	case m.Ok(new([]*selector.Selector)):
		ok = true
	case m.Err(&err):
	}
	assert.False(t, ok)
	assert.Error(t, err)
}
