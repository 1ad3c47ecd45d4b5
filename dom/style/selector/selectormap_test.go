package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/stylo/dom/style/selector"
)

func mustParse(t *testing.T, text string) *selector.Selector {
	t.Helper()
	var sel *selector.Selector
	r := selector.ParseSelectorGroup(text)
	var list []*selector.Selector
	var err error
	switch m := r.Match(); m {
	case m.Ok(&list):
		sel = list[0]
	case m.Err(&err):
		t.Fatalf("parse %q: %v", text, err)
	}
	return sel
}

func ruleFor(t *testing.T, selText string, ruleIndex, sheetIndex int) selector.Rule {
	return selector.Rule{
		Selector:        mustParse(t, selText),
		Declarations:    selText,
		RuleIndex:       ruleIndex,
		StylesheetIndex: sheetIndex,
	}
}

// Grounded on the original source's test_rule_ordering_same_specificity.
func TestRuleOrderingSameSpecificity(t *testing.T) {
	a := ruleFor(t, "a.intro", 0, 0)
	b := ruleFor(t, "img.sidebar", 1, 0)

	assert.Equal(t, a.Selector.Specificity, b.Selector.Specificity, "both selectors have one class, one element, no id")
	assert.True(t, a.Less(b), "second-declared rule (rule_index 1) sorts greater than rule_index 0")
	assert.False(t, b.Less(a))
}

// Grounded on the original source's test_get_id_name.
func TestBucketPicksIDOverClass(t *testing.T) {
	m := selector.NewSelectorMap()
	m.Insert(ruleFor(t, ".intro#top", 0, 0))

	assert.Equal(t, 1, m.IDBucketSize("top"))
	assert.Equal(t, 0, m.ClassBucketSize("intro"))
}

// Grounded on the original source's test_get_class_name.
func TestBucketPicksClassOverElement(t *testing.T) {
	m := selector.NewSelectorMap()
	m.Insert(ruleFor(t, "img.foo", 0, 0))

	assert.Equal(t, 1, m.ClassBucketSize("foo"))
	assert.Equal(t, 0, m.ElementBucketSize("img"))
}

// Grounded on the original source's test_get_element_name.
func TestLocalNameLowercasing(t *testing.T) {
	m := selector.NewSelectorMap()
	m.Insert(ruleFor(t, "IMG", 0, 0))
	m.Insert(ruleFor(t, "ImG", 1, 0))
	m.Insert(ruleFor(t, "img", 2, 0))

	assert.Equal(t, 3, m.ElementBucketSize("img"))
}

// Grounded on the original source's test_insert.
func TestInsertPlacesExactlyOneBucket(t *testing.T) {
	m := selector.NewSelectorMap()
	m.Insert(ruleFor(t, "#unique", 0, 0))
	m.Insert(ruleFor(t, ".shared", 1, 0))
	m.Insert(ruleFor(t, "p", 2, 0))
	m.Insert(ruleFor(t, "*", 3, 0))

	assert.Equal(t, 1, m.IDBucketSize("unique"))
	assert.Equal(t, 1, m.ClassBucketSize("shared"))
	assert.Equal(t, 1, m.ElementBucketSize("p"))
	assert.Equal(t, 1, m.UniversalBucketSize())
}
