package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"

	"github.com/npillmayer/stylo/dom/style/selector"
)

// fakeSheet is a minimal selector.StyleRuleSource for tests: one style rule
// per entry, declarations represented as plain strings so assertions can
// compare them directly.
type fakeSheet struct {
	rules []selector.StyleRule
}

func (f fakeSheet) StyleRules(device selector.Device) []selector.StyleRule {
	return f.rules
}

func sheetOf(t *testing.T, entries ...struct {
	selText   string
	normal    string
	important string
}) fakeSheet {
	t.Helper()
	var rules []selector.StyleRule
	for _, e := range entries {
		r := selector.StyleRule{Selectors: []*selector.Selector{mustParse(t, e.selText)}}
		if e.normal != "" {
			r.NormalDeclarations = e.normal
		}
		if e.important != "" {
			r.ImportantDeclarations = e.important
		}
		rules = append(rules, r)
	}
	return fakeSheet{rules: rules}
}

func TestStylistCascadeOrder(t *testing.T) {
	s := selector.NewStylist()

	s.AddStylesheet(sheetOf(t,
		struct {
			selText   string
			normal    string
			important string
		}{"div", "ua-normal", ""},
	), selector.OriginUA, selector.Screen)

	s.AddStylesheet(sheetOf(t,
		struct {
			selText   string
			normal    string
			important string
		}{"div", "author-normal", "author-important"},
	), selector.OriginAuthor, selector.Screen)

	s.AddStylesheet(sheetOf(t,
		struct {
			selText   string
			normal    string
			important string
		}{"div", "", "ua-important"},
	), selector.OriginUA, selector.Screen)

	n := &html.Node{Type: html.ElementNode, Data: "div"}
	el := selector.WrapHTMLNode(n)

	out := s.GetApplicableDeclarations(el, nil, "")
	assert.Equal(t, []selector.Declarations{"ua-normal", "author-normal", "author-important", "ua-important"}, out)
}

func TestStylistSplicesStyleAttribute(t *testing.T) {
	s := selector.NewStylist()
	s.AddStylesheet(sheetOf(t,
		struct {
			selText   string
			normal    string
			important string
		}{"div", "author-normal", "author-important"},
	), selector.OriginAuthor, selector.Screen)

	n := &html.Node{Type: html.ElementNode, Data: "div"}
	el := selector.WrapHTMLNode(n)

	attr := &selector.StyleAttribute{Normal: "style-normal", Important: "style-important"}
	out := s.GetApplicableDeclarations(el, attr, "")

	assert.Equal(t, []selector.Declarations{
		"author-normal", "style-normal", "author-important", "style-important",
	}, out)
}

func TestStylistPanicsOnStyleAttributeWithPseudoElement(t *testing.T) {
	s := selector.NewStylist()
	n := &html.Node{Type: html.ElementNode, Data: "div"}
	el := selector.WrapHTMLNode(n)
	attr := &selector.StyleAttribute{Normal: "x"}

	assert.Panics(t, func() {
		s.GetApplicableDeclarations(el, attr, "before")
	})
}

func TestStylistGlobalMonotonicStylesheetIndex(t *testing.T) {
	s := selector.NewStylist()
	// Ingest an author sheet first (bumps the global counter) before three
	// UA sheets targeting the same bucket, and check that the UA sheets'
	// declarations still come out in ingestion order.
	s.AddStylesheet(sheetOf(t,
		struct {
			selText   string
			normal    string
			important string
		}{"div", "unrelated", ""},
	), selector.OriginAuthor, selector.Screen)

	for _, decl := range []string{"first", "second", "third"} {
		s.AddStylesheet(sheetOf(t,
			struct {
				selText   string
				normal    string
				important string
			}{"p", decl, ""},
		), selector.OriginUA, selector.Screen)
	}

	n := &html.Node{Type: html.ElementNode, Data: "p"}
	out := s.GetApplicableDeclarations(selector.WrapHTMLNode(n), nil, "")
	assert.Equal(t, []selector.Declarations{"first", "second", "third"}, out,
		"stylesheet_index keeps advancing across origins, preserving ingestion order within the ua.normal bucket")
}
