package selector

import (
	"golang.org/x/net/html"

	"github.com/npillmayer/stylo/maybe"
)

// Element is the capability the matcher requires of a tree node. Any DOM
// implementation can be matched against as long as it can answer these
// questions; the matcher never mutates through this interface.
type Element interface {
	IsElement() bool
	IsDocument() bool

	// Element-only accessors; callers must check IsElement() first.
	LocalName() string
	NamespaceURL() string
	Attr(namespace, name string) (string, bool)
	Link() maybe.Maybe[string]

	ParentNode() (Element, bool)
	PrevSibling() (Element, bool)
	NextSibling() (Element, bool)
}

// htmlElement adapts a *golang.org/x/net/html.Node to Element. This is the
// concrete representation the rest of the stack (douceuradapter, cssom)
// already uses.
type htmlElement struct {
	node *html.Node
}

// WrapHTMLNode returns an Element view of an *html.Node.
func WrapHTMLNode(n *html.Node) Element {
	if n == nil {
		return nil
	}
	return htmlElement{node: n}
}

func (e htmlElement) IsElement() bool {
	return e.node.Type == html.ElementNode
}

func (e htmlElement) IsDocument() bool {
	return e.node.Type == html.DocumentNode
}

func (e htmlElement) LocalName() string {
	return e.node.Data
}

func (e htmlElement) NamespaceURL() string {
	return e.node.Namespace
}

func (e htmlElement) Attr(namespace, name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name && a.Namespace == namespace {
			return a.Val, true
		}
	}
	return "", false
}

func (e htmlElement) Link() maybe.Maybe[string] {
	if e.node.DataAtom.String() == "a" || e.node.DataAtom.String() == "area" {
		if href, ok := e.Attr("", "href"); ok {
			return maybe.Just(href)
		}
	}
	return maybe.Nothing[string]()
}

func (e htmlElement) ParentNode() (Element, bool) {
	if e.node.Parent == nil {
		return nil, false
	}
	return htmlElement{node: e.node.Parent}, true
}

func (e htmlElement) PrevSibling() (Element, bool) {
	if e.node.PrevSibling == nil {
		return nil, false
	}
	return htmlElement{node: e.node.PrevSibling}, true
}

func (e htmlElement) NextSibling() (Element, bool) {
	if e.node.NextSibling == nil {
		return nil, false
	}
	return htmlElement{node: e.node.NextSibling}, true
}

var _ Element = htmlElement{}
