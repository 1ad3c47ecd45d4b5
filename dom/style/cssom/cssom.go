package cssom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/stylo/dom/style"
	"github.com/npillmayer/stylo/dom/style/selector"
	"github.com/npillmayer/stylo/dom/styledtree"
	"github.com/npillmayer/stylo/tree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSOM is the "CSS Object Model", similar to the DOM for HTML.
// Our CSSOM consists of a set of stylesheets, ingested into a single
// selector.Stylist that indexes rules by origin and priority and resolves
// the cascade for a given element.
type CSSOM struct {
	stylist           *selector.Stylist
	defaultProperties *style.PropertyMap           // "user agent" style properties
	compoundSplitters []CompoundPropertiesSplitter // split up compound properties
}

// NewCSSOM creates an empty CSSOM.
// Clients are allowed to supply a map of additional/custom CSS property values.
// These may override values of the default ("user-agent") style sheet,
// or introduce completely new styling properties.
func NewCSSOM(additionalProperties []style.KeyValue) CSSOM {
	cssom := CSSOM{}
	cssom.stylist = selector.NewStylist()
	cssom.defaultProperties = style.InitializeDefaultPropertyValues(additionalProperties)
	cssom.compoundSplitters = make([]CompoundPropertiesSplitter, 1)
	cssom.compoundSplitters[0] = style.SplitCompoundProperty
	return cssom
}

// AddStylesForScope ingests a stylesheet into the CSSOM's Stylist. css may
// be nil. source determines the cascade origin the sheet's rules are
// ingested under: Global maps to user-agent origin, Author and Script both
// map to author origin (script-inserted stylesheets are author-origin per
// CSS). Attribute is not a valid origin for a whole stylesheet: local
// style-attribute declarations are spliced in per-node at match time
// instead (see getStyleAttribute), not ingested here.
//
// scope, if non-nil, must be an element node; any other node type is
// rejected. This Stylist, like the one it is grounded on, has no notion of
// per-subtree stylesheet scoping: an element scope is accepted, but the
// sheet's rules apply to the whole document, not only below scope.
func (cssom CSSOM) AddStylesForScope(scope *html.Node, css StyleSheet, source PropertySource) error {
	if scope != nil && scope.Type != html.ElementNode {
		return errors.New("can style element nodes only")
	}
	if css == nil {
		return errors.New("style sheet is nil")
	}
	origin, err := originForSource(source)
	if err != nil {
		return err
	}
	cssom.stylist.AddStylesheet(stylesheetAdapter{css}, origin, selector.Screen)
	tracer().Debugf("ingested stylesheet for origin %d (%d rules)", origin, len(css.Rules()))
	return nil
}

func originForSource(source PropertySource) (selector.Origin, error) {
	switch source {
	case Global:
		return selector.OriginUA, nil
	case Author, Script:
		return selector.OriginAuthor, nil
	case Attribute:
		return 0, errors.New("attribute-sourced declarations are spliced at match time, not ingested as a stylesheet")
	}
	return 0, fmt.Errorf("unknown property source %d", source)
}

// Empty reports whether any stylesheet has been ingested into this CSSOM.
func (cssom CSSOM) Empty() bool {
	return cssom.stylist.Empty()
}

// PropertySource denotes where CSS properties come from and therewith
// determines which cascade origin they are ingested under.
//
// PropertySource affects the priority of rules: attribute values bind the
// closest (spliced directly at match time, see AddStylesForScope), followed
// by author stylesheets and script-inserted ones (both author-origin),
// followed by user-agent globals.
type PropertySource uint8

const (
	Global    PropertySource = iota + 1 // "browser" globals
	Author                              // CSS author (stylesheet link)
	Script                              // <script> element
	Attribute                           // in an element's attribute(s)
)

// CompoundPropertiesSplitter splits compound properties into atomic properties.
// Compunt properties are properties which abbreviate the
// setting of more fine grained propertes. An example is
//
//     padding: 10px 20px
//
// which sets the following detail properties:
//
//     padding-top:    10px
//     padding-right:  20px
//     padding-bottom: 10px
//     padding-left:   20px
//
// Standard CSS compound properties are known by default, but clients are
// allowed to extend the set of compound properties.
type CompoundPropertiesSplitter func(string, style.Property) ([]style.KeyValue, error)

// RegisterCompoundSplitter allows clients to handle additional compound
// properties. See type CompoundPropertiesSplitter.
func (cssom *CSSOM) RegisterCompoundSplitter(splitter CompoundPropertiesSplitter) {
	if splitter != nil {
		cssom.compoundSplitters = append(cssom.compoundSplitters, splitter)
	}
}

// --- Bridging cssom.StyleSheet/Rule into selector.StyleRuleSource ------

// stylesheetAdapter adapts a cssom.StyleSheet to selector.StyleRuleSource:
// for each rule, parse its selector-group string and split its declarations
// into normal and important declBlocks.
type stylesheetAdapter struct {
	sheet StyleSheet
}

func (a stylesheetAdapter) StyleRules(device selector.Device) []selector.StyleRule {
	rules := a.sheet.Rules()
	out := make([]selector.StyleRule, 0, len(rules))
	for _, r := range rules {
		selText := r.Selector()
		if selText == "" {
			continue // a style-attribute pseudo-rule; spliced separately
		}
		var selectors []*selector.Selector
		var err error
		switch m := selector.ParseSelectorGroup(selText).Match(); m {
		case m.Ok(&selectors):
		case m.Err(&err):
			tracer().Errorf("CSS selector failed to parse, skipping rule: %s (%v)", selText, err)
			continue
		}
		normal, important := declBlocksFor(r)
		out = append(out, selector.StyleRule{
			Selectors:             selectors,
			NormalDeclarations:    normal,
			ImportantDeclarations: important,
		})
	}
	return out
}

// declBlock is a shared, immutable block of property declarations - the
// concrete Declarations handle this package passes through the Stylist.
type declBlock []style.KeyValue

func declBlocksFor(r Rule) (normal, important *declBlock) {
	var n, i declBlock
	for _, key := range r.Properties() {
		kv := style.KeyValue{Key: key, Value: r.Value(key)}
		if r.IsImportant(key) {
			i = append(i, kv)
		} else {
			n = append(n, kv)
		}
	}
	if len(n) > 0 {
		normal = &n
	}
	if len(i) > 0 {
		important = &i
	}
	return normal, important
}

// --- Styled Node Tree -------------------------------------------------

// setupStyledNodeTree sets up the root nodes of the style tree.
// It creates a "root" node and a node for the HTML-document-node as its child.
func setupStyledNodeTree(domRoot *html.Node, defaults *style.PropertyMap) *tree.Node[*styledtree.StyNode] {
	rootNode := styledtree.NewNodeForHTMLNode(domRoot)
	rootNode.Payload.SetStyles(defaults)
	docNode := styledtree.NewNodeForHTMLNode(domRoot)
	rootNode.AddChild(docNode)
	return docNode
}

func findAncestorWithPropertyGroup(sn *tree.Node[*styledtree.StyNode], group string) (*tree.Node[*styledtree.StyNode], *style.PropertyGroup) {
	var pg *style.PropertyGroup
	if sn == nil {
		tracer().Errorf("Search for ancestor with property group %s started with nil", group)
		return nil, nil
	}
	it := sn
	last := sn
	for it != nil && pg == nil {
		styles := it.Payload.Styles()
		if styles != nil {
			pg = styles.Group(group)
		}
		it = it.Parent()
		if it != nil {
			last = it
		}
	}
	return last, pg
}

// Style gets things rolling. It styles an HTML parse tree, referred to by the root
// node, and returns a tree of styled nodes.
// For an explanation what's going on here, refer to
// https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/
// and
// https://limpet.net/mbrubeck/2014/08/23/toy-layout-engine-4-style.html
//
// If dom is nil, no tree is returned (but an error).
func (cssom CSSOM) Style(dom *html.Node) (*tree.Node[*styledtree.StyNode], error) {
	if dom == nil {
		return nil, errors.New("nothing to style: empty document")
	}
	if cssom.Empty() {
		tracer().Infof("Styling HTML tree without having any CSS rules")
	}
	tracer().Debugf("--- Creating style nodes for HTML nodes ----")
	styledRootNode := setupStyledNodeTree(dom, cssom.defaultProperties)
	walker := tree.NewWalker(styledRootNode)
	createNodes := func(node *tree.Node[*styledtree.StyNode], parent *tree.Node[*styledtree.StyNode],
		pos int) (*tree.Node[*styledtree.StyNode], error) {
		return createStyledChildren(node)
	}
	future := walker.TopDown(createNodes).Promise()
	if _, err := future(); err != nil {
		tracer().Errorf("Error while creating styled tree: %v", err)
		return nil, err
	}
	tracer().Debugf("--- Now styling newly created nodes --------")
	walker = tree.NewWalker(styledRootNode)
	createStyles := func(node *tree.Node[*styledtree.StyNode], parent *tree.Node[*styledtree.StyNode], pos int) (*tree.Node[*styledtree.StyNode], error) {
		return createStylesForNode(node, cssom.stylist, cssom.compoundSplitters)
	}
	future = walker.TopDown(createStyles).Promise()
	if _, err := future(); err != nil {
		tracer().Errorf("Error while creating style properties: %v", err)
		return nil, err
	}
	return styledRootNode, nil
}

// Pre-condition: sn has been styled and points to an HTML node.
// Now iterate through the HTML children and create styled nodes for each.
func createStyledChildren(parent *tree.Node[*styledtree.StyNode]) (*tree.Node[*styledtree.StyNode], error) {
	domnode := parent.Payload
	tracer().Debugf("Input node = %v, creating styled children", domnode)
	h := domnode.HTMLNode()
	if h.Type == html.ElementNode || h.Type == html.DocumentNode {
		ch := h.FirstChild
		for ch != nil {
			if ch.DataAtom == atom.Style {
				tracer().Infof("<style> nodes have to be extracted in advance")
			} else if isInDom(ch.Type, ch.DataAtom) {
				sn := styledtree.NewNodeForHTMLNode(ch)
				parent.AddChild(sn)
			}
			ch = ch.NextSibling
		}
	} else if h.Type == html.TextNode {
		return nil, nil
	}
	return parent, nil
}

func isInDom(nt html.NodeType, a atom.Atom) bool {
	if nt == html.ElementNode || nt == html.DocumentNode {
		return true
	}
	if nt == html.TextNode {
		return true
	}
	return false
}

func isStylable(a atom.Atom) bool {
	switch a {
	case atom.A, atom.Address, atom.Acronym, atom.Article, atom.Aside,
		atom.B, atom.Blink, atom.Blockquote, atom.Body, atom.Br,
		atom.Button, atom.Label, atom.Canvas, atom.Caption,
		atom.Code, atom.Content, atom.Div, atom.Em, atom.Figcaption,
		atom.Figure, atom.Footer, atom.Form, atom.Frame, atom.Hr,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Html,
		atom.I, atom.Img, atom.Input, atom.Li, atom.Main, atom.Math,
		atom.Menu, atom.Menuitem, atom.Nav, atom.Ol, atom.Option,
		atom.P, atom.Picture, atom.Pre, atom.Poster, atom.Q, atom.S,
		atom.Section, atom.Span, atom.Spacer, atom.Strong, atom.Summary,
		atom.Svg, atom.Sup, atom.Table, atom.Td, atom.Tr, atom.Th,
		atom.Textarea, atom.Tfoot, atom.Title, atom.Ul, atom.Video:
		return true
	}
	return false
}

// createStylesForNode resolves the cascade for node's HTML element via the
// Stylist, splices in its style attribute (if any), and assigns the
// resulting property groups.
func createStylesForNode(node *tree.Node[*styledtree.StyNode], stylist *selector.Stylist,
	splitters []CompoundPropertiesSplitter) (*tree.Node[*styledtree.StyNode], error) {
	//
	h := node.Payload.HTMLNode()
	if h.Type != html.DocumentNode && h.Type != html.ElementNode {
		return nil, nil
	}
	if !isStylable(h.DataAtom) {
		return node, nil
	}
	if h.Type != html.ElementNode {
		return node, nil
	}
	styleAttr := styleAttributeOf(h)
	decls := stylist.GetApplicableDeclarations(selector.WrapHTMLNode(h), styleAttr, "")
	if len(decls) == 0 {
		tracer().Debugf("Node %v matched no style rules", node)
		return node, nil
	}
	pmap := createStyleGroups(decls, splitters, node.Parent())
	tracer().Debugf("Setting styles for node %v =\n%v", node, pmap)
	node.Payload.SetStyles(pmap)
	return node, nil
}

// createStyleGroups assigns every property found across decls (already in
// final cascade order - lowest priority first) into a PropertyMap. Since
// decls is in ascending cascade order, a later declaration for the same
// property key always overrides an earlier one; no specificity bookkeeping
// is needed here anymore, the Stylist already did it.
func createStyleGroups(decls []selector.Declarations, splitters []CompoundPropertiesSplitter,
	parent *tree.Node[*styledtree.StyNode]) *style.PropertyMap {
	//
	pmap := style.NewPropertyMap()
	for _, d := range decls {
		block, ok := d.(*declBlock)
		if !ok || block == nil {
			continue
		}
		for _, kv := range *block {
			props, err := splitCompoundProperty(splitters, kv.Key, kv.Value)
			if err != nil {
				props = []style.KeyValue{kv}
			}
			for _, p := range props {
				groupname := style.GroupNameFromPropertyKey(p.Key)
				group := pmap.Group(groupname)
				if group != nil {
					group.Set(p.Key, p.Value)
					continue
				}
				_, pg := findAncestorWithPropertyGroup(parent, groupname)
				if pg == nil {
					panic(fmt.Sprintf("cannot find ancestor with prop-group %s -- did you create global properties?", groupname))
				}
				newGroup, isNew := pg.ForkOnProperty(p.Key, p.Value, true)
				if isNew {
					pmap = pmap.AddAllFromGroup(newGroup, true)
				}
			}
		}
	}
	if pmap.Size() == 0 {
		return nil
	}
	return pmap
}

func splitCompoundProperty(splitters []CompoundPropertiesSplitter,
	key string, value style.Property) ([]style.KeyValue, error) {
	for _, splitter := range splitters {
		kv, err := splitter(key, value)
		if err == nil {
			return kv, nil
		}
	}
	return nil, errNoSuchCompoundProperty
}

var errNoSuchCompoundProperty = errors.New("no such compound property")

// --- Local pseudo rules for style-attributes --------------------------

// styleAttributeOf extracts an HTML node's "style" attribute and converts it
// to the selector.StyleAttribute the Stylist splices into the cascade. CSS
// style attributes never carry a pseudo-element, and this package does not
// currently parse "!important" out of inline declarations - every
// style-attribute property is treated as normal priority, matching the
// simplification the teacher's own newLocalPseudoRule already made.
func styleAttributeOf(h *html.Node) *selector.StyleAttribute {
	kv := getStyleAttribute(h)
	if kv == nil || len(kv) == 0 {
		return nil
	}
	block := declBlock(kv)
	return &selector.StyleAttribute{Normal: &block}
}

func getStyleAttribute(h *html.Node) localPseudoRuleType {
	if h != nil && h.Type == html.ElementNode {
		for _, attr := range h.Attr {
			if attr.Key == "style" {
				return newLocalPseudoRule(attr.Val)
			}
		}
	}
	return nil
}

type localPseudoRuleType []style.KeyValue

func newLocalPseudoRule(styleAttr string) localPseudoRuleType {
	styles := strings.Split(styleAttr, ";")
	kv := make(localPseudoRuleType, 0, 3)
	for _, st := range styles {
		st = strings.TrimSpace(st)
		if len(st) > 0 {
			s := strings.Split(st, ":")
			if len(s) < 2 {
				tracer().Errorf("Skipping ill-formed style rule: %s", st)
			} else {
				k := strings.TrimSpace(s[0])
				v := strings.TrimSpace(s[1])
				kv = append(kv, style.KeyValue{Key: k, Value: style.Property(v)})
			}
		}
	}
	return kv
}
