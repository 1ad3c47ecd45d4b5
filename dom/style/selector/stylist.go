package selector

// Origin is one of the three CSS cascade origins.
type Origin int

const (
	OriginUA Origin = iota
	OriginUser
	OriginAuthor
)

// Device selects which media type a stylesheet is ingested for. Only
// Screen is currently exercised by any filter; Print is accepted and
// passed on to the sheet's StyleRules, but the Stylist neither stores it
// nor uses it to gate rules.
type Device int

const (
	Screen Device = iota
	Print
)

// PerOriginSelectorMap holds the normal and important-priority rules
// contributed by one cascade origin.
type PerOriginSelectorMap struct {
	Normal    *SelectorMap
	Important *SelectorMap
}

func newPerOriginSelectorMap() PerOriginSelectorMap {
	return PerOriginSelectorMap{
		Normal:    NewSelectorMap(),
		Important: NewSelectorMap(),
	}
}

// StyleRule is one rule as produced by an already-parsed stylesheet: a set
// of selectors sharing a declaration block, split into its normal and
// important declarations.
type StyleRule struct {
	Selectors             []*Selector
	NormalDeclarations    Declarations
	ImportantDeclarations Declarations
}

// StyleRuleSource is the minimal contract a parsed stylesheet must satisfy
// to be ingested: a sequence of style rules for a given device.
type StyleRuleSource interface {
	StyleRules(device Device) []StyleRule
}

// Stylist owns one PerOriginSelectorMap per cascade origin and assembles
// matches into final cascade order.
type Stylist struct {
	ua, user, author PerOriginSelectorMap
	stylesheetIndex  int // global across origins, bumped once per ingested sheet
}

// NewStylist returns an empty Stylist.
func NewStylist() *Stylist {
	return &Stylist{
		ua:     newPerOriginSelectorMap(),
		user:   newPerOriginSelectorMap(),
		author: newPerOriginSelectorMap(),
	}
}

// Empty reports whether any stylesheet has been ingested yet.
func (s *Stylist) Empty() bool {
	return s.stylesheetIndex == 0
}

func (s *Stylist) mapFor(origin Origin) PerOriginSelectorMap {
	switch origin {
	case OriginUA:
		return s.ua
	case OriginUser:
		return s.user
	default:
		return s.author
	}
}

// AddStylesheet ingests every style rule produced by sheet for device,
// exploding each into one Rule per selector and per priority (normal /
// important), and inserts each into the SelectorMap matching origin and
// priority. rule_index counts style rules seen so far in this sheet;
// stylesheet_index is the Stylist's global counter, bumped once after the
// whole sheet has been ingested.
func (s *Stylist) AddStylesheet(sheet StyleRuleSource, origin Origin, device Device) {
	dest := s.mapFor(origin)
	sheetIndex := s.stylesheetIndex
	for ruleIndex, styleRule := range sheet.StyleRules(device) {
		for _, sel := range styleRule.Selectors {
			if styleRule.NormalDeclarations != nil {
				dest.Normal.Insert(Rule{
					Selector:        sel,
					Declarations:    styleRule.NormalDeclarations,
					RuleIndex:       ruleIndex,
					StylesheetIndex: sheetIndex,
				})
			}
			if styleRule.ImportantDeclarations != nil {
				dest.Important.Insert(Rule{
					Selector:        sel,
					Declarations:    styleRule.ImportantDeclarations,
					RuleIndex:       ruleIndex,
					StylesheetIndex: sheetIndex,
				})
			}
		}
	}
	s.stylesheetIndex++
	tracer().Debugf("stylist: ingested stylesheet %d for origin %d", sheetIndex, origin)
}

// StyleAttribute is the style-attribute declaration pair spliced into
// get_applicable_declarations per spec: a style attribute's normal
// declarations always outrank author-normal rules but are outranked by
// author-important; its important declarations outrank author-important but
// are outranked by user-important.
type StyleAttribute struct {
	Normal    Declarations
	Important Declarations
}

// GetApplicableDeclarations queries the six cascade buckets in order -
// ua.normal, user.normal, author.normal, author.important, user.important,
// ua.important - filtering by the matcher and stably sorting each bucket's
// contribution by the Rule total order, then splices styleAttribute's
// declarations at the two points the CSS cascade requires.
//
// Preconditions (programmer errors, enforced by panic): element must be an
// element; styleAttribute must be nil whenever pseudo is non-empty, since
// style attributes never apply to pseudo-elements.
func (s *Stylist) GetApplicableDeclarations(element Element, styleAttribute *StyleAttribute, pseudo PseudoElement) []Declarations {
	if !element.IsElement() {
		panic("GetApplicableDeclarations: element is not an element")
	}
	if styleAttribute != nil && pseudo != "" {
		panic("GetApplicableDeclarations: style attributes never apply to pseudo-elements")
	}

	var scratch []Rule
	var offsets [6]int

	offsets[0] = len(scratch)
	scratch = s.ua.Normal.GetAllMatchingRules(element, pseudo, scratch)
	offsets[1] = len(scratch)
	scratch = s.user.Normal.GetAllMatchingRules(element, pseudo, scratch)
	offsets[2] = len(scratch)
	scratch = s.author.Normal.GetAllMatchingRules(element, pseudo, scratch)
	offsets[3] = len(scratch)
	scratch = s.author.Important.GetAllMatchingRules(element, pseudo, scratch)
	offsets[4] = len(scratch)
	scratch = s.user.Important.GetAllMatchingRules(element, pseudo, scratch)
	offsets[5] = len(scratch)
	scratch = s.ua.Important.GetAllMatchingRules(element, pseudo, scratch)

	var out []Declarations
	for i := 0; i < offsets[3]; i++ { // ua.normal, user.normal, author.normal
		out = append(out, scratch[i].Declarations)
	}
	if styleAttribute != nil {
		out = append(out, styleAttribute.Normal)
	}
	for i := offsets[3]; i < offsets[4]; i++ { // author.important
		out = append(out, scratch[i].Declarations)
	}
	if styleAttribute != nil {
		out = append(out, styleAttribute.Important)
	}
	for i := offsets[4]; i < len(scratch); i++ { // user.important, ua.important
		out = append(out, scratch[i].Declarations)
	}
	return out
}
