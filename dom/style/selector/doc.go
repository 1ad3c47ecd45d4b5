/*
Package selector implements CSS selector matching and cascade resolution.

Status

Early draft. The API may change without notice.

Overview

Given stylesheets tagged with an origin (user-agent, user, author) and a
live element embedded in a document tree, a Stylist produces the ordered
sequence of declaration blocks that apply to that element, honoring cascade
order, selector specificity, stylesheet order and "!important".

Two pieces cooperate:

A SelectorMap buckets rules by the rightmost simple selector of their
selector (id, class, local name, or "universal"), so that matching a
concrete element against a stylesheet only has to test a small candidate
set rather than every rule.

A Matcher walks a compound-selector chain right-to-left against the
element and its ancestors/siblings, evaluating combinators (descendant,
child, next-sibling, later-sibling) and simple selectors (type, id, class,
attribute operators, structural pseudo-classes, negation, link state).

Stylist owns one PerOriginSelectorMap per cascade origin and assembles
matches across all six origin/priority buckets into final cascade order.

This package does not parse CSS syntax or evaluate media queries; it
consumes already-parsed stylesheet rules (see parse.go for the
one bridging exception: turning a raw selector-prelude string, as produced
by github.com/aymerick/douceur, into a Selector value).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package selector

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tyse.selector'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.selector")
}
