package selector

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders a human-readable tree of m's bucket contents: how many rules
// sit in each id/class/element bucket and the universal bucket, in Rule
// order. This is the selector engine's equivalent of dom/domdbg's HTML
// parse-tree dumper - a debugging aid, not part of the matching contract.
func (m *SelectorMap) Dump(label string) string {
	root := treeprint.New()
	root.SetValue(label)

	idBranch := root.AddBranch(fmt.Sprintf("id (%d buckets)", len(m.idHash)))
	for key, rules := range m.idHash {
		addRuleBranch(idBranch, key, rules)
	}

	classBranch := root.AddBranch(fmt.Sprintf("class (%d buckets)", len(m.classHash)))
	for key, rules := range m.classHash {
		addRuleBranch(classBranch, key, rules)
	}

	elemBranch := root.AddBranch(fmt.Sprintf("element (%d buckets)", len(m.elementHash)))
	for key, rules := range m.elementHash {
		addRuleBranch(elemBranch, key, rules)
	}

	addRuleBranch(root, "universal", m.universal)

	return root.String()
}

func addRuleBranch(parent treeprint.Tree, key string, rules []Rule) {
	branch := parent.AddBranch(fmt.Sprintf("%s (%d rules)", key, len(rules)))
	for _, r := range rules {
		branch.AddNode(fmt.Sprintf("rule#%d sheet#%d specificity=%d", r.RuleIndex, r.StylesheetIndex, r.Selector.Specificity))
	}
}
