// Package style resolves the cascade: it matches stylesheet rules against
// document elements and mirrors the document tree with per-node computed
// property maps.
//
// There is no property inheritance: a property absent from every matching
// rule stays absent from the node's map and is never copied from an
// ancestor.
package style

import (
	"sort"

	"slate/css"
	"slate/dom"
)

// PropertyMap holds an element's specified values, property name to value.
type PropertyMap map[string]css.Value

// Match pairs a rule with the specificity of its best matching selector.
type Match struct {
	Specificity css.Specificity
	Rule        *css.Rule
}

// Matches reports whether the selector matches the element: tag unset or
// equal, id unset or equal, and every selector class present on the element.
func Matches(sel css.Selector, el *dom.Node) bool {
	if sel.TagName != "" && sel.TagName != el.Tag {
		return false
	}
	if sel.ID != "" && sel.ID != el.ID() {
		return false
	}
	for _, class := range sel.Classes {
		if !el.HasClass(class) {
			return false
		}
	}
	return true
}

// MatchingRules returns every rule with at least one selector matching the
// element. A rule's selectors are pre-sorted descending by specificity, so
// the first hit is the most specific one and decides the match specificity.
func MatchingRules(el *dom.Node, sheet *css.Stylesheet) []Match {
	var matches []Match
	for i := range sheet.Rules {
		rule := &sheet.Rules[i]
		for _, sel := range rule.Selectors {
			if Matches(sel, el) {
				matches = append(matches, Match{Specificity: sel.Specificity(), Rule: rule})
				break
			}
		}
	}
	return matches
}

// SpecifiedValues folds all matching rules' declarations into one property
// map. Matches are applied ascending by specificity (stable, so source order
// breaks ties) and later insertions overwrite earlier ones: per property the
// highest-specificity rule wins, and among equals the later rule wins.
func SpecifiedValues(el *dom.Node, sheet *css.Stylesheet) PropertyMap {
	values := make(PropertyMap)
	matches := MatchingRules(el, sheet)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Specificity.Less(matches[j].Specificity)
	})
	for _, m := range matches {
		for _, decl := range m.Rule.Declarations {
			values[decl.Property] = decl.Value
		}
	}
	return values
}
