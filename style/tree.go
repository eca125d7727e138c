package style

import (
	"slate/css"
	"slate/dom"
	"slate/fault"
)

// Display is the resolved display mode of a styled node.
type Display int

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayInline:
		return "inline"
	case DisplayNone:
		return "none"
	default:
		return "block"
	}
}

// StyledNode mirrors one document node and carries its specified values.
// Children preserve document order; text nodes carry an empty map.
type StyledNode struct {
	Node      *dom.Node
	Specified PropertyMap
	Children  []*StyledNode
}

// Value returns the specified value for a property and whether it is set.
func (sn *StyledNode) Value(name string) (css.Value, bool) {
	v, ok := sn.Specified[name]
	return v, ok
}

// Lookup returns the value of name, falling back to the shorthand property,
// falling back to the given default.
func (sn *StyledNode) Lookup(name, shorthand string, def css.Value) css.Value {
	if v, ok := sn.Specified[name]; ok {
		return v
	}
	if v, ok := sn.Specified[shorthand]; ok {
		return v
	}
	return def
}

// Display resolves the node's display property: keyword "none" hides the
// node, "inline" makes it inline-level, anything else (absence included) is
// block-level.
func (sn *StyledNode) Display() Display {
	v, ok := sn.Value("display")
	if !ok || v.Kind != css.ValueKeyword {
		return DisplayBlock
	}
	switch v.Keyword {
	case "none":
		return DisplayNone
	case "inline":
		return DisplayInline
	default:
		return DisplayBlock
	}
}

// Tree builds the style tree for the document: one styled node per document
// node, same shape and order. Element nodes get their specified values, text
// nodes an empty map. Fails on documents nested beyond dom.MaxDepth.
func Tree(root *dom.Node, sheet *css.Stylesheet) (*StyledNode, error) {
	return buildStyled(root, sheet, 0)
}

func buildStyled(node *dom.Node, sheet *css.Stylesheet, depth int) (*StyledNode, error) {
	if depth > dom.MaxDepth {
		return nil, fault.Malformedf("document nested deeper than %d elements", dom.MaxDepth)
	}

	sn := &StyledNode{Node: node}
	if node.Kind == dom.ElementNode {
		sn.Specified = SpecifiedValues(node, sheet)
	} else {
		sn.Specified = make(PropertyMap)
	}

	sn.Children = make([]*StyledNode, 0, len(node.Children))
	for _, child := range node.Children {
		sc, err := buildStyled(child, sheet, depth+1)
		if err != nil {
			return nil, err
		}
		sn.Children = append(sn.Children, sc)
	}
	return sn, nil
}
