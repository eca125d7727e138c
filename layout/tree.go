package layout

import (
	"slate/dom"
	"slate/fault"
	"slate/style"
)

// BuildTree constructs the box tree for a styled document. Inline children
// of a block box are grouped under anonymous block wrappers so block and
// inline boxes never sit as direct siblings; display:none subtrees are
// dropped entirely. A root that resolves to display:none cannot be laid out
// and is an error.
func BuildTree(styled *style.StyledNode) (*Box, error) {
	if styled.Display() == style.DisplayNone {
		return nil, fault.Invariantf("root node resolves to display: none")
	}
	return buildBox(styled, 0)
}

func buildBox(styled *style.StyledNode, depth int) (*Box, error) {
	if depth > dom.MaxDepth {
		return nil, fault.Malformedf("document nested deeper than %d elements", dom.MaxDepth)
	}

	var root *Box
	switch styled.Display() {
	case style.DisplayBlock:
		root = newBox(BlockBox, styled)
	case style.DisplayInline:
		root = newBox(InlineBox, styled)
	default:
		// callers drop display:none children before recursing
		return nil, fault.Invariantf("box requested for a display:none node")
	}

	for _, child := range styled.Children {
		switch child.Display() {
		case style.DisplayBlock:
			box, err := buildBox(child, depth+1)
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, box)
		case style.DisplayInline:
			box, err := buildBox(child, depth+1)
			if err != nil {
				return nil, err
			}
			ic := root.inlineContainer()
			ic.Children = append(ic.Children, box)
		case style.DisplayNone:
			// the whole subtree disappears, siblings keep their order
		}
	}
	return root, nil
}

// inlineContainer returns the box new inline children should be appended to.
// Inline and anonymous boxes take them directly. A block box groups them
// under its trailing anonymous wrapper, starting a fresh one if the last
// child is anything else — so an intervening block child ends the current
// inline run.
func (b *Box) inlineContainer() *Box {
	switch b.Kind {
	case InlineBox, AnonymousBox:
		return b
	default:
		if n := len(b.Children); n > 0 && b.Children[n-1].Kind == AnonymousBox {
			return b.Children[n-1]
		}
		anon := newBox(AnonymousBox, nil)
		b.Children = append(b.Children, anon)
		return anon
	}
}
