// Package layout turns a styled document tree into a tree of positioned,
// sized boxes using CSS block layout: the box model (content, padding,
// border, margin rectangles), anonymous block synthesis, and top-to-bottom
// stacking of block-level siblings.
package layout

import "slate/style"

// Rect is an axis-aligned rectangle in pixel units.
type Rect struct {
	X, Y, Width, Height float64
}

// EdgeSizes holds per-edge thicknesses in pixel units.
type EdgeSizes struct {
	Left, Right, Top, Bottom float64
}

// Dimensions is the full box-model geometry of one layout box. All values
// stay zero until the box is laid out.
type Dimensions struct {
	// Content is the content area relative to the document origin.
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// ExpandedBy grows the rectangle outward by the given edges.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// PaddingBox is the area covered by content plus padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is the area covered by content, padding and border.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is the total area including margins.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BoxKind discriminates layout boxes.
type BoxKind int

const (
	BlockBox BoxKind = iota
	InlineBox
	AnonymousBox
)

func (k BoxKind) String() string {
	switch k {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBox:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Box is one node of the layout tree. The styled-node reference is kept
// unexported: anonymous boxes have none, and callers must go through
// StyledNode which makes the missing-style case explicit instead of
// representable-but-illegal.
type Box struct {
	Dimensions Dimensions
	Kind       BoxKind
	Children   []*Box

	node *style.StyledNode // nil iff Kind == AnonymousBox
}

func newBox(kind BoxKind, node *style.StyledNode) *Box {
	return &Box{Kind: kind, node: node}
}

// StyledNode returns the styled node this box was generated from. The second
// result is false for anonymous boxes, which carry no style.
func (b *Box) StyledNode() (*style.StyledNode, bool) {
	if b.node == nil {
		return nil, false
	}
	return b.node, true
}
