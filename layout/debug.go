package layout

import (
	"slate/dom"
	"slate/utils/debug"
)

// Dump returns a readable tree of the laid-out boxes with all four
// box-model rectangles resolved, for inspection and test diffs.
func (b *Box) Dump() string {
	if b == nil {
		return "<nil box>"
	}
	tw := debug.NewTreeWriter()
	dumpBox(tw, b, 0)
	return tw.String()
}

func dumpBox(tw *debug.TreeWriter, b *Box, depth int) {
	label := b.Kind.String()
	if sn, ok := b.StyledNode(); ok && sn.Node.Kind == dom.ElementNode {
		label += " <" + sn.Node.Tag + ">"
	}
	d := b.Dimensions
	tw.Line(depth, "%s content=(%s,%s %sx%s) padding=%s border=%s margin=%s",
		label,
		debug.Px(d.Content.X), debug.Px(d.Content.Y),
		debug.Px(d.Content.Width), debug.Px(d.Content.Height),
		formatEdges(d.Padding), formatEdges(d.Border), formatEdges(d.Margin))

	if sn, ok := b.StyledNode(); ok && sn.Node.Kind == dom.TextNode {
		tw.TextBlock(depth+1, "text", sn.Node.Text)
	}
	for _, child := range b.Children {
		dumpBox(tw, child, depth+1)
	}
}

// formatEdges renders edge sizes as left/right/top/bottom, collapsed to a
// single "0" when the box has none.
func formatEdges(e EdgeSizes) string {
	if e == (EdgeSizes{}) {
		return "0"
	}
	return "[" + debug.Px(e.Left) + " " + debug.Px(e.Right) + " " + debug.Px(e.Top) + " " + debug.Px(e.Bottom) + "]"
}
