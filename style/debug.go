package style

import (
	"sort"

	"slate/dom"
	"slate/utils/debug"
)

// Dump returns a readable tree of the styled document. Properties are
// printed sorted by name so output is stable across runs.
func (sn *StyledNode) Dump() string {
	if sn == nil {
		return "<nil styled node>"
	}
	tw := debug.NewTreeWriter()
	dumpStyled(tw, sn, 0)
	return tw.String()
}

func dumpStyled(tw *debug.TreeWriter, sn *StyledNode, depth int) {
	if sn.Node.Kind == dom.TextNode {
		tw.TextBlock(depth, "text", sn.Node.Text)
		return
	}

	tw.Line(depth, "<%s> display=%s", sn.Node.Tag, sn.Display())

	names := make([]string, 0, len(sn.Specified))
	for name := range sn.Specified {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tw.Line(depth+1, "%s: %s", name, sn.Specified[name])
	}

	for _, child := range sn.Children {
		dumpStyled(tw, child, depth+1)
	}
}
