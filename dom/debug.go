package dom

import (
	"sort"
	"strings"

	"slate/utils/debug"
)

// Dump returns a readable tree of the document for manual inspection and
// test diffs. Attributes are printed sorted by name so output is stable.
func (n *Node) Dump() string {
	if n == nil {
		return "<nil node>"
	}
	tw := debug.NewTreeWriter()
	dumpNode(tw, n, 0)
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, n *Node, depth int) {
	switch n.Kind {
	case TextNode:
		tw.TextBlock(depth, "text", n.Text)
	case ElementNode:
		tw.Line(depth, "<%s%s>", n.Tag, formatAttrs(n.Attributes))
		for _, child := range n.Children {
			dumpNode(tw, child, depth+1)
		}
	}
}

func formatAttrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteByte(' ')
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(attrs[name])
		sb.WriteByte('"')
	}
	return sb.String()
}
