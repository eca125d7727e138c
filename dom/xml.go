package dom

import (
	"github.com/beevik/etree"

	"slate/fault"
)

// FromXML converts a well-formed XML document parsed with etree into the
// node model, for callers that already hold XML content instead of the
// minimal markup subset. Character data becomes text nodes, elements keep
// their attributes; comments, directives and processing instructions are
// dropped.
func FromXML(doc *etree.Document) (*Node, error) {
	if doc == nil {
		return nil, fault.Malformedf("nil document")
	}
	root := doc.Root()
	if root == nil {
		return nil, fault.Malformedf("document has no root element")
	}
	return fromElement(root, 0)
}

func fromElement(el *etree.Element, depth int) (*Node, error) {
	if depth > MaxDepth {
		return nil, fault.Malformedf("document nested deeper than %d elements", MaxDepth)
	}

	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		attrs[a.Key] = a.Value
	}

	node := NewElement(el.Tag, attrs)
	for _, tok := range el.Child {
		switch c := tok.(type) {
		case *etree.Element:
			child, err := fromElement(c, depth+1)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case *etree.CharData:
			if c.Data != "" {
				node.Children = append(node.Children, NewText(c.Data))
			}
		}
	}
	return node, nil
}
