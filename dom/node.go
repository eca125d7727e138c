// Package dom models the parsed document tree fed into style resolution and
// layout. A node is either a text run or an element with attributes; children
// keep document order.
package dom

import "strings"

// NodeKind discriminates the node payload.
type NodeKind int

const (
	TextNode NodeKind = iota
	ElementNode
)

// Node is a single document node. Kind selects which payload fields are
// meaningful: Text for TextNode, Tag and Attributes for ElementNode.
type Node struct {
	Kind       NodeKind
	Text       string
	Tag        string
	Attributes map[string]string
	Children   []*Node
}

// NewText creates a text node.
func NewText(data string) *Node {
	return &Node{Kind: TextNode, Text: data}
}

// NewElement creates an element node owning the given children.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Node{Kind: ElementNode, Tag: tag, Attributes: attrs, Children: children}
}

// Attr returns the attribute value and whether it is present.
// Always absent on text nodes.
func (n *Node) Attr(name string) (string, bool) {
	if n.Kind != ElementNode {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

// ID returns the element's id attribute, or "" if absent.
func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}

// Classes returns the whitespace-separated entries of the class attribute.
func (n *Node) Classes() []string {
	v, ok := n.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// HasClass reports whether name is one of the element's classes.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}
