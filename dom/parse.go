package dom

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"slate/fault"
)

// MaxDepth bounds document nesting for every recursive pass over the tree
// (parsing, style resolution, box construction). Deeper input is rejected as
// malformed instead of exhausting the call stack.
const MaxDepth = 512

// Parse reads a document in the minimal nested-tag subset: elements with
// quoted attribute values, text runs, no self-closing tags, no comments or
// doctype. Structural problems (mismatched closing tag, missing quote,
// premature end of input) produce a fault.Malformed error carrying the byte
// offset. Several top-level nodes are wrapped in a synthesized html element.
func Parse(input string, log *zap.Logger) (*Node, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &parser{input: input, log: log.Named("dom-parser")}

	nodes, err := p.parseNodes(0)
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fault.Malformedf("unexpected closing tag at offset %d", p.pos)
	}

	p.log.Debug("Parsed document", zap.Int("bytes", len(input)), zap.Int("top-level nodes", len(nodes)))

	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return NewElement("html", nil, nodes...), nil
}

type parser struct {
	input string
	pos   int
	log   *zap.Logger
}

func (p *parser) parseNodes(depth int) ([]*Node, error) {
	if depth > MaxDepth {
		return nil, fault.Malformedf("document nested deeper than %d elements", MaxDepth)
	}
	var nodes []*Node
	for {
		p.consumeWhitespace()
		if p.eof() || p.startsWith("</") {
			return nodes, nil
		}
		node, err := p.parseNode(depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (p *parser) parseNode(depth int) (*Node, error) {
	if p.startsWith("<") {
		return p.parseElement(depth)
	}
	return p.parseText(), nil
}

func (p *parser) parseText() *Node {
	return NewText(p.consumeWhile(func(r rune) bool { return r != '<' }))
}

func (p *parser) parseElement(depth int) (*Node, error) {
	start := p.pos
	p.consumeChar() // '<'

	tag := p.parseName()
	if tag == "" {
		return nil, fault.Malformedf("missing tag name at offset %d", start)
	}

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}

	children, err := p.parseNodes(depth + 1)
	if err != nil {
		return nil, err
	}

	// Closing tag must match the element being closed.
	if err := p.expect('<'); err != nil {
		return nil, fault.Malformedf("element <%s> opened at offset %d is never closed", tag, start)
	}
	if err := p.expect('/'); err != nil {
		return nil, err
	}
	if closing := p.parseName(); closing != tag {
		return nil, fault.Malformedf("closing tag </%s> does not match <%s> opened at offset %d", closing, tag, start)
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}

	return NewElement(tag, attrs, children...), nil
}

func (p *parser) parseAttributes() (map[string]string, error) {
	attrs := make(map[string]string)
	for {
		p.consumeWhitespace()
		if p.eof() {
			return nil, fault.Malformedf("premature end of input inside a tag at offset %d", p.pos)
		}
		if p.startsWith(">") {
			return attrs, nil
		}
		name, value, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attrs[name] = value
	}
}

func (p *parser) parseAttribute() (string, string, error) {
	name := p.parseName()
	if name == "" {
		return "", "", fault.Malformedf("expected attribute name at offset %d", p.pos)
	}
	if err := p.expect('='); err != nil {
		return "", "", err
	}
	value, err := p.parseAttributeValue()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

func (p *parser) parseAttributeValue() (string, error) {
	if p.eof() {
		return "", fault.Malformedf("premature end of input in attribute value at offset %d", p.pos)
	}
	quote := p.consumeChar()
	if quote != '"' && quote != '\'' {
		return "", fault.Malformedf("attribute value at offset %d is not quoted", p.pos)
	}
	value := p.consumeWhile(func(r rune) bool { return r != quote })
	if p.eof() {
		return "", fault.Malformedf("missing closing quote for attribute value at offset %d", p.pos)
	}
	p.consumeChar() // closing quote
	return value, nil
}

func (p *parser) parseName() string {
	return p.consumeWhile(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
	})
}

func (p *parser) expect(want rune) error {
	if p.eof() {
		return fault.Malformedf("premature end of input at offset %d, expected %q", p.pos, want)
	}
	if got := p.consumeChar(); got != want {
		return fault.Malformedf("expected %q at offset %d, found %q", want, p.pos, got)
	}
	return nil
}

func (p *parser) consumeWhile(test func(rune) bool) string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !test(r) {
			break
		}
		p.pos += size
	}
	return p.input[start:p.pos]
}

func (p *parser) consumeWhitespace() {
	p.consumeWhile(unicode.IsSpace)
}

func (p *parser) consumeChar() rune {
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	return r
}

func (p *parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}
