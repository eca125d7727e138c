package css

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"slate/fault"
)

// Parser parses CSS text into structured rules.
//
// Supported grammar: comma-separated simple selectors (tag, #id, .class, *,
// and concatenations like div#main.note) with declaration blocks of single
// values — pixel lengths, #rrggbb colors, or bare keywords. Constructs the
// tokenizer can skip cleanly (at-rules, combinator and pseudo selectors) are
// skipped with a recorded warning; malformed values (unknown units, bad hex
// colors) fail the parse with a fault.Malformed error.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. The optional source parameter
// identifies what is being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	// Selector texts accumulated for the ruleset being read: every selector
	// in a comma-separated list except the last arrives as its own
	// QualifiedRuleGrammar before BeginRulesetGrammar.
	var pending []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fault.Malformedf("stylesheet syntax: %w", err)
			}
			p.log.Debug("Parsed stylesheet", zap.Int("rules", len(sheet.Rules)), zap.Int("warnings", len(sheet.Warnings)))
			return sheet, nil

		case css.QualifiedRuleGrammar:
			pending = append(pending, selectorText(data, parser.Values()))

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping at-rule block", zap.String("rule", atRule))
			if err := skipAtRuleBlock(parser); err != nil {
				return nil, err
			}

		case css.AtRuleGrammar:
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping at-rule", zap.String("rule", atRule))

		case css.BeginRulesetGrammar:
			pending = append(pending, selectorText(data, parser.Values()))
			selectors := p.parseSelectorList(pending, sheet)
			pending = nil

			decls, err := p.parseDeclarations(parser)
			if err != nil {
				return nil, err
			}
			if len(selectors) == 0 {
				sheet.Warnings = append(sheet.Warnings, "rule dropped, no usable selector")
				continue
			}
			// Matching scans a rule's selectors in specificity order and
			// takes the first hit, so sort them up front. The sort is
			// stable: equal selectors keep source order.
			sort.SliceStable(selectors, func(i, j int) bool {
				return selectors[j].Specificity().Less(selectors[i].Specificity())
			})
			sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: decls})
		}
	}
}

// skipAtRuleBlock consumes everything up to and including the matching end
// of an at-rule block, nested blocks included.
func skipAtRuleBlock(parser *css.Parser) error {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fault.Malformedf("stylesheet syntax: %w", err)
			}
			return nil
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
	return nil
}

// selectorText reassembles the raw selector string from grammar data and
// value tokens.
func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	return sb.String()
}

// parseSelectorList converts raw selector texts into simple selectors,
// recording a warning for each unsupported one.
func (p *Parser) parseSelectorList(texts []string, sheet *Stylesheet) []Selector {
	var selectors []Selector
	for _, text := range texts {
		for _, part := range strings.Split(text, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sel, ok := parseSimpleSelector(part)
			if !ok {
				sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+part)
				p.log.Debug("Skipping selector", zap.String("selector", part))
				continue
			}
			selectors = append(selectors, sel)
		}
	}
	return selectors
}

// parseSimpleSelector parses tag/#id/.class/* concatenations. Anything with
// combinators, attribute brackets or pseudo syntax is rejected.
func parseSimpleSelector(s string) (Selector, bool) {
	var sel Selector
	i := 0
	readName := func() string {
		start := i
		for i < len(s) && isNameChar(rune(s[i])) {
			i++
		}
		return s[start:i]
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			name := readName()
			if name == "" {
				return Selector{}, false
			}
			sel.ID = name
		case '.':
			i++
			name := readName()
			if name == "" {
				return Selector{}, false
			}
			sel.Classes = append(sel.Classes, name)
		case '*':
			i++
		default:
			name := readName()
			if name == "" || sel.TagName != "" {
				// combinator, pseudo syntax, or a second tag segment
				return Selector{}, false
			}
			sel.TagName = name
		}
	}
	return sel, true
}

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// parseDeclarations parses property declarations until the end of the
// ruleset, preserving declaration order.
func (p *Parser) parseDeclarations(parser *css.Parser) ([]Declaration, error) {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls, nil

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			value, err := parseValue(parser.Values())
			if err != nil {
				return nil, err
			}
			decls = append(decls, Declaration{Property: name, Value: value})

		case css.CustomPropertyGrammar:
			// custom properties (--var) are out of scope
			continue
		}
	}
}

// parseValue converts declaration tokens into a typed Value.
func parseValue(tokens []css.Token) (Value, error) {
	significant := tokens[:0:0]
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			significant = append(significant, t)
		}
	}
	if len(significant) != 1 {
		return Value{}, fault.Malformedf("unsupported value %q", tokensText(tokens))
	}

	t := significant[0]
	switch t.TokenType {
	case css.IdentToken:
		return KeywordValue(strings.ToLower(string(t.Data))), nil

	case css.DimensionToken:
		num, unit := splitDimension(string(t.Data))
		if unit != "px" {
			return Value{}, fault.Malformedf("unrecognized unit %q in %q", unit, string(t.Data))
		}
		return PxLength(num), nil

	case css.NumberToken:
		return Value{}, fault.Malformedf("length %q is missing a unit", string(t.Data))

	case css.HashToken:
		c, err := parseHexColor(string(t.Data))
		if err != nil {
			return Value{}, err
		}
		return ColorValue(c), nil

	default:
		return Value{}, fault.Malformedf("unsupported value %q", string(t.Data))
	}
}

// splitDimension separates the numeric part of a dimension token from its
// unit, e.g. "12.5px" into 12.5 and "px".
func splitDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// parseHexColor parses "#rrggbb" into a color with full alpha.
func parseHexColor(s string) (RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGBA{}, fault.Malformedf("malformed hex color %q", s)
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGBA{}, fault.Malformedf("malformed hex color %q", s)
		}
		channels[i] = uint8(v)
	}
	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}, nil
}

func tokensText(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}
