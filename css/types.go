// Package css models parsed stylesheets: rules with simple selectors and
// typed property values, ordered the way the cascade needs them.
package css

import (
	"fmt"
	"io"
	"strings"
)

// ValueKind discriminates the Value payload.
type ValueKind int

const (
	ValueKeyword ValueKind = iota // bare identifier, e.g. "auto", "block"
	ValueLength                   // pixel length
	ValueColor                    // RGBA color
)

// RGBA is a color with one byte per channel.
type RGBA struct {
	R, G, B, A uint8
}

// Value is a parsed CSS property value. Kind selects which payload field is
// meaningful.
type Value struct {
	Kind    ValueKind
	Keyword string  // ValueKeyword
	Length  float64 // ValueLength, always pixels
	Color   RGBA    // ValueColor
}

// KeywordValue creates a keyword value.
func KeywordValue(kw string) Value {
	return Value{Kind: ValueKeyword, Keyword: kw}
}

// PxLength creates a pixel length value.
func PxLength(px float64) Value {
	return Value{Kind: ValueLength, Length: px}
}

// ColorValue creates a color value.
func ColorValue(c RGBA) Value {
	return Value{Kind: ValueColor, Color: c}
}

// ZeroLength is the shared zero-pixel default used by every property lookup
// with a fallback.
var ZeroLength = PxLength(0)

// Px returns the pixel magnitude of a length value, and 0 for any other kind.
func (v Value) Px() float64 {
	if v.Kind == ValueLength {
		return v.Length
	}
	return 0
}

// IsAuto reports whether the value is the keyword "auto".
func (v Value) IsAuto() bool {
	return v.Kind == ValueKeyword && v.Keyword == "auto"
}

func (v Value) String() string {
	switch v.Kind {
	case ValueKeyword:
		return v.Keyword
	case ValueLength:
		return fmt.Sprintf("%gpx", v.Length)
	case ValueColor:
		return fmt.Sprintf("#%02x%02x%02x", v.Color.R, v.Color.G, v.Color.B)
	default:
		return ""
	}
}

// Selector is a simple selector: optional tag name, optional id, any number
// of class names. The zero value matches every element (the universal
// selector "*").
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity ranks competing selectors: id presence, class count, tag
// presence, compared lexicographically.
type Specificity struct {
	ID    int
	Class int
	Tag   int
}

// Specificity computes the selector's rank.
func (s Selector) Specificity() Specificity {
	spec := Specificity{Class: len(s.Classes)}
	if s.ID != "" {
		spec.ID = 1
	}
	if s.TagName != "" {
		spec.Tag = 1
	}
	return spec
}

// Compare orders specificities lexicographically: negative when a < b,
// positive when a > b, zero when equal.
func (a Specificity) Compare(b Specificity) int {
	if a.ID != b.ID {
		return a.ID - b.ID
	}
	if a.Class != b.Class {
		return a.Class - b.Class
	}
	return a.Tag - b.Tag
}

// Less reports whether a ranks strictly below b.
func (a Specificity) Less(b Specificity) bool {
	return a.Compare(b) < 0
}

func (s Selector) String() string {
	var sb strings.Builder
	if s.TagName != "" {
		sb.WriteString(s.TagName)
	}
	if s.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	if sb.Len() == 0 {
		return "*"
	}
	return sb.String()
}

// Declaration is a single property assignment within a rule.
type Declaration struct {
	Property string
	Value    Value
}

// Rule pairs a non-empty selector list with its declarations. The parser
// keeps Selectors sorted descending by specificity, which selector matching
// relies on.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Stylesheet is an ordered rule list plus warnings for constructs the parser
// skipped.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// WriteTo writes the stylesheet as CSS text in source order, implementing
// io.WriterTo. Selectors appear in their specificity-sorted order.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, rule := range s.Rules {
		sels := make([]string, len(rule.Selectors))
		for i, sel := range rule.Selectors {
			sels[i] = sel.String()
		}
		n, err := fmt.Fprintf(w, "%s {\n", strings.Join(sels, ", "))
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, decl := range rule.Declarations {
			n, err = fmt.Fprintf(w, "  %s: %s;\n", decl.Property, decl.Value)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err = fmt.Fprint(w, "}\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
