package dom_test

import (
	"strings"
	"testing"

	"slate/dom"
	"slate/fault"
)

func TestParse_SimpleDocument(t *testing.T) {
	input := `<html><body class="main"><h1>Title</h1><p id="intro">Hello</p></body></html>`

	root, err := dom.Parse(input, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if root.Kind != dom.ElementNode || root.Tag != "html" {
		t.Fatalf("expected <html> root, got %+v", root)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}

	body := root.Children[0]
	if body.Tag != "body" {
		t.Fatalf("expected <body>, got <%s>", body.Tag)
	}
	if got, _ := body.Attr("class"); got != "main" {
		t.Errorf("class = %q, want %q", got, "main")
	}
	if len(body.Children) != 2 {
		t.Fatalf("expected 2 children of body, got %d", len(body.Children))
	}

	p := body.Children[1]
	if p.ID() != "intro" {
		t.Errorf("id = %q, want %q", p.ID(), "intro")
	}
	if len(p.Children) != 1 || p.Children[0].Kind != dom.TextNode || p.Children[0].Text != "Hello" {
		t.Errorf("unexpected <p> content: %+v", p.Children)
	}
}

func TestParse_AttributeQuoting(t *testing.T) {
	root, err := dom.Parse(`<div a="double" b='single'></div>`, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got, _ := root.Attr("a"); got != "double" {
		t.Errorf("a = %q", got)
	}
	if got, _ := root.Attr("b"); got != "single" {
		t.Errorf("b = %q", got)
	}
}

func TestParse_MultipleRootsWrapped(t *testing.T) {
	root, err := dom.Parse(`<p>one</p><p>two</p>`, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Tag != "html" {
		t.Fatalf("expected synthesized <html> wrapper, got <%s>", root.Tag)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 wrapped children, got %d", len(root.Children))
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mismatched closing tag", `<div><p>text</div></p>`},
		{"missing closing tag", `<div><p>text`},
		{"missing quote", `<div class="open></div>`},
		{"unquoted attribute", `<div class=open></div>`},
		{"stray closing tag", `<div></div></p>`},
		{"tag never closed", `<div`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dom.Parse(tt.input, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !fault.IsMalformed(err) {
				t.Errorf("expected malformed-input classification, got %v", err)
			}
		})
	}
}

func TestParse_DepthLimit(t *testing.T) {
	depth := dom.MaxDepth + 2
	input := strings.Repeat("<div>", depth) + strings.Repeat("</div>", depth)

	_, err := dom.Parse(input, nil)
	if err == nil {
		t.Fatal("expected depth-limit error")
	}
	if !fault.IsMalformed(err) {
		t.Errorf("expected malformed-input classification, got %v", err)
	}
}

func TestParse_WhitespaceBetweenElements(t *testing.T) {
	root, err := dom.Parse("<div>\n  <p>a</p>\n  <p>b</p>\n</div>", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected whitespace-only runs between elements to be dropped, got %d children", len(root.Children))
	}
}

func TestNode_Classes(t *testing.T) {
	n := dom.NewElement("div", map[string]string{"class": " note  outer\tboxed "})
	got := n.Classes()
	want := []string{"note", "outer", "boxed"}
	if len(got) != len(want) {
		t.Fatalf("classes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("classes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !n.HasClass("outer") || n.HasClass("missing") {
		t.Error("HasClass misbehaves")
	}
	if dom.NewText("x").HasClass("note") {
		t.Error("text nodes have no classes")
	}
}

func TestNode_Dump(t *testing.T) {
	root, err := dom.Parse(`<div id="d" class="c">text</div>`, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := "<div class=\"c\" id=\"d\">\n  text: \"text\"\n"
	if got := root.Dump(); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
