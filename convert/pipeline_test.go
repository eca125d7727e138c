package convert_test

import (
	"testing"

	"github.com/beevik/etree"

	"slate/convert"
	"slate/css"
	"slate/dom"
	"slate/fault"
	"slate/layout"
)

const testMarkup = `
<html>
  <body id="page">
    <h1>Heading</h1>
    <div class="outer">
      <p class="inner">Hello <span>world</span></p>
    </div>
    <div class="hidden">gone</div>
  </body>
</html>`

const testStylesheet = `
html { width: 600px; padding: 10px; }
.outer { margin-left: 50px; height: 120px; }
.inner { display: inline; }
.hidden { display: none; }
span { display: inline; }
h1 { height: 40px; }
`

func TestPipeline_EndToEnd(t *testing.T) {
	p := convert.New(nil)
	box, err := p.Run([]byte(testMarkup), []byte(testStylesheet), layout.Viewport{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	// html: explicit 600px width, 10px padding
	if got := box.Dimensions.Content.Width; got != 600 {
		t.Errorf("root width = %v, want 600", got)
	}
	if got := box.Dimensions.Content.X; got != 10 {
		t.Errorf("root content x = %v, want 10", got)
	}

	body := box.Children[0]
	sn, ok := body.StyledNode()
	if !ok || sn.Node.Tag != "body" {
		t.Fatalf("expected <body> box, got %+v", body)
	}
	// body: 2 visible children (h1, div.outer), the hidden div is gone
	if len(body.Children) != 2 {
		t.Fatalf("expected 2 body children, got %d", len(body.Children))
	}

	h1 := body.Children[0]
	outer := body.Children[1]
	if h1.Dimensions.Content.Height != 40 {
		t.Errorf("h1 height = %v, want 40", h1.Dimensions.Content.Height)
	}
	// outer stacks below the 40px h1
	if outer.Dimensions.Content.Y != h1.Dimensions.Content.Y+40 {
		t.Errorf("outer y = %v, want below h1", outer.Dimensions.Content.Y)
	}
	if outer.Dimensions.Content.X != body.Dimensions.Content.X+50 {
		t.Errorf("outer x = %v, want body x + 50 margin", outer.Dimensions.Content.X)
	}

	// body auto height accumulates both children: 40 + 120
	if got := body.Dimensions.Content.Height; got != 160 {
		t.Errorf("body height = %v, want 160", got)
	}

	// the inline paragraph content sits wrapped under an anonymous block
	if outer.Children[0].Kind != layout.AnonymousBox {
		t.Errorf("expected anonymous wrapper in .outer, got %v", outer.Children[0].Kind)
	}
}

func TestPipeline_MalformedMarkup(t *testing.T) {
	p := convert.New(nil)
	_, err := p.Run([]byte(`<div><p>broken</div>`), []byte(``), layout.Viewport{Width: 800})
	if err == nil {
		t.Fatal("expected error")
	}
	if !fault.IsMalformed(err) {
		t.Errorf("expected malformed-input classification, got %v", err)
	}
}

func TestPipeline_HiddenRoot(t *testing.T) {
	p := convert.New(nil)
	_, err := p.Run([]byte(`<div>x</div>`), []byte(`div { display: none; }`), layout.Viewport{Width: 800})
	if err == nil {
		t.Fatal("expected error for display:none root")
	}
	if !fault.IsInvariant(err) {
		t.Errorf("expected invariant classification, got %v", err)
	}
}

func TestPipeline_XMLDocument(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<root><item>text</item></root>`); err != nil {
		t.Fatalf("etree parse failed: %v", err)
	}
	node, err := dom.FromXML(doc)
	if err != nil {
		t.Fatalf("FromXML failed: %v", err)
	}

	sheet, err := css.NewParser(nil).Parse([]byte(`item { height: 25px; }`))
	if err != nil {
		t.Fatalf("stylesheet parse failed: %v", err)
	}

	box, err := convert.New(nil).RunDocument(node, sheet, layout.Viewport{Width: 400})
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if got := box.Dimensions.Content.Height; got != 25 {
		t.Errorf("root height = %v, want 25 from the single item", got)
	}
	if got := box.Children[0].Dimensions.Content.Width; got != 400 {
		t.Errorf("item width = %v, want 400", got)
	}
}
