package dom_test

import (
	"testing"

	"github.com/beevik/etree"

	"slate/dom"
	"slate/fault"
)

func TestFromXML(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<root id="r"><item class="a">first</item><item>second</item></root>`); err != nil {
		t.Fatalf("etree parse failed: %v", err)
	}

	root, err := dom.FromXML(doc)
	if err != nil {
		t.Fatalf("FromXML failed: %v", err)
	}
	if root.Tag != "root" || root.ID() != "r" {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	first := root.Children[0]
	if !first.HasClass("a") {
		t.Error("expected class 'a' on first item")
	}
	if len(first.Children) != 1 || first.Children[0].Text != "first" {
		t.Errorf("unexpected first item content: %+v", first.Children)
	}
}

func TestFromXML_NoRoot(t *testing.T) {
	_, err := dom.FromXML(etree.NewDocument())
	if err == nil {
		t.Fatal("expected error for document without root")
	}
	if !fault.IsMalformed(err) {
		t.Errorf("expected malformed-input classification, got %v", err)
	}

	if _, err := dom.FromXML(nil); err == nil {
		t.Fatal("expected error for nil document")
	}
}
