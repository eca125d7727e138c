package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"slate/fault"
)

func TestKindOf(t *testing.T) {
	err := fault.Malformedf("unterminated element %q", "div")
	k, ok := fault.KindOf(err)
	if !ok {
		t.Fatal("expected classified error")
	}
	if k != fault.Malformed {
		t.Errorf("expected Malformed, got %v", k)
	}
	if !fault.IsMalformed(err) {
		t.Error("IsMalformed should be true")
	}
	if fault.IsInvariant(err) {
		t.Error("IsInvariant should be false")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := fault.Invariantf("anonymous box asked for style")
	outer := fmt.Errorf("laying out root: %w", inner)

	if !fault.IsInvariant(outer) {
		t.Error("classification should survive fmt.Errorf wrapping")
	}
	k, ok := fault.KindOf(outer)
	if !ok || k != fault.Invariant {
		t.Errorf("expected (Invariant, true), got (%v, %v)", k, ok)
	}
}

func TestUnclassified(t *testing.T) {
	if _, ok := fault.KindOf(errors.New("plain")); ok {
		t.Error("plain error must not report a classification")
	}
	if fault.IsMalformed(nil) || fault.IsInvariant(nil) {
		t.Error("nil error must not be classified")
	}
}

func TestErrorText(t *testing.T) {
	err := fault.Malformedf("bad unit %q", "em")
	want := `malformed input: bad unit "em"`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
