package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "box", want: "box\n"},
		{name: "depth 1", depth: 1, format: "child", want: "  child\n"},
		{name: "with formatting", depth: 2, format: "content %sx%s", args: []any{"800", "50"}, want: "    content 800x50\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(1, "text", "hello \"world\"\n")
	want := "  text: \"hello \\\"world\\\"\\n\"\n"
	if got := tw.String(); got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}

	tw = NewTreeWriter()
	tw.TextBlock(0, "text", "")
	if got := tw.String(); got != "text: \n" {
		t.Errorf("empty value = %q", got)
	}
}

func TestPx(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{800, "800"},
		{12.5, "12.5"},
		{-33.25, "-33.25"},
	}
	for _, tt := range tests {
		if got := Px(tt.in); got != tt.want {
			t.Errorf("Px(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTreeWriter_MultipleOperations(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "block <div>")
	tw.Line(1, "anonymous")
	tw.TextBlock(2, "text", "hi")
	tw.Line(1, "block <p>")

	want := "block <div>\n  anonymous\n    text: \"hi\"\n  block <p>\n"
	if got := tw.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
