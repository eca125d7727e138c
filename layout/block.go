package layout

import (
	"go.uber.org/zap"

	"slate/css"
	"slate/fault"
	"slate/style"
)

// Viewport is the seed containing block the root box lays out against.
type Viewport struct {
	Width  float64
	Height float64
}

// LayoutTree builds the box tree for a styled document and lays it out
// against the viewport. The seed containing block starts with zero content
// height: layout consumes the containing block's height as "space taken by
// earlier siblings", so the root stacks from the viewport's top edge.
func LayoutTree(styled *style.StyledNode, vp Viewport, log *zap.Logger) (*Box, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("layout")

	root, err := BuildTree(styled)
	if err != nil {
		return nil, err
	}

	seed := Dimensions{Content: Rect{Width: vp.Width}}
	if err := root.Layout(seed); err != nil {
		return nil, err
	}

	log.Debug("Layout complete",
		zap.Int("boxes", root.count()),
		zap.Float64("viewport width", vp.Width),
		zap.Float64("root height", root.Dimensions.MarginBox().Height))
	return root, nil
}

func (b *Box) count() int {
	n := 1
	for _, child := range b.Children {
		n += child.count()
	}
	return n
}

// Layout computes the box's geometry against its containing block. Only
// block boxes are laid out; inline and anonymous boxes are left untouched
// (inline layout is out of scope).
func (b *Box) Layout(containingBlock Dimensions) error {
	switch b.Kind {
	case BlockBox:
		return b.layoutBlock(containingBlock)
	default:
		return nil
	}
}

func (b *Box) layoutBlock(cb Dimensions) error {
	sn, ok := b.StyledNode()
	if !ok {
		return fault.Invariantf("block layout reached a box without style")
	}

	// Width depends only on the containing block; it must be known before
	// children lay out. Height runs the other way: it accumulates from
	// children, so it is finalized last.
	b.calculateBlockWidth(sn, cb)
	b.calculateBlockPosition(sn, cb)
	if err := b.layoutBlockChildren(); err != nil {
		return err
	}
	b.calculateBlockHeight(sn)
	return nil
}

var autoKeyword = css.KeywordValue("auto")

// calculateBlockWidth resolves the box's horizontal values with the CSS
// block-width algorithm. "auto" values contribute zero pixels to the total;
// underflow (possibly negative) is the horizontal space left over in the
// containing block and is distributed by case analysis on which of width,
// margin-left and margin-right are auto.
func (b *Box) calculateBlockWidth(sn *style.StyledNode, cb Dimensions) {
	width := autoKeyword
	if v, ok := sn.Value("width"); ok {
		width = v
	}

	marginLeft := sn.Lookup("margin-left", "margin", css.ZeroLength)
	marginRight := sn.Lookup("margin-right", "margin", css.ZeroLength)
	borderLeft := sn.Lookup("border-left-width", "border-width", css.ZeroLength)
	borderRight := sn.Lookup("border-right-width", "border-width", css.ZeroLength)
	paddingLeft := sn.Lookup("padding-left", "padding", css.ZeroLength)
	paddingRight := sn.Lookup("padding-right", "padding", css.ZeroLength)

	total := marginLeft.Px() + marginRight.Px() + borderLeft.Px() + borderRight.Px() +
		paddingLeft.Px() + paddingRight.Px() + width.Px()

	// Over-constrained: an explicit width plus the other horizontal values
	// already exceed the containing block, so auto margins get no space.
	if !width.IsAuto() && total > cb.Content.Width {
		if marginLeft.IsAuto() {
			marginLeft = css.ZeroLength
		}
		if marginRight.IsAuto() {
			marginRight = css.ZeroLength
		}
	}

	underflow := cb.Content.Width - total

	switch {
	case width.IsAuto():
		// Auto width swallows the leftover space itself; auto margins are
		// zeroed, never split. A negative leftover cannot shrink content
		// width below zero, so margin-right absorbs it instead.
		if marginLeft.IsAuto() {
			marginLeft = css.ZeroLength
		}
		if marginRight.IsAuto() {
			marginRight = css.ZeroLength
		}
		if underflow >= 0 {
			width = css.PxLength(underflow)
		} else {
			width = css.ZeroLength
			marginRight = css.PxLength(marginRight.Px() + underflow)
		}

	case marginLeft.IsAuto() && marginRight.IsAuto():
		half := underflow / 2
		marginLeft = css.PxLength(half)
		marginRight = css.PxLength(half)

	case marginLeft.IsAuto():
		marginLeft = css.PxLength(underflow)

	case marginRight.IsAuto():
		marginRight = css.PxLength(underflow)

	default:
		// Over-determined: nothing is auto, so margin-right takes the
		// slack, which may push it negative.
		marginRight = css.PxLength(marginRight.Px() + underflow)
	}

	d := &b.Dimensions
	d.Content.Width = width.Px()
	d.Padding.Left = paddingLeft.Px()
	d.Padding.Right = paddingRight.Px()
	d.Border.Left = borderLeft.Px()
	d.Border.Right = borderRight.Px()
	d.Margin.Left = marginLeft.Px()
	d.Margin.Right = marginRight.Px()
}

// calculateBlockPosition resolves the vertical edges and places the content
// rectangle: directly below everything the containing block has accumulated
// so far, which is what stacks siblings top to bottom.
func (b *Box) calculateBlockPosition(sn *style.StyledNode, cb Dimensions) {
	d := &b.Dimensions

	d.Margin.Top = sn.Lookup("margin-top", "margin", css.ZeroLength).Px()
	d.Margin.Bottom = sn.Lookup("margin-bottom", "margin", css.ZeroLength).Px()
	d.Border.Top = sn.Lookup("border-top-width", "border-width", css.ZeroLength).Px()
	d.Border.Bottom = sn.Lookup("border-bottom-width", "border-width", css.ZeroLength).Px()
	d.Padding.Top = sn.Lookup("padding-top", "padding", css.ZeroLength).Px()
	d.Padding.Bottom = sn.Lookup("padding-bottom", "padding", css.ZeroLength).Px()

	d.Content.X = cb.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = cb.Content.Y + cb.Content.Height + d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren lays out each child against this box's current
// dimensions and grows content height by the child's margin box, so the next
// child positions itself below it.
func (b *Box) layoutBlockChildren() error {
	for _, child := range b.Children {
		if err := child.Layout(b.Dimensions); err != nil {
			return err
		}
		b.Dimensions.Content.Height += child.Dimensions.MarginBox().Height
	}
	return nil
}

// calculateBlockHeight applies an explicit pixel height over the value
// accumulated from children; otherwise the accumulated height stands.
func (b *Box) calculateBlockHeight(sn *style.StyledNode) {
	if v, ok := sn.Value("height"); ok && v.Kind == css.ValueLength {
		b.Dimensions.Content.Height = v.Length
	}
}
