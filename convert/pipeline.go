// Package convert runs the full document-to-geometry pipeline: markup and
// stylesheet text in, a laid-out box tree out. Parsing, style resolution and
// layout stay in their own packages; this one only wires them together and
// reports stage progress.
package convert

import (
	"time"

	"go.uber.org/zap"

	"slate/css"
	"slate/dom"
	"slate/layout"
	"slate/style"
)

// Pipeline binds the pipeline stages to one logger.
type Pipeline struct {
	log    *zap.Logger
	parser *css.Parser
}

// New creates a pipeline. A nil logger disables logging.
func New(log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		log:    log.Named("pipeline"),
		parser: css.NewParser(log),
	}
}

// Run parses markup and stylesheet text and lays the document out against
// the viewport. The returned box tree has every box's geometry resolved in
// pixel units, ready for a painter or a debug dump.
func (p *Pipeline) Run(markup, stylesheet []byte, vp layout.Viewport) (*layout.Box, error) {
	start := time.Now()

	root, err := dom.Parse(string(markup), p.log)
	if err != nil {
		return nil, err
	}

	sheet, err := p.parser.Parse(stylesheet, "stylesheet")
	if err != nil {
		return nil, err
	}
	for _, w := range sheet.Warnings {
		p.log.Warn("Stylesheet warning", zap.String("warning", w))
	}

	box, err := p.RunDocument(root, sheet, vp)
	if err != nil {
		return nil, err
	}

	p.log.Debug("Pipeline finished", zap.Duration("elapsed", time.Since(start)))
	return box, nil
}

// RunDocument lays out an already-parsed document against an
// already-parsed stylesheet. Callers with XML input build the document via
// dom.FromXML and enter the pipeline here.
func (p *Pipeline) RunDocument(root *dom.Node, sheet *css.Stylesheet, vp layout.Viewport) (*layout.Box, error) {
	styled, err := style.Tree(root, sheet)
	if err != nil {
		return nil, err
	}
	return layout.LayoutTree(styled, vp, p.log)
}
