package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Features toggles the goldmark extensions beyond CommonMark.
// Strikethrough is always enabled.
type Features struct {
	Tables  bool
	Linkify bool
	// HeadingIDs adds id attributes to headings.
	HeadingIDs bool
	// Unsafe passes raw HTML in the body through unchanged.
	Unsafe bool
}

func DefaultFeatures() Features {
	return Features{Tables: true, Linkify: true, HeadingIDs: true, Unsafe: true}
}

type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer(f Features) *MarkdownRenderer {
	exts := []goldmark.Extender{extension.Strikethrough}
	if f.Tables {
		exts = append(exts, extension.Table)
	}
	if f.Linkify {
		exts = append(exts, extension.Linkify)
	}

	var parserOpts []parser.Option
	if f.HeadingIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}
	var rendererOpts []goldmark.Option
	if f.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	opts := append([]goldmark.Option{
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
	}, rendererOpts...)
	return &MarkdownRenderer{md: goldmark.New(opts...)}
}

func (r *MarkdownRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
