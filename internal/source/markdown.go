// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader reads Markdown with goldmark. Headings, paragraphs, list
// items and code blocks each become one block; inline markup is dropped.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader) ([]string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var out blockWriter
	walkMarkdown(doc, src, &out)
	return out.lines, nil
}

func walkMarkdown(n ast.Node, src []byte, out *blockWriter) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			out.block(inlineText(node, src))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			out.block(blockLines(node, src))
		case *ast.ThematicBreak, *ast.HTMLBlock:
		default:
			// Lists, list items and blockquotes hold further blocks.
			walkMarkdown(node, src, out)
		}
	}
}

// inlineText concatenates the text segments under n. Soft line breaks
// become spaces; hard breaks end a line.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(src))
				switch {
				case t.HardLineBreak():
					b.WriteByte('\n')
				case t.SoftLineBreak():
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
