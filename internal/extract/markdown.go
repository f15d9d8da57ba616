package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docweave/internal/ir"
)

// MarkdownFrontend handles Markdown files using goldmark.
type MarkdownFrontend struct{}

func (f *MarkdownFrontend) Extract(r io.Reader, filename string) (*Stream, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	s := &Stream{Title: baseName(filename)}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title == "" {
				continue
			}
			s.Elements = append(s.Elements, &ir.HeadingBlock{
				BlockID:    ir.NewID(),
				Level:      node.Level,
				Text:       title,
				Confidence: 1.0,
			})

		case *ast.List:
			emitListItems(s, node, src, 0)

		default:
			t := mdText(n, src)
			if t != "" {
				s.Elements = append(s.Elements, &ir.ParagraphBlock{
					BlockID: ir.NewID(),
					Text:    t,
				})
			}
		}
	}

	// A leading h1 doubles as the document title.
	for _, el := range s.Elements {
		if h, ok := el.(*ir.HeadingBlock); ok {
			if h.Level == 1 {
				s.Title = h.Text
			}
			break
		}
	}

	s.HasParts = detectParts(s.Elements)
	return s, nil
}

// emitListItems flattens a (possibly nested) markdown list into pending
// list items carrying the nesting depth. Grouping restores the nesting
// downstream.
func emitListItems(s *Stream, list *ast.List, src []byte, depth int) {
	ordered := list.IsOrdered()
	index := list.Start
	if index <= 0 {
		index = 1
	}

	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var itemText strings.Builder
		var nested []*ast.List

		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, sub)
				continue
			}
			t := mdText(c, src)
			if t != "" {
				if itemText.Len() > 0 {
					itemText.WriteString(" ")
				}
				itemText.WriteString(t)
			}
		}

		if t := strings.TrimSpace(itemText.String()); t != "" {
			marker := string(list.Marker)
			if ordered {
				marker = fmt.Sprintf("%d%c", index, list.Marker)
			}
			s.Elements = append(s.Elements, &ir.PendingListItem{
				Text:       t,
				Enumerated: ordered,
				Marker:     marker,
				Depth:      depth,
			})
			index++
		}

		for _, sub := range nested {
			emitListItems(s, sub, src, depth+1)
		}
	}
}

// mdText gets the text content of a goldmark AST node. Blocks with inline
// children are read through those children; raw Lines hold the text only
// for childless leaf blocks such as code.
func mdText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(mdText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
