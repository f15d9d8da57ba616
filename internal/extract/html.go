package extract

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/docweave/internal/ir"
)

// HTMLFrontend handles HTML files.
type HTMLFrontend struct{}

func (f *HTMLFrontend) Extract(r io.Reader, filename string) (*Stream, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	s := &Stream{Title: baseName(filename)}
	if title := findTitle(doc); title != "" {
		s.Title = title
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if t := textContent(n); t != "" {
					s.Elements = append(s.Elements, &ir.HeadingBlock{
						BlockID:    ir.NewID(),
						Level:      level,
						Text:       t,
						Confidence: 1.0,
					})
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "ul", "ol":
				emitHTMLList(s, n, 0)
				return
			case "table":
				if tbl := buildTable(n); tbl != nil {
					s.Elements = append(s.Elements, tbl)
				}
				return
			case "img":
				s.Elements = append(s.Elements, &ir.FigureBlock{
					BlockID:   ir.NewID(),
					ImagePath: attr(n, "src"),
					Caption:   attr(n, "alt"),
				})
				return
			case "p", "blockquote", "pre":
				if t := textContent(n); t != "" {
					s.Elements = append(s.Elements, &ir.ParagraphBlock{
						BlockID: ir.NewID(),
						Text:    t,
					})
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	s.HasParts = detectParts(s.Elements)
	return s, nil
}

// emitHTMLList flattens ul/ol elements into pending list items with depth.
// The type attribute of an ol picks the marker alphabet.
func emitHTMLList(s *Stream, list *html.Node, depth int) {
	ordered := list.Data == "ol"
	alphabet := attr(list, "type")
	index := 1
	if start := attr(list, "start"); start != "" {
		if v, err := strconv.Atoi(start); err == nil && v > 0 {
			index = v
		}
	}

	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}

		var nested []*html.Node
		var itemText strings.Builder
		var gather func(*html.Node)
		gather = func(n *html.Node) {
			if n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol") {
				nested = append(nested, n)
				return
			}
			if n.Type == html.TextNode {
				itemText.WriteString(n.Data)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				gather(c)
			}
		}
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			gather(c)
		}

		if t := strings.TrimSpace(itemText.String()); t != "" {
			s.Elements = append(s.Elements, &ir.PendingListItem{
				Text:       t,
				Enumerated: ordered,
				Marker:     listMarker(ordered, alphabet, index),
				Depth:      depth,
			})
			index++
		}

		for _, sub := range nested {
			emitHTMLList(s, sub, depth+1)
		}
	}
}

// listMarker renders the marker an ordered item would display, so the
// downstream marker-format detection sees the same alphabet the page used.
func listMarker(ordered bool, alphabet string, index int) string {
	if !ordered {
		return "-"
	}
	switch alphabet {
	case "a":
		return letterMarker('a', index) + "."
	case "A":
		return letterMarker('A', index) + "."
	case "i":
		return strings.ToLower(romanNumeral(index)) + "."
	case "I":
		return romanNumeral(index) + "."
	default:
		return strconv.Itoa(index) + "."
	}
}

func letterMarker(base byte, index int) string {
	if index < 1 || index > 26 {
		return strconv.Itoa(index)
	}
	return string(base + byte(index-1))
}

func romanNumeral(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var buf strings.Builder
	for i, v := range values {
		for n >= v {
			buf.WriteString(symbols[i])
			n -= v
		}
	}
	return buf.String()
}

// buildTable converts a <table> into a table block with anchor cells.
func buildTable(table *html.Node) *ir.TableBlock {
	tbl := &ir.TableBlock{BlockID: ir.NewID()}
	row := 0

	var visitRows func(*html.Node)
	visitRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			col := 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
					continue
				}
				cell := ir.TableCell{
					Row:  row,
					Col:  col,
					Text: textContent(c),
				}
				if v, err := strconv.Atoi(attr(c, "rowspan")); err == nil && v > 1 {
					cell.RowSpan = v
				}
				if v, err := strconv.Atoi(attr(c, "colspan")); err == nil && v > 1 {
					cell.ColSpan = v
				}
				tbl.Cells = append(tbl.Cells, cell)
				col++
				if span := cell.ColSpan; span > 1 {
					col += span - 1
				}
			}
			if col > tbl.NumCols {
				tbl.NumCols = col
			}
			row++
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visitRows(c)
		}
	}
	visitRows(table)

	tbl.NumRows = row
	if len(tbl.Cells) == 0 {
		return nil
	}
	return tbl
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
