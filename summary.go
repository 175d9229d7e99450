package md2epub

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// parseSummary builds the chapter tree from a SUMMARY.md index: list items
// holding a link become chapters (an empty destination marks a draft),
// nested lists become sub-chapters, thematic breaks become separators, and
// headings after the summary's own title become part titles. Numbering is
// assigned 1-based per depth in document order; top-level numbering
// continues across lists so part titles and separators do not reset it.
// Chapter content is not loaded here.
func parseSummary(source []byte) Book {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var book Book
	counter := 0
	seenHeading := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Heading:
			if !seenHeading {
				seenHeading = true
				continue
			}
			book.Sections = append(book.Sections, BookItem{PartTitle: nodeText(n, source)})
		case *ast.ThematicBreak:
			book.Sections = append(book.Sections, BookItem{})
		case *ast.List:
			book.Sections = append(book.Sections, parseList(n, source, nil, &counter)...)
		}
	}
	return book
}

func parseList(list *ast.List, source []byte, prefix SectionNumber, counter *int) []BookItem {
	var items []BookItem
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		if item, ok := parseListItem(li, source, prefix, counter); ok {
			items = append(items, item)
		}
	}
	return items
}

// parseListItem turns one list item into a chapter. Items without a link
// are ignored and do not consume a number.
func parseListItem(li ast.Node, source []byte, prefix SectionNumber, counter *int) (BookItem, bool) {
	link := firstLink(li)
	if link == nil {
		return BookItem{}, false
	}

	*counter++
	number := append(append(SectionNumber{}, prefix...), *counter)

	ch := &Chapter{
		Name:   nodeText(link, source),
		Number: number,
	}
	if dest := string(link.Destination); dest != "" {
		clean := path.Clean(filepath.ToSlash(dest))
		ch.Path = &clean
	}

	subCounter := 0
	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		if sub, ok := c.(*ast.List); ok {
			ch.SubItems = append(ch.SubItems, parseList(sub, source, number, &subCounter)...)
		}
	}

	return BookItem{Chapter: ch}, true
}

// firstLink finds the item's own link, without descending into nested
// lists, whose links belong to sub-chapters.
func firstLink(n ast.Node) *ast.Link {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.List); ok {
			continue
		}
		if link, ok := c.(*ast.Link); ok {
			return link
		}
		if link := firstLink(c); link != nil {
			return link
		}
	}
	return nil
}

// nodeText collects the plain text under a node.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
