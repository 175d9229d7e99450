package md2epub

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// convertQuotes rewrites straight quotes to directional ones in every prose
// text node of doc, skipping fenced blocks, indented blocks, and inline code
// spans. Converted text is appended to source and the node's segment is
// retargeted there, so line-break flags survive and the tree keeps its
// shape; the returned buffer must be the one handed to the renderer.
//
// The "preceded by whitespace" bit restarts at every text node. A quote
// opening a node therefore always becomes an opening quote, even when inline
// markup split the sentence mid-word. Known boundary artifact, kept.
func convertQuotes(doc ast.Node, source []byte, enabled bool) []byte {
	if !enabled {
		return source
	}

	buf := source
	convertText := true

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.CodeSpan:
			convertText = !entering
		case *ast.Text:
			if !entering || !convertText {
				break
			}
			t := n.(*ast.Text)
			converted, changed := convertQuotesToCurly(buf[t.Segment.Start:t.Segment.Stop])
			if changed {
				start := len(buf)
				buf = append(buf, converted...)
				t.Segment = text.NewSegment(start, len(buf))
			}
		}
		return ast.WalkContinue, nil
	})

	return buf
}

// convertQuotesToCurly maps ' and " to their directional forms, deciding by
// the preceding character: after whitespace (or at the start of the
// fragment) a quote opens, elsewhere it closes. Reports whether anything
// changed.
func convertQuotesToCurly(fragment []byte) ([]byte, bool) {
	precededByWhitespace := true
	changed := false

	var sb strings.Builder
	sb.Grow(len(fragment))

	for _, r := range string(fragment) {
		converted := r
		switch r {
		case '\'':
			if precededByWhitespace {
				converted = '‘'
			} else {
				converted = '’'
			}
			changed = true
		case '"':
			if precededByWhitespace {
				converted = '“'
			} else {
				converted = '”'
			}
			changed = true
		}
		precededByWhitespace = unicode.IsSpace(r)
		sb.WriteRune(converted)
	}

	return []byte(sb.String()), changed
}
