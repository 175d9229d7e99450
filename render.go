package md2epub

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// stylesheetName is the shared stylesheet's entry name at the book root.
const stylesheetName = "stylesheet.css"

// renderedChapter is the renderer's output, consumed immediately by content
// registration and not retained.
type renderedChapter struct {
	Path  string // destination path, source path with extension swapped to .html
	Title string // display title, numbering prefix included unless suppressed
	Level int    // zero-based nesting depth
	Body  string // complete templated markup document
}

// newMarkdown builds the markdown engine: the table, footnote,
// strikethrough, and task-list extensions, plus class-based syntax
// highlighting. Raw HTML passes through because book sources embed it
// routinely.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			extension.Strikethrough,
			extension.TaskList,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // styled by the shared stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
}

// renderChapter produces the rendered form of one chapter: markdown parsed,
// quotes converted, XHTML serialized, template applied.
func (g *Generator) renderChapter(ch *Chapter) (renderedChapter, error) {
	if ch.Path == nil {
		return renderedChapter{}, fmt.Errorf("%w: %q", ErrNoChapterPath, ch.Name)
	}
	srcPath := filepath.ToSlash(*ch.Path)

	source := []byte(ch.Content)
	doc := g.md.Parser().Parse(text.NewReader(source))
	source = convertQuotes(doc, source, g.cfg.CurlyQuotes)

	var body bytes.Buffer
	if err := g.md.Renderer().Render(&body, source, doc); err != nil {
		return renderedChapter{}, fmt.Errorf("rendering chapter %q: %w", ch.Name, err)
	}

	out, err := g.tpl.Exec(map[string]interface{}{
		"title":      ch.Name,
		"body":       body.String(),
		"stylesheet": stylesheetPath(srcPath),
	})
	if err != nil {
		return renderedChapter{}, fmt.Errorf("%w: chapter %q: %v", ErrTemplateRender, ch.Name, err)
	}

	return renderedChapter{
		Path:  destPath(srcPath),
		Title: g.chapterTitle(ch),
		Level: ch.Number.Level(),
		Body:  out,
	}, nil
}

// destPath swaps the source extension for .html: ch1/intro.md becomes
// ch1/intro.html.
func destPath(srcPath string) string {
	return strings.TrimSuffix(srcPath, path.Ext(srcPath)) + ".html"
}

// stylesheetPath walks up from the chapter's directory to the book root,
// one ".." per segment, then down to the shared stylesheet.
func stylesheetPath(srcPath string) string {
	dir := path.Dir(srcPath)
	if dir == "." || dir == "/" {
		return stylesheetName
	}

	segments := strings.Split(dir, "/")
	steps := make([]string, 0, len(segments)+1)
	for range segments {
		steps = append(steps, "..")
	}
	steps = append(steps, stylesheetName)
	return strings.Join(steps, "/")
}

// chapterTitle prefixes the chapter name with its dotted numbering, unless
// numbering is absent or suppressed by configuration.
func (g *Generator) chapterTitle(ch *Chapter) string {
	if g.cfg.NoSectionLabel || len(ch.Number) == 0 {
		return ch.Name
	}
	return ch.Number.String() + " " + ch.Name
}
