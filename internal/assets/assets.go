package assets

import (
	"bytes"
	_ "embed"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

//go:embed styles/epub.css
var defaultStylesheet []byte

//go:embed templates/index.hbs
var defaultTemplate string

// DefaultTheme is the chroma style used when no code-theme is configured.
const DefaultTheme = "github"

// DefaultStylesheet returns a copy of the built-in stylesheet bytes.
func DefaultStylesheet() []byte {
	return bytes.Clone(defaultStylesheet)
}

// DefaultTemplate returns the built-in handlebars chapter template.
func DefaultTemplate() string {
	return defaultTemplate
}

// HighlightCSS renders class-based syntax-highlight rules for the named
// chroma style. An unknown name falls back to chroma's fallback style, so the
// only error source is CSS serialization itself.
func HighlightCSS(theme string) ([]byte, error) {
	if theme == "" {
		theme = DefaultTheme
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, styles.Get(theme)); err != nil {
		return nil, fmt.Errorf("writing highlight CSS for theme %q: %w", theme, err)
	}
	return buf.Bytes(), nil
}
