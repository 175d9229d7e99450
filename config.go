package md2epub

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2epub/internal/assets"
)

// Config holds the renderer's recognized options. Keys are kebab-case in
// both the JSON output table and the YAML manifest.
type Config struct {
	// UseDefaultCSS prepends the built-in stylesheet (plus generated
	// syntax-highlight rules) to the shared stylesheet. Default true.
	UseDefaultCSS bool `json:"use-default-css" yaml:"use-default-css"`

	// CurlyQuotes rewrites straight quotes in prose to directional ones.
	CurlyQuotes bool `json:"curly-quotes" yaml:"curly-quotes"`

	// NoSectionLabel suppresses the numbering prefix in chapter titles.
	NoSectionLabel bool `json:"no-section-label" yaml:"no-section-label"`

	// CoverImage is a path to the cover, relative to the book root.
	CoverImage string `json:"cover-image" yaml:"cover-image"`

	// AdditionalCSS files are concatenated after the default stylesheet,
	// in order.
	AdditionalCSS []string `json:"additional-css" yaml:"additional-css"`

	// AdditionalResources are embedded as-is under their file names.
	AdditionalResources []string `json:"additional-resources" yaml:"additional-resources"`

	// IndexTemplate is a path to a handlebars chapter template replacing
	// the built-in one.
	IndexTemplate string `json:"index-template" yaml:"index-template"`

	// CodeTheme selects the chroma style for highlighted code blocks.
	CodeTheme string `json:"code-theme" yaml:"code-theme"`
}

// DefaultConfig returns the options used when the book configures nothing.
func DefaultConfig() Config {
	return Config{
		UseDefaultCSS: true,
		CodeTheme:     assets.DefaultTheme,
	}
}

// ConfigFromContext decodes the "epub" output table, keeping defaults for
// absent keys. A missing table yields the defaults.
func ConfigFromContext(ctx *RenderContext) (Config, error) {
	cfg := DefaultConfig()

	raw, ok := ctx.Config.Output["epub"]
	if !ok {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: output.epub: %v", ErrInvalidRenderContext, err)
	}
	return cfg, nil
}

// Template returns the handlebars template source: the configured
// index-template file (resolved against root when relative), or the
// built-in one.
func (c Config) Template(root string) (string, error) {
	if c.IndexTemplate == "" {
		return assets.DefaultTemplate(), nil
	}

	path := c.IndexTemplate
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- book-configured path
	if err != nil {
		return "", fmt.Errorf("reading index template: %w", err)
	}
	return string(data), nil
}

// resolve interprets a configured path against the book root.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
