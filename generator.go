package md2epub

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/fileutil"
)

// generatorName tags the package metadata so readers can tell which tool
// produced a book.
const generatorName = "go-md2epub"

// Version is stamped at build time via ldflags.
var Version = "dev"

// Generator converts one book into one EPUB package. Instances are
// single-use: the underlying archive builder refuses mutation after the
// package has been written.
type Generator struct {
	ctx     *RenderContext
	cfg     Config
	md      goldmark.Markdown
	tpl     *raymond.Template
	builder *epub.Builder
	log     *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger routes the generator's diagnostics to log. The default is a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// NewGenerator prepares a generator for the given render context: decodes
// the epub configuration table, parses the chapter template once, and sets
// up the markdown engine. A malformed template fails construction, not
// generation.
func NewGenerator(ctx *RenderContext, opts ...Option) (*Generator, error) {
	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}

	source, err := cfg.Template(ctx.Root)
	if err != nil {
		return nil, err
	}
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	g := &Generator{
		ctx:     ctx,
		cfg:     cfg,
		md:      newMarkdown(),
		tpl:     tpl,
		builder: epub.New(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate renders every chapter and writes the complete EPUB container to
// w. Steps run in a fixed order: metadata, chapters, cover image,
// stylesheet, discovered assets, additional resources, finalize. Any
// failure aborts immediately; the caller owns cleanup of partial output.
func (g *Generator) Generate(w io.Writer) error {
	g.log.Info("generating book",
		zap.String("title", g.ctx.Config.Book.Title),
		zap.String("generator", generatorName+" "+Version),
	)

	if err := g.populateMetadata(); err != nil {
		return err
	}
	if err := g.generateChapters(); err != nil {
		return err
	}
	if err := g.addCoverImage(); err != nil {
		return err
	}
	if err := g.embedStylesheet(); err != nil {
		return err
	}
	if err := g.embedAssets(); err != nil {
		return err
	}
	if err := g.additionalResources(); err != nil {
		return err
	}

	if err := g.builder.Generate(w); err != nil {
		return fmt.Errorf("writing package: %w", err)
	}
	return nil
}

func (g *Generator) populateMetadata() error {
	if err := g.builder.Metadata("generator", generatorName); err != nil {
		return err
	}

	meta := g.ctx.Config.Book
	if meta.Title != "" {
		if err := g.builder.Metadata("title", meta.Title); err != nil {
			return err
		}
	} else {
		g.log.Warn("book has no title, EPUB readers expect one")
	}
	if meta.Description != "" {
		if err := g.builder.Metadata("description", meta.Description); err != nil {
			return err
		}
	}
	if len(meta.Authors) > 0 {
		if err := g.builder.Metadata("author", strings.Join(meta.Authors, ", ")); err != nil {
			return err
		}
	}

	if err := g.builder.Metadata("generator", generatorName+" "+Version); err != nil {
		return err
	}
	return g.builder.Metadata("lang", g.ctx.Language())
}

// generateChapters registers every chapter in depth-first pre-order, which
// fixes the spine and table-of-contents order. Separators and part titles
// carry no content and are skipped.
func (g *Generator) generateChapters() error {
	return eachChapter(g.ctx.Book.Sections, g.addChapter)
}

func (g *Generator) addChapter(ch *Chapter) error {
	rendered, err := g.renderChapter(ch)
	if err != nil {
		return err
	}
	g.log.Debug("chapter rendered",
		zap.String("path", rendered.Path),
		zap.String("title", rendered.Title),
		zap.Int("level", rendered.Level),
	)

	err = g.builder.AddContent(epub.Content{
		Path:  rendered.Path,
		Title: rendered.Title,
		Level: rendered.Level,
		Data:  []byte(rendered.Body),
	})
	if err != nil {
		return fmt.Errorf("registering chapter %q: %w", ch.Name, err)
	}
	return nil
}

func (g *Generator) addCoverImage() error {
	if g.cfg.CoverImage == "" {
		return nil
	}

	location, err := fileutil.Canonicalize(resolve(g.ctx.Root, g.cfg.CoverImage))
	if err != nil {
		return fmt.Errorf("locating cover image: %w", err)
	}
	g.log.Debug("embedding cover image", zap.String("file", location))

	f, err := os.Open(location) // #nosec G304 -- book-configured path
	if err != nil {
		return fmt.Errorf("opening cover image: %w", err)
	}
	defer f.Close()

	if err := g.builder.AddCoverImage(filepath.Base(location), f, mimeFromPath(location)); err != nil {
		return fmt.Errorf("embedding cover image: %w", err)
	}
	return nil
}

// embedStylesheet concatenates the default stylesheet (built-in CSS plus
// generated highlight rules), then every configured additional-css file in
// order, and registers the result as the book's single stylesheet.
func (g *Generator) embedStylesheet() error {
	var css bytes.Buffer

	if g.cfg.UseDefaultCSS {
		css.Write(assets.DefaultStylesheet())
		highlight, err := assets.HighlightCSS(g.cfg.CodeTheme)
		if err != nil {
			return err
		}
		css.Write(highlight)
	}

	for _, p := range g.cfg.AdditionalCSS {
		location, err := fileutil.Canonicalize(resolve(g.ctx.Root, p))
		if err != nil {
			return fmt.Errorf("locating stylesheet: %w", err)
		}
		data, err := os.ReadFile(location) // #nosec G304 -- book-configured path
		if err != nil {
			return fmt.Errorf("reading stylesheet %q: %w", p, err)
		}
		css.Write(data)
	}

	if err := g.builder.Stylesheet(&css); err != nil {
		return fmt.Errorf("embedding stylesheet: %w", err)
	}
	return nil
}

// embedAssets registers every local file the chapters reference. Files live
// under the archive at their source-relative path so rendered links keep
// working unchanged.
func (g *Generator) embedAssets() error {
	found, err := findAssets(g.md, &g.ctx.Book, g.ctx.SourceDir())
	if err != nil {
		return err
	}

	for _, a := range found {
		g.log.Debug("embedding asset",
			zap.String("entry", a.filename),
			zap.String("type", a.mimeType),
		)
		if err := g.addFileResource(a.filename, a.location, a.mimeType); err != nil {
			return err
		}
	}
	return nil
}

// additionalResources embeds the explicitly configured extra files under
// their bare filenames.
func (g *Generator) additionalResources() error {
	for _, p := range g.cfg.AdditionalResources {
		name := filepath.Base(filepath.ToSlash(p))
		if name == "." || name == ".." || name == "/" || name == "" {
			return fmt.Errorf("%w: %q", ErrNoFileName, p)
		}

		location, err := fileutil.Canonicalize(resolve(g.ctx.Root, p))
		if err != nil {
			return fmt.Errorf("locating resource: %w", err)
		}
		g.log.Debug("embedding resource", zap.String("file", location))

		if err := g.addFileResource(name, location, mimeFromPath(location)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) addFileResource(name, location, mimeType string) error {
	f, err := os.Open(location) // #nosec G304 -- book-referenced path
	if err != nil {
		return fmt.Errorf("opening resource %q: %w", location, err)
	}
	defer f.Close()

	if err := g.builder.AddResource(name, f, mimeType); err != nil {
		return fmt.Errorf("embedding resource %q: %w", name, err)
	}
	return nil
}
