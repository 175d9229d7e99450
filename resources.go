package md2epub

import (
	"bytes"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

func init() {
	// Fonts are common book resources but missing from the built-in table.
	for ext, typ := range map[string]string{
		".ttf":   "font/ttf",
		".otf":   "font/otf",
		".woff":  "font/woff",
		".woff2": "font/woff2",
	} {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// asset is a local file referenced by a chapter, destined for embedding.
type asset struct {
	filename string // archive entry name, slash-separated, source-root relative
	location string // on-disk path
	mimeType string
}

// findAssets walks every chapter in traversal order and collects the local
// files its images reference, markdown image nodes and raw HTML img tags
// alike. Destinations with a URL scheme are remote and skipped; fragment
// and query suffixes are stripped. Each destination resolves relative to
// its chapter's directory (or to the source root when it starts with "/"),
// and the first reference to a file wins. A destination escaping the source
// root is an error.
func findAssets(md goldmark.Markdown, book *Book, sourceDir string) ([]asset, error) {
	var found []asset
	seen := make(map[string]bool)

	err := eachChapter(book.Sections, func(ch *Chapter) error {
		if ch.Path == nil {
			return nil
		}
		chapterDir := path.Dir(filepath.ToSlash(*ch.Path))

		for _, dest := range imageDestinations(md, []byte(ch.Content)) {
			a, ok, err := resolveAsset(dest, chapterDir, sourceDir)
			if err != nil {
				return fmt.Errorf("chapter %q: %w", ch.Name, err)
			}
			if !ok || seen[a.filename] {
				continue
			}
			seen[a.filename] = true
			found = append(found, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// imageDestinations parses one chapter's markdown and returns every image
// destination it references. Raw HTML blocks and spans are re-scanned with
// an HTML tokenizer since the markdown parser passes them through opaquely.
func imageDestinations(md goldmark.Markdown, source []byte) []string {
	doc := md.Parser().Parse(text.NewReader(source))

	var dests []string
	var rawHTML bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Image:
			dests = append(dests, string(n.Destination))
		case *ast.HTMLBlock:
			for i := 0; i < n.Lines().Len(); i++ {
				line := n.Lines().At(i)
				rawHTML.Write(line.Value(source))
			}
			if n.HasClosure() {
				rawHTML.Write(n.ClosureLine.Value(source))
			}
		case *ast.RawHTML:
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				rawHTML.Write(seg.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})

	return append(dests, imgSources(rawHTML.Bytes())...)
}

// imgSources extracts img src attributes from an HTML fragment. A tokenizer
// handles the unbalanced snippets raw spans produce.
func imgSources(fragment []byte) []string {
	var srcs []string

	tz := html.NewTokenizer(bytes.NewReader(fragment))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return srcs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := tz.TagName()
		if !bytes.Equal(name, []byte("img")) {
			continue
		}
		for hasAttr {
			key, val, more := tz.TagAttr()
			if bytes.Equal(key, []byte("src")) && len(val) > 0 {
				srcs = append(srcs, string(val))
			}
			if !more {
				break
			}
		}
	}
}

// resolveAsset turns one image destination into an asset. ok is false for
// destinations that are not local files.
func resolveAsset(dest, chapterDir, sourceDir string) (asset, bool, error) {
	if dest == "" || hasScheme(dest) {
		return asset{}, false, nil
	}

	trimmed := dest
	if i := strings.IndexAny(trimmed, "#?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return asset{}, false, nil
	}

	var entry string
	if strings.HasPrefix(trimmed, "/") {
		entry = path.Clean(strings.TrimPrefix(trimmed, "/"))
	} else {
		entry = path.Join(chapterDir, trimmed)
	}
	if entry == ".." || strings.HasPrefix(entry, "../") {
		return asset{}, false, fmt.Errorf("%w: %q", ErrAssetOutsideBook, dest)
	}

	return asset{
		filename: entry,
		location: filepath.Join(sourceDir, filepath.FromSlash(entry)),
		mimeType: mimeFromPath(entry),
	}, true, nil
}

// hasScheme reports whether dest starts with a URL scheme such as "https:"
// or "data:": a letter, then letters, digits, "+", "-" or ".", then a colon.
func hasScheme(dest string) bool {
	for i, r := range dest {
		switch {
		case r == ':':
			return i > 0
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return false
}

// mimeFromPath detects a MIME type from the file extension alone, with an
// octet-stream fallback. The charset parameter TypeByExtension appends to
// text types has no place in a package manifest.
func mimeFromPath(p string) string {
	t := mime.TypeByExtension(path.Ext(p))
	if t == "" {
		return "application/octet-stream"
	}
	if i := strings.Index(t, ";"); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
