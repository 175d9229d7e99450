package md2epub

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2epub/internal/fileutil"
	"github.com/alnah/go-md2epub/internal/yamlutil"
)

// bookManifest is the standalone book.yaml layout: book metadata plus the
// same output.epub table the plugin protocol carries.
type bookManifest struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Authors     []string `yaml:"authors"`
	Language    string   `yaml:"language"`
	Src         string   `yaml:"src"`
	Output      struct {
		Epub Config `yaml:"epub"`
	} `yaml:"output"`
}

// LoadBook assembles a render context from a standalone book directory:
// book.yaml for metadata and configuration, src/SUMMARY.md for the chapter
// tree, and one markdown file per linked chapter. The result is the same
// shape the plugin protocol delivers, so generation does not care where a
// book came from.
func LoadBook(dir string) (*RenderContext, error) {
	root, err := fileutil.Canonicalize(dir)
	if err != nil {
		return nil, fmt.Errorf("locating book: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "book.yaml")) // #nosec G304 -- user-chosen book dir
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoManifest, err)
	}
	var m bookManifest
	m.Output.Epub = DefaultConfig()
	if err := yamlutil.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing book.yaml: %w", err)
	}
	if m.Src == "" {
		m.Src = "src"
	}

	srcDir := filepath.Join(root, m.Src)
	summary, err := os.ReadFile(filepath.Join(srcDir, "SUMMARY.md")) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSummary, err)
	}

	book := parseSummary(summary)
	if len(book.Sections) == 0 {
		return nil, fmt.Errorf("%w: SUMMARY.md lists no chapters", ErrNoSummary)
	}

	err = eachChapter(book.Sections, func(ch *Chapter) error {
		if ch.Path == nil {
			return nil
		}
		content, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(*ch.Path))) // #nosec G304
		if err != nil {
			return fmt.Errorf("reading chapter %q: %w", ch.Name, err)
		}
		ch.Content = string(content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rawCfg, err := json.Marshal(m.Output.Epub)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}

	return &RenderContext{
		Version: Version,
		Root:    root,
		Book:    book,
		Config: BookConfig{
			Book: BookMeta{
				Title:       m.Title,
				Authors:     m.Authors,
				Description: m.Description,
				Language:    m.Language,
				Src:         m.Src,
			},
			Output: map[string]json.RawMessage{"epub": rawCfg},
		},
		Destination: filepath.Join(root, "book"),
	}, nil
}
