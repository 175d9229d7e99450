package md2epub

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
)

// BookMeta is the host project's book table: title, authors, and friends.
type BookMeta struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Src         string   `json:"src"`
}

// BookConfig is the host project's configuration tree. Output holds one raw
// table per renderer; this tool reads the "epub" table.
type BookConfig struct {
	Book   BookMeta                   `json:"book"`
	Output map[string]json.RawMessage `json:"output"`
}

// RenderContext is the payload a book build tool hands a renderer on stdin:
// the chapter tree, project configuration, and where output belongs.
type RenderContext struct {
	Version     string     `json:"version"`
	Root        string     `json:"root"`
	Book        Book       `json:"book"`
	Config      BookConfig `json:"config"`
	Destination string     `json:"destination"`
}

// SourceDir returns the directory chapter paths are relative to.
func (c *RenderContext) SourceDir() string {
	src := c.Config.Book.Src
	if src == "" {
		src = "src"
	}
	return filepath.Join(c.Root, src)
}

// Language returns the book language, defaulting to "en".
func (c *RenderContext) Language() string {
	if c.Config.Book.Language == "" {
		return "en"
	}
	return c.Config.Book.Language
}

// ParseRenderContext decodes a RenderContext from JSON.
func ParseRenderContext(r io.Reader) (*RenderContext, error) {
	var ctx RenderContext
	if err := json.NewDecoder(r).Decode(&ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRenderContext, err)
	}
	return &ctx, nil
}
