package md2epub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SectionNumber is a chapter's hierarchical numbering, e.g. [2, 1] for
// section 2.1. A nil number marks an unnumbered chapter (prefix or suffix
// material).
type SectionNumber []int

// String returns the dotted form without a trailing dot, e.g. "2.1".
func (n SectionNumber) String() string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Level returns the zero-based nesting depth: one less than the numbering
// length, or 0 for unnumbered chapters.
func (n SectionNumber) Level() int {
	if len(n) == 0 {
		return 0
	}
	return len(n) - 1
}

// Chapter is one node of the book tree. Path is relative to the book's
// source directory and nil for draft chapters, which cannot be rendered.
type Chapter struct {
	Name     string        `json:"name"`
	Content  string        `json:"content"`
	Number   SectionNumber `json:"number"`
	SubItems []BookItem    `json:"sub_items"`
	Path     *string       `json:"path"`
}

// BookItem is one entry of a book's section list: a chapter, a part title,
// or a separator. Exactly one of Chapter and PartTitle is set; the zero
// value is a separator.
type BookItem struct {
	Chapter   *Chapter
	PartTitle string
}

// UnmarshalJSON decodes the externally tagged wire form: an object keyed
// "Chapter" or "PartTitle", or the bare string "Separator".
func (i *BookItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s != "Separator" {
			return fmt.Errorf("unknown book item %q", s)
		}
		*i = BookItem{}
		return nil
	}

	var tagged struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle string   `json:"PartTitle"`
	}
	if err := json.Unmarshal(trimmed, &tagged); err != nil {
		return err
	}
	i.Chapter = tagged.Chapter
	i.PartTitle = tagged.PartTitle
	return nil
}

// Book is the root of the chapter tree.
type Book struct {
	Sections []BookItem `json:"sections"`
}

// eachChapter applies fn to every chapter in depth-first pre-order,
// skipping separators and part titles. The first error stops the walk.
func eachChapter(items []BookItem, fn func(*Chapter) error) error {
	for _, item := range items {
		if item.Chapter == nil {
			continue
		}
		if err := fn(item.Chapter); err != nil {
			return err
		}
		if err := eachChapter(item.Chapter.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}
